package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAuctionImage is used when an auction has no uploaded image
const DefaultAuctionImage = "default_auction.jpg"

// User represents a participant in the marketplace
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	FirstName    string     `gorm:"size:50;not null" json:"first_name"`
	LastName     string     `gorm:"size:50;not null" json:"last_name"`
	IsAdmin      bool       `gorm:"not null;default:false" json:"is_admin"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	Bids  []Bid  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Likes []Like `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewUser builds an active, non-admin user with a normalized email
func NewUser(email, firstName, lastName string) User {
	return User{
		Email:     NormalizeEmail(email),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FullName returns "First Last"
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// AuctionStatus is derived from the clock and the cancellation flag; it is never stored
type AuctionStatus string

const (
	StatusUpcoming  AuctionStatus = "upcoming"
	StatusActive    AuctionStatus = "active"
	StatusEnded     AuctionStatus = "ended"
	StatusCancelled AuctionStatus = "cancelled"
)

// Auction represents a timed listing accepting bids
type Auction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Image       string    `gorm:"size:255" json:"image"`
	StartingBid float64   `gorm:"not null" json:"starting_bid"`
	CurrentBid  *float64  `json:"current_bid"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null;index" json:"end_time"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	Cancelled   bool      `gorm:"not null;default:false" json:"cancelled"`

	Bids  []Bid  `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE" json:"-"`
	Likes []Like `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE" json:"-"`
}

// AuctionParams carries the caller-supplied fields of a new auction
type AuctionParams struct {
	Title       string
	Description string
	Category    string
	Image       string
	StartingBid float64
	StartTime   time.Time
	EndTime     time.Time
}

// NewAuction builds an auction without bids from explicit parameters
func NewAuction(p AuctionParams, now time.Time) Auction {
	image := p.Image
	if image == "" {
		image = DefaultAuctionImage
	}
	start := p.StartTime
	if start.IsZero() {
		start = now
	}
	return Auction{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Category:    strings.TrimSpace(p.Category),
		Image:       image,
		StartingBid: p.StartingBid,
		StartTime:   start.UTC(),
		EndTime:     p.EndTime.UTC(),
		CreatedAt:   now.UTC(),
	}
}

// Status derives the auction state at the given instant
func (a *Auction) Status(now time.Time) AuctionStatus {
	switch {
	case a.Cancelled:
		return StatusCancelled
	case now.Before(a.StartTime):
		return StatusUpcoming
	case now.After(a.EndTime):
		return StatusEnded
	default:
		return StatusActive
	}
}

// IsOngoing reports start_time <= now <= end_time on a non-cancelled auction
func (a *Auction) IsOngoing(now time.Time) bool {
	return a.Status(now) == StatusActive
}

// CurrentAmount is the highest accepted bid, or the starting bid when none exist
func (a *Auction) CurrentAmount() float64 {
	if a.CurrentBid != nil {
		return *a.CurrentBid
	}
	return a.StartingBid
}

// TimeLeft is zero once the auction has ended
func (a *Auction) TimeLeft(now time.Time) time.Duration {
	if !now.Before(a.EndTime) {
		return 0
	}
	return a.EndTime.Sub(now)
}

// Bid represents a user's offer on an auction. Bids are never updated.
type Bid struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Amount    float64   `gorm:"not null;index:idx_auction_amount,priority:2" json:"amount"`
	CreatedAt time.Time `gorm:"not null;index:idx_auction_created,priority:2" json:"created_at"`
	AuctionID uint      `gorm:"not null;index:idx_auction_amount,priority:1;index:idx_auction_created,priority:1" json:"auction_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`

	Auction *Auction `gorm:"foreignKey:AuctionID" json:"auction,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}

// NewBid builds a bid stamped at now
func NewBid(auctionID, userID uint, amount float64, now time.Time) Bid {
	return Bid{
		Amount:    amount,
		CreatedAt: now.UTC(),
		AuctionID: auctionID,
		UserID:    userID,
	}
}

// Reaction is a user's like or dislike of an auction
type Reaction string

const (
	ReactionNone    Reaction = ""
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// MarshalJSON encodes the absence of a reaction as null
func (r Reaction) MarshalJSON() ([]byte, error) {
	if r == ReactionNone {
		return []byte("null"), nil
	}
	return []byte(`"` + string(r) + `"`), nil
}

// Like stores one reaction per (user, auction)
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IsLike    bool      `gorm:"not null;index:idx_auction_likes,priority:2" json:"is_like"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	AuctionID uint      `gorm:"not null;uniqueIndex:unique_user_auction_like,priority:1;index:idx_auction_likes,priority:1" json:"auction_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:unique_user_auction_like,priority:2" json:"user_id"`
}

// NewLike builds a reaction row for the given reaction
func NewLike(userID, auctionID uint, reaction Reaction, now time.Time) Like {
	return Like{
		IsLike:    reaction == ReactionLike,
		CreatedAt: now.UTC(),
		AuctionID: auctionID,
		UserID:    userID,
	}
}

// Reaction maps the stored flag back to a Reaction
func (l *Like) Reaction() Reaction {
	if l.IsLike {
		return ReactionLike
	}
	return ReactionDislike
}

// ReactionCounts aggregates likes and dislikes of one auction
type ReactionCounts struct {
	Likes    int64 `json:"like_count"`
	Dislikes int64 `json:"dislike_count"`
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	UserID  uint
	Email   string
	IsAdmin bool
	TokenID string
	Expires time.Time
}
