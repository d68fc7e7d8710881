package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	model "auction-marketplace/internal/models"

	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the storage interface for the auction system.
// Every handle is bound to one *gorm.DB, which is either the pool or an open transaction.
type AuctionDB interface {
	Users() UserRepository
	Auctions() AuctionRepository
	Bids() BidRepository
	Likes() LikeRepository
	// WithTx runs fn against a transaction-bound AuctionDB; returning an error rolls back.
	WithTx(ctx context.Context, fn func(tx AuctionDB) error) error
}

// UserRepository persists users
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)
}

// AuctionRepository persists auctions and their denormalized current bid
type AuctionRepository interface {
	CreateAuction(ctx context.Context, auction *model.Auction) error
	GetAuction(ctx context.Context, id uint) (model.Auction, error)
	UpdateAuction(ctx context.Context, auction *model.Auction) error
	DeleteAuction(ctx context.Context, id uint) error
	ListAuctions(ctx context.Context, filter AuctionFilter) ([]model.Auction, error)
	SearchAuctions(ctx context.Context, query string, limit int) ([]model.Auction, error)
	Categories(ctx context.Context) ([]string, error)
	// RaiseCurrentBid sets current_bid only if amount is strictly higher than the stored value.
	RaiseCurrentBid(ctx context.Context, id uint, amount float64) (bool, error)
	SetCurrentBid(ctx context.Context, id uint, amount *float64) error
	CountAuctions(ctx context.Context) (int64, error)
	CountActiveAuctions(ctx context.Context, now time.Time) (int64, error)
}

// BidRepository persists bids and answers ranking queries
type BidRepository interface {
	RecordBid(ctx context.Context, bid *model.Bid) error
	GetBid(ctx context.Context, id uint) (model.Bid, error)
	DeleteBid(ctx context.Context, id uint) error
	DeleteBidsByAuction(ctx context.Context, auctionID uint) (int64, error)
	DeleteBidsByUser(ctx context.Context, userID uint) (int64, error)
	GetWinningBid(ctx context.Context, auctionID uint) (model.Bid, error)
	GetTopBids(ctx context.Context, auctionID uint, limit int) ([]model.Bid, error)
	GetRecentBids(ctx context.Context, auctionID uint, limit int) ([]model.Bid, error)
	GetBidsByUser(ctx context.Context, userID uint) ([]model.Bid, error)
	ListBids(ctx context.Context, limit int) ([]model.Bid, error)
	CountBids(ctx context.Context) (int64, error)
	CountBidsByAuction(ctx context.Context, auctionID uint) (int64, error)
	AuctionIDsByUser(ctx context.Context, userID uint) ([]uint, error)
}

// LikeRepository persists reactions
type LikeRepository interface {
	GetUserLike(ctx context.Context, userID, auctionID uint) (*model.Like, error)
	CreateLike(ctx context.Context, like *model.Like) error
	UpdateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, id uint) error
	DeleteLikesByAuction(ctx context.Context, auctionID uint) error
	DeleteLikesByUser(ctx context.Context, userID uint) error
	CountReactions(ctx context.Context, auctionID uint) (model.ReactionCounts, error)
	CountReactionsFor(ctx context.Context, auctionIDs []uint) (map[uint]model.ReactionCounts, error)
	UserReactions(ctx context.Context, userID uint, auctionIDs []uint) (map[uint]model.Reaction, error)
}

// GormRepo is the gorm-backed implementation of AuctionDB
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo wraps a gorm handle
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) Users() UserRepository       { return &userRepo{db: r.db} }
func (r *GormRepo) Auctions() AuctionRepository { return &auctionRepo{db: r.db} }
func (r *GormRepo) Bids() BidRepository         { return &bidRepo{db: r.db} }
func (r *GormRepo) Likes() LikeRepository       { return &likeRepo{db: r.db} }

// WithTx opens a transaction and hands fn a repo bound to it
func (r *GormRepo) WithTx(ctx context.Context, fn func(tx AuctionDB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepo(tx))
	})
}

// isUniqueConstraintError covers both translated gorm errors and raw driver messages
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
