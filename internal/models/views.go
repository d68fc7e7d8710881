package models

import "time"

// BidReceipt is returned to the bidder after an accepted bid
type BidReceipt struct {
	Bid           Bid     `json:"bid"`
	NewCurrentBid float64 `json:"new_current_bid"`
	BidCount      int64   `json:"bid_count"`
}

// BidHistoryEntry is one line of an auction's public bid history
type BidHistoryEntry struct {
	ID        uint      `json:"id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Bidder    string    `json:"bidder"`
}

// UserBidSummary aggregates a user's bids on a single auction
type UserBidSummary struct {
	Auction        Auction       `json:"auction"`
	Status         AuctionStatus `json:"status"`
	UserHighestBid float64       `json:"user_highest_bid"`
	CurrentHighest float64       `json:"current_highest"`
	IsWinning      bool          `json:"is_winning"`
	BidCount       int           `json:"bid_count"`
	LastBidAt      time.Time     `json:"last_bid_at"`
}

// AuctionSummary is an auction as listed on the browse page
type AuctionSummary struct {
	Auction
	Status        AuctionStatus `json:"status"`
	CurrentAmount float64       `json:"current_amount"`
	TimeLeft      int64         `json:"time_left_seconds"`
	ImageURL      string        `json:"image_url"`
	ReactionCounts
	UserReaction Reaction `json:"user_reaction"`
}

// AuctionDetail is the full view of one auction
type AuctionDetail struct {
	AuctionSummary
	TopBids    []BidHistoryEntry `json:"top_bids"`
	RecentBids []BidHistoryEntry `json:"recent_bids"`
	BidCount   int64             `json:"bid_count"`
	// MinimumBid is the amount a new bid has to exceed
	MinimumBid float64 `json:"minimum_bid"`
}

// SearchResult is the compact form returned by quick search
type SearchResult struct {
	ID         uint          `json:"id"`
	Title      string        `json:"title"`
	CurrentBid float64       `json:"current_bid"`
	EndTime    time.Time     `json:"end_time"`
	Status     AuctionStatus `json:"status"`
}

// ReactionResult is returned after toggling a reaction
type ReactionResult struct {
	Action string `json:"action"`
	ReactionCounts
	UserReaction Reaction `json:"user_reaction"`
}

// DashboardStats feeds the admin dashboard
type DashboardStats struct {
	TotalAuctions  int64     `json:"total_auctions"`
	ActiveAuctions int64     `json:"active_auctions"`
	TotalBids      int64     `json:"total_bids"`
	TotalUsers     int64     `json:"total_users"`
	RecentAuctions []Auction `json:"recent_auctions"`
	RecentBids     []Bid     `json:"recent_bids"`
}
