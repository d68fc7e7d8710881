package helpers

import (
	"time"

	auction "auction-marketplace/internal/auctionService"
	model "auction-marketplace/internal/models"
)

// Request/Response DTOs
type CreateAuctionRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	Description   string     `json:"description" binding:"required"`
	Category      string     `json:"category" binding:"required,max=100"`
	StartingBid   float64    `json:"starting_bid" binding:"required,gt=0"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	DurationHours int        `json:"duration_hours" binding:"omitempty,gte=1,lte=8760"`
}

func (r CreateAuctionRequest) ToInput() auction.AuctionInput {
	return auction.AuctionInput{
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		StartingBid:   r.StartingBid,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		DurationHours: r.DurationHours,
	}
}

type UpdateAuctionRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description"`
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	StartingBid *float64   `json:"starting_bid" binding:"omitempty,gt=0"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Cancelled   *bool      `json:"cancelled"`
}

func (r UpdateAuctionRequest) ToUpdate() auction.AuctionUpdate {
	return auction.AuctionUpdate{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		StartingBid: r.StartingBid,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Cancelled:   r.Cancelled,
	}
}

// AdminBidResponse shows a bid with its auction and unmasked bidder
type AdminBidResponse struct {
	ID           uint      `json:"id"`
	Amount       float64   `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
	AuctionID    uint      `json:"auction_id"`
	AuctionTitle string    `json:"auction_title"`
	UserID       uint      `json:"user_id"`
	Bidder       string    `json:"bidder"`
	BidderEmail  string    `json:"bidder_email"`
}

func ToAdminBids(bids []model.Bid) []AdminBidResponse {
	out := make([]AdminBidResponse, 0, len(bids))
	for i := range bids {
		resp := AdminBidResponse{
			ID:        bids[i].ID,
			Amount:    bids[i].Amount,
			CreatedAt: bids[i].CreatedAt,
			AuctionID: bids[i].AuctionID,
			UserID:    bids[i].UserID,
		}
		if a := bids[i].Auction; a != nil {
			resp.AuctionTitle = a.Title
		}
		if u := bids[i].User; u != nil {
			resp.Bidder = u.FullName()
			resp.BidderEmail = u.Email
		}
		out = append(out, resp)
	}
	return out
}

type DashboardResponse struct {
	TotalAuctions  int64              `json:"total_auctions"`
	ActiveAuctions int64              `json:"active_auctions"`
	TotalBids      int64              `json:"total_bids"`
	TotalUsers     int64              `json:"total_users"`
	RecentAuctions []model.Auction    `json:"recent_auctions"`
	RecentBids     []AdminBidResponse `json:"recent_bids"`
}

func ToDashboardResponse(stats model.DashboardStats) DashboardResponse {
	recent := stats.RecentAuctions
	if recent == nil {
		recent = []model.Auction{}
	}
	return DashboardResponse{
		TotalAuctions:  stats.TotalAuctions,
		ActiveAuctions: stats.ActiveAuctions,
		TotalBids:      stats.TotalBids,
		TotalUsers:     stats.TotalUsers,
		RecentAuctions: recent,
		RecentBids:     ToAdminBids(stats.RecentBids),
	}
}

type DeleteBidResponse struct {
	AuctionID     uint    `json:"auction_id"`
	NewCurrentBid float64 `json:"new_current_bid"`
}
