package helpers

import (
	"time"

	model "auction-marketplace/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount float64 `json:"amount" form:"amount" binding:"required"`
}

type ValidateBidRequest struct {
	AuctionID uint    `json:"auction_id"`
	Amount    float64 `json:"amount"`
}

type ValidateBidResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

type BidResponse struct {
	ID        uint    `json:"id"`
	AuctionID uint    `json:"auction_id"`
	UserID    uint    `json:"user_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type PlaceBidResponse struct {
	Bid           BidResponse `json:"bid"`
	NewCurrentBid float64     `json:"new_current_bid"`
	BidCount      int64       `json:"bid_count"`
}

type BidHistoryResponse struct {
	AuctionID uint                    `json:"auction_id"`
	Bids      []model.BidHistoryEntry `json:"bids"`
}

// ToBidResponse flattens a bid for the wire
func ToBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		ID:        bid.ID,
		AuctionID: bid.AuctionID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}
