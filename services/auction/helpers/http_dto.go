package helpers

import (
	auction "auction-marketplace/internal/auctionService"
	model "auction-marketplace/internal/models"
)

// BrowseRequest is the query string of GET /auctions
type BrowseRequest struct {
	Search   string   `form:"search"`
	Category string   `form:"category"`
	Status   string   `form:"status"`
	Sort     string   `form:"sort"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,gte=0"`
}

// ToQuery converts the request into the service filter
func (r BrowseRequest) ToQuery() auction.BrowseQuery {
	return auction.BrowseQuery{
		Search:   r.Search,
		Category: r.Category,
		Status:   r.Status,
		Sort:     r.Sort,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
	}
}

type BrowseResponse struct {
	Auctions []model.AuctionSummary `json:"auctions"`
	Count    int                    `json:"count"`
}

type ReactionResponse struct {
	Success bool `json:"success"`
	model.ReactionResult
}
