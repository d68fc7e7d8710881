package handler

import (
	"context"
	"net/http"
	"strconv"

	model "auction-marketplace/internal/models"
	"auction-marketplace/services/bidding/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_service.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, auctionID, userID uint, amount float64) (model.BidReceipt, error)
	CheckBid(ctx context.Context, auctionID, userID uint, amount float64) error
	GetWinningBid(ctx context.Context, auctionID uint) (model.Bid, error)
	GetTopBids(ctx context.Context, auctionID uint, limit int, viewer *model.Identity) ([]model.BidHistoryEntry, error)
	GetBidHistory(ctx context.Context, auctionID uint, viewer *model.Identity) ([]model.BidHistoryEntry, error)
	GetUserBidSummaries(ctx context.Context, userID uint) ([]model.UserBidSummary, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidHandler handles POST /bidding/place/:id
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	identity, ok := utils.RequireIdentity(c)
	if !ok {
		return
	}
	auctionID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	receipt, err := h.service.PlaceBid(c.Request.Context(), auctionID, identity.UserID, req.Amount)
	if err != nil {
		status, _ := utils.MapErrorToHTTP(err)
		if status >= http.StatusInternalServerError {
			utils.RespondError(c, "PlaceBidHandler", err, map[string]any{"auction_id": auctionID, "user_id": identity.UserID})
			return
		}
		message := helpers.RejectionMessage(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": auctionID,
			"user_id":    identity.UserID,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		Bid:           helpers.ToBidResponse(receipt.Bid),
		NewCurrentBid: receipt.NewCurrentBid,
		BidCount:      receipt.BidCount,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, helpers.AcceptedMessage(req.Amount, true))
	utils.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     receipt.Bid.ID,
		"auction_id": auctionID,
		"user_id":    identity.UserID,
		"amount":     req.Amount,
	})
}

// ValidateBidHandler handles POST /bidding/validate. It always answers 200 with a verdict.
func (h *BiddingHandler) ValidateBidHandler(c *gin.Context) {
	identity, ok := utils.RequireIdentity(c)
	if !ok {
		return
	}

	var req helpers.ValidateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONResponse(c, http.StatusOK, helpers.ValidateBidResponse{Message: "invalid bid amount format"}, "bid checked")
		return
	}
	if req.AuctionID == 0 || req.Amount == 0 {
		utils.JSONResponse(c, http.StatusOK, helpers.ValidateBidResponse{Message: "missing auction ID or bid amount"}, "bid checked")
		return
	}

	err := h.service.CheckBid(c.Request.Context(), req.AuctionID, identity.UserID, req.Amount)
	if err != nil {
		if status, _ := utils.MapErrorToHTTP(err); status >= http.StatusInternalServerError {
			utils.RespondError(c, "ValidateBidHandler", err, map[string]any{"auction_id": req.AuctionID})
			return
		}
		utils.JSONResponse(c, http.StatusOK, helpers.ValidateBidResponse{Message: helpers.RejectionMessage(err)}, "bid checked")
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ValidateBidResponse{
		Valid:   true,
		Message: helpers.AcceptedMessage(req.Amount, false),
	}, "bid checked")
}

// BidHistoryHandler handles GET /bidding/history/:id
func (h *BiddingHandler) BidHistoryHandler(c *gin.Context) {
	auctionID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.service.GetBidHistory(c.Request.Context(), auctionID, utils.CurrentIdentity(c))
	if err != nil {
		utils.RespondError(c, "BidHistoryHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.BidHistoryResponse{AuctionID: auctionID, Bids: history}, "bid history retrieved successfully")
}

// TopBidsHandler handles GET /bidding/top/:id?limit=n
func (h *BiddingHandler) TopBidsHandler(c *gin.Context) {
	auctionID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	top, err := h.service.GetTopBids(c.Request.Context(), auctionID, limit, utils.CurrentIdentity(c))
	if err != nil {
		utils.RespondError(c, "TopBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.BidHistoryResponse{AuctionID: auctionID, Bids: top}, "top bids retrieved successfully")
}

// WinningBidHandler handles GET /bidding/winning/:id
func (h *BiddingHandler) WinningBidHandler(c *gin.Context) {
	auctionID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	bid, err := h.service.GetWinningBid(c.Request.Context(), auctionID)
	if err != nil {
		utils.RespondError(c, "WinningBidHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "winning bid retrieved successfully")
	utils.LogSuccess("WinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": auctionID,
		"amount":     bid.Amount,
	})
}

// MyBidsHandler handles GET /bidding/my-bids
func (h *BiddingHandler) MyBidsHandler(c *gin.Context) {
	identity, ok := utils.RequireIdentity(c)
	if !ok {
		return
	}

	summaries, err := h.service.GetUserBidSummaries(c.Request.Context(), identity.UserID)
	if err != nil {
		utils.RespondError(c, "MyBidsHandler", err, map[string]any{"user_id": identity.UserID})
		return
	}
	if summaries == nil {
		summaries = []model.UserBidSummary{}
	}

	utils.JSONResponse(c, http.StatusOK, summaries, "bids retrieved successfully")
	utils.LogSuccess("MyBidsHandler", "bids retrieved successfully", map[string]any{
		"user_id":        identity.UserID,
		"auctions_count": len(summaries),
	})
}
