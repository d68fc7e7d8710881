package handler

import (
	"context"
	"net/http"

	auction "auction-marketplace/internal/auctionService"
	model "auction-marketplace/internal/models"
	"auction-marketplace/services/auction/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_service.go -package=handler

type AuctionServiceInterface interface {
	Browse(ctx context.Context, q auction.BrowseQuery, viewer *model.Identity) ([]model.AuctionSummary, error)
	Detail(ctx context.Context, id uint, viewer *model.Identity) (model.AuctionDetail, error)
	ToggleReaction(ctx context.Context, auctionID, userID uint, reaction model.Reaction) (model.ReactionResult, error)
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// BrowseHandler handles GET /auctions
func (h *AuctionHandler) BrowseHandler(c *gin.Context) {
	var req helpers.BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.HandleBindError(c, "BrowseHandler", err)
		return
	}

	auctions, err := h.service.Browse(c.Request.Context(), req.ToQuery(), utils.CurrentIdentity(c))
	if err != nil {
		utils.RespondError(c, "BrowseHandler", err, map[string]any{"query": c.Request.URL.RawQuery})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.BrowseResponse{Auctions: auctions, Count: len(auctions)}, "auctions retrieved successfully")
}

// DetailHandler handles GET /auctions/:id
func (h *AuctionHandler) DetailHandler(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id, utils.CurrentIdentity(c))
	if err != nil {
		utils.RespondError(c, "DetailHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, detail, "auction retrieved successfully")
}

// LikeHandler handles POST /auctions/:id/like
func (h *AuctionHandler) LikeHandler(c *gin.Context) {
	h.toggle(c, "LikeHandler", model.ReactionLike)
}

// DislikeHandler handles POST /auctions/:id/dislike
func (h *AuctionHandler) DislikeHandler(c *gin.Context) {
	h.toggle(c, "DislikeHandler", model.ReactionDislike)
}

func (h *AuctionHandler) toggle(c *gin.Context, handlerName string, reaction model.Reaction) {
	identity, ok := utils.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ToggleReaction(c.Request.Context(), id, identity.UserID, reaction)
	if err != nil {
		utils.RespondError(c, handlerName, err, map[string]any{"auction_id": id, "user_id": identity.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ReactionResponse{Success: true, ReactionResult: result}, "reaction "+result.Action)
	utils.LogSuccess(handlerName, "reaction "+result.Action, map[string]any{
		"auction_id": id,
		"user_id":    identity.UserID,
		"reaction":   string(reaction),
	})
}

// CategoriesHandler handles GET /auctions/categories
func (h *AuctionHandler) CategoriesHandler(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "CategoriesHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, categories, "categories retrieved successfully")
}

// SearchHandler handles GET /auctions/search?q=
func (h *AuctionHandler) SearchHandler(c *gin.Context) {
	results, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.RespondError(c, "SearchHandler", err, map[string]any{"q": c.Query("q")})
		return
	}
	utils.JSONResponse(c, http.StatusOK, results, "search completed")
}
