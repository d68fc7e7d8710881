package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	auction "auction-marketplace/internal/auctionService"
	model "auction-marketplace/internal/models"
	"auction-marketplace/services/admin/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=admin_handler.go -destination=mock_admin_services.go -package=handler

type AuctionAdminService interface {
	Dashboard(ctx context.Context) (model.DashboardStats, error)
	ListAuctions(ctx context.Context) ([]model.AuctionSummary, error)
	Create(ctx context.Context, in auction.AuctionInput) (model.Auction, error)
	Update(ctx context.Context, id uint, upd auction.AuctionUpdate) (model.Auction, error)
	Delete(ctx context.Context, id uint) error
	UploadImage(ctx context.Context, id uint, fileName string, file io.Reader, size int64) (model.AuctionSummary, error)
}

type BidAdminService interface {
	ListBids(ctx context.Context, limit int) ([]model.Bid, error)
	DeleteBid(ctx context.Context, bidID uint) (model.Auction, error)
}

type UserAdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id uint, actor model.Identity) error
}

// AdminHandler serves /admin. Every handler checks the admin flag itself.
type AdminHandler struct {
	auctions      AuctionAdminService
	bids          BidAdminService
	users         UserAdminService
	maxUploadSize int64
}

func NewAdminHandler(auctions AuctionAdminService, bids BidAdminService, users UserAdminService, maxUploadSize int64) *AdminHandler {
	return &AdminHandler{auctions: auctions, bids: bids, users: users, maxUploadSize: maxUploadSize}
}

// DashboardHandler handles GET /admin/dashboard
func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	if _, ok := utils.RequireAdmin(c); !ok {
		return
	}

	stats, err := h.auctions.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "DashboardHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.ToDashboardResponse(stats), "dashboard retrieved successfully")
}

// ListAuctionsHandler handles GET /admin/auctions
func (h *AdminHandler) ListAuctionsHandler(c *gin.Context) {
	if _, ok := utils.RequireAdmin(c); !ok {
		return
	}

	auctions, err := h.auctions.ListAuctions(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "ListAuctionsHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// CreateAuctionHandler handles POST /admin/auctions
func (h *AdminHandler) CreateAuctionHandler(c *gin.Context) {
	admin, ok := utils.RequireAdmin(c)
	if !ok {
		return
	}

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	created, err := h.auctions.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		utils.RespondError(c, "CreateAuctionHandler", err, map[string]any{"admin_id": admin.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, created, "auction created successfully")
	utils.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{"auction_id": created.ID, "admin_id": admin.UserID})
}

// UpdateAuctionHandler handles PUT /admin/auctions/:id
func (h *AdminHandler) UpdateAuctionHandler(c *gin.Context) {
	admin, ok := utils.RequireAdmin(c)
	if !ok {
		return
	}
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	updated, err := h.auctions.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		utils.RespondError(c, "UpdateAuctionHandler", err, map[string]any{"auction_id": id, "admin_id": admin.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, updated, "auction updated successfully")
	utils.LogSuccess("UpdateAuctionHandler", "auction updated", map[string]any{"auction_id": id, "admin_id": admin.UserID})
}

// DeleteAuctionHandler handles DELETE /admin/auctions/:id
func (h *AdminHandler) DeleteAuctionHandler(c *gin.Context) {
	admin, ok := utils.RequireAdmin(c)
	if !ok {
		return
	}
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.auctions.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, "DeleteAuctionHandler", err, map[string]any{"auction_id": id, "admin_id": admin.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"id": id}, "auction and all its bids deleted successfully")
	utils.LogSuccess("DeleteAuctionHandler", "auction deleted", map[string]any{"auction_id": id, "admin_id": admin.UserID})
}

// UploadImageHandler handles POST /admin/auctions/:id/image (multipart field "image")
func (h *AdminHandler) UploadImageHandler(c *gin.Context) {
	admin, ok := utils.RequireAdmin(c)
	if !ok {
		return
	}
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}
	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.JSONError(c, http.StatusRequestEntityTooLarge, err, "image exceeds "+strconv.FormatInt(h.maxUploadSize>>20, 10)+" MB")
			return
		}
		utils.HandleBindError(c, "UploadImageHandler", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, "UploadImageHandler", err, map[string]any{"auction_id": id})
		return
	}
	defer file.Close()

	summary, err := h.auctions.UploadImage(c.Request.Context(), id, header.Filename, file, header.Size)
	if err != nil {
		utils.RespondError(c, "UploadImageHandler", err, map[string]any{"auction_id": id, "file": header.Filename})
		return
	}

	utils.JSONResponse(c, http.StatusOK, summary, "image uploaded successfully")
	utils.LogSuccess("UploadImageHandler", "image uploaded", map[string]any{
		"auction_id": id,
		"admin_id":   admin.UserID,
		"size":       header.Size,
	})
}

// ListBidsHandler handles GET /admin/bids?limit=n
func (h *AdminHandler) ListBidsHandler(c *gin.Context) {
	if _, ok := utils.RequireAdmin(c); !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	bids, err := h.bids.ListBids(c.Request.Context(), limit)
	if err != nil {
		utils.RespondError(c, "ListBidsHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.ToAdminBids(bids), "bids retrieved successfully")
}

// DeleteBidHandler handles DELETE /admin/bids/:id
func (h *AdminHandler) DeleteBidHandler(c *gin.Context) {
	admin, ok := utils.RequireAdmin(c)
	if !ok {
		return
	}
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	repriced, err := h.bids.DeleteBid(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, "DeleteBidHandler", err, map[string]any{"bid_id": id, "admin_id": admin.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.DeleteBidResponse{
		AuctionID:     repriced.ID,
		NewCurrentBid: repriced.CurrentAmount(),
	}, "bid deleted successfully and auction updated")
}

// ListUsersHandler handles GET /admin/users
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	if _, ok := utils.RequireAdmin(c); !ok {
		return
	}

	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "ListUsersHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, users, "users retrieved successfully")
}

// DeleteUserHandler handles DELETE /admin/users/:id
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	admin, ok := utils.RequireAdmin(c)
	if !ok {
		return
	}
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id, admin); err != nil {
		utils.RespondError(c, "DeleteUserHandler", err, map[string]any{"user_id": id, "admin_id": admin.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"id": id}, "user deleted successfully")
	utils.LogSuccess("DeleteUserHandler", "user deleted", map[string]any{"user_id": id, "admin_id": admin.UserID})
}
