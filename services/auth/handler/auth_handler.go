package handler

import (
	"context"
	"net/http"

	auth "auction-marketplace/internal/authService"
	model "auction-marketplace/internal/models"
	"auction-marketplace/services/auth/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auth_handler.go -destination=mock_auth_service.go -package=handler

type AuthServiceInterface interface {
	Register(ctx context.Context, in auth.RegisterInput) (model.User, error)
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Logout(ctx context.Context, identity model.Identity) error
	Me(ctx context.Context, identity model.Identity) (model.User, error)
}

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterHandler handles POST /auth/register
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		utils.RespondError(c, "RegisterHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user, "registration successful, please log in")
	utils.LogSuccess("RegisterHandler", "user registered", map[string]any{"user_id": user.ID})
}

// LoginHandler handles POST /auth/login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleBindError(c, "LoginHandler", err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, "LoginHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, session, "welcome back, "+session.User.FirstName)
}

// LogoutHandler handles POST /auth/logout
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	identity, ok := utils.RequireIdentity(c)
	if !ok {
		return
	}

	if err := h.service.Logout(c.Request.Context(), identity); err != nil {
		utils.RespondError(c, "LogoutHandler", err, map[string]any{"user_id": identity.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "you have been logged out")
}

// MeHandler handles GET /auth/me
func (h *AuthHandler) MeHandler(c *gin.Context) {
	identity, ok := utils.RequireIdentity(c)
	if !ok {
		return
	}

	user, err := h.service.Me(c.Request.Context(), identity)
	if err != nil {
		utils.RespondError(c, "MeHandler", err, map[string]any{"user_id": identity.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "user retrieved successfully")
}
