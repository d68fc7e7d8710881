package helpers

import (
	"strings"

	auth "auction-marketplace/internal/authService"
)

// Request/Response DTOs
type RegisterRequest struct {
	Email           string `json:"email" form:"email"`
	FirstName       string `json:"first_name" form:"first_name"`
	LastName        string `json:"last_name" form:"last_name"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// ToInput converts the request into the service input
func (r RegisterRequest) ToInput() auth.RegisterInput {
	return auth.RegisterInput{
		Email:           r.Email,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
