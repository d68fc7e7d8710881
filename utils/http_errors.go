package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"auction-marketplace/internal/biddingerrors"

	"github.com/gin-gonic/gin"
)

// InternalErrorMessage is shown for anything that is not a known domain error
const InternalErrorMessage = "an error occurred, please try again"

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, biddingerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid amount"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, biddingerrors.ErrAuctionNotActive):
		return http.StatusConflict, "this auction is not currently active for bidding"
	case errors.Is(err, biddingerrors.ErrAlreadyHighestBidder):
		return http.StatusConflict, "you are already the highest bidder on this auction"
	case errors.Is(err, biddingerrors.ErrInvalidAuction):
		return http.StatusBadRequest, "invalid auction details"
	case errors.Is(err, biddingerrors.ErrStartingBidLocked):
		return http.StatusConflict, "starting bid cannot be changed once bids exist"
	case errors.Is(err, biddingerrors.ErrInvalidReaction):
		return http.StatusBadRequest, "invalid reaction"
	case errors.Is(err, biddingerrors.ErrInvalidRegistration):
		return http.StatusBadRequest, "invalid registration details"
	case errors.Is(err, biddingerrors.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, biddingerrors.ErrSelfDelete):
		return http.StatusConflict, "you cannot delete your own account"
	case errors.Is(err, biddingerrors.ErrInvalidImage):
		return http.StatusBadRequest, "unsupported image file"
	case errors.Is(err, biddingerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, biddingerrors.ErrTokenRevoked):
		return http.StatusUnauthorized, "session has ended, please log in again"
	case errors.Is(err, biddingerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, biddingerrors.ErrAccountDisabled):
		return http.StatusForbidden, "account is disabled"
	case errors.Is(err, biddingerrors.ErrForbidden):
		return http.StatusForbidden, "admin access required"
	case errors.Is(err, biddingerrors.ErrImagesDisabled):
		return http.StatusServiceUnavailable, "image uploads are not available"
	default:
		return http.StatusInternalServerError, InternalErrorMessage
	}
}

// RespondError maps err, writes the error envelope and logs it. Internal errors are
// logged in full but only the generic message reaches the client.
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()

	if status >= http.StatusInternalServerError {
		JSONError(c, status, errors.New(message), message)
		Error(handlerName+": request failed", fields)
		return
	}
	JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	Info(handlerName+": "+message, ctx)
}

// ParseIDParam reads a positive numeric path parameter, answering 400 when it is not one
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid %s: %q", name, raw), "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
