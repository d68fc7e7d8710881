package biddingerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoBids          = errors.New("no bids found for auction")
	ErrEmailTaken      = errors.New("email already registered")
)

// business logic errors
var (
	ErrInvalidBid           = errors.New("invalid bid")
	ErrBidTooLow            = errors.New("bid amount too low")
	ErrAuctionNotActive     = errors.New("auction is not active for bidding")
	ErrAlreadyHighestBidder = errors.New("user is already the highest bidder")
	ErrInvalidAuction       = errors.New("invalid auction")
	ErrStartingBidLocked    = errors.New("starting bid cannot change once bids exist")
	ErrInvalidReaction      = errors.New("invalid reaction")
	ErrInvalidRegistration  = errors.New("invalid registration")
	ErrSelfDelete           = errors.New("cannot delete your own account")
)

// authentication and authorization errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("admin access required")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// infrastructure errors
var (
	ErrImagesDisabled = errors.New("image storage is not configured")
)

// image upload errors
var (
	ErrInvalidImage = errors.New("unsupported image file")
)

// BidTooLowError reports the amount a rejected bid had to exceed. It matches ErrBidTooLow.
type BidTooLowError struct {
	Minimum float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("%s: must be higher than %.2f", ErrBidTooLow, e.Minimum)
}

func (e *BidTooLowError) Unwrap() error {
	return ErrBidTooLow
}
