package helpers

import (
	"errors"
	"fmt"

	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/utils"
)

// RejectionMessage explains why a bid cannot be placed, naming the amount to beat when known
func RejectionMessage(err error) string {
	var tooLow *biddingerrors.BidTooLowError
	if errors.As(err, &tooLow) {
		return fmt.Sprintf("bid must be higher than current bid of %.0f SEK", tooLow.Minimum)
	}
	_, message := utils.MapErrorToHTTP(err)
	return message
}

// AcceptedMessage confirms a placed or valid bid
func AcceptedMessage(amount float64, placed bool) string {
	if placed {
		return fmt.Sprintf("bid of %.0f SEK placed successfully", amount)
	}
	return fmt.Sprintf("bid of %.0f SEK is valid", amount)
}
