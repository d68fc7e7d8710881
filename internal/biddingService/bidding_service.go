package bidding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/internal/metrics"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"
)

const (
	// HistoryLimit is the number of bids shown in an auction's bid history
	HistoryLimit = 20
	// DefaultTopBids is the number of leading bids shown on the detail page
	DefaultTopBids = 2
)

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo repository.AuctionDB
	now  func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB) *BiddingService {
	return &BiddingService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to decide whether an auction is ongoing
func (s *BiddingService) WithClock(now func() time.Time) *BiddingService {
	s.now = now
	return s
}

// PlaceBid validates and records a user's bid, then raises the auction's current bid.
// Both writes share one transaction; a bid that loses a race to a higher one is rolled back.
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, userID uint, amount float64) (models.BidReceipt, error) {
	// malformed input is rejected before the auction is loaded, so ErrInvalidBid
	// takes precedence over ErrAuctionNotActive when both apply
	if err := validateInput(auctionID, userID, amount); err != nil {
		rejectBid(err)
		return models.BidReceipt{}, err
	}

	var receipt models.BidReceipt
	err := s.repo.WithTx(ctx, func(tx repository.AuctionDB) error {
		now := s.now()
		auction, err := tx.Auctions().GetAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("service: failed to load auction %d: %w", auctionID, err)
		}
		if err := checkBid(ctx, tx, auction, userID, amount, now); err != nil {
			return err
		}

		bid := models.NewBid(auctionID, userID, amount, now)
		if err := tx.Bids().RecordBid(ctx, &bid); err != nil {
			return fmt.Errorf("service: failed to record bid for auction %d by user %d: %w", auctionID, userID, err)
		}

		raised, err := tx.Auctions().RaiseCurrentBid(ctx, auctionID, amount)
		if err != nil {
			return fmt.Errorf("service: failed to update current bid of auction %d: %w", auctionID, err)
		}
		if !raised {
			return fmt.Errorf("service: %w - a higher bid was accepted first", biddingerrors.ErrBidTooLow)
		}

		count, err := tx.Bids().CountBidsByAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("service: failed to count bids for auction %d: %w", auctionID, err)
		}

		receipt = models.BidReceipt{Bid: bid, NewCurrentBid: amount, BidCount: count}
		return nil
	})
	if err != nil {
		rejectBid(err)
		return models.BidReceipt{}, err
	}

	metrics.BidsPlaced.Inc()
	metrics.BidAmount.Observe(amount)
	return receipt, nil
}

// CheckBid runs the placement rules without writing anything
func (s *BiddingService) CheckBid(ctx context.Context, auctionID, userID uint, amount float64) error {
	if err := validateInput(auctionID, userID, amount); err != nil {
		return err
	}
	auction, err := s.repo.Auctions().GetAuction(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("service: failed to load auction %d: %w", auctionID, err)
	}
	return checkBid(ctx, s.repo, auction, userID, amount, s.now())
}

func validateInput(auctionID, userID uint, amount float64) error {
	if auctionID == 0 || userID == 0 {
		return fmt.Errorf("service: %w - missing auction or user", biddingerrors.ErrInvalidBid)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("service: %w - amount is not a number", biddingerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}
	return nil
}

// checkBid applies the business rules in order: ongoing, amount, highest bidder
func checkBid(ctx context.Context, db repository.AuctionDB, auction models.Auction, userID uint, amount float64, now time.Time) error {
	if !auction.IsOngoing(now) {
		return fmt.Errorf("service: %w - auction %d is %s", biddingerrors.ErrAuctionNotActive, auction.ID, auction.Status(now))
	}

	current := auction.CurrentAmount()
	if amount <= current {
		return fmt.Errorf("service: %w", &biddingerrors.BidTooLowError{Minimum: current})
	}

	winning, err := db.Bids().GetWinningBid(ctx, auction.ID)
	switch {
	case err == nil:
		if winning.UserID == userID {
			return fmt.Errorf("service: %w - auction %d", biddingerrors.ErrAlreadyHighestBidder, auction.ID)
		}
	case !errors.Is(err, biddingerrors.ErrNoBids):
		return fmt.Errorf("service: failed to check winning bid: %w", err)
	}
	return nil
}

func rejectBid(err error) {
	reason := "error"
	switch {
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		reason = "invalid"
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		reason = "not_found"
	case errors.Is(err, biddingerrors.ErrAuctionNotActive):
		reason = "not_active"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		reason = "too_low"
	case errors.Is(err, biddingerrors.ErrAlreadyHighestBidder):
		reason = "highest_bidder"
	}
	metrics.BidsRejected.WithLabelValues(reason).Inc()
}

// GetWinningBid returns the highest bid for an auction; ties go to the earliest bid
func (s *BiddingService) GetWinningBid(ctx context.Context, auctionID uint) (models.Bid, error) {
	if auctionID == 0 {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", biddingerrors.ErrInvalidBid)
	}

	winningBid, err := s.repo.Bids().GetWinningBid(ctx, auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %d: %w", auctionID, err)
	}
	return winningBid, nil
}

// GetTopBids returns the leading bids of an auction, highest first, with bidders
// labelled as in the bid history
func (s *BiddingService) GetTopBids(ctx context.Context, auctionID uint, limit int, viewer *models.Identity) ([]models.BidHistoryEntry, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = DefaultTopBids
	}
	bids, err := s.repo.Bids().GetTopBids(ctx, auctionID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get top bids for auction %d: %w", auctionID, err)
	}
	return HistoryEntries(bids, viewer != nil && viewer.IsAdmin), nil
}

// GetBidHistory returns the latest bids of an auction, newest first.
// Bidders are shown by masked email unless the viewer is an admin.
func (s *BiddingService) GetBidHistory(ctx context.Context, auctionID uint, viewer *models.Identity) ([]models.BidHistoryEntry, error) {
	if _, err := s.repo.Auctions().GetAuction(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("service: failed to load auction %d: %w", auctionID, err)
	}

	bids, err := s.repo.Bids().GetRecentBids(ctx, auctionID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bid history for auction %d: %w", auctionID, err)
	}

	admin := viewer != nil && viewer.IsAdmin
	return HistoryEntries(bids, admin), nil
}

// HistoryEntries converts bids with preloaded users into their public form
func HistoryEntries(bids []models.Bid, admin bool) []models.BidHistoryEntry {
	entries := make([]models.BidHistoryEntry, 0, len(bids))
	for i := range bids {
		entries = append(entries, models.BidHistoryEntry{
			ID:        bids[i].ID,
			Amount:    bids[i].Amount,
			CreatedAt: bids[i].CreatedAt,
			Bidder:    bidderLabel(bids[i].User, admin),
		})
	}
	return entries
}

func bidderLabel(user *models.User, admin bool) string {
	if user == nil {
		return "unknown bidder"
	}
	if admin {
		return fmt.Sprintf("%s (%s)", user.FullName(), user.Email)
	}
	return MaskEmail(user.Email)
}

// MaskEmail keeps the first character of the local part: "john@example.com" becomes "j***@example.com"
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	_, size := utf8.DecodeRuneInString(local)
	return local[:size] + "***@" + domain
}

// GetUserBidSummaries groups a user's bids per auction, most recent activity first
func (s *BiddingService) GetUserBidSummaries(ctx context.Context, userID uint) ([]models.UserBidSummary, error) {
	if userID == 0 {
		return nil, fmt.Errorf("service: %w - empty user ID", biddingerrors.ErrInvalidBid)
	}

	bids, err := s.repo.Bids().GetBidsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for user %d: %w", userID, err)
	}

	now := s.now()
	index := make(map[uint]int)
	summaries := make([]models.UserBidSummary, 0)
	for i := range bids {
		bid := bids[i]
		if bid.Auction == nil {
			continue
		}
		pos, seen := index[bid.AuctionID]
		if !seen {
			index[bid.AuctionID] = len(summaries)
			summaries = append(summaries, models.UserBidSummary{
				Auction:        *bid.Auction,
				Status:         bid.Auction.Status(now),
				CurrentHighest: bid.Auction.CurrentAmount(),
				UserHighestBid: bid.Amount,
				LastBidAt:      bid.CreatedAt,
				BidCount:       1,
			})
			continue
		}
		summary := &summaries[pos]
		summary.BidCount++
		if bid.Amount > summary.UserHighestBid {
			summary.UserHighestBid = bid.Amount
		}
		if bid.CreatedAt.After(summary.LastBidAt) {
			summary.LastBidAt = bid.CreatedAt
		}
	}

	for i := range summaries {
		winning, err := s.repo.Bids().GetWinningBid(ctx, summaries[i].Auction.ID)
		if err != nil {
			if errors.Is(err, biddingerrors.ErrNoBids) {
				continue
			}
			return nil, fmt.Errorf("service: failed to get winning bid for auction %d: %w", summaries[i].Auction.ID, err)
		}
		summaries[i].IsWinning = winning.UserID == userID
	}
	return summaries, nil
}

// ListBids returns the most recent bids across all auctions; limit <= 0 returns all
func (s *BiddingService) ListBids(ctx context.Context, limit int) ([]models.Bid, error) {
	bids, err := s.repo.Bids().ListBids(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids: %w", err)
	}
	return bids, nil
}

// DeleteBid removes a bid and repairs the auction's current bid in the same transaction.
// It returns the auction as stored after the repair.
func (s *BiddingService) DeleteBid(ctx context.Context, bidID uint) (models.Auction, error) {
	if bidID == 0 {
		return models.Auction{}, fmt.Errorf("service: %w - empty bid ID", biddingerrors.ErrInvalidBid)
	}

	var auction models.Auction
	err := s.repo.WithTx(ctx, func(tx repository.AuctionDB) error {
		bid, err := tx.Bids().GetBid(ctx, bidID)
		if err != nil {
			return fmt.Errorf("service: failed to load bid %d: %w", bidID, err)
		}
		if err := tx.Bids().DeleteBid(ctx, bidID); err != nil {
			return fmt.Errorf("service: failed to delete bid %d: %w", bidID, err)
		}
		auction, err = RecomputeCurrentBid(ctx, tx, bid.AuctionID)
		return err
	})
	if err != nil {
		return models.Auction{}, err
	}

	utils.Info("bid deleted", map[string]any{
		"bid_id":          bidID,
		"auction_id":      auction.ID,
		"new_current_bid": auction.CurrentAmount(),
	})
	return auction, nil
}

// RecomputeCurrentBid sets current_bid to the highest remaining bid, or back to the
// starting bid when none remain. Call it inside the transaction that removed bids.
func RecomputeCurrentBid(ctx context.Context, tx repository.AuctionDB, auctionID uint) (models.Auction, error) {
	auction, err := tx.Auctions().GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load auction %d: %w", auctionID, err)
	}

	next := auction.StartingBid
	winning, err := tx.Bids().GetWinningBid(ctx, auctionID)
	switch {
	case err == nil:
		next = winning.Amount
	case !errors.Is(err, biddingerrors.ErrNoBids):
		return models.Auction{}, fmt.Errorf("service: failed to get winning bid for auction %d: %w", auctionID, err)
	}

	if err := tx.Auctions().SetCurrentBid(ctx, auctionID, &next); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to repair current bid of auction %d: %w", auctionID, err)
	}
	auction.CurrentBid = &next
	return auction, nil
}
