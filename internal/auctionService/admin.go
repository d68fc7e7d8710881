package auction

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"
)

const (
	// DefaultDurationHours applies when neither end_time nor duration_hours is given
	DefaultDurationHours = 24
	// DashboardRecentAuctions and DashboardRecentBids size the dashboard lists
	DashboardRecentAuctions = 5
	DashboardRecentBids     = 10
)

// AuctionInput carries a new auction as submitted by an admin
type AuctionInput struct {
	Title         string
	Description   string
	Category      string
	StartingBid   float64
	StartTime     *time.Time
	EndTime       *time.Time
	DurationHours int
}

// AuctionUpdate carries the fields an admin wants to change; nil means unchanged
type AuctionUpdate struct {
	Title       *string
	Description *string
	Category    *string
	StartingBid *float64
	StartTime   *time.Time
	EndTime     *time.Time
	Cancelled   *bool
}

// Create validates and stores a new auction
func (s *AuctionService) Create(ctx context.Context, in AuctionInput) (models.Auction, error) {
	now := s.now()

	start := now
	if in.StartTime != nil {
		start = in.StartTime.UTC()
	}
	var end time.Time
	switch {
	case in.EndTime != nil:
		end = in.EndTime.UTC()
	case in.DurationHours < 0:
		return models.Auction{}, fmt.Errorf("service: %w - negative duration", biddingerrors.ErrInvalidAuction)
	default:
		hours := in.DurationHours
		if hours == 0 {
			hours = DefaultDurationHours
		}
		end = start.Add(time.Duration(hours) * time.Hour)
	}

	auction := models.NewAuction(models.AuctionParams{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		StartingBid: in.StartingBid,
		StartTime:   start,
		EndTime:     end,
	}, now)
	if err := validateAuction(auction); err != nil {
		return models.Auction{}, err
	}

	if err := s.repo.Auctions().CreateAuction(ctx, &auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}
	s.invalidateCategories(ctx)

	utils.Info("auction created", map[string]any{
		"auction_id":   auction.ID,
		"title":        auction.Title,
		"starting_bid": auction.StartingBid,
		"end_time":     auction.EndTime,
	})
	return auction, nil
}

func validateAuction(a models.Auction) error {
	switch {
	case a.Title == "":
		return fmt.Errorf("service: %w - title is required", biddingerrors.ErrInvalidAuction)
	case a.Description == "":
		return fmt.Errorf("service: %w - description is required", biddingerrors.ErrInvalidAuction)
	case a.Category == "":
		return fmt.Errorf("service: %w - category is required", biddingerrors.ErrInvalidAuction)
	case a.StartingBid <= 0 || math.IsNaN(a.StartingBid) || math.IsInf(a.StartingBid, 0):
		return fmt.Errorf("service: %w - starting bid must be positive", biddingerrors.ErrInvalidAuction)
	case !a.EndTime.After(a.StartTime):
		return fmt.Errorf("service: %w - end time must be after start time", biddingerrors.ErrInvalidAuction)
	}
	return nil
}

// Update applies the non-nil fields of upd. The starting bid can only change while
// the auction has no bids; the current bid is then reset to follow it.
func (s *AuctionService) Update(ctx context.Context, id uint, upd AuctionUpdate) (models.Auction, error) {
	var auction models.Auction
	err := s.repo.WithTx(ctx, func(tx repository.AuctionDB) error {
		var err error
		auction, err = tx.Auctions().GetAuction(ctx, id)
		if err != nil {
			return fmt.Errorf("service: failed to load auction %d: %w", id, err)
		}

		if upd.Title != nil {
			auction.Title = strings.TrimSpace(*upd.Title)
		}
		if upd.Description != nil {
			auction.Description = strings.TrimSpace(*upd.Description)
		}
		if upd.Category != nil {
			auction.Category = strings.TrimSpace(*upd.Category)
		}
		if upd.StartTime != nil {
			auction.StartTime = upd.StartTime.UTC()
		}
		if upd.EndTime != nil {
			auction.EndTime = upd.EndTime.UTC()
		}
		if upd.Cancelled != nil {
			auction.Cancelled = *upd.Cancelled
		}

		resetCurrent := false
		if upd.StartingBid != nil && *upd.StartingBid != auction.StartingBid {
			count, err := tx.Bids().CountBidsByAuction(ctx, id)
			if err != nil {
				return fmt.Errorf("service: failed to count bids of auction %d: %w", id, err)
			}
			if count > 0 {
				return fmt.Errorf("service: %w - auction %d has %d bids", biddingerrors.ErrStartingBidLocked, id, count)
			}
			auction.StartingBid = *upd.StartingBid
			resetCurrent = true
		}

		if err := validateAuction(auction); err != nil {
			return err
		}
		if err := tx.Auctions().UpdateAuction(ctx, &auction); err != nil {
			return fmt.Errorf("service: failed to update auction %d: %w", id, err)
		}
		if resetCurrent {
			if err := tx.Auctions().SetCurrentBid(ctx, id, nil); err != nil {
				return fmt.Errorf("service: failed to reset current bid of auction %d: %w", id, err)
			}
			auction.CurrentBid = nil
		}
		return nil
	})
	if err != nil {
		return models.Auction{}, err
	}

	s.invalidateCategories(ctx)
	utils.Info("auction updated", map[string]any{"auction_id": id})
	return auction, nil
}

// Delete removes an auction with its reactions and bids, then its stored image
func (s *AuctionService) Delete(ctx context.Context, id uint) error {
	var image string
	err := s.repo.WithTx(ctx, func(tx repository.AuctionDB) error {
		auction, err := tx.Auctions().GetAuction(ctx, id)
		if err != nil {
			return fmt.Errorf("service: failed to load auction %d: %w", id, err)
		}
		image = auction.Image

		if err := tx.Likes().DeleteLikesByAuction(ctx, id); err != nil {
			return fmt.Errorf("service: failed to delete reactions of auction %d: %w", id, err)
		}
		if _, err := tx.Bids().DeleteBidsByAuction(ctx, id); err != nil {
			return fmt.Errorf("service: failed to delete bids of auction %d: %w", id, err)
		}
		if err := tx.Auctions().DeleteAuction(ctx, id); err != nil {
			return fmt.Errorf("service: failed to delete auction %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCategories(ctx)
	s.removeImage(ctx, id, image)
	utils.Info("auction deleted", map[string]any{"auction_id": id})
	return nil
}

// removeImage is best effort; a leftover object never blocks the database change
func (s *AuctionService) removeImage(ctx context.Context, auctionID uint, image string) {
	if s.images == nil || !isStoredImage(image) {
		return
	}
	if err := s.images.DeleteImage(ctx, image); err != nil {
		utils.Warn("failed to delete auction image", map[string]any{
			"auction_id": auctionID,
			"object":     image,
			"error":      err.Error(),
		})
	}
}

// UploadImage stores a new image for the auction and replaces the previous one
func (s *AuctionService) UploadImage(ctx context.Context, id uint, fileName string, file io.Reader, size int64) (models.AuctionSummary, error) {
	if s.images == nil {
		return models.AuctionSummary{}, fmt.Errorf("service: %w", biddingerrors.ErrImagesDisabled)
	}

	auction, err := s.repo.Auctions().GetAuction(ctx, id)
	if err != nil {
		return models.AuctionSummary{}, fmt.Errorf("service: failed to load auction %d: %w", id, err)
	}

	objectName, err := s.images.UploadImage(ctx, id, fileName, file, size)
	if err != nil {
		return models.AuctionSummary{}, fmt.Errorf("service: failed to upload image for auction %d: %w", id, err)
	}

	previous := auction.Image
	auction.Image = objectName
	if err := s.repo.Auctions().UpdateAuction(ctx, &auction); err != nil {
		s.removeImage(ctx, id, objectName)
		return models.AuctionSummary{}, fmt.Errorf("service: failed to attach image to auction %d: %w", id, err)
	}
	s.removeImage(ctx, id, previous)

	utils.Info("auction image uploaded", map[string]any{"auction_id": id, "object": objectName})
	return s.summary(auction, s.now()), nil
}

// ListAuctions returns every auction, newest first, for the admin table
func (s *AuctionService) ListAuctions(ctx context.Context) ([]models.AuctionSummary, error) {
	now := s.now()
	auctions, err := s.repo.Auctions().ListAuctions(ctx, repository.AuctionFilter{Sort: repository.SortCreatedAt, Now: now})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return s.summarize(ctx, auctions, nil, now)
}

// Dashboard collects the admin totals and the most recent activity
func (s *AuctionService) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	now := s.now()
	var stats models.DashboardStats
	var err error

	if stats.TotalAuctions, err = s.repo.Auctions().CountAuctions(ctx); err != nil {
		return models.DashboardStats{}, fmt.Errorf("service: dashboard: %w", err)
	}
	if stats.ActiveAuctions, err = s.repo.Auctions().CountActiveAuctions(ctx, now); err != nil {
		return models.DashboardStats{}, fmt.Errorf("service: dashboard: %w", err)
	}
	if stats.TotalBids, err = s.repo.Bids().CountBids(ctx); err != nil {
		return models.DashboardStats{}, fmt.Errorf("service: dashboard: %w", err)
	}
	if stats.TotalUsers, err = s.repo.Users().CountUsers(ctx); err != nil {
		return models.DashboardStats{}, fmt.Errorf("service: dashboard: %w", err)
	}

	stats.RecentAuctions, err = s.repo.Auctions().ListAuctions(ctx, repository.AuctionFilter{
		Sort:  repository.SortCreatedAt,
		Now:   now,
		Limit: DashboardRecentAuctions,
	})
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("service: dashboard: %w", err)
	}

	if stats.RecentBids, err = s.repo.Bids().ListBids(ctx, DashboardRecentBids); err != nil {
		return models.DashboardStats{}, fmt.Errorf("service: dashboard: %w", err)
	}
	return stats, nil
}
