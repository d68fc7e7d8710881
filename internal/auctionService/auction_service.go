package auction

import (
	"context"
	"fmt"
	"strings"
	"time"

	bidding "auction-marketplace/internal/biddingService"
	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/internal/cache"
	"auction-marketplace/internal/metrics"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/storage"
)

const (
	// SearchLimit caps quick search results
	SearchLimit = 10
	// RecentBidsLimit is the number of recent bids on the detail page
	RecentBidsLimit = 10
)

// Reaction toggle outcomes
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// BrowseQuery holds the browse page filters as received from the client
type BrowseQuery struct {
	Search   string
	Category string
	Status   string // all, active, upcoming, ended
	MinPrice *float64
	MaxPrice *float64
	Sort     string // end_time, created_at, current_bid
}

// AuctionService serves the public auction pages and reactions
type AuctionService struct {
	repo   repository.AuctionDB
	cache  cache.Store
	images storage.ImageStore
	now    func() time.Time
}

// NewAuctionService creates a new AuctionService; cacheStore and images may be nil
func NewAuctionService(repo repository.AuctionDB, cacheStore cache.Store, images storage.ImageStore) *AuctionService {
	return &AuctionService{
		repo:   repo,
		cache:  cacheStore,
		images: images,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to derive auction status
func (s *AuctionService) WithClock(now func() time.Time) *AuctionService {
	s.now = now
	return s
}

// Browse lists auctions matching q with reaction counts and the viewer's own reactions
func (s *AuctionService) Browse(ctx context.Context, q BrowseQuery, viewer *models.Identity) ([]models.AuctionSummary, error) {
	filter, err := s.toFilter(q)
	if err != nil {
		return nil, err
	}

	auctions, err := s.repo.Auctions().ListAuctions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to browse auctions: %w", err)
	}
	return s.summarize(ctx, auctions, viewer, filter.Now)
}

func (s *AuctionService) toFilter(q BrowseQuery) (repository.AuctionFilter, error) {
	filter := repository.AuctionFilter{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Now:      s.now(),
	}

	switch strings.ToLower(strings.TrimSpace(q.Status)) {
	case "", "all":
	case string(models.StatusActive):
		filter.Status = models.StatusActive
	case string(models.StatusUpcoming):
		filter.Status = models.StatusUpcoming
	case string(models.StatusEnded):
		filter.Status = models.StatusEnded
	default:
		return filter, fmt.Errorf("service: %w - unknown status %q", biddingerrors.ErrInvalidAuction, q.Status)
	}

	switch q.Sort {
	case "", repository.SortEndTime:
		filter.Sort = repository.SortEndTime
	case repository.SortCreatedAt, repository.SortCurrentBid:
		filter.Sort = q.Sort
	default:
		return filter, fmt.Errorf("service: %w - unknown sort %q", biddingerrors.ErrInvalidAuction, q.Sort)
	}

	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return filter, fmt.Errorf("service: %w - min_price above max_price", biddingerrors.ErrInvalidAuction)
	}
	return filter, nil
}

func (s *AuctionService) summarize(ctx context.Context, auctions []models.Auction, viewer *models.Identity, now time.Time) ([]models.AuctionSummary, error) {
	ids := make([]uint, 0, len(auctions))
	for i := range auctions {
		ids = append(ids, auctions[i].ID)
	}

	counts, err := s.repo.Likes().CountReactionsFor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("service: failed to count reactions: %w", err)
	}

	reactions := map[uint]models.Reaction{}
	if viewer != nil {
		reactions, err = s.repo.Likes().UserReactions(ctx, viewer.UserID, ids)
		if err != nil {
			return nil, fmt.Errorf("service: failed to load reactions of user %d: %w", viewer.UserID, err)
		}
	}

	summaries := make([]models.AuctionSummary, 0, len(auctions))
	for i := range auctions {
		summary := s.summary(auctions[i], now)
		summary.ReactionCounts = counts[auctions[i].ID]
		summary.UserReaction = reactions[auctions[i].ID]
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *AuctionService) summary(a models.Auction, now time.Time) models.AuctionSummary {
	return models.AuctionSummary{
		Auction:       a,
		Status:        a.Status(now),
		CurrentAmount: a.CurrentAmount(),
		TimeLeft:      int64(a.TimeLeft(now).Seconds()),
		ImageURL:      storage.PublicURL(s.images, a.Image),
	}
}

// Detail returns one auction with its leading and most recent bids
func (s *AuctionService) Detail(ctx context.Context, id uint, viewer *models.Identity) (models.AuctionDetail, error) {
	auction, err := s.repo.Auctions().GetAuction(ctx, id)
	if err != nil {
		return models.AuctionDetail{}, fmt.Errorf("service: failed to load auction %d: %w", id, err)
	}
	now := s.now()

	summaries, err := s.summarize(ctx, []models.Auction{auction}, viewer, now)
	if err != nil {
		return models.AuctionDetail{}, err
	}

	top, err := s.repo.Bids().GetTopBids(ctx, id, bidding.DefaultTopBids)
	if err != nil {
		return models.AuctionDetail{}, fmt.Errorf("service: failed to load top bids of auction %d: %w", id, err)
	}
	recent, err := s.repo.Bids().GetRecentBids(ctx, id, RecentBidsLimit)
	if err != nil {
		return models.AuctionDetail{}, fmt.Errorf("service: failed to load recent bids of auction %d: %w", id, err)
	}
	count, err := s.repo.Bids().CountBidsByAuction(ctx, id)
	if err != nil {
		return models.AuctionDetail{}, fmt.Errorf("service: failed to count bids of auction %d: %w", id, err)
	}

	admin := viewer != nil && viewer.IsAdmin
	return models.AuctionDetail{
		AuctionSummary: summaries[0],
		TopBids:        bidding.HistoryEntries(top, admin),
		RecentBids:     bidding.HistoryEntries(recent, admin),
		BidCount:       count,
		MinimumBid:     auction.CurrentAmount(),
	}, nil
}

// ToggleReaction applies a like or dislike: a new reaction is created, the same
// reaction again removes it, and the opposite reaction flips it.
func (s *AuctionService) ToggleReaction(ctx context.Context, auctionID, userID uint, reaction models.Reaction) (models.ReactionResult, error) {
	if reaction != models.ReactionLike && reaction != models.ReactionDislike {
		return models.ReactionResult{}, fmt.Errorf("service: %w - %q", biddingerrors.ErrInvalidReaction, reaction)
	}
	if userID == 0 {
		return models.ReactionResult{}, fmt.Errorf("service: %w - missing user", biddingerrors.ErrInvalidReaction)
	}

	var result models.ReactionResult
	err := s.repo.WithTx(ctx, func(tx repository.AuctionDB) error {
		if _, err := tx.Auctions().GetAuction(ctx, auctionID); err != nil {
			return fmt.Errorf("service: failed to load auction %d: %w", auctionID, err)
		}

		existing, err := tx.Likes().GetUserLike(ctx, userID, auctionID)
		if err != nil {
			return fmt.Errorf("service: failed to load reaction: %w", err)
		}

		now := s.now()
		switch {
		case existing == nil:
			like := models.NewLike(userID, auctionID, reaction, now)
			if err := tx.Likes().CreateLike(ctx, &like); err != nil {
				return fmt.Errorf("service: failed to create reaction: %w", err)
			}
			result.Action, result.UserReaction = ActionCreated, reaction
		case existing.Reaction() == reaction:
			if err := tx.Likes().DeleteLike(ctx, existing.ID); err != nil {
				return fmt.Errorf("service: failed to delete reaction: %w", err)
			}
			result.Action, result.UserReaction = ActionDeleted, models.ReactionNone
		default:
			existing.IsLike = reaction == models.ReactionLike
			existing.CreatedAt = now
			if err := tx.Likes().UpdateLike(ctx, existing); err != nil {
				return fmt.Errorf("service: failed to update reaction: %w", err)
			}
			result.Action, result.UserReaction = ActionUpdated, reaction
		}

		counts, err := tx.Likes().CountReactions(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("service: failed to count reactions: %w", err)
		}
		result.ReactionCounts = counts
		return nil
	})
	if err != nil {
		return models.ReactionResult{}, err
	}

	metrics.Reactions.WithLabelValues(result.Action, string(reaction)).Inc()
	return result, nil
}

// Categories returns the distinct, sorted categories, served from the cache when possible
func (s *AuctionService) Categories(ctx context.Context) ([]string, error) {
	categories, err := cache.Remember(ctx, s.cache, cache.CategoriesKey, cache.CategoriesTTL,
		func(ctx context.Context) ([]string, error) {
			return s.repo.Auctions().Categories(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// Search matches title or description; an empty query returns no results
func (s *AuctionService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	results := make([]models.SearchResult, 0)
	if query == "" {
		return results, nil
	}

	auctions, err := s.repo.Auctions().SearchAuctions(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search auctions: %w", err)
	}

	now := s.now()
	for i := range auctions {
		results = append(results, models.SearchResult{
			ID:         auctions[i].ID,
			Title:      auctions[i].Title,
			CurrentBid: auctions[i].CurrentAmount(),
			EndTime:    auctions[i].EndTime,
			Status:     auctions[i].Status(now),
		})
	}
	return results, nil
}

func (s *AuctionService) invalidateCategories(ctx context.Context) {
	cache.Invalidate(ctx, s.cache, cache.CategoriesKey)
}

// isStoredImage reports whether name refers to an uploaded object rather than the placeholder
func isStoredImage(name string) bool {
	return name != "" && name != models.DefaultAuctionImage
}
