package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-marketplace/internal/biddingerrors"
	model "auction-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Browse sort keys
const (
	SortEndTime    = "end_time"
	SortCreatedAt  = "created_at"
	SortCurrentBid = "current_bid"
)

// currentAmountExpr is the SQL form of Auction.CurrentAmount
const currentAmountExpr = "COALESCE(current_bid, starting_bid)"

// AuctionFilter narrows ListAuctions. Zero values mean "no restriction".
// Status StatusEnded also matches cancelled auctions.
type AuctionFilter struct {
	Search   string
	Category string
	Status   model.AuctionStatus
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Now      time.Time
	// Limit caps the result; 0 returns every match
	Limit int
}

type auctionRepo struct {
	db *gorm.DB
}

func (r *auctionRepo) CreateAuction(ctx context.Context, auction *model.Auction) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(auction).Error; err != nil {
		return fmt.Errorf("create auction %q: %w", auction.Title, err)
	}
	return nil
}

func (r *auctionRepo) GetAuction(ctx context.Context, id uint) (model.Auction, error) {
	var auction model.Auction
	if err := r.db.WithContext(ctx).First(&auction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Auction{}, fmt.Errorf("get auction %d: %w", id, biddingerrors.ErrAuctionNotFound)
		}
		return model.Auction{}, fmt.Errorf("get auction %d: %w", id, err)
	}
	return auction, nil
}

// UpdateAuction writes the editable columns; current_bid is only changed through
// RaiseCurrentBid and SetCurrentBid so a concurrent bid is never overwritten.
func (r *auctionRepo) UpdateAuction(ctx context.Context, auction *model.Auction) error {
	res := r.db.WithContext(ctx).Model(&model.Auction{}).Where("id = ?", auction.ID).Updates(map[string]any{
		"title":        auction.Title,
		"description":  auction.Description,
		"category":     auction.Category,
		"image":        auction.Image,
		"starting_bid": auction.StartingBid,
		"start_time":   auction.StartTime.UTC(),
		"end_time":     auction.EndTime.UTC(),
		"cancelled":    auction.Cancelled,
	})
	if res.Error != nil {
		return fmt.Errorf("update auction %d: %w", auction.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update auction %d: %w", auction.ID, biddingerrors.ErrAuctionNotFound)
	}
	return nil
}

func (r *auctionRepo) DeleteAuction(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Auction{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete auction %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete auction %d: %w", id, biddingerrors.ErrAuctionNotFound)
	}
	return nil
}

func (r *auctionRepo) ListAuctions(ctx context.Context, filter AuctionFilter) ([]model.Auction, error) {
	q := r.db.WithContext(ctx).Model(&model.Auction{})

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	now := filter.Now.UTC()
	switch filter.Status {
	case model.StatusActive:
		q = q.Where("cancelled = ? AND start_time <= ? AND end_time >= ?", false, now, now)
	case model.StatusUpcoming:
		q = q.Where("cancelled = ? AND start_time > ?", false, now)
	case model.StatusEnded:
		q = q.Where("(cancelled = ? OR end_time < ?)", true, now)
	case model.StatusCancelled:
		q = q.Where("cancelled = ?", true)
	}

	if filter.MinPrice != nil {
		q = q.Where(currentAmountExpr+" >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where(currentAmountExpr+" <= ?", *filter.MaxPrice)
	}

	switch filter.Sort {
	case SortCreatedAt:
		q = q.Order("created_at DESC")
	case SortCurrentBid:
		q = q.Order(currentAmountExpr + " DESC")
	default:
		q = q.Order("end_time ASC")
	}

	q = q.Order("id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var auctions []model.Auction
	if err := q.Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

func (r *auctionRepo) SearchAuctions(ctx context.Context, query string, limit int) ([]model.Auction, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var auctions []model.Auction
	err := r.db.WithContext(ctx).
		Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like).
		Order("end_time ASC, id ASC").
		Limit(limit).
		Find(&auctions).Error
	if err != nil {
		return nil, fmt.Errorf("search auctions %q: %w", query, err)
	}
	return auctions, nil
}

func (r *auctionRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("category <> ?", "").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *auctionRepo) RaiseCurrentBid(ctx context.Context, id uint, amount float64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("id = ? AND (current_bid IS NULL OR current_bid < ?)", id, amount).
		Update("current_bid", amount)
	if res.Error != nil {
		return false, fmt.Errorf("raise current bid on auction %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *auctionRepo) SetCurrentBid(ctx context.Context, id uint, amount *float64) error {
	res := r.db.WithContext(ctx).Model(&model.Auction{}).Where("id = ?", id).Update("current_bid", amount)
	if res.Error != nil {
		return fmt.Errorf("set current bid on auction %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("set current bid on auction %d: %w", id, biddingerrors.ErrAuctionNotFound)
	}
	return nil
}

func (r *auctionRepo) CountAuctions(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Auction{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count auctions: %w", err)
	}
	return n, nil
}

func (r *auctionRepo) CountActiveAuctions(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	now = now.UTC()
	err := r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("cancelled = ? AND start_time <= ? AND end_time >= ?", false, now, now).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count active auctions: %w", err)
	}
	return n, nil
}
