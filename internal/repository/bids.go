package repository

import (
	"context"
	"errors"
	"fmt"

	"auction-marketplace/internal/biddingerrors"
	model "auction-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rankingOrder puts the highest amount first; the earliest bid wins ties
const rankingOrder = "amount DESC, created_at ASC, id ASC"

type bidRepo struct {
	db *gorm.DB
}

func (r *bidRepo) RecordBid(ctx context.Context, bid *model.Bid) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(bid).Error; err != nil {
		return fmt.Errorf("record bid for auction %d: %w", bid.AuctionID, err)
	}
	return nil
}

func (r *bidRepo) GetBid(ctx context.Context, id uint) (model.Bid, error) {
	var bid model.Bid
	if err := r.db.WithContext(ctx).First(&bid, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Bid{}, fmt.Errorf("get bid %d: %w", id, biddingerrors.ErrBidNotFound)
		}
		return model.Bid{}, fmt.Errorf("get bid %d: %w", id, err)
	}
	return bid, nil
}

func (r *bidRepo) DeleteBid(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Bid{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete bid %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete bid %d: %w", id, biddingerrors.ErrBidNotFound)
	}
	return nil
}

func (r *bidRepo) DeleteBidsByAuction(ctx context.Context, auctionID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Delete(&model.Bid{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete bids for auction %d: %w", auctionID, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *bidRepo) DeleteBidsByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Bid{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete bids for user %d: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *bidRepo) GetWinningBid(ctx context.Context, auctionID uint) (model.Bid, error) {
	var bid model.Bid
	err := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Order(rankingOrder).First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Bid{}, fmt.Errorf("get winning bid for auction %d: %w", auctionID, biddingerrors.ErrNoBids)
		}
		return model.Bid{}, fmt.Errorf("get winning bid for auction %d: %w", auctionID, err)
	}
	return bid, nil
}

func (r *bidRepo) GetTopBids(ctx context.Context, auctionID uint, limit int) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).Preload("User").
		Where("auction_id = ?", auctionID).
		Order(rankingOrder).
		Limit(limit).
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("get top bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

func (r *bidRepo) GetRecentBids(ctx context.Context, auctionID uint, limit int) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).Preload("User").
		Where("auction_id = ?", auctionID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("get recent bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

func (r *bidRepo) GetBidsByUser(ctx context.Context, userID uint) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).Preload("Auction").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("get bids for user %d: %w", userID, err)
	}
	return bids, nil
}

func (r *bidRepo) ListBids(ctx context.Context, limit int) ([]model.Bid, error) {
	q := r.db.WithContext(ctx).Preload("Auction").Preload("User").Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var bids []model.Bid
	if err := q.Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return bids, nil
}

func (r *bidRepo) CountBids(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Bid{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return n, nil
}

func (r *bidRepo) CountBidsByAuction(ctx context.Context, auctionID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Bid{}).Where("auction_id = ?", auctionID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count bids for auction %d: %w", auctionID, err)
	}
	return n, nil
}

func (r *bidRepo) AuctionIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("user_id = ?", userID).
		Distinct("auction_id").
		Order("auction_id ASC").
		Pluck("auction_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list auctions bid on by user %d: %w", userID, err)
	}
	return ids, nil
}
