package repository

import (
	"context"
	"errors"
	"fmt"

	model "auction-marketplace/internal/models"

	"gorm.io/gorm"
)

type likeRepo struct {
	db *gorm.DB
}

// GetUserLike returns nil without error when the user has no reaction on the auction
func (r *likeRepo) GetUserLike(ctx context.Context, userID, auctionID uint) (*model.Like, error) {
	var like model.Like
	err := r.db.WithContext(ctx).Where("user_id = ? AND auction_id = ?", userID, auctionID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reaction of user %d on auction %d: %w", userID, auctionID, err)
	}
	return &like, nil
}

func (r *likeRepo) CreateLike(ctx context.Context, like *model.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("create reaction of user %d on auction %d: %w", like.UserID, like.AuctionID, err)
	}
	return nil
}

func (r *likeRepo) UpdateLike(ctx context.Context, like *model.Like) error {
	err := r.db.WithContext(ctx).Model(like).Updates(map[string]any{
		"is_like":    like.IsLike,
		"created_at": like.CreatedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("update reaction %d: %w", like.ID, err)
	}
	return nil
}

func (r *likeRepo) DeleteLike(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Like{}, id).Error; err != nil {
		return fmt.Errorf("delete reaction %d: %w", id, err)
	}
	return nil
}

func (r *likeRepo) DeleteLikesByAuction(ctx context.Context, auctionID uint) error {
	if err := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Delete(&model.Like{}).Error; err != nil {
		return fmt.Errorf("delete reactions for auction %d: %w", auctionID, err)
	}
	return nil
}

func (r *likeRepo) DeleteLikesByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Like{}).Error; err != nil {
		return fmt.Errorf("delete reactions for user %d: %w", userID, err)
	}
	return nil
}

func (r *likeRepo) CountReactions(ctx context.Context, auctionID uint) (model.ReactionCounts, error) {
	counts, err := r.CountReactionsFor(ctx, []uint{auctionID})
	if err != nil {
		return model.ReactionCounts{}, err
	}
	return counts[auctionID], nil
}

func (r *likeRepo) CountReactionsFor(ctx context.Context, auctionIDs []uint) (map[uint]model.ReactionCounts, error) {
	counts := make(map[uint]model.ReactionCounts, len(auctionIDs))
	if len(auctionIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuctionID uint
		Likes     int64
		Dislikes  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Select("auction_id, "+
			"SUM(CASE WHEN is_like THEN 1 ELSE 0 END) AS likes, "+
			"SUM(CASE WHEN is_like THEN 0 ELSE 1 END) AS dislikes").
		Where("auction_id IN ?", auctionIDs).
		Group("auction_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}

	for _, row := range rows {
		counts[row.AuctionID] = model.ReactionCounts{Likes: row.Likes, Dislikes: row.Dislikes}
	}
	return counts, nil
}

func (r *likeRepo) UserReactions(ctx context.Context, userID uint, auctionIDs []uint) (map[uint]model.Reaction, error) {
	reactions := make(map[uint]model.Reaction, len(auctionIDs))
	if userID == 0 || len(auctionIDs) == 0 {
		return reactions, nil
	}

	var likes []model.Like
	err := r.db.WithContext(ctx).Where("user_id = ? AND auction_id IN ?", userID, auctionIDs).Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("get reactions of user %d: %w", userID, err)
	}
	for i := range likes {
		reactions[likes[i].AuctionID] = likes[i].Reaction()
	}
	return reactions, nil
}
