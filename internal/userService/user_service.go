package users

import (
	"context"
	"fmt"

	bidding "auction-marketplace/internal/biddingService"
	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"
)

// UserService backs the admin user pages
type UserService struct {
	repo repository.AuctionDB
}

// NewUserService creates a new UserService
func NewUserService(repo repository.AuctionDB) *UserService {
	return &UserService{repo: repo}
}

// ListUsers returns every user, newest first
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.Users().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user with their reactions and bids. Every auction the user
// bid on gets its current bid recomputed in the same transaction.
func (s *UserService) DeleteUser(ctx context.Context, id uint, actor models.Identity) error {
	if id == actor.UserID {
		return fmt.Errorf("service: %w - user %d", biddingerrors.ErrSelfDelete, id)
	}

	var removedBids int64
	var touched []uint
	err := s.repo.WithTx(ctx, func(tx repository.AuctionDB) error {
		if _, err := tx.Users().GetUserByID(ctx, id); err != nil {
			return fmt.Errorf("service: failed to load user %d: %w", id, err)
		}

		var err error
		touched, err = tx.Bids().AuctionIDsByUser(ctx, id)
		if err != nil {
			return fmt.Errorf("service: failed to list auctions of user %d: %w", id, err)
		}

		if err := tx.Likes().DeleteLikesByUser(ctx, id); err != nil {
			return fmt.Errorf("service: failed to delete reactions of user %d: %w", id, err)
		}
		if removedBids, err = tx.Bids().DeleteBidsByUser(ctx, id); err != nil {
			return fmt.Errorf("service: failed to delete bids of user %d: %w", id, err)
		}
		if err := tx.Users().DeleteUser(ctx, id); err != nil {
			return fmt.Errorf("service: failed to delete user %d: %w", id, err)
		}

		for _, auctionID := range touched {
			if _, err := bidding.RecomputeCurrentBid(ctx, tx, auctionID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.Info("user deleted", map[string]any{
		"user_id":           id,
		"deleted_by":        actor.UserID,
		"bids_removed":      removedBids,
		"auctions_repriced": len(touched),
	})
	return nil
}
