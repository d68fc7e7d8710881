package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-marketplace/internal/biddingerrors"
	model "auction-marketplace/internal/models"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("create user %s: %w", user.Email, biddingerrors.ErrEmailTaken)
		}
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id uint) (model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("get user %d: %w", id, biddingerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("get user by email: %w", biddingerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *userRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("last_login", at.UTC())
	if res.Error != nil {
		return fmt.Errorf("update last login for user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update last login for user %d: %w", id, biddingerrors.ErrUserNotFound)
	}
	return nil
}

func (r *userRepo) DeleteUser(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete user %d: %w", id, biddingerrors.ErrUserNotFound)
	}
	return nil
}

func (r *userRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
