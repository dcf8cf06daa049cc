package gormdb

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"auction-backend/internal/auctionerrors"
	"auction-backend/internal/models"
)

type userStore struct {
	db *gorm.DB
}

func (r *userStore) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userStore) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get user %d: %w", id, auctionerrors.ErrNotFound)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (r *userStore) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get user %q: %w", username, auctionerrors.ErrNotFound)
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &user, nil
}

func (r *userStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get user %q: %w", email, auctionerrors.ErrNotFound)
		}
		return nil, fmt.Errorf("get user %q: %w", email, err)
	}
	return &user, nil
}

func (r *userStore) Update(user *models.User) error {
	result := r.db.Omit("CreatedAt").Save(user)
	if result.Error != nil {
		return fmt.Errorf("update user %d: %w", user.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update user %d: %w", user.ID, auctionerrors.ErrNotFound)
	}
	return nil
}
