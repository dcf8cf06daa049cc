package gormdb

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"auction-backend/internal/models"
)

type tokenStore struct {
	db *gorm.DB
}

func (r *tokenStore) Revoke(tokenID string, expiresAt time.Time) error {
	entry := models.RevokedToken{TokenID: tokenID, ExpiresAt: expiresAt}
	if err := r.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *tokenStore) IsRevoked(tokenID string) (bool, error) {
	var entry models.RevokedToken
	err := r.db.Where("token_id = ? AND expires_at > ?", tokenID, time.Now()).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check token: %w", err)
	}
	return true, nil
}
