package gormdb

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auction-backend/internal/models"
	"auction-backend/internal/storage"
)

// GormStore is the MySQL-backed implementation of storage.Store
type GormStore struct {
	db *gorm.DB
}

// Open connects to MySQL with the given DSN and migrates the schema
func Open(dsn string) (*GormStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gormdb: failed to connect: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Auction{},
		&models.Bid{},
		&models.RevokedToken{},
	); err != nil {
		return nil, fmt.Errorf("gormdb: failed to migrate: %w", err)
	}

	return &GormStore{db: db}, nil
}

// NewWithDB wraps an already-open gorm connection. Intended for tests.
func NewWithDB(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Auctions() storage.AuctionStore { return &auctionStore{db: s.db} }
func (s *GormStore) Users() storage.UserStore       { return &userStore{db: s.db} }
func (s *GormStore) Tokens() storage.TokenStore     { return &tokenStore{db: s.db} }
