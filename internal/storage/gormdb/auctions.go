package gormdb

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"auction-backend/internal/auctionerrors"
	"auction-backend/internal/models"
	"auction-backend/internal/storage"
)

type auctionStore struct {
	db *gorm.DB
}

func (r *auctionStore) Create(auction *models.Auction) error {
	if err := r.db.Omit("Owner", "Winner", "Bids").Create(auction).Error; err != nil {
		return fmt.Errorf("create auction: %w", err)
	}
	return nil
}

func (r *auctionStore) GetByID(id uint) (*models.Auction, error) {
	var auction models.Auction
	err := r.db.
		Preload("Owner").
		Preload("Winner").
		Preload("Bids", func(db *gorm.DB) *gorm.DB {
			return db.Order("bids.created_at DESC, bids.id DESC").Limit(storage.LatestBidLimit)
		}).
		Preload("Bids.Bidder").
		First(&auction, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get auction %d: %w", id, auctionerrors.ErrNotFound)
		}
		return nil, fmt.Errorf("get auction %d: %w", id, err)
	}

	if err := r.db.Model(&models.Bid{}).Where("auction_id = ?", id).Count(&auction.BidCount).Error; err != nil {
		return nil, fmt.Errorf("count bids for auction %d: %w", id, err)
	}
	return &auction, nil
}

func (r *auctionStore) List(query storage.AuctionQuery, page storage.PageRequest) (*storage.AuctionPage, error) {
	page = page.Normalize()

	var total int64
	if err := applyQuery(r.db.Model(&models.Auction{}), query).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count auctions: %w", err)
	}

	var auctions []models.Auction
	err := applyQuery(r.db.Model(&models.Auction{}), query).
		Select("auctions.*, (SELECT COUNT(*) FROM bids WHERE bids.auction_id = auctions.id) AS bid_count").
		Order("auctions.id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Preload("Owner").
		Preload("Winner").
		Find(&auctions).Error
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}

	return &storage.AuctionPage{Auctions: auctions, Total: total}, nil
}

func (r *auctionStore) Update(auction *models.Auction) error {
	result := r.db.Omit("Owner", "Winner", "Bids", "CreatedAt").Save(auction)
	if result.Error != nil {
		return fmt.Errorf("update auction %d: %w", auction.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update auction %d: %w", auction.ID, auctionerrors.ErrNotFound)
	}
	return nil
}

// applyQuery renders the accumulated filter clauses into one chained query
func applyQuery(db *gorm.DB, query storage.AuctionQuery) *gorm.DB {
	if status, ok := query.Status(); ok {
		db = db.Where("auctions.status = ?", status)
	}
	if at, ok := query.ActiveTime(); ok {
		db = db.Where("auctions.status = ? AND auctions.start_time <= ? AND auctions.end_time > ?",
			models.StatusActive, at, at)
	}
	if text := query.SearchText(); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		db = db.Where("LOWER(auctions.title) LIKE ? OR LOWER(auctions.description) LIKE ?", pattern, pattern)
	}
	return db
}
