package storage

import (
	"time"

	"auction-backend/internal/models"
)

//go:generate mockgen -source=interface.go -destination=mock_storage.go -package=storage

// LatestBidLimit caps the number of recent bids loaded for an auction detail view
const LatestBidLimit = 5

// AuctionPage is one slice of a filtered auction listing plus the total
// count across all pages.
type AuctionPage struct {
	Auctions []models.Auction
	Total    int64
}

// AuctionStore defines auction persistence for the auction system
type AuctionStore interface {
	Create(auction *models.Auction) error
	// GetByID loads the auction with its owner, winner and the most recent
	// bids (newest first, capped at LatestBidLimit, each with its bidder).
	GetByID(id uint) (*models.Auction, error)
	// List applies the query's filter clauses, orders by descending id and
	// returns the requested page together with the total match count.
	List(query AuctionQuery, page PageRequest) (*AuctionPage, error)
	Update(auction *models.Auction) error
}

// UserStore defines user account persistence
type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// TokenStore records revoked refresh tokens until they expire on their own
type TokenStore interface {
	Revoke(tokenID string, expiresAt time.Time) error
	IsRevoked(tokenID string) (bool, error)
}

// Store aggregates the per-entity stores behind one swappable backend
type Store interface {
	Auctions() AuctionStore
	Users() UserStore
	Tokens() TokenStore
}
