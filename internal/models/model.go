package models

import (
	"time"
)

// Auction status values. Stored as plain strings, matching the auctions table.
const (
	StatusActive    = "active"
	StatusClosed    = "closed"
	StatusCancelled = "cancelled"
)

// User represents a registered account
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	FirstName    string    `gorm:"size:150" json:"first_name"`
	LastName     string    `gorm:"size:150" json:"last_name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Bio          string    `gorm:"type:text" json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName maps User to the users table
func (User) TableName() string { return "users" }

// FullName returns "First Last" when both parts are set, otherwise the username
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// Auction represents a sellable listing with a time-bounded bidding window
type Auction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	StartingPrice float64   `gorm:"type:decimal(10,2);not null" json:"starting_price"`
	CurrentPrice  float64   `gorm:"type:decimal(10,2);not null" json:"current_price"`
	ReservePrice  *float64  `gorm:"type:decimal(10,2)" json:"reserve_price"`
	OwnerID       uint      `gorm:"index;not null" json:"owner_id"`
	Owner         User      `gorm:"foreignKey:OwnerID" json:"owner"`
	WinnerID      *uint     `json:"winner_id"`
	Winner        *User     `gorm:"foreignKey:WinnerID" json:"winner"`
	Status        string    `gorm:"size:20;index:idx_auctions_status_end_time;not null;default:active" json:"status"`
	StartTime     time.Time `gorm:"not null" json:"start_time"`
	EndTime       time.Time `gorm:"index:idx_auctions_status_end_time;not null" json:"end_time"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Bids          []Bid     `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE" json:"bids,omitempty"`

	// BidCount is filled by the storage layer (subquery or map lookup), not
	// a column. Bids may be capped to the latest few, so len(Bids) is not
	// the total.
	BidCount int64 `gorm:"->;-:migration" json:"-"`
}

// TableName maps Auction to the auctions table
func (Auction) TableName() string { return "auctions" }

// IsActive reports whether the auction is open for bidding at the given time.
// The start bound is inclusive, the end bound strict: an auction ending
// exactly at now is no longer active.
func (a *Auction) IsActive(now time.Time) bool {
	return a.Status == StatusActive && !a.StartTime.After(now) && a.EndTime.After(now)
}

// TimeRemaining returns the duration until the auction ends. Zero or negative
// once the end time has passed.
func (a *Auction) TimeRemaining(now time.Time) time.Duration {
	return a.EndTime.Sub(now)
}

// TotalBids returns the number of bids placed against this auction
func (a *Auction) TotalBids() int64 {
	return a.BidCount
}

// Bid represents a monetary offer against an auction
type Bid struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuctionID uint      `gorm:"index;not null" json:"auction_id"`
	BidderID  uint      `gorm:"index;not null" json:"bidder_id"`
	Bidder    User      `gorm:"foreignKey:BidderID" json:"bidder"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName maps Bid to the bids table
func (Bid) TableName() string { return "bids" }

// RevokedToken is a denylisted refresh token. Rows become dead weight once
// ExpiresAt passes; the stores treat expired entries as not revoked.
type RevokedToken struct {
	TokenID   string    `gorm:"primaryKey;size:64" json:"token_id"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	RevokedAt time.Time `gorm:"autoCreateTime" json:"revoked_at"`
}

// TableName maps RevokedToken to the revoked_tokens table
func (RevokedToken) TableName() string { return "revoked_tokens" }
