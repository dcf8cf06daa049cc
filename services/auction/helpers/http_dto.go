package helpers

import (
	"time"

	"auction-backend/internal/models"
)

// Request DTOs
type CreateAuctionRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	Description   string     `json:"description" binding:"required"`
	StartingPrice float64    `json:"starting_price" binding:"required,gt=0"`
	ReservePrice  *float64   `json:"reserve_price"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       time.Time  `json:"end_time" binding:"required"`
}

// UpdateAuctionRequest is the full-update (PUT) payload; every writable
// field must be present.
type UpdateAuctionRequest struct {
	Title        string    `json:"title" binding:"required,max=200"`
	Description  string    `json:"description" binding:"required"`
	ReservePrice *float64  `json:"reserve_price"`
	EndTime      time.Time `json:"end_time" binding:"required"`
}

// PatchAuctionRequest is the partial-update (PATCH) payload; absent fields
// keep their current value.
type PatchAuctionRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	ReservePrice *float64   `json:"reserve_price"`
	EndTime      *time.Time `json:"end_time"`
}

// UserResponse is the user projection shared by auction and auth responses
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// BidResponse is the bid sub-projection used in auction detail responses
type BidResponse struct {
	ID             uint         `json:"id"`
	AuctionID      uint         `json:"auction_id"`
	Bidder         UserResponse `json:"bidder"`
	BidderUsername string       `json:"bidder_username"`
	Amount         float64      `json:"amount"`
	CreatedAt      time.Time    `json:"created_at"`
}

// AuctionListResponse is the lightweight projection for list scans: no
// description and no bid details.
type AuctionListResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	StartingPrice float64   `json:"starting_price"`
	CurrentPrice  float64   `json:"current_price"`
	OwnerUsername string    `json:"owner_username"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"is_active"`
	TotalBids     int64     `json:"total_bids"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TimeRemaining float64   `json:"time_remaining"`
	CreatedAt     time.Time `json:"created_at"`
}

// AuctionDetailResponse is the full projection for a single auction view
type AuctionDetailResponse struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	StartingPrice float64       `json:"starting_price"`
	CurrentPrice  float64       `json:"current_price"`
	ReservePrice  *float64      `json:"reserve_price"`
	Owner         UserResponse  `json:"owner"`
	Winner        *UserResponse `json:"winner"`
	Status        string        `json:"status"`
	IsActive      bool          `json:"is_active"`
	TotalBids     int64         `json:"total_bids"`
	LatestBids    []BidResponse `json:"latest_bids"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	TimeRemaining float64       `json:"time_remaining"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewUserResponse projects a user, never exposing the password hash
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Phone:     u.Phone,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

// NewBidResponse projects a bid with its bidder
func NewBidResponse(b *models.Bid) BidResponse {
	return BidResponse{
		ID:             b.ID,
		AuctionID:      b.AuctionID,
		Bidder:         NewUserResponse(&b.Bidder),
		BidderUsername: b.Bidder.Username,
		Amount:         b.Amount,
		CreatedAt:      b.CreatedAt,
	}
}

// NewAuctionListResponse projects an auction for the list view. Derived
// fields (is_active, time_remaining) are evaluated at now; time_remaining
// is in seconds and goes to zero or negative once expired.
func NewAuctionListResponse(a *models.Auction, now time.Time) AuctionListResponse {
	return AuctionListResponse{
		ID:            a.ID,
		Title:         a.Title,
		StartingPrice: a.StartingPrice,
		CurrentPrice:  a.CurrentPrice,
		OwnerUsername: a.Owner.Username,
		Status:        a.Status,
		IsActive:      a.IsActive(now),
		TotalBids:     a.TotalBids(),
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		TimeRemaining: a.TimeRemaining(now).Seconds(),
		CreatedAt:     a.CreatedAt,
	}
}

// NewAuctionDetailResponse projects an auction for the detail view. The
// latest-bids list comes from the storage layer already ordered newest
// first and capped.
func NewAuctionDetailResponse(a *models.Auction, now time.Time) AuctionDetailResponse {
	bids := make([]BidResponse, 0, len(a.Bids))
	for i := range a.Bids {
		bids = append(bids, NewBidResponse(&a.Bids[i]))
	}

	var winner *UserResponse
	if a.Winner != nil {
		w := NewUserResponse(a.Winner)
		winner = &w
	}

	return AuctionDetailResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		StartingPrice: a.StartingPrice,
		CurrentPrice:  a.CurrentPrice,
		ReservePrice:  a.ReservePrice,
		Owner:         NewUserResponse(&a.Owner),
		Winner:        winner,
		Status:        a.Status,
		IsActive:      a.IsActive(now),
		TotalBids:     a.TotalBids(),
		LatestBids:    bids,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		TimeRemaining: a.TimeRemaining(now).Seconds(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
