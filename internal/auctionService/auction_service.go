package auction

import (
	"fmt"
	"time"

	"auction-backend/internal/auctionerrors"
	"auction-backend/internal/models"
	"auction-backend/internal/storage"
)

// AuctionService defines the business logic for auction listings
type AuctionService struct {
	store storage.Store
	now   func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store storage.Store) *AuctionService {
	return &AuctionService{
		store: store,
		now:   time.Now,
	}
}

// ListParams are the decoded listing query parameters. Zero values mean
// "no restriction"; all filters compose conjunctively.
type ListParams struct {
	Status     string
	ActiveOnly bool
	Search     string
	Page       int
	PageSize   int
}

// List applies the filter clauses and returns one page of auctions ordered
// by descending id, plus the total match count.
func (s *AuctionService) List(params ListParams) (*storage.AuctionPage, error) {
	var query storage.AuctionQuery
	if params.Status != "" {
		query = query.WithStatus(params.Status)
	}
	if params.ActiveOnly {
		query = query.ActiveAt(s.now())
	}
	if params.Search != "" {
		query = query.Search(params.Search)
	}

	page, err := s.store.Auctions().List(query, storage.PageRequest{
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return page, nil
}

// Get returns one auction with owner, winner and latest bids attached
func (s *AuctionService) Get(id uint) (*models.Auction, error) {
	auction, err := s.store.Auctions().GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auction %d: %w", id, err)
	}
	return auction, nil
}

// CreateInput carries the writable fields for auction creation
type CreateInput struct {
	Title         string
	Description   string
	StartingPrice float64
	ReservePrice  *float64
	StartTime     *time.Time
	EndTime       time.Time
}

// Create validates the input and stores a new auction owned by ownerID.
// The current price starts equal to the starting price and the status is
// always active; neither is caller-settable.
func (s *AuctionService) Create(ownerID uint, in CreateInput) (*models.Auction, error) {
	now := s.now()

	fields := map[string]string{}
	if in.StartingPrice <= 0 {
		fields["starting_price"] = "Starting price must be greater than zero"
	}
	if !in.EndTime.After(now) {
		fields["end_time"] = "End time must be in the future"
	}
	if in.ReservePrice != nil && *in.ReservePrice < in.StartingPrice {
		fields["reserve_price"] = "Reserve price cannot be less than starting price"
	}

	startTime := now
	if in.StartTime != nil {
		startTime = *in.StartTime
	}
	if _, ok := fields["end_time"]; !ok && !in.EndTime.After(startTime) {
		fields["end_time"] = "End time must be after start time"
	}
	if len(fields) > 0 {
		return nil, &auctionerrors.ValidationError{Fields: fields}
	}

	auction := &models.Auction{
		Title:         in.Title,
		Description:   in.Description,
		StartingPrice: in.StartingPrice,
		CurrentPrice:  in.StartingPrice,
		ReservePrice:  in.ReservePrice,
		OwnerID:       ownerID,
		Status:        models.StatusActive,
		StartTime:     startTime,
		EndTime:       in.EndTime,
	}

	if err := s.store.Auctions().Create(auction); err != nil {
		return nil, fmt.Errorf("service: failed to create auction: %w", err)
	}

	// Reload so the response carries the owner and bid relations
	return s.Get(auction.ID)
}

// UpdateInput carries the updatable fields. Nil means "keep current value",
// which makes the same type serve both full and partial updates.
type UpdateInput struct {
	Title        *string
	Description  *string
	ReservePrice *float64
	EndTime      *time.Time
}

// Update applies the owner gate and then mutates the updatable fields.
// Prices and status are immutable through this path.
func (s *AuctionService) Update(callerID, id uint, in UpdateInput) (*models.Auction, error) {
	auction, err := s.store.Auctions().GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auction %d: %w", id, err)
	}

	if auction.OwnerID != callerID {
		return nil, fmt.Errorf("service: update auction %d: %w", id, auctionerrors.ErrForbidden)
	}

	fields := map[string]string{}
	if in.EndTime != nil && !in.EndTime.After(s.now()) {
		fields["end_time"] = "End time must be in the future"
	}
	if in.ReservePrice != nil && *in.ReservePrice < auction.StartingPrice {
		fields["reserve_price"] = "Reserve price cannot be less than starting price"
	}
	if in.Title != nil && *in.Title == "" {
		fields["title"] = "Title cannot be blank"
	}
	if len(fields) > 0 {
		return nil, &auctionerrors.ValidationError{Fields: fields}
	}

	if in.Title != nil {
		auction.Title = *in.Title
	}
	if in.Description != nil {
		auction.Description = *in.Description
	}
	if in.ReservePrice != nil {
		auction.ReservePrice = in.ReservePrice
	}
	if in.EndTime != nil {
		auction.EndTime = *in.EndTime
	}

	if err := s.store.Auctions().Update(auction); err != nil {
		return nil, fmt.Errorf("service: failed to update auction %d: %w", id, err)
	}
	return s.Get(id)
}

// Cancel soft-cancels an auction. Owner-only, and only while no bids have
// been placed; cancelled auctions keep their row and history.
func (s *AuctionService) Cancel(callerID, id uint) (*models.Auction, error) {
	auction, err := s.store.Auctions().GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auction %d: %w", id, err)
	}

	if auction.OwnerID != callerID {
		return nil, fmt.Errorf("service: cancel auction %d: %w", id, auctionerrors.ErrForbidden)
	}
	if auction.TotalBids() > 0 {
		return nil, fmt.Errorf("service: cancel auction %d: %w", id, auctionerrors.ErrAuctionHasBids)
	}

	auction.Status = models.StatusCancelled
	if err := s.store.Auctions().Update(auction); err != nil {
		return nil, fmt.Errorf("service: failed to cancel auction %d: %w", id, err)
	}
	return s.Get(id)
}
