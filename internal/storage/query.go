package storage

import (
	"strings"
	"time"

	"auction-backend/internal/models"
)

// AuctionQuery accumulates typed filter clauses for the auction listing.
// Each clause is optional; absent means no restriction. Clauses compose
// conjunctively. The zero value matches every auction.
type AuctionQuery struct {
	status    string
	hasStatus bool
	activeAt  time.Time
	hasActive bool
	search    string
}

// WithStatus keeps only auctions whose status equals s exactly. Unknown
// values are not rejected; they simply match nothing.
func (q AuctionQuery) WithStatus(s string) AuctionQuery {
	q.status = s
	q.hasStatus = true
	return q
}

// ActiveAt keeps only auctions open for bidding at t: status active,
// start_time <= t and end_time > t (strict upper bound).
func (q AuctionQuery) ActiveAt(t time.Time) AuctionQuery {
	q.activeAt = t
	q.hasActive = true
	return q
}

// Search keeps only auctions whose title or description contains text,
// case-insensitive.
func (q AuctionQuery) Search(text string) AuctionQuery {
	q.search = text
	return q
}

// Status returns the status clause, if set
func (q AuctionQuery) Status() (string, bool) {
	return q.status, q.hasStatus
}

// ActiveTime returns the active-at clause, if set
func (q AuctionQuery) ActiveTime() (time.Time, bool) {
	return q.activeAt, q.hasActive
}

// SearchText returns the search clause, empty when unset
func (q AuctionQuery) SearchText() string {
	return q.search
}

// Matches evaluates all clauses against a single auction. Used by the
// in-memory store; the SQL store renders the same clauses into one query.
func (q AuctionQuery) Matches(a *models.Auction) bool {
	if q.hasStatus && a.Status != q.status {
		return false
	}
	if q.hasActive {
		if a.Status != models.StatusActive || a.StartTime.After(q.activeAt) || !a.EndTime.After(q.activeAt) {
			return false
		}
	}
	if q.search != "" {
		needle := strings.ToLower(q.search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Description), needle) {
			return false
		}
	}
	return true
}

// Pagination defaults. PageSize falls back to DefaultPageSize and is capped
// at MaxPageSize.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects one page of an ordered listing
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize clamps the request into valid bounds
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the number of records to skip
func (p PageRequest) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size
func (p PageRequest) Limit() int {
	return p.Normalize().PageSize
}
