package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-backend/internal/auctionerrors"
	"auction-backend/internal/models"
	"auction-backend/internal/storage"
)

// MemoryStore is a concurrency-safe in-memory implementation of storage.Store,
// used by tests and by storage.type=memory deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[uint]models.User
	auctions map[uint]models.Auction
	bids     map[uint][]models.Bid // key: auctionID -> bids in placement order
	revoked  map[string]time.Time  // key: refresh token id -> expiry

	nextUserID    uint
	nextAuctionID uint
	nextBidID     uint
}

// NewStore creates a new in-memory store instance
func NewStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uint]models.User),
		auctions: make(map[uint]models.Auction),
		bids:     make(map[uint][]models.Bid),
		revoked:  make(map[string]time.Time),
	}
}

func (s *MemoryStore) Auctions() storage.AuctionStore { return &auctionStore{s} }
func (s *MemoryStore) Users() storage.UserStore       { return &userStore{s} }
func (s *MemoryStore) Tokens() storage.TokenStore     { return &tokenStore{s} }

// AddBid records a bid against an auction and bumps its current price when
// the bid is higher. Bid placement is out of scope for the API; this exists
// so tests and seed data can build auctions with bid history.
func (s *MemoryStore) AddBid(bid models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	auction, ok := s.auctions[bid.AuctionID]
	if !ok {
		return fmt.Errorf("add bid for auction %d: %w", bid.AuctionID, auctionerrors.ErrNotFound)
	}

	s.nextBidID++
	bid.ID = s.nextBidID
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = time.Now().UTC()
	}
	s.bids[bid.AuctionID] = append(s.bids[bid.AuctionID], bid)

	if bid.Amount > auction.CurrentPrice {
		auction.CurrentPrice = bid.Amount
		s.auctions[auction.ID] = auction
	}
	return nil
}

type auctionStore struct{ s *MemoryStore }

func (r *auctionStore) Create(auction *models.Auction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextAuctionID++
	auction.ID = r.s.nextAuctionID
	now := time.Now().UTC()
	auction.CreatedAt = now
	auction.UpdatedAt = now
	r.s.auctions[auction.ID] = *auction
	return nil
}

func (r *auctionStore) GetByID(id uint) (*models.Auction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	auction, ok := r.s.auctions[id]
	if !ok {
		return nil, fmt.Errorf("get auction %d: %w", id, auctionerrors.ErrNotFound)
	}

	r.s.attachRelations(&auction)
	return &auction, nil
}

func (r *auctionStore) List(query storage.AuctionQuery, page storage.PageRequest) (*storage.AuctionPage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]models.Auction, 0, len(r.s.auctions))
	for _, auction := range r.s.auctions {
		if query.Matches(&auction) {
			matched = append(matched, auction)
		}
	}

	// Descending id keeps pagination stable regardless of filters
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	page = page.Normalize()
	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit()
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]models.Auction, end-start)
	copy(out, matched[start:end])
	for i := range out {
		out[i].Owner = r.s.users[out[i].OwnerID]
		out[i].BidCount = int64(len(r.s.bids[out[i].ID]))
	}

	return &storage.AuctionPage{Auctions: out, Total: total}, nil
}

func (r *auctionStore) Update(auction *models.Auction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.auctions[auction.ID]; !ok {
		return fmt.Errorf("update auction %d: %w", auction.ID, auctionerrors.ErrNotFound)
	}
	auction.UpdatedAt = time.Now().UTC()

	stored := *auction
	stored.Bids = nil
	r.s.auctions[auction.ID] = stored
	return nil
}

// attachRelations fills owner, winner and the capped latest-bids list.
// Caller must hold at least the read lock.
func (s *MemoryStore) attachRelations(auction *models.Auction) {
	auction.Owner = s.users[auction.OwnerID]
	if auction.WinnerID != nil {
		if winner, ok := s.users[*auction.WinnerID]; ok {
			auction.Winner = &winner
		}
	}

	all := s.bids[auction.ID]
	auction.BidCount = int64(len(all))

	latest := make([]models.Bid, len(all))
	copy(latest, all)
	// Newest first; bid ids are monotonic
	sort.Slice(latest, func(i, j int) bool { return latest[i].ID > latest[j].ID })
	if len(latest) > storage.LatestBidLimit {
		latest = latest[:storage.LatestBidLimit]
	}
	for i := range latest {
		latest[i].Bidder = s.users[latest[i].BidderID]
	}
	auction.Bids = latest
}

type userStore struct{ s *MemoryStore }

func (r *userStore) Create(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userStore) GetByID(id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %d: %w", id, auctionerrors.ErrNotFound)
	}
	return &user, nil
}

func (r *userStore) GetByUsername(username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user %q: %w", username, auctionerrors.ErrNotFound)
}

func (r *userStore) GetByEmail(email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user %q: %w", email, auctionerrors.ErrNotFound)
}

func (r *userStore) Update(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return fmt.Errorf("update user %d: %w", user.ID, auctionerrors.ErrNotFound)
	}
	user.UpdatedAt = time.Now().UTC()
	r.s.users[user.ID] = *user
	return nil
}

type tokenStore struct{ s *MemoryStore }

func (r *tokenStore) Revoke(tokenID string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.revoked[tokenID] = expiresAt
	return nil
}

func (r *tokenStore) IsRevoked(tokenID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expiresAt, ok := r.s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if expiresAt.Before(time.Now()) {
		// Expired tokens fail validation anyway; drop the entry
		delete(r.s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
