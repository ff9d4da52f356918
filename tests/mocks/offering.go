package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/terravest/platform/internal/offering/domain"
	"github.com/terravest/platform/internal/shared/query"
)

// InMemoryOfferingRepo simulates OfferingRepository.
type InMemoryOfferingRepo struct {
	Offerings map[string]*domain.Offering
	CropList  []string
	order     []string
	mu        sync.Mutex
}

var _ domain.OfferingRepository = (*InMemoryOfferingRepo)(nil)

func NewInMemoryOfferingRepo() *InMemoryOfferingRepo {
	return &InMemoryOfferingRepo{Offerings: make(map[string]*domain.Offering)}
}

func (r *InMemoryOfferingRepo) Create(ctx context.Context, o *domain.Offering) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Offerings[o.OfferingID] = o
	r.order = append(r.order, o.OfferingID)
	return nil
}

func (r *InMemoryOfferingRepo) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.Offerings[id]
	if !ok || o.IsDeleted {
		return nil, domain.ErrOfferingNotFound
	}
	return o, nil
}

func (r *InMemoryOfferingRepo) GetByListingID(ctx context.Context, listingID string) (*domain.Offering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		o := r.Offerings[id]
		if o != nil && !o.IsDeleted && o.ListingID == listingID {
			return o, nil
		}
	}
	return nil, domain.ErrOfferingNotFound
}

func (r *InMemoryOfferingRepo) Update(ctx context.Context, o *domain.Offering) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Offerings[o.OfferingID]; !ok {
		return domain.ErrOfferingNotFound
	}
	r.Offerings[o.OfferingID] = o
	return nil
}

func (r *InMemoryOfferingRepo) ListActive(ctx context.Context) ([]*domain.Offering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeLocked(), nil
}

func (r *InMemoryOfferingRepo) SoftDelete(ctx context.Context, id string) (*domain.Offering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.Offerings[id]
	if !ok || o.IsDeleted {
		return nil, domain.ErrOfferingNotFound
	}
	o.IsDeleted = true
	o.UpdatedAt = time.Now().UTC()
	return o, nil
}

func (r *InMemoryOfferingRepo) Query(ctx context.Context, opts query.Options) ([]*domain.Offering, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageSlice(r.activeLocked(), opts.Page, opts.Limit)
}

func (r *InMemoryOfferingRepo) Search(ctx context.Context, opts query.SearchOptions) ([]*domain.Offering, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageSlice(r.activeLocked(), opts.Page, opts.Limit)
}

func (r *InMemoryOfferingRepo) Crops(ctx context.Context) ([]string, error) {
	if r.CropList == nil {
		return []string{}, nil
	}
	return r.CropList, nil
}

func (r *InMemoryOfferingRepo) activeLocked() []*domain.Offering {
	out := []*domain.Offering{}
	for _, id := range r.order {
		if o := r.Offerings[id]; o != nil && !o.IsDeleted {
			out = append(out, o)
		}
	}
	return out
}

// InMemorySubscriptionRepo simulates SubscriptionRepository.
type InMemorySubscriptionRepo struct {
	Subscriptions map[string]*domain.Subscription
	order         []string
	mu            sync.Mutex
}

var _ domain.SubscriptionRepository = (*InMemorySubscriptionRepo)(nil)

func NewInMemorySubscriptionRepo() *InMemorySubscriptionRepo {
	return &InMemorySubscriptionRepo{Subscriptions: make(map[string]*domain.Subscription)}
}

func (r *InMemorySubscriptionRepo) Create(ctx context.Context, s *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Subscriptions[s.SubscriptionID] = s
	r.order = append(r.order, s.SubscriptionID)
	return nil
}

func (r *InMemorySubscriptionRepo) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Subscriptions[id]
	if !ok || s.IsDeleted {
		return nil, domain.ErrSubscriptionNotFound
	}
	return s, nil
}

func (r *InMemorySubscriptionRepo) FindActive(ctx context.Context, offeringID, userID string) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		s := r.Subscriptions[id]
		if s != nil && !s.IsDeleted && s.OfferingID == offeringID && s.UserID == userID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *InMemorySubscriptionRepo) List(ctx context.Context, filter domain.SubscriptionFilter) ([]*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Subscription{}
	for _, id := range r.order {
		s := r.Subscriptions[id]
		if s == nil || s.IsDeleted {
			continue
		}
		if filter.OfferingID != "" && s.OfferingID != filter.OfferingID {
			continue
		}
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *InMemorySubscriptionRepo) Update(ctx context.Context, s *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Subscriptions[s.SubscriptionID]; !ok {
		return domain.ErrSubscriptionNotFound
	}
	r.Subscriptions[s.SubscriptionID] = s
	return nil
}

func (r *InMemorySubscriptionRepo) SoftDelete(ctx context.Context, id string) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Subscriptions[id]
	if !ok || s.IsDeleted {
		return nil, domain.ErrSubscriptionNotFound
	}
	s.IsDeleted = true
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// FakePortfolioGateway records investments pushed to the portfolio service.
type FakePortfolioGateway struct {
	Entries []domain.PortfolioEntry
	mu      sync.Mutex
}

var _ domain.PortfolioGateway = (*FakePortfolioGateway)(nil)

func (g *FakePortfolioGateway) RegisterInvestment(ctx context.Context, auth string, entry domain.PortfolioEntry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Entries = append(g.Entries, entry)
	return nil
}
