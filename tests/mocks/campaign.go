package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/terravest/platform/internal/campaign/domain"
	"github.com/terravest/platform/internal/shared/query"
)

// InMemoryCampaignRepo simulates CampaignRepository. Documents keep their
// insertion order for deterministic pagination.
type InMemoryCampaignRepo struct {
	Campaigns map[string]*domain.Campaign
	order     []string
	mu        sync.Mutex
}

var _ domain.CampaignRepository = (*InMemoryCampaignRepo)(nil)

func NewInMemoryCampaignRepo() *InMemoryCampaignRepo {
	return &InMemoryCampaignRepo{Campaigns: make(map[string]*domain.Campaign)}
}

func (r *InMemoryCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Campaigns[c.CampaignID] = c
	r.order = append(r.order, c.CampaignID)
	return nil
}

func (r *InMemoryCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Campaigns[id]
	if !ok || c.IsDeleted {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

func (r *InMemoryCampaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Campaigns[c.CampaignID]; !ok {
		return domain.ErrCampaignNotFound
	}
	r.Campaigns[c.CampaignID] = c
	return nil
}

func (r *InMemoryCampaignRepo) ListActive(ctx context.Context) ([]*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeLocked(), nil
}

func (r *InMemoryCampaignRepo) SoftDelete(ctx context.Context, id string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Campaigns[id]
	if !ok || c.IsDeleted {
		return nil, domain.ErrCampaignNotFound
	}
	c.IsDeleted = true
	c.UpdatedAt = time.Now().UTC()
	return c, nil
}

// Query ignores filters; it pages over the active campaigns in insertion
// order, which is all the service-level tests need.
func (r *InMemoryCampaignRepo) Query(ctx context.Context, opts query.Options) ([]*domain.Campaign, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageSlice(r.activeLocked(), opts.Page, opts.Limit)
}

func (r *InMemoryCampaignRepo) Search(ctx context.Context, opts query.SearchOptions) ([]*domain.Campaign, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageSlice(r.activeLocked(), opts.Page, opts.Limit)
}

func (r *InMemoryCampaignRepo) activeLocked() []*domain.Campaign {
	out := []*domain.Campaign{}
	for _, id := range r.order {
		if c := r.Campaigns[id]; c != nil && !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out
}

// pageSlice applies offset pagination over an already-filtered slice.
func pageSlice[T any](items []T, page, limit int) ([]T, int64, error) {
	total := int64(len(items))
	start := query.Skip(page, limit)
	if start >= len(items) {
		return []T{}, total, nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}
