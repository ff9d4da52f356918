package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/terravest/platform/internal/portfolio/domain"
	"github.com/terravest/platform/internal/shared/query"
)

// InMemoryPortfolioRepo simulates PortfolioRepository.
type InMemoryPortfolioRepo struct {
	Portfolios map[string]*domain.Portfolio
	order      []string
	mu         sync.Mutex
}

var _ domain.PortfolioRepository = (*InMemoryPortfolioRepo)(nil)

func NewInMemoryPortfolioRepo() *InMemoryPortfolioRepo {
	return &InMemoryPortfolioRepo{Portfolios: make(map[string]*domain.Portfolio)}
}

func (r *InMemoryPortfolioRepo) Create(ctx context.Context, p *domain.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Portfolios[p.PortfolioID] = p
	r.order = append(r.order, p.PortfolioID)
	return nil
}

func (r *InMemoryPortfolioRepo) GetByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Portfolios[id]
	if !ok || p.IsDeleted {
		return nil, domain.ErrPortfolioNotFound
	}
	return p, nil
}

// FindByUser matches regardless of deletion state, like the Mongo adapter.
func (r *InMemoryPortfolioRepo) FindByUser(ctx context.Context, userID string) (*domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		p := r.Portfolios[id]
		if p != nil && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *InMemoryPortfolioRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Portfolio{}
	for _, id := range r.order {
		p := r.Portfolios[id]
		if p != nil && !p.IsDeleted && p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryPortfolioRepo) Update(ctx context.Context, p *domain.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Portfolios[p.PortfolioID]; !ok {
		return domain.ErrPortfolioNotFound
	}
	r.Portfolios[p.PortfolioID] = p
	return nil
}

func (r *InMemoryPortfolioRepo) ListActive(ctx context.Context) ([]*domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeLocked(), nil
}

func (r *InMemoryPortfolioRepo) SoftDelete(ctx context.Context, id string) (*domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Portfolios[id]
	if !ok || p.IsDeleted {
		return nil, domain.ErrPortfolioNotFound
	}
	p.IsDeleted = true
	p.UpdatedAt = time.Now().UTC()
	return p, nil
}

func (r *InMemoryPortfolioRepo) Query(ctx context.Context, opts query.Options) ([]*domain.Portfolio, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageSlice(r.activeLocked(), opts.Page, opts.Limit)
}

func (r *InMemoryPortfolioRepo) Search(ctx context.Context, opts query.SearchOptions) ([]*domain.Portfolio, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageSlice(r.activeLocked(), opts.Page, opts.Limit)
}

func (r *InMemoryPortfolioRepo) activeLocked() []*domain.Portfolio {
	out := []*domain.Portfolio{}
	for _, id := range r.order {
		if p := r.Portfolios[id]; p != nil && !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out
}
