package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/terravest/platform/internal/listing/domain"
	"github.com/terravest/platform/internal/shared/query"
)

// InMemoryListingRepo simulates ListingRepository. Listings are hard-deleted,
// matching the Mongo adapter.
type InMemoryListingRepo struct {
	Listings map[string]*domain.Listing
	order    []string
	mu       sync.Mutex
}

var _ domain.ListingRepository = (*InMemoryListingRepo)(nil)

func NewInMemoryListingRepo() *InMemoryListingRepo {
	return &InMemoryListingRepo{Listings: make(map[string]*domain.Listing)}
}

func (r *InMemoryListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Listings[l.ListingID] = l
	r.order = append(r.order, l.ListingID)
	return nil
}

func (r *InMemoryListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.Listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return l, nil
}

func (r *InMemoryListingRepo) FindDuplicate(ctx context.Context, name, houseNumber string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		l := r.Listings[id]
		if l != nil && l.Name == name && l.Address.HouseNumber == houseNumber {
			return l, nil
		}
	}
	return nil, nil
}

func (r *InMemoryListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Listings[l.ListingID]; !ok {
		return domain.ErrListingNotFound
	}
	r.Listings[l.ListingID] = l
	return nil
}

// Browse applies the free-text search over name and city plus the newest and
// oldest sort presets; enough to drive the catalog tests.
func (r *InMemoryListingRepo) Browse(ctx context.Context, opts domain.BrowseOptions) ([]*domain.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []*domain.Listing{}
	needle := strings.ToLower(opts.Search)
	for _, id := range r.order {
		l := r.Listings[id]
		if l == nil {
			continue
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(l.Name), needle) ||
			strings.Contains(strings.ToLower(l.Address.City), needle) {
			matched = append(matched, l)
		}
	}

	switch opts.SortBy {
	case "newest":
		sort.SliceStable(matched, func(i, j int) bool {
			bi, bj := matched[i].BuiltOn, matched[j].BuiltOn
			if bi == nil || bj == nil {
				return bj == nil && bi != nil
			}
			return bi.After(*bj)
		})
	case "oldest":
		sort.SliceStable(matched, func(i, j int) bool {
			bi, bj := matched[i].BuiltOn, matched[j].BuiltOn
			if bi == nil || bj == nil {
				return bi == nil && bj != nil
			}
			return bi.Before(*bj)
		})
	}

	return pageSlice(matched, opts.Page, opts.PageSize)
}

func (r *InMemoryListingRepo) HardDelete(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.Listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	delete(r.Listings, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return l, nil
}

func (r *InMemoryListingRepo) Query(ctx context.Context, opts query.Options) ([]*domain.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageSlice(r.allLocked(), opts.Page, opts.Limit)
}

func (r *InMemoryListingRepo) Search(ctx context.Context, opts query.SearchOptions) ([]*domain.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageSlice(r.allLocked(), opts.Page, opts.Limit)
}

func (r *InMemoryListingRepo) allLocked() []*domain.Listing {
	out := []*domain.Listing{}
	for _, id := range r.order {
		if l := r.Listings[id]; l != nil {
			out = append(out, l)
		}
	}
	return out
}
