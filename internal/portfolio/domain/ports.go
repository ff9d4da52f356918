package domain

import (
	"context"

	"github.com/terravest/platform/internal/shared/query"
)

// PortfolioRepository is the persistence port for portfolios.
type PortfolioRepository interface {
	Create(ctx context.Context, p *Portfolio) error
	GetByID(ctx context.Context, id string) (*Portfolio, error)
	FindByUser(ctx context.Context, userID string) (*Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]*Portfolio, error)
	Update(ctx context.Context, p *Portfolio) error
	ListActive(ctx context.Context) ([]*Portfolio, error)
	SoftDelete(ctx context.Context, id string) (*Portfolio, error)
	Query(ctx context.Context, opts query.Options) ([]*Portfolio, int64, error)
	Search(ctx context.Context, opts query.SearchOptions) ([]*Portfolio, int64, error)
}
