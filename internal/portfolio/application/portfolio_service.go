package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/portfolio/domain"
	"github.com/terravest/platform/internal/shared/infra/analytics"
	"github.com/terravest/platform/internal/shared/infra/events"
	"github.com/terravest/platform/internal/shared/query"
)

// PortfolioService implements the portfolio use cases.
type PortfolioService struct {
	repo      domain.PortfolioRepository
	events    events.Publisher
	analytics analytics.Recorder
	log       *zap.Logger
}

func NewPortfolioService(
	repo domain.PortfolioRepository,
	pub events.Publisher,
	rec analytics.Recorder,
	log *zap.Logger,
) *PortfolioService {
	return &PortfolioService{
		repo:      repo,
		events:    pub,
		analytics: rec,
		log:       log,
	}
}

// CreatePortfolioInput is the creation payload, schema-validated at the
// transport layer.
type CreatePortfolioInput struct {
	UserID      string              `json:"user_id"`
	Investments []domain.Investment `json:"investments"`
}

// PortfolioUpdate carries the optional fields of a modification request.
// Investments replace the stored list wholesale.
type PortfolioUpdate struct {
	UserID      *string             `json:"user_id,omitempty"`
	Investments []domain.Investment `json:"investments,omitempty"`
	IsDeleted   *bool               `json:"is_deleted,omitempty"`
}

// PortfolioPage is the query engine result.
type PortfolioPage struct {
	Portfolios []*domain.Portfolio `json:"portfolios"`
	query.PageMeta
}

// PortfolioSearchPage is the search engine result; it carries no limit field.
type PortfolioSearchPage struct {
	Portfolios []*domain.Portfolio `json:"portfolios"`
	query.SearchMeta
}

// CreatePortfolio upserts a user's portfolio: when the user already has one
// the incoming investments are appended, otherwise a new portfolio is
// created.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, in CreatePortfolioInput) (*domain.Portfolio, error) {
	for _, inv := range in.Investments {
		if err := inv.Validate(); err != nil {
			return nil, err
		}
	}

	existing, err := s.repo.FindByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Investments = append(existing.Investments, in.Investments...)
		existing.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.publish(ctx, "portfolio.updated", existing.PortfolioID, existing)
		return existing, nil
	}

	now := time.Now().UTC()
	portfolio := &domain.Portfolio{
		PortfolioID: uuid.NewString(),
		UserID:      in.UserID,
		Investments: in.Investments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if portfolio.Investments == nil {
		portfolio.Investments = []domain.Investment{}
	}
	if err := s.repo.Create(ctx, portfolio); err != nil {
		return nil, err
	}
	s.publish(ctx, "portfolio.created", portfolio.PortfolioID, portfolio)
	return portfolio, nil
}

func (s *PortfolioService) GetPortfolioByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAllPortfolios lists every non-deleted portfolio.
func (s *PortfolioService) GetAllPortfolios(ctx context.Context) ([]*domain.Portfolio, error) {
	return s.repo.ListActive(ctx)
}

// GetPortfolioByUser returns the user's portfolio.
func (s *PortfolioService) GetPortfolioByUser(ctx context.Context, userID string) (*domain.Portfolio, error) {
	portfolios, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(portfolios) == 0 {
		return nil, domain.ErrNoUserPortfolios
	}
	return portfolios[0], nil
}

// ModifyPortfolio applies a partial update over the stored document.
func (s *PortfolioService) ModifyPortfolio(ctx context.Context, id string, updates PortfolioUpdate) (*domain.Portfolio, error) {
	for _, inv := range updates.Investments {
		if err := inv.Validate(); err != nil {
			return nil, err
		}
	}

	portfolio, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updates.UserID != nil {
		portfolio.UserID = *updates.UserID
	}
	if updates.Investments != nil {
		portfolio.Investments = updates.Investments
	}
	if updates.IsDeleted != nil {
		portfolio.IsDeleted = *updates.IsDeleted
	}
	portfolio.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, portfolio); err != nil {
		return nil, err
	}
	s.publish(ctx, "portfolio.updated", portfolio.PortfolioID, portfolio)
	return portfolio, nil
}

// DeletePortfolio soft-deletes a portfolio.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, id string) (*domain.Portfolio, error) {
	portfolio, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "portfolio.deleted", id, nil)
	return portfolio, nil
}

// QueryPortfolios runs the query engine over the portfolio collection.
func (s *PortfolioService) QueryPortfolios(ctx context.Context, opts query.Options) (*PortfolioPage, error) {
	started := time.Now()
	items, total, err := s.repo.Query(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.record("query", analytics.FilterKeys(opts.Filters), total, started)

	return &PortfolioPage{
		Portfolios: items,
		PageMeta: query.PageMeta{
			Total: total,
			Page:  opts.Page,
			Limit: opts.Limit,
			Pages: query.Pages(total, opts.Limit),
		},
	}, nil
}

// SearchPortfolios runs the search engine over the portfolio collection.
func (s *PortfolioService) SearchPortfolios(ctx context.Context, opts query.SearchOptions) (*PortfolioSearchPage, error) {
	started := time.Now()
	items, total, err := s.repo.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.record("search", analytics.FilterKeys(opts.Filters), total, started)

	return &PortfolioSearchPage{
		Portfolios: items,
		SearchMeta: query.SearchMeta{
			Total: total,
			Page:  opts.Page,
			Pages: query.Pages(total, opts.Limit),
		},
	}, nil
}

func (s *PortfolioService) publish(ctx context.Context, eventType, id string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.New("portfolio", eventType, id, payload)); err != nil {
		s.log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *PortfolioService) record(op string, keys []string, total int64, started time.Time) {
	if s.analytics == nil {
		return
	}
	err := s.analytics.Record(analytics.ReadEvent{
		Entity:     "portfolio",
		Op:         op,
		FilterKeys: keys,
		Total:      total,
		Duration:   time.Since(started),
		At:         time.Now().UTC(),
	})
	if err != nil {
		s.log.Debug("analytics record failed", zap.Error(err))
	}
}
