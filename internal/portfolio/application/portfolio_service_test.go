package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/portfolio/domain"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/tests/mocks"
)

func newPortfolioFixture() (*PortfolioService, *mocks.InMemoryPortfolioRepo, *mocks.DummyPublisher) {
	repo := mocks.NewInMemoryPortfolioRepo()
	events := &mocks.DummyPublisher{}
	service := NewPortfolioService(repo, events, nil, zap.NewNop())
	return service, repo, events
}

func TestCreatePortfolio_NewUser(t *testing.T) {
	service, repo, events := newPortfolioFixture()

	portfolio, err := service.CreatePortfolio(context.Background(), CreatePortfolioInput{
		UserID:      "user-1",
		Investments: []domain.Investment{{OfferingID: "off-1", NumberOfShares: 10}},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, portfolio.PortfolioID)
	assert.Len(t, portfolio.Investments, 1)
	assert.Contains(t, repo.Portfolios, portfolio.PortfolioID)
	assert.Equal(t, "portfolio.created", events.Events[0].Type)
}

func TestCreatePortfolio_NilInvestmentsBecomeEmptySlice(t *testing.T) {
	service, _, _ := newPortfolioFixture()

	portfolio, err := service.CreatePortfolio(context.Background(), CreatePortfolioInput{UserID: "user-1"})
	assert.NoError(t, err)
	assert.NotNil(t, portfolio.Investments)
	assert.Empty(t, portfolio.Investments)
}

func TestCreatePortfolio_ExistingUserAppendsInvestments(t *testing.T) {
	service, repo, events := newPortfolioFixture()
	first, _ := service.CreatePortfolio(context.Background(), CreatePortfolioInput{
		UserID:      "user-1",
		Investments: []domain.Investment{{OfferingID: "off-1"}},
	})

	second, err := service.CreatePortfolio(context.Background(), CreatePortfolioInput{
		UserID:      "user-1",
		Investments: []domain.Investment{{OfferingID: "off-2"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, first.PortfolioID, second.PortfolioID)
	assert.Len(t, second.Investments, 2)
	assert.Len(t, repo.Portfolios, 1)
	assert.Equal(t, "portfolio.updated", events.Events[len(events.Events)-1].Type)
}

func TestCreatePortfolio_RejectsInvalidInvestment(t *testing.T) {
	service, repo, _ := newPortfolioFixture()

	_, err := service.CreatePortfolio(context.Background(), CreatePortfolioInput{
		UserID:      "user-1",
		Investments: []domain.Investment{{NumberOfShares: 1}},
	})
	assert.Error(t, err)
	assert.Empty(t, repo.Portfolios)

	_, err = service.CreatePortfolio(context.Background(), CreatePortfolioInput{
		UserID:      "user-1",
		Investments: []domain.Investment{{OfferingID: "off-1", Status: "PAUSED"}},
	})
	assert.Error(t, err)
}

func TestGetPortfolioByUser(t *testing.T) {
	service, _, _ := newPortfolioFixture()
	created, _ := service.CreatePortfolio(context.Background(), CreatePortfolioInput{UserID: "user-1"})

	portfolio, err := service.GetPortfolioByUser(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, created.PortfolioID, portfolio.PortfolioID)

	_, err = service.GetPortfolioByUser(context.Background(), "stranger")
	assert.ErrorIs(t, err, domain.ErrNoUserPortfolios)
}

func TestModifyPortfolio_ReplacesInvestmentsWholesale(t *testing.T) {
	service, _, _ := newPortfolioFixture()
	portfolio, _ := service.CreatePortfolio(context.Background(), CreatePortfolioInput{
		UserID:      "user-1",
		Investments: []domain.Investment{{OfferingID: "off-1"}, {OfferingID: "off-2"}},
	})

	updated, err := service.ModifyPortfolio(context.Background(), portfolio.PortfolioID, PortfolioUpdate{
		Investments: []domain.Investment{{OfferingID: "off-3"}},
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Investments, 1)
	assert.Equal(t, "off-3", updated.Investments[0].OfferingID)
}

func TestModifyPortfolio_NotFound(t *testing.T) {
	service, _, _ := newPortfolioFixture()
	_, err := service.ModifyPortfolio(context.Background(), "missing", PortfolioUpdate{})
	assert.ErrorIs(t, err, domain.ErrPortfolioNotFound)
}

func TestDeletePortfolio_SoftDelete(t *testing.T) {
	service, repo, events := newPortfolioFixture()
	portfolio, _ := service.CreatePortfolio(context.Background(), CreatePortfolioInput{UserID: "user-1"})

	deleted, err := service.DeletePortfolio(context.Background(), portfolio.PortfolioID)
	assert.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	_, err = repo.GetByID(context.Background(), portfolio.PortfolioID)
	assert.ErrorIs(t, err, domain.ErrPortfolioNotFound)
	assert.Equal(t, "portfolio.deleted", events.Events[len(events.Events)-1].Type)
}

func TestQueryPortfolios_PaginationMeta(t *testing.T) {
	service, _, _ := newPortfolioFixture()
	for i := 0; i < 12; i++ {
		_, _ = service.CreatePortfolio(context.Background(), CreatePortfolioInput{
			UserID: string(rune('a' + i)),
		})
	}

	page, err := service.QueryPortfolios(context.Background(), query.Options{Page: 2, Limit: 5})
	assert.NoError(t, err)
	assert.Len(t, page.Portfolios, 5)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.Pages)
}

func TestSearchPortfolios_MetaOmitsLimit(t *testing.T) {
	service, _, _ := newPortfolioFixture()
	_, _ = service.CreatePortfolio(context.Background(), CreatePortfolioInput{UserID: "user-1"})

	page, err := service.SearchPortfolios(context.Background(), query.SearchOptions{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Pages)
}
