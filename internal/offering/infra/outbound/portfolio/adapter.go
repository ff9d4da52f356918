// Package portfolio adapts the portfolio service client to the offering
// domain's gateway port.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/terravest/platform/internal/offering/domain"
	"github.com/terravest/platform/internal/shared/infra/clients"
)

// Gateway implements domain.PortfolioGateway on the portfolio client.
type Gateway struct {
	client *clients.PortfolioClient
}

var _ domain.PortfolioGateway = (*Gateway)(nil)

func NewGateway(client *clients.PortfolioClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) RegisterInvestment(ctx context.Context, auth string, entry domain.PortfolioEntry) error {
	req := clients.CreatePortfolioRequest{
		UserID: entry.UserID,
		Investments: []clients.PortfolioInvestment{{
			OfferingID:     entry.OfferingID,
			NumberOfShares: entry.Shares,
			SharePrice:     entry.SharePrice,
			InvestmentDate: time.Now().UTC(),
			HoldingPeriod:  entry.HoldingPeriod,
			HPAnnotation:   fmt.Sprintf("No more than %d years", entry.HoldingPeriod),
			Documents:      []string{},
			Status:         "ACTIVE",
		}},
	}
	return g.client.CreatePortfolio(ctx, auth, req)
}
