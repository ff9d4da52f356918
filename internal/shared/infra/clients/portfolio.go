package clients

import (
	"context"
	"net/http"
	"time"
)

// PortfolioClient creates portfolio entries from the subscription flow.
type PortfolioClient struct {
	baseClient
}

func NewPortfolioClient(base string) *PortfolioClient {
	return &PortfolioClient{newBaseClient(base)}
}

// PortfolioInvestment is one investment line pushed to the portfolio service.
type PortfolioInvestment struct {
	OfferingID     string    `json:"offering_id"`
	NumberOfShares float64   `json:"number_of_shares"`
	SharePrice     float64   `json:"share_price"`
	InvestmentDate time.Time `json:"investment_date"`
	HoldingPeriod  int       `json:"holding_period"`
	HPAnnotation   string    `json:"hp_annotation"`
	Documents      []string  `json:"documents"`
	Status         string    `json:"status"`
}

// CreatePortfolioRequest upserts investments into a user's portfolio.
type CreatePortfolioRequest struct {
	UserID      string                `json:"user_id"`
	Investments []PortfolioInvestment `json:"investments"`
}

func (c *PortfolioClient) CreatePortfolio(ctx context.Context, auth string, req CreatePortfolioRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/portfolios", auth, req, nil)
}
