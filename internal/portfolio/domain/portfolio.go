package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrNoUserPortfolios  = errors.New("no portfolios for user")
)

// Investment statuses.
const (
	InvestmentActive = "ACTIVE"
	InvestmentClosed = "CLOSED"
)

// Investment is a single position held in a portfolio.
type Investment struct {
	OfferingID     string    `bson:"offering_id" json:"offering_id"`
	NumberOfShares float64   `bson:"number_of_shares" json:"number_of_shares"`
	SharePrice     float64   `bson:"share_price" json:"share_price"`
	InvestmentDate time.Time `bson:"investment_date" json:"investment_date"`
	HoldingPeriod  int       `bson:"holding_period" json:"holding_period"`
	HPAnnotation   string    `bson:"hp_annotation" json:"hp_annotation"`
	Documents      []string  `bson:"documents" json:"documents"`
	Status         string    `bson:"status" json:"status"`
}

// Validate rejects investments without an offering reference or with an
// out-of-range status.
func (i Investment) Validate() error {
	if i.OfferingID == "" {
		return fmt.Errorf("investment missing offering_id")
	}
	if i.Status != "" && i.Status != InvestmentActive && i.Status != InvestmentClosed {
		return fmt.Errorf("invalid investment status %q", i.Status)
	}
	return nil
}

// Portfolio aggregates a user's investments. Each user has at most one
// portfolio; creation against an existing user appends investments.
type Portfolio struct {
	PortfolioID string       `bson:"portfolio_id" json:"portfolio_id"`
	UserID      string       `bson:"user_id" json:"user_id"`
	Investments []Investment `bson:"investments" json:"investments"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updated_at"`
	IsDeleted   bool         `bson:"is_deleted" json:"is_deleted"`
}
