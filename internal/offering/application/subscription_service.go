package application

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/offering/domain"
	"github.com/terravest/platform/internal/shared/infra/events"
)

// SubscriptionService implements the subscription use cases.
type SubscriptionService struct {
	subs       domain.SubscriptionRepository
	offerings  domain.OfferingRepository
	portfolios domain.PortfolioGateway
	events     events.Publisher
	log        *zap.Logger
}

func NewSubscriptionService(
	subs domain.SubscriptionRepository,
	offerings domain.OfferingRepository,
	portfolios domain.PortfolioGateway,
	pub events.Publisher,
	log *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subs:       subs,
		offerings:  offerings,
		portfolios: portfolios,
		events:     pub,
		log:        log,
	}
}

// CreateSubscriptionInput is the creation payload.
type CreateSubscriptionInput struct {
	UserID           string  `json:"user_id"`
	SharesSubscribed float64 `json:"shares_subscribed"`
	InvestmentAmount float64 `json:"investment_amount"`
}

// SubscriptionUpdate carries the optional fields of a modification request.
type SubscriptionUpdate struct {
	SharesSubscribed *float64 `json:"shares_subscribed,omitempty"`
	Status           *string  `json:"status,omitempty"`
}

func (u SubscriptionUpdate) empty() bool {
	return u.SharesSubscribed == nil && u.Status == nil
}

// AllocationUpdate adjusts the allocated shares; the allocation amount is
// recomputed from the offering's price unit.
type AllocationUpdate struct {
	SharesAllocated *float64 `json:"shares_allocated,omitempty"`
	Status          *string  `json:"status,omitempty"`
}

func (u AllocationUpdate) empty() bool {
	return u.SharesAllocated == nil && u.Status == nil
}

// CreateSubscription subscribes a user to an offering. The allocation block
// starts as a mirror of the requested terms. The new investment is pushed to
// the portfolio service best effort.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, auth, updaterID, offeringID string, in CreateSubscriptionInput) (*domain.Subscription, error) {
	offering, err := s.offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &domain.Subscription{
		OfferingID:     offeringID,
		SubscriptionID: uuid.NewString(),
		UserID:         in.UserID,
		Subscription: domain.SubscriptionTerms{
			SharesSubscribed: in.SharesSubscribed,
			InvestmentAmount: in.InvestmentAmount,
			DateSubscribed:   now,
		},
		Allocation: domain.Allocation{
			SharesAllocated:  in.SharesSubscribed,
			InvestmentAmount: in.InvestmentAmount,
			DateAllocated:    now,
			Documents:        []string{},
		},
		Workflows: map[string]interface{}{},
		Status:    domain.SubscriptionInProgress,
		CreatedAt: now,
		UpdatedAt: now,
		UpdatedBy: updaterID,
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.registerInvestment(ctx, auth, offering, sub)
	s.publish(ctx, "subscription.created", sub.SubscriptionID, sub)
	return sub, nil
}

// registerInvestment mirrors the subscription into the user's portfolio.
// Failures are logged and swallowed.
func (s *SubscriptionService) registerInvestment(ctx context.Context, auth string, offering *domain.Offering, sub *domain.Subscription) {
	if s.portfolios == nil {
		return
	}
	holdingPeriod := 1
	if offering.Details != nil {
		if n, err := strconv.Atoi(offering.Details.TargetHold); err == nil && n > 0 {
			holdingPeriod = n
		}
	}
	entry := domain.PortfolioEntry{
		UserID:        sub.UserID,
		OfferingID:    sub.OfferingID,
		Shares:        sub.Subscription.SharesSubscribed,
		SharePrice:    sub.Subscription.InvestmentAmount,
		HoldingPeriod: holdingPeriod,
	}
	if err := s.portfolios.RegisterInvestment(ctx, auth, entry); err != nil {
		s.log.Warn("could not register portfolio investment",
			zap.String("subscription_id", sub.SubscriptionID), zap.Error(err))
	}
}

// GetSubscriptions lists non-deleted subscriptions for an offering,
// optionally narrowed to one user.
func (s *SubscriptionService) GetSubscriptions(ctx context.Context, filter domain.SubscriptionFilter) ([]*domain.Subscription, error) {
	return s.subs.List(ctx, filter)
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id string) (*domain.Subscription, error) {
	return s.subs.GetByID(ctx, id)
}

// ModifySubscription updates the subscribed shares or status. Active
// subscriptions are immutable.
func (s *SubscriptionService) ModifySubscription(ctx context.Context, updaterID, id string, updates SubscriptionUpdate) (*domain.Subscription, error) {
	if updates.empty() {
		return nil, domain.ErrEmptyUpdate
	}
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == domain.SubscriptionActive {
		return nil, domain.ErrSubscriptionActive
	}

	if updates.SharesSubscribed != nil {
		sub.Subscription.SharesSubscribed = *updates.SharesSubscribed
	}
	if updates.Status != nil {
		sub.Status = *updates.Status
	}
	sub.UpdatedAt = time.Now().UTC()
	sub.UpdatedBy = updaterID

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	s.publish(ctx, "subscription.updated", sub.SubscriptionID, sub)
	return sub, nil
}

// ModifyAllocation updates the allocated shares. The allocation amount is
// shares times the offering's price unit; without a price unit the share
// count itself is stored. Active subscriptions are immutable.
func (s *SubscriptionService) ModifyAllocation(ctx context.Context, updaterID, offeringID, id string, updates AllocationUpdate) (*domain.Subscription, error) {
	if updates.empty() {
		return nil, domain.ErrEmptyUpdate
	}
	offering, err := s.offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == domain.SubscriptionActive {
		return nil, domain.ErrSubscriptionActive
	}

	if updates.SharesAllocated != nil {
		shares := *updates.SharesAllocated
		sub.Allocation.SharesAllocated = shares
		sub.Allocation.InvestmentAmount = shares
		if offering.Details != nil && offering.Details.PriceUnit != "" {
			if unit, err := strconv.ParseFloat(offering.Details.PriceUnit, 64); err == nil {
				sub.Allocation.InvestmentAmount = shares * unit
			}
		}
	}
	if updates.Status != nil {
		sub.Status = *updates.Status
	}
	sub.UpdatedAt = time.Now().UTC()
	sub.UpdatedBy = updaterID

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	s.publish(ctx, "subscription.allocated", sub.SubscriptionID, sub)
	return sub, nil
}

// DeleteSubscription soft-deletes a subscription.
func (s *SubscriptionService) DeleteSubscription(ctx context.Context, id string) (*domain.Subscription, error) {
	sub, err := s.subs.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "subscription.deleted", id, nil)
	return sub, nil
}

func (s *SubscriptionService) publish(ctx context.Context, eventType, id string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.New("subscription", eventType, id, payload)); err != nil {
		s.log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}
