package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/offering/domain"
	"github.com/terravest/platform/tests/mocks"
)

func newSubscriptionFixture(t *testing.T) (*SubscriptionService, *mocks.InMemorySubscriptionRepo, *mocks.InMemoryOfferingRepo, *mocks.FakePortfolioGateway, *domain.Offering) {
	t.Helper()
	subs := mocks.NewInMemorySubscriptionRepo()
	offerings := mocks.NewInMemoryOfferingRepo()
	portfolios := &mocks.FakePortfolioGateway{}
	events := &mocks.DummyPublisher{}
	service := NewSubscriptionService(subs, offerings, portfolios, events, zap.NewNop())

	offering := &domain.Offering{
		OfferingID: "off-1",
		ListingID:  "lst-1",
		Name:       "Maple Grove Offering",
		Details:    &domain.Details{PriceUnit: "250", TargetHold: "7"},
		Status:     domain.StatusActive,
	}
	assert.NoError(t, offerings.Create(context.Background(), offering))
	return service, subs, offerings, portfolios, offering
}

func TestCreateSubscription_MirrorsTermsIntoAllocation(t *testing.T) {
	service, subs, _, _, offering := newSubscriptionFixture(t)

	sub, err := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 10, InvestmentAmount: 2500})
	assert.NoError(t, err)
	assert.Equal(t, domain.SubscriptionInProgress, sub.Status)
	assert.Equal(t, "admin-1", sub.UpdatedBy)

	assert.Equal(t, float64(10), sub.Subscription.SharesSubscribed)
	assert.Equal(t, float64(10), sub.Allocation.SharesAllocated)
	assert.Equal(t, float64(2500), sub.Allocation.InvestmentAmount)
	assert.Equal(t, []string{}, sub.Allocation.Documents)

	assert.Contains(t, subs.Subscriptions, sub.SubscriptionID)
}

func TestCreateSubscription_RegistersPortfolioInvestment(t *testing.T) {
	service, _, _, portfolios, offering := newSubscriptionFixture(t)

	sub, err := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 10, InvestmentAmount: 2500})
	assert.NoError(t, err)

	assert.Len(t, portfolios.Entries, 1)
	entry := portfolios.Entries[0]
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, sub.OfferingID, entry.OfferingID)
	assert.Equal(t, float64(10), entry.Shares)
	assert.Equal(t, 7, entry.HoldingPeriod)
}

func TestCreateSubscription_HoldingPeriodDefaultsToOne(t *testing.T) {
	service, _, offerings, portfolios, _ := newSubscriptionFixture(t)
	_ = offerings.Create(context.Background(), &domain.Offering{
		OfferingID: "off-2",
		Details:    &domain.Details{TargetHold: "soon"},
	})

	_, err := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", "off-2",
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 1, InvestmentAmount: 250})
	assert.NoError(t, err)
	assert.Equal(t, 1, portfolios.Entries[0].HoldingPeriod)
}

func TestCreateSubscription_UnknownOffering(t *testing.T) {
	service, _, _, _, _ := newSubscriptionFixture(t)

	_, err := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", "ghost",
		CreateSubscriptionInput{UserID: "user-1"})
	assert.ErrorIs(t, err, domain.ErrOfferingNotFound)
}

func TestGetSubscriptions_FiltersByUser(t *testing.T) {
	service, _, _, _, offering := newSubscriptionFixture(t)
	_, _ = service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 1})
	_, _ = service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-2", SharesSubscribed: 2})

	all, err := service.GetSubscriptions(context.Background(), domain.SubscriptionFilter{OfferingID: offering.OfferingID})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := service.GetSubscriptions(context.Background(), domain.SubscriptionFilter{
		OfferingID: offering.OfferingID,
		UserID:     "user-2",
	})
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "user-2", mine[0].UserID)
}

func TestModifySubscription_EmptyUpdateRejected(t *testing.T) {
	service, _, _, _, offering := newSubscriptionFixture(t)
	sub, _ := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 1})

	_, err := service.ModifySubscription(context.Background(), "admin-1", sub.SubscriptionID, SubscriptionUpdate{})
	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)
}

func TestModifySubscription_ActiveIsImmutable(t *testing.T) {
	service, subs, _, _, offering := newSubscriptionFixture(t)
	sub, _ := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 1})
	subs.Subscriptions[sub.SubscriptionID].Status = domain.SubscriptionActive

	shares := float64(5)
	_, err := service.ModifySubscription(context.Background(), "admin-1", sub.SubscriptionID, SubscriptionUpdate{SharesSubscribed: &shares})
	assert.ErrorIs(t, err, domain.ErrSubscriptionActive)
}

func TestModifySubscription_UpdatesSharesAndStatus(t *testing.T) {
	service, _, _, _, offering := newSubscriptionFixture(t)
	sub, _ := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 1})

	shares := float64(5)
	status := domain.SubscriptionInEscrow
	updated, err := service.ModifySubscription(context.Background(), "admin-2", sub.SubscriptionID, SubscriptionUpdate{
		SharesSubscribed: &shares,
		Status:           &status,
	})
	assert.NoError(t, err)
	assert.Equal(t, float64(5), updated.Subscription.SharesSubscribed)
	assert.Equal(t, domain.SubscriptionInEscrow, updated.Status)
	assert.Equal(t, "admin-2", updated.UpdatedBy)
}

func TestModifyAllocation_RecomputesAmountFromPriceUnit(t *testing.T) {
	service, _, _, _, offering := newSubscriptionFixture(t)
	sub, _ := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 10, InvestmentAmount: 2500})

	shares := float64(8)
	updated, err := service.ModifyAllocation(context.Background(), "admin-1", offering.OfferingID, sub.SubscriptionID,
		AllocationUpdate{SharesAllocated: &shares})
	assert.NoError(t, err)
	assert.Equal(t, float64(8), updated.Allocation.SharesAllocated)
	assert.Equal(t, float64(2000), updated.Allocation.InvestmentAmount)
}

func TestModifyAllocation_WithoutPriceUnitStoresShareCount(t *testing.T) {
	service, _, offerings, _, _ := newSubscriptionFixture(t)
	_ = offerings.Create(context.Background(), &domain.Offering{OfferingID: "off-3"})
	sub, _ := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", "off-3",
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 1})

	shares := float64(4)
	updated, err := service.ModifyAllocation(context.Background(), "admin-1", "off-3", sub.SubscriptionID,
		AllocationUpdate{SharesAllocated: &shares})
	assert.NoError(t, err)
	assert.Equal(t, float64(4), updated.Allocation.InvestmentAmount)
}

func TestDeleteSubscription_SoftDelete(t *testing.T) {
	service, subs, _, _, offering := newSubscriptionFixture(t)
	sub, _ := service.CreateSubscription(context.Background(), "Bearer t", "admin-1", offering.OfferingID,
		CreateSubscriptionInput{UserID: "user-1", SharesSubscribed: 1})

	deleted, err := service.DeleteSubscription(context.Background(), sub.SubscriptionID)
	assert.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	_, err = subs.GetByID(context.Background(), sub.SubscriptionID)
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
}
