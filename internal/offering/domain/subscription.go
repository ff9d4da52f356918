package domain

import (
	"errors"
	"time"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionActive   = errors.New("subscription already active")
	ErrEmptyUpdate          = errors.New("no update fields provided")
)

// Subscription statuses.
const (
	SubscriptionActive     = "ACTIVE"
	SubscriptionClosed     = "CLOSED"
	SubscriptionAllocated  = "ALLOCATED"
	SubscriptionInProgress = "IN_PROGRESS"
	SubscriptionInEscrow   = "IN_ESCROW"
)

// SubscriptionTerms is what the investor asked for.
type SubscriptionTerms struct {
	SharesSubscribed float64   `bson:"shares_subscribed" json:"shares_subscribed"`
	DateSubscribed   time.Time `bson:"date_subscribed" json:"date_subscribed"`
	InvestmentAmount float64   `bson:"investment_amount" json:"investment_amount"`
}

// Allocation is what the investor was granted. It starts as a mirror of the
// subscription terms and is adjusted during allocation.
type Allocation struct {
	SharesAllocated  float64   `bson:"shares_allocated" json:"shares_allocated"`
	DateAllocated    time.Time `bson:"date_allocated" json:"date_allocated"`
	InvestmentAmount float64   `bson:"investment_amount" json:"investment_amount"`
	Documents        []string  `bson:"documents" json:"documents"`
}

// Subscription is an investor's stake in an offering.
type Subscription struct {
	OfferingID     string                 `bson:"offering_id" json:"offering_id"`
	SubscriptionID string                 `bson:"subscription_id" json:"subscription_id"`
	UserID         string                 `bson:"user_id" json:"user_id"`
	DataroomID     string                 `bson:"dataroom_id,omitempty" json:"dataroom_id,omitempty"`
	Subscription   SubscriptionTerms      `bson:"subscription" json:"subscription"`
	Allocation     Allocation             `bson:"allocation" json:"allocation"`
	Workflows      map[string]interface{} `bson:"workflows" json:"workflows"`
	Status         string                 `bson:"status" json:"status"`
	CreatedAt      time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time              `bson:"updated_at" json:"updated_at"`
	UpdatedBy      string                 `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	IsDeleted      bool                   `bson:"is_deleted" json:"is_deleted"`
}
