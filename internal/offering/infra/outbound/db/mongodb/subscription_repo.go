package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/terravest/platform/internal/offering/domain"
)

// SubscriptionRepo implements domain.SubscriptionRepository on MongoDB.
type SubscriptionRepo struct {
	coll *mongo.Collection
}

var _ domain.SubscriptionRepository = (*SubscriptionRepo)(nil)

func NewSubscriptionRepo(db *mongo.Database) *SubscriptionRepo {
	return &SubscriptionRepo{coll: db.Collection("subscriptions")}
}

func (r *SubscriptionRepo) Create(ctx context.Context, s *domain.Subscription) error {
	_, err := r.coll.InsertOne(ctx, s)
	return err
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	var s domain.Subscription
	err := r.coll.FindOne(ctx, bson.M{"subscription_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindActive returns the user's live subscription for an offering, or nil
// without error when there is none.
func (r *SubscriptionRepo) FindActive(ctx context.Context, offeringID, userID string) (*domain.Subscription, error) {
	var s domain.Subscription
	err := r.coll.FindOne(ctx, bson.M{
		"offering_id": offeringID,
		"user_id":     userID,
		"is_deleted":  false,
	}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepo) List(ctx context.Context, filter domain.SubscriptionFilter) ([]*domain.Subscription, error) {
	q := bson.M{"is_deleted": false}
	if filter.OfferingID != "" {
		q["offering_id"] = filter.OfferingID
	}
	if filter.UserID != "" {
		q["user_id"] = filter.UserID
	}

	cursor, err := r.coll.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []*domain.Subscription{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriptionRepo) Update(ctx context.Context, s *domain.Subscription) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"subscription_id": s.SubscriptionID}, bson.M{"$set": s})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepo) SoftDelete(ctx context.Context, id string) (*domain.Subscription, error) {
	after := options.After
	var s domain.Subscription
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"subscription_id": id},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &s, nil
}
