package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/terravest/platform/internal/offering/domain"
	shareddb "github.com/terravest/platform/internal/shared/infra/db/mongodb"
	"github.com/terravest/platform/internal/shared/query"
)

// OfferingRepo implements domain.OfferingRepository on MongoDB.
type OfferingRepo struct {
	coll  *mongo.Collection
	crops *mongo.Collection
}

var _ domain.OfferingRepository = (*OfferingRepo)(nil)

func NewOfferingRepo(db *mongo.Database) *OfferingRepo {
	return &OfferingRepo{
		coll:  db.Collection("offerings"),
		crops: db.Collection("crops"),
	}
}

func (r *OfferingRepo) Create(ctx context.Context, o *domain.Offering) error {
	_, err := r.coll.InsertOne(ctx, o)
	return err
}

func (r *OfferingRepo) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	return r.findOne(ctx, bson.M{"offering_id": id, "isDeleted": false})
}

func (r *OfferingRepo) GetByListingID(ctx context.Context, listingID string) (*domain.Offering, error) {
	return r.findOne(ctx, bson.M{"listing_id": listingID, "isDeleted": false})
}

func (r *OfferingRepo) findOne(ctx context.Context, filter bson.M) (*domain.Offering, error) {
	var o domain.Offering
	err := r.coll.FindOne(ctx, filter).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferingNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfferingRepo) Update(ctx context.Context, o *domain.Offering) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"offering_id": o.OfferingID}, bson.M{"$set": o})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOfferingNotFound
	}
	return nil
}

func (r *OfferingRepo) ListActive(ctx context.Context) ([]*domain.Offering, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"isDeleted": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	offerings := []*domain.Offering{}
	if err := cursor.All(ctx, &offerings); err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *OfferingRepo) SoftDelete(ctx context.Context, id string) (*domain.Offering, error) {
	after := options.After
	var o domain.Offering
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"offering_id": id, "isDeleted": false},
		bson.M{"$set": bson.M{"isDeleted": true, "updated_at": time.Now().UTC()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferingNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfferingRepo) Query(ctx context.Context, opts query.Options) ([]*domain.Offering, int64, error) {
	filter := shareddb.QueryFilter(opts.Filters)
	return shareddb.FindPage[*domain.Offering](ctx, r.coll, filter, shareddb.QuerySort(), opts.Page, opts.Limit)
}

func (r *OfferingRepo) Search(ctx context.Context, opts query.SearchOptions) ([]*domain.Offering, int64, error) {
	filter := shareddb.SearchFilter(opts.Filters)
	sort := shareddb.SearchSort(opts.Sort, opts.Order)
	return shareddb.FindPage[*domain.Offering](ctx, r.coll, filter, sort, opts.Page, opts.Limit)
}

// Crops returns the configured row-crop choices from the singleton crops
// document.
func (r *OfferingRepo) Crops(ctx context.Context) ([]string, error) {
	var doc struct {
		Crops []string `bson:"crops"`
	}
	err := r.crops.FindOne(ctx, bson.M{}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []string{}, nil
		}
		return nil, err
	}
	return doc.Crops, nil
}
