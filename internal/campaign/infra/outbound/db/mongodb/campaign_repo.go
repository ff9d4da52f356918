package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/terravest/platform/internal/campaign/domain"
	shareddb "github.com/terravest/platform/internal/shared/infra/db/mongodb"
	"github.com/terravest/platform/internal/shared/query"
)

// CampaignRepo implements domain.CampaignRepository on MongoDB.
type CampaignRepo struct {
	coll *mongo.Collection
}

var _ domain.CampaignRepository = (*CampaignRepo)(nil)

func NewCampaignRepo(db *mongo.Database) *CampaignRepo {
	return &CampaignRepo{coll: db.Collection("campaigns")}
}

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	_, err := r.coll.InsertOne(ctx, c)
	return err
}

func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.coll.FindOne(ctx, bson.M{"campaign_id": id, "is_deleted": false}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"campaign_id": c.CampaignID}, bson.M{"$set": c})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepo) ListActive(ctx context.Context) ([]*domain.Campaign, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	campaigns := []*domain.Campaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CampaignRepo) SoftDelete(ctx context.Context, id string) (*domain.Campaign, error) {
	after := options.After
	var c domain.Campaign
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"campaign_id": id},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Query(ctx context.Context, opts query.Options) ([]*domain.Campaign, int64, error) {
	filter := shareddb.QueryFilter(opts.Filters)
	return shareddb.FindPage[*domain.Campaign](ctx, r.coll, filter, shareddb.QuerySort(), opts.Page, opts.Limit)
}

func (r *CampaignRepo) Search(ctx context.Context, opts query.SearchOptions) ([]*domain.Campaign, int64, error) {
	filter := shareddb.SearchFilter(opts.Filters)
	sort := shareddb.SearchSort(opts.Sort, opts.Order)
	return shareddb.FindPage[*domain.Campaign](ctx, r.coll, filter, sort, opts.Page, opts.Limit)
}
