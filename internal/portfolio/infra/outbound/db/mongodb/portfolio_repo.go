package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/terravest/platform/internal/portfolio/domain"
	shareddb "github.com/terravest/platform/internal/shared/infra/db/mongodb"
	"github.com/terravest/platform/internal/shared/query"
)

// PortfolioRepo implements domain.PortfolioRepository on MongoDB.
type PortfolioRepo struct {
	coll *mongo.Collection
}

var _ domain.PortfolioRepository = (*PortfolioRepo)(nil)

func NewPortfolioRepo(db *mongo.Database) *PortfolioRepo {
	return &PortfolioRepo{coll: db.Collection("portfolios")}
}

func (r *PortfolioRepo) Create(ctx context.Context, p *domain.Portfolio) error {
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *PortfolioRepo) GetByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := r.coll.FindOne(ctx, bson.M{"portfolio_id": id, "is_deleted": false}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUser returns the user's portfolio regardless of deletion state, or
// nil without error when the user has none. The upsert path relies on this.
func (r *PortfolioRepo) FindByUser(ctx context.Context, userID string) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PortfolioRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Portfolio, error) {
	return r.list(ctx, bson.M{"user_id": userID, "is_deleted": false})
}

func (r *PortfolioRepo) ListActive(ctx context.Context) ([]*domain.Portfolio, error) {
	return r.list(ctx, bson.M{"is_deleted": false})
}

func (r *PortfolioRepo) list(ctx context.Context, filter bson.M) ([]*domain.Portfolio, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	portfolios := []*domain.Portfolio{}
	if err := cursor.All(ctx, &portfolios); err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (r *PortfolioRepo) Update(ctx context.Context, p *domain.Portfolio) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"portfolio_id": p.PortfolioID}, bson.M{"$set": p})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}

func (r *PortfolioRepo) SoftDelete(ctx context.Context, id string) (*domain.Portfolio, error) {
	after := options.After
	var p domain.Portfolio
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"portfolio_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Query runs the query engine; deleted portfolios are always excluded.
func (r *PortfolioRepo) Query(ctx context.Context, opts query.Options) ([]*domain.Portfolio, int64, error) {
	filter := shareddb.QueryFilter(opts.Filters)
	filter["is_deleted"] = false
	return shareddb.FindPage[*domain.Portfolio](ctx, r.coll, filter, shareddb.QuerySort(), opts.Page, opts.Limit)
}

// Search runs the search engine; deleted portfolios are always excluded.
func (r *PortfolioRepo) Search(ctx context.Context, opts query.SearchOptions) ([]*domain.Portfolio, int64, error) {
	filter := shareddb.SearchFilter(opts.Filters)
	filter["is_deleted"] = false
	sort := shareddb.SearchSort(opts.Sort, opts.Order)
	return shareddb.FindPage[*domain.Portfolio](ctx, r.coll, filter, sort, opts.Page, opts.Limit)
}
