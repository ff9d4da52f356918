package mongodb

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/terravest/platform/internal/listing/domain"
	shareddb "github.com/terravest/platform/internal/shared/infra/db/mongodb"
	"github.com/terravest/platform/internal/shared/query"
)

// ListingRepo implements domain.ListingRepository on MongoDB.
type ListingRepo struct {
	coll *mongo.Collection
}

var _ domain.ListingRepository = (*ListingRepo)(nil)

func NewListingRepo(db *mongo.Database) *ListingRepo {
	return &ListingRepo{coll: db.Collection("listings")}
}

func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	_, err := r.coll.InsertOne(ctx, l)
	return err
}

func (r *ListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	err := r.coll.FindOne(ctx, bson.M{"listing_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindDuplicate matches on name plus house number; a nil listing with nil
// error means no duplicate.
func (r *ListingRepo) FindDuplicate(ctx context.Context, name, houseNumber string) (*domain.Listing, error) {
	var l domain.Listing
	err := r.coll.FindOne(ctx, bson.M{
		"name":                 name,
		"address.house_number": houseNumber,
	}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"listing_id": l.ListingID}, bson.M{"$set": l})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// browseSorts maps the catalog sort presets onto Mongo sort documents.
var browseSorts = map[string]bson.D{
	"newest":          {{Key: "built_on", Value: -1}},
	"oldest":          {{Key: "built_on", Value: 1}},
	"priceHighToLow":  {{Key: "property_details.financial.price.price", Value: -1}},
	"priceLowToHigh":  {{Key: "property_details.financial.price.price", Value: 1}},
}

// Browse serves the catalog view: preset sorting plus a free-text search
// across name, address fields and the description.
func (r *ListingRepo) Browse(ctx context.Context, opts domain.BrowseOptions) ([]*domain.Listing, int64, error) {
	sort, ok := browseSorts[opts.SortBy]
	if !ok {
		sort = browseSorts["newest"]
	}

	filter := bson.M{}
	if opts.Search != "" {
		pattern := ".*" + regexp.QuoteMeta(opts.Search) + ".*"
		re := bson.M{"$regex": pattern, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"address.city": re},
			bson.M{"address.street": re},
			bson.M{"address.state": re},
			bson.M{"address.zip": re},
			bson.M{"address.house_number": re},
			bson.M{"property_description": re},
			bson.M{"$expr": bson.M{"$regexMatch": bson.M{
				"input":   bson.M{"$concat": bson.A{"$address.house_number", " ", "$name"}},
				"regex":   pattern,
				"options": "i",
			}}},
		}
	}

	return shareddb.FindPage[*domain.Listing](ctx, r.coll, filter, sort, opts.Page, opts.PageSize)
}

// HardDelete removes the listing document and returns it.
func (r *ListingRepo) HardDelete(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	err := r.coll.FindOneAndDelete(ctx, bson.M{"listing_id": id},
		options.FindOneAndDelete()).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepo) Query(ctx context.Context, opts query.Options) ([]*domain.Listing, int64, error) {
	filter := shareddb.QueryFilter(opts.Filters)
	return shareddb.FindPage[*domain.Listing](ctx, r.coll, filter, shareddb.QuerySort(), opts.Page, opts.Limit)
}

func (r *ListingRepo) Search(ctx context.Context, opts query.SearchOptions) ([]*domain.Listing, int64, error) {
	filter := shareddb.SearchFilter(opts.Filters)
	sort := shareddb.SearchSort(opts.Sort, opts.Order)
	return shareddb.FindPage[*domain.Listing](ctx, r.coll, filter, sort, opts.Page, opts.Limit)
}
