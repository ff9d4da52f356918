// Package mongodb translates the neutral query/search options into
// MongoDB filters and runs the paginated reads shared by every entity
// repository.
package mongodb

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/terravest/platform/internal/shared/query"
)

// QueryFilter builds the store filter for the query engine. Operator maps
// keep a single key only; additional keys in the same map are ignored.
func QueryFilter(filters map[string]interface{}) bson.M {
	out := bson.M{}
	for key, value := range filters {
		switch v := value.(type) {
		case map[string]string:
			for op, raw := range v {
				out[key] = bson.M{operatorKey(op): query.Coerce(raw)}
				break
			}
		case map[string]interface{}:
			for op, raw := range v {
				out[key] = bson.M{operatorKey(op): query.Coerce(raw)}
				break
			}
		default:
			out[key] = query.Coerce(value)
		}
	}
	return out
}

func operatorKey(op string) string {
	if strings.HasPrefix(op, "$") {
		return op
	}
	return "$" + op
}

// QuerySort is the fixed newest-first ordering of the query engine.
func QuerySort() bson.D {
	return bson.D{{Key: "created_at", Value: -1}}
}

// SearchFilter builds case-insensitive substring conditions for every
// non-empty filter value. Values are escaped so regex metacharacters in
// user input cannot change the matching semantics.
func SearchFilter(filters map[string]string) bson.M {
	out := bson.M{}
	for key, value := range filters {
		if value == "" {
			continue
		}
		out[key] = bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
	}
	return out
}

// SearchSort orders by the caller-chosen field; anything other than the
// exact string "asc" sorts descending.
func SearchSort(field, order string) bson.D {
	dir := -1
	if order == query.OrderAsc {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}}
}

// FindPage runs the bounded fetch followed by the unbounded count. The two
// reads are sequential, not a snapshot; under concurrent writes total and
// items can disagree.
func FindPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, page, limit int) ([]T, int64, error) {
	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(query.Skip(page, limit))).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, query.WrapStore("find", err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, query.WrapStore("decode", err)
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, query.WrapStore("count", err)
	}
	return items, total, nil
}
