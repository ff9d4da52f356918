package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	shareddb "github.com/terravest/platform/internal/shared/infra/db/mongodb"
	"github.com/terravest/platform/internal/shared/query"
)

// setupMongoTestColl connects to Mongo and returns a dropped-clean
// collection so every test starts isolated.
func setupMongoTestColl(t *testing.T) (*mongo.Collection, context.Context) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI is not set, skipping Mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	coll := client.Database("platform_test").Collection("listings")
	require.NoError(t, coll.Drop(ctx))
	return coll, ctx
}

func TestQueryEngineMongo_PaginationAndFixedSort(t *testing.T) {
	coll, ctx := setupMongoTestColl(t)

	base := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]interface{}, 0, 12)
	for i := 0; i < 12; i++ {
		docs = append(docs, bson.M{
			"listing_id": fmt.Sprintf("lst-%02d", i),
			"status":     "ACTIVE",
			"created_at": base.Add(time.Duration(i) * time.Minute),
		})
	}
	_, err := coll.InsertMany(ctx, docs)
	require.NoError(t, err)

	filter := shareddb.QueryFilter(map[string]interface{}{"status": "ACTIVE"})
	items, total, err := shareddb.FindPage[bson.M](ctx, coll, filter, shareddb.QuerySort(), 2, 5)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, int64(12), total)
	assert.Equal(t, 3, query.Pages(total, 5))
	// Newest first: page 2 starts at the sixth-newest document.
	assert.Equal(t, "lst-06", items[0]["listing_id"])

	items, total, err = shareddb.FindPage[bson.M](ctx, coll,
		shareddb.QueryFilter(map[string]interface{}{"status": "GHOST"}), shareddb.QuerySort(), 1, 5)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, 0, query.Pages(total, 5))
}

func TestSearchEngineMongo_AscendingSort(t *testing.T) {
	coll, ctx := setupMongoTestColl(t)

	now := time.Now().UTC()
	_, err := coll.InsertMany(ctx, []interface{}{
		bson.M{"name": "Maple Farm", "days_on_market": 10, "created_at": now},
		bson.M{"name": "Cedar Farm", "days_on_market": 5, "created_at": now.Add(time.Minute)},
	})
	require.NoError(t, err)

	filter := shareddb.SearchFilter(map[string]string{"name": "farm"})
	items, total, err := shareddb.FindPage[bson.M](ctx, coll, filter,
		shareddb.SearchSort("days_on_market", query.OrderAsc), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Cedar Farm", items[0]["name"])
	assert.Equal(t, "Maple Farm", items[1]["name"])
}

func TestQueryEngineMongo_CoercedFilters(t *testing.T) {
	coll, ctx := setupMongoTestColl(t)

	now := time.Now().UTC()
	_, err := coll.InsertMany(ctx, []interface{}{
		bson.M{"listing_id": "lst-1", "is_active": 1, "price": 5, "created_at": now},
		bson.M{"listing_id": "lst-2", "is_active": 1, "price": 10, "created_at": now},
		bson.M{"listing_id": "lst-3", "is_active": 0, "price": 15, "created_at": now},
	})
	require.NoError(t, err)

	// Booleans coerce to 1/0 before hitting the store.
	_, total, err := shareddb.FindPage[bson.M](ctx, coll,
		shareddb.QueryFilter(map[string]interface{}{"is_active": true}), shareddb.QuerySort(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Operator maps carry numeric-coerced values.
	_, total, err = shareddb.FindPage[bson.M](ctx, coll,
		shareddb.QueryFilter(map[string]interface{}{"price": map[string]string{"gte": "10"}}),
		shareddb.QuerySort(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
