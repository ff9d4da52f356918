package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestQueryFilter_ScalarsAreCoerced(t *testing.T) {
	filter := QueryFilter(map[string]interface{}{
		"status":       "ACTIVE",
		"total_shares": "100",
		"is_featured":  true,
	})
	assert.Equal(t, "ACTIVE", filter["status"])
	assert.Equal(t, float64(100), filter["total_shares"])
	assert.Equal(t, float64(1), filter["is_featured"])
}

func TestQueryFilter_OperatorMaps(t *testing.T) {
	filter := QueryFilter(map[string]interface{}{
		"price": map[string]string{"gte": "250"},
		"acres": map[string]interface{}{"$lt": "40"},
	})
	assert.Equal(t, bson.M{"$gte": float64(250)}, filter["price"])
	assert.Equal(t, bson.M{"$lt": float64(40)}, filter["acres"])
}

func TestQuerySort_FixedNewestFirst(t *testing.T) {
	sort := QuerySort()
	assert.Len(t, sort, 1)
	assert.Equal(t, "created_at", sort[0].Key)
	assert.Equal(t, -1, sort[0].Value)
}

func TestSearchFilter_BuildsCaseInsensitiveRegex(t *testing.T) {
	filter := SearchFilter(map[string]string{"name": "farm"})
	assert.Equal(t, bson.M{"$regex": "farm", "$options": "i"}, filter["name"])
}

func TestSearchFilter_SkipsEmptyValues(t *testing.T) {
	filter := SearchFilter(map[string]string{"name": "", "city": "Ames"})
	assert.NotContains(t, filter, "name")
	assert.Contains(t, filter, "city")
}

func TestSearchFilter_EscapesRegexMetacharacters(t *testing.T) {
	filter := SearchFilter(map[string]string{"name": "a.c*"})
	cond := filter["name"].(bson.M)
	assert.Equal(t, `a\.c\*`, cond["$regex"])
}

func TestSearchSort_AscOnlyOnExactMatch(t *testing.T) {
	asc := SearchSort("name", "asc")
	assert.Equal(t, 1, asc[0].Value)

	for _, order := range []string{"desc", "ASC", "Asc", "", "ascending"} {
		sort := SearchSort("name", order)
		assert.Equal(t, -1, sort[0].Value, "order %q should sort descending", order)
	}
}
