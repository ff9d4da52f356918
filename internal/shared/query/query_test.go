package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPages(t *testing.T) {
	assert.Equal(t, 3, Pages(12, 5))
	assert.Equal(t, 1, Pages(5, 5))
	assert.Equal(t, 2, Pages(6, 5))
	assert.Equal(t, 0, Pages(0, 5))
	assert.Equal(t, 0, Pages(10, 0))
}

func TestSkip(t *testing.T) {
	assert.Equal(t, 0, Skip(1, 10))
	assert.Equal(t, 10, Skip(2, 10))
	assert.Equal(t, 45, Skip(10, 5))
}

func TestCoerce_NumericStrings(t *testing.T) {
	assert.Equal(t, float64(5), Coerce("5"))
	assert.Equal(t, float64(0), Coerce("0"))
	assert.Equal(t, 2.5, Coerce("2.5"))
	assert.Equal(t, float64(-3), Coerce("-3"))
}

func TestCoerce_Booleans(t *testing.T) {
	assert.Equal(t, float64(1), Coerce(true))
	assert.Equal(t, float64(0), Coerce(false))
}

func TestCoerce_Passthrough(t *testing.T) {
	assert.Equal(t, "ACTIVE", Coerce("ACTIVE"))
	assert.Equal(t, "12abc", Coerce("12abc"))
	assert.Equal(t, 7, Coerce(7))
}

func TestParseOptions_Defaults(t *testing.T) {
	opts := ParseOptions(url.Values{})
	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
	assert.Empty(t, opts.Filters)
}

func TestParseOptions_ReservedKeysAreNotFilters(t *testing.T) {
	opts := ParseOptions(url.Values{
		"page":   {"3"},
		"limit":  {"25"},
		"status": {"ACTIVE"},
	})
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, map[string]interface{}{"status": "ACTIVE"}, opts.Filters)
}

func TestParseOptions_BracketKeysBecomeOperatorMaps(t *testing.T) {
	opts := ParseOptions(url.Values{
		"price[gte]": {"100"},
		"acres[lt]":  {"40"},
	})
	assert.Equal(t, map[string]string{"gte": "100"}, opts.Filters["price"])
	assert.Equal(t, map[string]string{"lt": "40"}, opts.Filters["acres"])
}

func TestParseOptions_MalformedBracketsKeptVerbatim(t *testing.T) {
	opts := ParseOptions(url.Values{
		"[gte]":   {"1"},
		"price[]": {"2"},
		"price[g": {"3"},
	})
	assert.Equal(t, "1", opts.Filters["[gte]"])
	assert.Equal(t, "2", opts.Filters["price[]"])
	assert.Equal(t, "3", opts.Filters["price[g"])
}

func TestParseOptions_InvalidPaginationFallsBack(t *testing.T) {
	opts := ParseOptions(url.Values{
		"page":  {"0"},
		"limit": {"abc"},
	})
	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
}

func TestParseSearchOptions_Defaults(t *testing.T) {
	opts := ParseSearchOptions(url.Values{})
	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
	assert.Equal(t, DefaultSort, opts.Sort)
	assert.Equal(t, OrderDesc, opts.Order)
	assert.Empty(t, opts.Filters)
}

func TestParseSearchOptions_SortAndFilters(t *testing.T) {
	opts := ParseSearchOptions(url.Values{
		"sort":  {"name"},
		"order": {"asc"},
		"name":  {"farm"},
		"page":  {"2"},
	})
	assert.Equal(t, "name", opts.Sort)
	assert.Equal(t, OrderAsc, opts.Order)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, map[string]string{"name": "farm"}, opts.Filters)
}
