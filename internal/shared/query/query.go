// Package query implements the generic query/search engine shared by all
// entity services: filter coercion, sort selection and pagination math.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "created_at"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Options drives the query engine. Every key in Filters maps 1:1 to an
// entity attribute path; values are either scalars or single-key operator
// maps such as {"gte": "5"}.
type Options struct {
	Page    int
	Limit   int
	Filters map[string]interface{}
}

// SearchOptions drives the search engine. Filter values are matched as
// case-insensitive substrings; empty values produce no clause.
type SearchOptions struct {
	Page    int
	Limit   int
	Sort    string
	Order   string
	Filters map[string]string
}

// PageMeta is the pagination metadata returned by the query engine.
type PageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// SearchMeta is the pagination metadata returned by the search engine.
// It intentionally omits the limit field.
type SearchMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// Pages computes ceil(total/limit); 0 when there are no matches.
func Pages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Skip computes the number of documents to skip for the requested page.
func Skip(page, limit int) int {
	return (page - 1) * limit
}

// Coerce converts a raw filter value the way the engine matches it against
// stored documents: numeric strings (including "0") become numbers, booleans
// become 1/0, anything that fails numeric conversion is kept verbatim.
func Coerce(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
		return v
	case bool:
		if v {
			return float64(1)
		}
		return float64(0)
	default:
		return value
	}
}

// reserved pagination keys, never treated as filters.
var queryReserved = map[string]bool{"page": true, "limit": true}
var searchReserved = map[string]bool{"page": true, "limit": true, "sort": true, "order": true}

// ParseOptions builds query engine Options from raw query-string values.
// Bracket-style keys ("price[gte]=5") become single-key operator maps.
// Non-numeric or sub-1 page/limit values fall back to the defaults.
func ParseOptions(values url.Values) Options {
	opts := Options{
		Page:    intValue(values.Get("page"), DefaultPage),
		Limit:   intValue(values.Get("limit"), DefaultLimit),
		Filters: map[string]interface{}{},
	}
	for key := range values {
		if queryReserved[key] {
			continue
		}
		value := values.Get(key)
		if field, op, ok := splitBracketKey(key); ok {
			opts.Filters[field] = map[string]string{op: value}
			continue
		}
		opts.Filters[key] = value
	}
	return opts
}

// ParseSearchOptions builds search engine SearchOptions from raw
// query-string values.
func ParseSearchOptions(values url.Values) SearchOptions {
	opts := SearchOptions{
		Page:    intValue(values.Get("page"), DefaultPage),
		Limit:   intValue(values.Get("limit"), DefaultLimit),
		Sort:    values.Get("sort"),
		Order:   values.Get("order"),
		Filters: map[string]string{},
	}
	if opts.Sort == "" {
		opts.Sort = DefaultSort
	}
	if opts.Order == "" {
		opts.Order = OrderDesc
	}
	for key := range values {
		if searchReserved[key] {
			continue
		}
		opts.Filters[key] = values.Get(key)
	}
	return opts
}

func intValue(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// splitBracketKey decomposes "price[gte]" into ("price", "gte", true).
func splitBracketKey(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	field = key[:open]
	op = key[open+1 : len(key)-1]
	if op == "" {
		return "", "", false
	}
	return field, op, true
}
