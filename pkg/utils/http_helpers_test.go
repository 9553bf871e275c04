package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
}

func TestParseFilterFromQuery_LimitCapped(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "9999")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQuery_PageAndOffset(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "50")
	values.Set("page", "3")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 100, filter.Offset)
}

func TestParseFilterFromQuery_SearchSortFilter(t *testing.T) {
	values := url.Values{}
	values.Set("search", "осциллограф")
	values.Set("sort[name]", "asc")
	values.Set("sort[id]", "bogus")
	values.Set("filter[equipment_id]", "7")
	values.Add("filter[condition]", "New")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, "осциллограф", filter.Search)
	assert.Equal(t, map[string]string{"name": "asc"}, filter.Sort)
	assert.Equal(t, "7", filter.Filter["equipment_id"])
	assert.Equal(t, "New", filter.Filter["condition"])
}
