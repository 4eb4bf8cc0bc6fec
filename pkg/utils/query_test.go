package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery(t *testing.T) {
	values := url.Values{
		"search":         {"  ipad "},
		"sort[modelo]":   {"DESC"},
		"sort[serial]":   {"sideways"},
		"filter[status]": {"Disponível", "Reservado"},
		"limit":          {"20"},
		"page":           {"3"},
		"withPagination": {"true"},
	}

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "ipad", f.Search)
	assert.Equal(t, map[string]string{"modelo": "desc"}, f.Sort)
	assert.Equal(t, "Disponível,Reservado", f.Filter["status"])
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 40, f.Offset)
	assert.True(t, f.WithPagination)
}

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"limit": {"-5"}, "page": {"x"}})
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.False(t, f.WithPagination)

	f = ParseFilterFromQuery(url.Values{"limit": {"999999"}, "offset": {"7"}})
	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, 7, f.Offset)
}
