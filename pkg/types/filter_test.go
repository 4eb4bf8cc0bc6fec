package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_PaginationFor(t *testing.T) {
	p := Filter{Limit: 20, Page: 2}.PaginationFor(41)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, uint64(41), p.TotalCount)

	assert.Equal(t, 0, Filter{}.PaginationFor(10).TotalPages)
}
