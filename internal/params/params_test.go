package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        Pagination
	}{
		{"defaults", 0, 0, Pagination{Limit: 15, Page: 1}},
		{"negative", -3, -1, Pagination{Limit: 15, Page: 1}},
		{"capped", 2, 100, Pagination{Limit: 30, Page: 2, Offset: 30}},
		{"explicit", 3, 10, Pagination{Limit: 10, Page: 3, Offset: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.page, tt.limit))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 32)
	for i := range items {
		items[i] = i
	}

	page, meta := Paginate(items, New(3, 15))
	assert.Equal(t, []int{30, 31}, page)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasPrev)
	assert.False(t, meta.HasNext)

	page, meta = Paginate(items, New(1, 15))
	assert.Len(t, page, 15)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	page, meta = Paginate(items, New(9, 15))
	assert.Empty(t, page)
	assert.Equal(t, 32, meta.Total)

	page, _ = Paginate([]int(nil), New(1, 0))
	assert.Empty(t, page)
}

func TestPaginate_HugePage(t *testing.T) {
	p := New(922337203685477580, 15)
	assert.GreaterOrEqual(t, p.Offset, 0)

	page, meta := Paginate([]int{1, 2, 3}, p)
	assert.Empty(t, page)
	assert.Equal(t, 3, meta.Total)
	assert.False(t, meta.HasNext)

	page, _ = Paginate([]int{1, 2, 3}, Pagination{Limit: 15, Page: 1, Offset: -30})
	assert.Empty(t, page)
}
