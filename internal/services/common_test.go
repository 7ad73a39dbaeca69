package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name    string
		limit   int
		offset  int
		want    []int
		hasMore bool
	}{
		{"first page", 2, 0, []int{1, 2}, true},
		{"last page", 2, 2, []int{3}, false},
		{"default limit", 0, 0, []int{1, 2, 3}, false},
		{"negative offset", 2, -5, []int{1, 2}, true},
		{"past end", 50, 10, []int{}, false},
		{"max offset", 50, math.MaxInt, []int{}, false},
		{"max limit", math.MaxInt, 1, []int{2, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, p := paginate(items, tt.limit, tt.offset, 50)
			assert.Equal(t, tt.want, page)
			assert.Equal(t, 3, p.Total)
			assert.Equal(t, tt.hasMore, p.HasMore)
		})
	}
}
