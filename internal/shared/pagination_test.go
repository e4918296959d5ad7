package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name               string
		page, limit, total int
		want               Pagination
	}{
		{"exact pages", 2, 10, 30, Pagination{Page: 2, Limit: 10, Total: 30, TotalPages: 3}},
		{"partial last page", 1, 10, 31, Pagination{Page: 1, Limit: 10, Total: 31, TotalPages: 4}},
		{"defaults", 0, 0, 5, Pagination{Page: 1, Limit: 10, Total: 5, TotalPages: 1}},
		{"empty", 1, 25, 0, Pagination{Page: 1, Limit: 25}},
		{"negative total", 1, 10, -4, Pagination{Page: 1, Limit: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewPagination(tc.page, tc.limit, tc.total))
		})
	}
}
