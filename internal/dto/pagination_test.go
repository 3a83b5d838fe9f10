package dto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/dto"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		page  int
		limit int
		pages int
	}{
		{"exact fit", 20, 1, 10, 2},
		{"partial last page", 21, 1, 10, 3},
		{"empty listing", 0, 1, 10, 0},
		{"single item", 1, 1, 10, 1},
		{"zero page defaults", 5, 0, 10, 1},
		{"zero limit defaults", 25, 2, 0, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := dto.NewPagination(tc.total, tc.page, tc.limit)
			require.Equal(t, tc.total, p.Total)
			require.Equal(t, tc.pages, p.Pages)
			require.GreaterOrEqual(t, p.Page, 1)
			require.GreaterOrEqual(t, p.Limit, 1)
		})
	}
}
