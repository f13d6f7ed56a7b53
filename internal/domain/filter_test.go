package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJobFilters(t *testing.T) {
	t.Run("reserved listing keys are skipped", func(t *testing.T) {
		filters, err := ParseJobFilters(map[string][]string{
			"page":   {"2"},
			"limit":  {"10"},
			"search": {"engineer"},
			"sortBy": {"posted_at"},
		})
		assert.NoError(t, err)
		assert.Empty(t, filters)
	})

	t.Run("bare key is equality", func(t *testing.T) {
		filters, err := ParseJobFilters(map[string][]string{"industry": {"tech"}})
		assert.NoError(t, err)
		assert.Equal(t, []FilterExpr{{Field: "industry", Op: FilterOpEq, Value: "tech"}}, filters)
	})

	t.Run("bracketed operators parse", func(t *testing.T) {
		filters, err := ParseJobFilters(map[string][]string{
			"salary_min[gte]": {"50000"},
			"posted_at[lt]":   {"2026-01-01"},
		})
		assert.NoError(t, err)
		assert.Len(t, filters, 2)
		// Keys are processed in sorted order so output is deterministic.
		assert.Equal(t, FilterExpr{Field: "posted_at", Op: FilterOpLt, Value: "2026-01-01"}, filters[0])
		assert.Equal(t, FilterExpr{Field: "salary_min", Op: FilterOpGte, Value: "50000"}, filters[1])
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := ParseJobFilters(map[string][]string{"employer_id": {"x"}})
		assert.Error(t, err)
	})

	t.Run("operator not allowed for field is rejected", func(t *testing.T) {
		_, err := ParseJobFilters(map[string][]string{"title[gt]": {"a"}})
		assert.Error(t, err)
	})

	t.Run("unknown operator is rejected", func(t *testing.T) {
		_, err := ParseJobFilters(map[string][]string{"salary_min[regex]": {"1"}})
		assert.Error(t, err)
	})

	t.Run("typed values are checked", func(t *testing.T) {
		_, err := ParseJobFilters(map[string][]string{"salary_min[gte]": {"lots"}})
		assert.Error(t, err)

		_, err = ParseJobFilters(map[string][]string{"is_active": {"maybe"}})
		assert.Error(t, err)

		_, err = ParseJobFilters(map[string][]string{"posted_at[gte]": {"yesterday"}})
		assert.Error(t, err)
	})

	t.Run("in splits on commas and checks each part", func(t *testing.T) {
		filters, err := ParseJobFilters(map[string][]string{"industry[in]": {"tech,finance"}})
		assert.NoError(t, err)
		assert.Equal(t, FilterOpIn, filters[0].Op)

		_, err = ParseJobFilters(map[string][]string{"salary_min[in]": {"100,abc"}})
		assert.Error(t, err)
	})
}

func TestValidateJobSort(t *testing.T) {
	assert.NoError(t, ValidateJobSort(""))
	assert.NoError(t, ValidateJobSort("posted_at"))
	assert.NoError(t, ValidateJobSort("salary_max"))
	assert.Error(t, ValidateJobSort("employer_id"))
	assert.Error(t, ValidateJobSort("search_tsv"))
}

func TestBuildPagination(t *testing.T) {
	t.Run("middle page has both links", func(t *testing.T) {
		p := BuildPagination(2, 10, 30)
		assert.Equal(t, &PageRef{Page: 3, Limit: 10}, p.Next)
		assert.Equal(t, &PageRef{Page: 1, Limit: 10}, p.Prev)
	})

	t.Run("first page has no prev", func(t *testing.T) {
		p := BuildPagination(1, 10, 30)
		assert.NotNil(t, p.Next)
		assert.Nil(t, p.Prev)
	})

	t.Run("last page has no next", func(t *testing.T) {
		p := BuildPagination(3, 10, 30)
		assert.Nil(t, p.Next)
		assert.NotNil(t, p.Prev)
	})

	t.Run("exact boundary does not link past the data", func(t *testing.T) {
		p := BuildPagination(2, 10, 20)
		assert.Nil(t, p.Next)
	})

	t.Run("empty result set", func(t *testing.T) {
		p := BuildPagination(1, 10, 0)
		assert.Nil(t, p.Next)
		assert.Nil(t, p.Prev)
	})
}
