package postgres

import (
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestJobFilterCondition(t *testing.T) {
	t.Run("equality on text binds the raw value", func(t *testing.T) {
		cond, args, err := jobFilterCondition(domain.FilterExpr{
			Field: "industry", Op: domain.FilterOpEq, Value: "tech",
		}, 1)
		assert.NoError(t, err)
		assert.Equal(t, "industry = $1", cond)
		assert.Equal(t, []interface{}{"tech"}, args)
	})

	t.Run("range on numbers converts the value", func(t *testing.T) {
		cond, args, err := jobFilterCondition(domain.FilterExpr{
			Field: "salary_min", Op: domain.FilterOpGte, Value: "50000",
		}, 3)
		assert.NoError(t, err)
		assert.Equal(t, "salary_min >= $3", cond)
		assert.Equal(t, []interface{}{50000.0}, args)
	})

	t.Run("date values accept both RFC3339 and plain dates", func(t *testing.T) {
		_, args, err := jobFilterCondition(domain.FilterExpr{
			Field: "posted_at", Op: domain.FilterOpLt, Value: "2026-03-01",
		}, 1)
		assert.NoError(t, err)
		want, _ := time.Parse("2006-01-02", "2026-03-01")
		assert.Equal(t, []interface{}{want}, args)

		_, _, err = jobFilterCondition(domain.FilterExpr{
			Field: "application_deadline", Op: domain.FilterOpLte, Value: "2026-03-01T12:00:00Z",
		}, 1)
		assert.NoError(t, err)
	})

	t.Run("in becomes ANY over the split values", func(t *testing.T) {
		cond, args, err := jobFilterCondition(domain.FilterExpr{
			Field: "location", Op: domain.FilterOpIn, Value: "Berlin,Remote",
		}, 2)
		assert.NoError(t, err)
		assert.Equal(t, "location = ANY($2)", cond)
		assert.Len(t, args, 1)
	})

	t.Run("boolean conversion", func(t *testing.T) {
		_, args, err := jobFilterCondition(domain.FilterExpr{
			Field: "is_active", Op: domain.FilterOpEq, Value: "true",
		}, 1)
		assert.NoError(t, err)
		assert.Equal(t, []interface{}{true}, args)
	})
}

func TestJobOrderClause(t *testing.T) {
	assert.Equal(t, " ORDER BY posted_at DESC", jobOrderClause("", ""))
	assert.Equal(t, " ORDER BY salary_max ASC", jobOrderClause("salary_max", "asc"))
	assert.Equal(t, " ORDER BY title DESC", jobOrderClause("title", "descending-nonsense"))
}
