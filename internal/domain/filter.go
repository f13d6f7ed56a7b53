package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ReservedListParams are query keys that belong to the listing machinery
// and are never interpreted as filters.
var ReservedListParams = map[string]bool{
	"select":    true,
	"sort":      true,
	"sortBy":    true,
	"sortOrder": true,
	"page":      true,
	"limit":     true,
	"search":    true,
}

var rangeOps = map[FilterOp]bool{
	FilterOpEq:  true,
	FilterOpGt:  true,
	FilterOpGte: true,
	FilterOpLt:  true,
	FilterOpLte: true,
}

var equalityOps = map[FilterOp]bool{
	FilterOpEq: true,
	FilterOpIn: true,
}

// jobFilterFields is the allow-list of filterable job fields and the
// operators each accepts. Anything outside this table is rejected before
// translation to SQL.
var jobFilterFields = map[string]map[FilterOp]bool{
	"title":                equalityOps,
	"company":              equalityOps,
	"location":             equalityOps,
	"industry":             equalityOps,
	"is_active":            {FilterOpEq: true},
	"salary_min":           rangeOps,
	"salary_max":           rangeOps,
	"posted_at":            rangeOps,
	"application_deadline": rangeOps,
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindBool
	kindTime
)

var jobFieldKinds = map[string]fieldKind{
	"title":                kindText,
	"company":              kindText,
	"location":             kindText,
	"industry":             kindText,
	"is_active":            kindBool,
	"salary_min":           kindNumber,
	"salary_max":           kindNumber,
	"posted_at":            kindTime,
	"application_deadline": kindTime,
}

// jobSortFields is the allow-list for the sort parameter.
var jobSortFields = map[string]bool{
	"posted_at":  true,
	"title":      true,
	"company":    true,
	"salary_min": true,
	"salary_max": true,
}

// ParseJobFilters turns raw query parameters into validated filter
// expressions. Keys take the form "field" (equality) or "field[op]" with
// op one of gt, gte, lt, lte, in. Reserved listing keys are skipped;
// unknown fields or operators are an error.
func ParseJobFilters(query map[string][]string) ([]FilterExpr, error) {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var filters []FilterExpr
	for _, key := range keys {
		if ReservedListParams[key] {
			continue
		}

		field, op, err := splitFilterKey(key)
		if err != nil {
			return nil, err
		}

		allowed, ok := jobFilterFields[field]
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q", field)
		}
		if !allowed[op] {
			return nil, fmt.Errorf("operator %q not allowed for field %q", op, field)
		}

		for _, value := range query[key] {
			if err := validateFilterValue(field, op, value); err != nil {
				return nil, err
			}
			filters = append(filters, FilterExpr{Field: field, Op: op, Value: value})
		}
	}
	return filters, nil
}

// validateFilterValue checks the raw value against the field's type so a
// malformed value is rejected here instead of surfacing as a store error.
func validateFilterValue(field string, op FilterOp, value string) error {
	parts := []string{value}
	if op == FilterOpIn {
		parts = strings.Split(value, ",")
	}
	for _, part := range parts {
		var err error
		switch jobFieldKinds[field] {
		case kindNumber:
			_, err = strconv.ParseFloat(part, 64)
		case kindBool:
			_, err = strconv.ParseBool(part)
		case kindTime:
			if _, e := time.Parse(time.RFC3339, part); e != nil {
				_, err = time.Parse("2006-01-02", part)
			}
		}
		if err != nil {
			return fmt.Errorf("invalid value %q for filter field %q", part, field)
		}
	}
	return nil
}

// splitFilterKey separates "field[op]" into its parts; a bare key means
// equality.
func splitFilterKey(key string) (string, FilterOp, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, FilterOpEq, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", fmt.Errorf("malformed filter key %q", key)
	}
	field := key[:open]
	op := FilterOp(key[open+1 : len(key)-1])
	switch op {
	case FilterOpGt, FilterOpGte, FilterOpLt, FilterOpLte, FilterOpIn:
		return field, op, nil
	default:
		return "", "", fmt.Errorf("unknown filter operator %q", op)
	}
}

// ValidateJobSort checks the sort field against the allow-list. An empty
// field is fine; listings default to newest-first by posting time.
func ValidateJobSort(sortBy string) error {
	if sortBy == "" || jobSortFields[sortBy] {
		return nil
	}
	return fmt.Errorf("unknown sort field %q", sortBy)
}

// BuildPagination computes next/prev references from index arithmetic.
func BuildPagination(page, limit int, total int64) *Pagination {
	p := &Pagination{}
	start := int64(page-1) * int64(limit)
	end := int64(page) * int64(limit)
	if end < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if start > 0 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
