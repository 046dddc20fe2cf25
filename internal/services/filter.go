package services

import (
	"math"
	"strconv"
	"time"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/models"
)

// Predicate is a composed set of constraints over stored transactions.
type Predicate func(t *models.Transaction) bool

const filterDateLayout = "2006-01-02"

// BuildPredicate composes raw filter inputs into a single conjunctive
// predicate. It is a pure function: the one category-name lookup happens in
// the caller, which passes the resolved id, or nil when the dimension is
// unconstrained. A supplied name that matched nothing also arrives as nil:
// unknown names drop the constraint instead of erroring.
//
// Malformed inputs never become accidental zero bounds: amounts that don't
// parse to a finite number and dates that don't parse at all are treated as
// absent. A type other than income/expense is ignored.
func BuildPredicate(filters dto.TransactionFilters, categoryID *string) Predicate {
	var checks []Predicate

	if categoryID != nil {
		id := *categoryID
		checks = append(checks, func(t *models.Transaction) bool {
			return t.CategoryID == id
		})
	}

	if models.ValidType(filters.Type) {
		want := filters.Type
		checks = append(checks, func(t *models.Transaction) bool {
			return t.Type == want
		})
	}

	if min, ok := parseAmount(filters.MinAmount); ok {
		checks = append(checks, func(t *models.Transaction) bool {
			return t.Amount >= min
		})
	}
	if max, ok := parseAmount(filters.MaxAmount); ok {
		checks = append(checks, func(t *models.Transaction) bool {
			return t.Amount <= max
		})
	}

	if from, _, ok := parseDate(filters.StartDate); ok {
		checks = append(checks, func(t *models.Transaction) bool {
			return !t.CreatedAt.Before(from)
		})
	}
	if to, dateOnly, ok := parseDate(filters.EndDate); ok {
		// A date-only upper bound covers the whole day.
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		checks = append(checks, func(t *models.Transaction) bool {
			return !t.CreatedAt.After(to)
		})
	}

	return func(t *models.Transaction) bool {
		for _, check := range checks {
			if !check(t) {
				return false
			}
		}
		return true
	}
}

// parseAmount parses a raw bound; values that parse to NaN (or don't parse)
// are absent, not zero.
func parseAmount(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// parseDate accepts YYYY-MM-DD or RFC 3339; dateOnly reports which form.
func parseDate(raw string) (t time.Time, dateOnly, ok bool) {
	if raw == "" {
		return time.Time{}, false, false
	}
	if v, err := time.Parse(filterDateLayout, raw); err == nil {
		return v, true, true
	}
	if v, err := time.Parse(time.RFC3339, raw); err == nil {
		return v, false, true
	}
	return time.Time{}, false, false
}
