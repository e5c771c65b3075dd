// Package query builds the filtered, sorted application view shown on the
// admin dashboard. The engine is pure: it copies its input, never fails, and
// leaves filter/sort UI policy (direction toggling) to the caller.
package query

import (
	"sort"
	"strings"

	"vectorhire/internal/applicant"
)

// StatusFilter selects records by their verdict's passed flag.
type StatusFilter string

// SortField selects the comparison key.
type SortField string

// Direction orders the result ascending or descending on the key.
type Direction string

const (
	FilterAll    StatusFilter = "all"
	FilterPassed StatusFilter = "passed"
	FilterFailed StatusFilter = "failed"

	SortScore     SortField = "score"
	SortCreatedAt SortField = "createdAt"
	SortEmail     SortField = "applicantEmail"
	SortJobTitle  SortField = "jobTitle"

	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseStatusFilter maps a query-string value onto a filter, defaulting to all.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(s)) {
	case FilterPassed:
		return FilterPassed
	case FilterFailed:
		return FilterFailed
	default:
		return FilterAll
	}
}

// ParseSortField maps a query-string value onto a sort field, defaulting to createdAt.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortScore, SortEmail, SortJobTitle:
		return SortField(s)
	default:
		return SortCreatedAt
	}
}

// ParseDirection maps a query-string value onto a direction, defaulting to descending.
func ParseDirection(s string) Direction {
	if Direction(strings.ToLower(s)) == Ascending {
		return Ascending
	}
	return Descending
}

// View returns the records matching the status filter, ordered by the sort
// field and direction. Equal keys fall back to the record identifier
// ascending so the result is deterministic. The input is never mutated.
func View(records []applicant.Application, filter StatusFilter, field SortField, dir Direction) []applicant.Application {
	out := make([]applicant.Application, 0, len(records))
	for _, app := range records {
		switch filter {
		case FilterPassed:
			if !app.AI.Passed {
				continue
			}
		case FilterFailed:
			if app.AI.Passed {
				continue
			}
		}
		out = append(out, app)
	}

	sort.Slice(out, func(i, j int) bool {
		less, equal := compare(out[i], out[j], field)
		if equal {
			return out[i].ID < out[j].ID
		}
		if dir == Ascending {
			return less
		}
		return !less
	})

	return out
}

// compare reports whether a orders before b ascending on field, and whether
// the two keys are equal.
func compare(a, b applicant.Application, field SortField) (less, equal bool) {
	switch field {
	case SortScore:
		return a.AI.Score < b.AI.Score, a.AI.Score == b.AI.Score
	case SortEmail:
		x, y := strings.ToLower(a.ApplicantEmail), strings.ToLower(b.ApplicantEmail)
		return x < y, x == y
	case SortJobTitle:
		x, y := strings.ToLower(a.JobTitle), strings.ToLower(b.JobTitle)
		return x < y, x == y
	default:
		return a.CreatedAt < b.CreatedAt, a.CreatedAt == b.CreatedAt
	}
}
