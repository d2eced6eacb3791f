// Package filter narrows the canonical table to a user's selection.
// Every predicate is pure: the input slice is never mutated and row
// order is preserved.
package filter

import (
	"slices"
	"time"

	"sales-dashboard/internal/models"
)

// CategoryFilter states explicitly whether a categorical field is
// restricted. The zero value allows everything, which matches the
// dashboard convention that an empty multi-select means "no filter";
// RestrictedTo with no values genuinely selects nothing.
type CategoryFilter struct {
	restricted bool
	values     map[string]struct{}
}

func Unrestricted() CategoryFilter {
	return CategoryFilter{}
}

func RestrictedTo(values ...string) CategoryFilter {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return CategoryFilter{restricted: true, values: set}
}

func (f CategoryFilter) Restricted() bool {
	return f.restricted
}

func (f CategoryFilter) Allows(value string) bool {
	if !f.restricted {
		return true
	}
	_, ok := f.values[value]
	return ok
}

func (f CategoryFilter) Values() []string {
	out := make([]string, 0, len(f.values))
	for v := range f.values {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Selection is one user's set of active predicates. Zero date bounds
// default to the table's observed minimum and maximum, so a zero
// Selection keeps every row.
type Selection struct {
	From time.Time
	To   time.Time

	ProductLines CategoryFilter
	Months       CategoryFilter
}

// Apply keeps rows passing all active predicates. Both date bounds are
// inclusive. The result is a stable subsequence of rows.
func Apply(rows []models.Sale, sel Selection) []models.Sale {
	from, to := sel.From, sel.To
	if from.IsZero() || to.IsZero() {
		if lo, hi, ok := DateBounds(rows); ok {
			if from.IsZero() {
				from = lo
			}
			if to.IsZero() {
				to = hi
			}
		}
	}

	out := make([]models.Sale, 0, len(rows))
	for _, s := range rows {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		if !sel.ProductLines.Allows(s.ProductLine) {
			continue
		}
		if !sel.Months.Allows(s.Month) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// DateBounds returns the observed minimum and maximum dates. ok is
// false for an empty table.
func DateBounds(rows []models.Sale) (lo, hi time.Time, ok bool) {
	if len(rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	lo, hi = rows[0].Date, rows[0].Date
	for _, s := range rows[1:] {
		if s.Date.Before(lo) {
			lo = s.Date
		}
		if s.Date.After(hi) {
			hi = s.Date
		}
	}
	return lo, hi, true
}

// ProductLines lists the distinct product lines present, sorted.
func ProductLines(rows []models.Sale) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range rows {
		if _, ok := seen[s.ProductLine]; ok {
			continue
		}
		seen[s.ProductLine] = struct{}{}
		out = append(out, s.ProductLine)
	}
	slices.Sort(out)
	return out
}

// Months lists the month names present, in calendar order. Callers
// offering month choices should pass the date-filtered rows so only
// reachable months are listed.
func Months(rows []models.Sale) []string {
	present := make(map[string]bool, 12)
	for _, s := range rows {
		present[s.Month] = true
	}

	out := make([]string, 0, len(present))
	for m := time.January; m <= time.December; m++ {
		if present[m.String()] {
			out = append(out, m.String())
		}
	}
	return out
}
