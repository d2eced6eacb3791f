package handlers

import (
	"fmt"
	"net/url"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/filter"
)

const dateParamLayout = "2006-01-02"

// parseSelection builds a filter selection from query parameters.
// Absent product_line and month parameters mean no restriction, same
// as an empty multi-select in the dashboard.
func parseSelection(q url.Values) (filter.Selection, error) {
	var sel filter.Selection

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return sel, errors.BadRequest(fmt.Sprintf("invalid from date %q, want YYYY-MM-DD", raw))
		}
		sel.From = t
	}

	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return sel, errors.BadRequest(fmt.Sprintf("invalid to date %q, want YYYY-MM-DD", raw))
		}
		sel.To = t
	}

	if !sel.From.IsZero() && !sel.To.IsZero() && sel.To.Before(sel.From) {
		return sel, errors.BadRequest("from date is after to date")
	}

	if values := q["product_line"]; len(values) > 0 {
		sel.ProductLines = filter.RestrictedTo(values...)
	}

	if values := q["month"]; len(values) > 0 {
		sel.Months = filter.RestrictedTo(values...)
	}

	return sel, nil
}
