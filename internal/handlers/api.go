package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/export"
	"sales-dashboard/internal/filter"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

const cacheControl = "public, max-age=60"

// APIHandlers serves the aggregate endpoints. Every endpoint loads the
// dataset through the modtime-keyed cache, applies the request's
// selection and hands the filtered view to the analytics functions, so
// all aggregates see the same table.
type APIHandlers struct {
	source  string
	cache   *dataset.Cache
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewAPIHandlers(source string, cache *dataset.Cache, logger *slog.Logger, metrics *observability.Metrics) *APIHandlers {
	return &APIHandlers{
		source:  source,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// filtered resolves the request's view of the table.
func (h *APIHandlers) filtered(r *http.Request) ([]models.Sale, *dataset.Dataset, error) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		return nil, nil, err
	}

	ds, err := h.cache.Load(r.Context(), h.source)
	if err != nil {
		return nil, nil, err
	}

	return filter.Apply(ds.Sales, sel), ds, nil
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func (h *APIHandlers) write(w http.ResponseWriter, data any) {
	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.Summary(rows))
}

func (h *APIHandlers) HandleDailyTotals(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.DailyTotals(rows))
}

func (h *APIHandlers) HandleDailyCounts(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.DailyCounts(rows))
}

func (h *APIHandlers) HandleWeekdayMeans(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.WeekdayMeans(rows))
}

func (h *APIHandlers) HandleHourlyDistribution(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.HourlyDistribution(rows))
}

const ratingBins = 12

type ratingDistribution struct {
	Histogram models.Histogram        `json:"histogram"`
	Stats     models.DescriptiveStats `json:"stats"`
}

func (h *APIHandlers) HandleRatings(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ratings := analytics.Values(rows, analytics.Rating)
	h.write(w, ratingDistribution{
		Histogram: analytics.Histogram(ratings, ratingBins),
		Stats:     analytics.DescriptiveStats(ratings),
	})
}

func (h *APIHandlers) HandleCustomerTypeSpend(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.CategoryStats(rows, analytics.ByCustomerType, analytics.Total))
}

// HandleCategoryBreakdown groups an arbitrary categorical column
// against a numeric one. Defaults reproduce the product-line revenue
// view; stats=true switches to per-group descriptive stats.
func (h *APIHandlers) HandleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	category := analytics.ByProductLine
	if raw := q.Get("category"); raw != "" {
		category = analytics.CategoryColumn(raw)
		if !category.Valid() {
			h.fail(w, r, errors.BadRequest(fmt.Sprintf("unknown category column %q", raw)))
			return
		}
	}

	value := analytics.Total
	if raw := q.Get("value"); raw != "" {
		value = analytics.NumericColumn(raw)
		if !value.Valid() {
			h.fail(w, r, errors.BadRequest(fmt.Sprintf("unknown numeric column %q", raw)))
			return
		}
	}

	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if q.Get("stats") == "true" {
		h.write(w, analytics.CategoryStats(rows, category, value))
		return
	}
	h.write(w, analytics.CategoryBreakdown(rows, category, value))
}

func (h *APIHandlers) HandleCorrelation(w http.ResponseWriter, r *http.Request) {
	cols := analytics.NumericColumns()
	if raw := r.URL.Query()["column"]; len(raw) > 0 {
		cols = make([]analytics.NumericColumn, 0, len(raw))
		for _, name := range raw {
			col := analytics.NumericColumn(name)
			if !col.Valid() {
				h.fail(w, r, errors.BadRequest(fmt.Sprintf("unknown numeric column %q", name)))
				return
			}
			cols = append(cols, col)
		}
	}

	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.CorrelationMatrix(rows, cols))
}

func (h *APIHandlers) HandlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.PaymentMethodFrequency(rows))
}

func (h *APIHandlers) HandleCostIncome(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.write(w, analytics.Points(rows, analytics.COGS, analytics.GrossIncome))
}

// HandleFilterOptions reports the choices the sidebar can offer: the
// observed date bounds, the product lines, and only the months present
// in the date-filtered data.
func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ds, err := h.cache.Load(r.Context(), h.source)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	lo, hi, _ := filter.DateBounds(ds.Sales)
	dateFiltered := filter.Apply(ds.Sales, filter.Selection{From: sel.From, To: sel.To})

	h.write(w, models.FilterOptions{
		MinDate:      lo,
		MaxDate:      hi,
		ProductLines: filter.ProductLines(ds.Sales),
		Months:       filter.Months(dateFiltered),
	})
}

func (h *APIHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sales_filtered.csv"`)
		err = export.WriteCSV(w, rows)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="sales_filtered.xlsx"`)
		err = export.WriteXLSX(w, rows)
	default:
		h.fail(w, r, errors.BadRequest(fmt.Sprintf("unknown export format %q", format)))
		return
	}

	if err != nil {
		// Headers are already gone; just log.
		h.logger.Error("export failed",
			"format", format,
			"error", err,
			"request_id", observability.GetRequestID(r.Context()),
		)
		return
	}

	if h.metrics != nil {
		h.metrics.ExportsTotal.WithLabelValues(format).Inc()
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	ds, err := h.cache.Load(r.Context(), h.source)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	errors.WriteSuccess(w, map[string]any{
		"source":        ds.Source,
		"rows":          len(ds.Sales),
		"dropped_rows":  ds.Dropped,
		"loaded_at":     ds.LoadedAt,
		"product_lines": len(filter.ProductLines(ds.Sales)),
	})
}
