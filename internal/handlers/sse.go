package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/filter"
	"sales-dashboard/internal/models"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`
<div id="summary-strip" class="metric-strip">
<div class="metric"><span class="metric-label">Total Sales</span><strong>${{printf "%.2f" .TotalSales}}</strong></div>
<div class="metric"><span class="metric-label">Daily Average</span><strong>{{if .HasDays}}${{printf "%.2f" .AverageDaily}}{{else}}–{{end}}</strong></div>
<div class="metric"><span class="metric-label">Transactions</span><strong>{{.Transactions}}</strong></div>
</div>`))

// SSEHandlers push chart data to the dashboard over datastar SSE. The
// selection arrives in the query string the same way the REST API
// receives it.
type SSEHandlers struct {
	source string
	cache  *dataset.Cache
	logger *slog.Logger
}

func NewSSEHandlers(source string, cache *dataset.Cache, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

type summaryView struct {
	TotalSales   float64
	AverageDaily float64
	Transactions int
	HasDays      bool
}

func (h *SSEHandlers) renderSummary(rows []models.Sale) (string, error) {
	summary := analytics.Summary(rows)
	view := summaryView{
		TotalSales:   summary.TotalSales,
		AverageDaily: summary.AverageDaily,
		Transactions: summary.Transactions,
		HasDays:      summary.Transactions > 0,
	}

	var buf strings.Builder
	err := summaryTemplate.Execute(&buf, view)
	return buf.String(), err
}

func (h *SSEHandlers) rows(r *http.Request) ([]models.Sale, error) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		return nil, err
	}

	ds, err := h.cache.Load(r.Context(), h.source)
	if err != nil {
		return nil, err
	}

	return filter.Apply(ds.Sales, sel), nil
}

func (h *SSEHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	rows, err := h.rows(r)
	if err != nil {
		h.logger.Error("resolve selection", "error", err)
		return
	}

	html, err := h.renderSummary(rows)
	if err != nil {
		h.logger.Error("render summary strip", "error", err)
		return
	}

	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	rows, err := h.rows(r)
	if err != nil {
		h.logger.Error("resolve selection", "error", err)
		return
	}

	signals, err := chartSignals(rows)
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	rows, err := h.rows(r)
	if err != nil {
		h.logger.Error("resolve selection", "error", err)
		return
	}

	html, err := h.renderSummary(rows)
	if err != nil {
		h.logger.Error("render summary strip", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := chartSignals(rows)
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func chartSignals(rows []models.Sale) ([]byte, error) {
	return json.Marshal(map[string]any{
		"dailyData":   analytics.DailyTotals(rows),
		"countData":   analytics.DailyCounts(rows),
		"weekdayData": analytics.WeekdayMeans(rows),
		"hourlyData":  analytics.HourlyDistribution(rows),
		"paymentData": analytics.PaymentMethodFrequency(rows),
	})
}
