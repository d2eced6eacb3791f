package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"sales-dashboard/internal/dataset"
)

func newTestSSEHandlers(t *testing.T) *SSEHandlers {
	t.Helper()

	f, err := os.CreateTemp("", "sales*.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(testCSV); err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	cache := dataset.NewCache(dataset.NewLoader(logger, nil))

	return NewSSEHandlers(f.Name(), cache, logger)
}

func TestSSEHandlers_HandleSummary(t *testing.T) {
	h := newTestSSEHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/sse/summary", nil)
	w := httptest.NewRecorder()
	h.HandleSummary(w, req)

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected event stream content type, got %q", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "event:") || !strings.Contains(body, "data:") {
		t.Error("response should contain SSE event format")
	}
	if !strings.Contains(body, "summary-strip") {
		t.Error("expected the summary strip fragment")
	}
	if !strings.Contains(body, "$600.00") {
		t.Errorf("expected total sales in fragment, body:\n%s", body)
	}
}

func TestSSEHandlers_HandleCharts(t *testing.T) {
	h := newTestSSEHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/sse/charts", nil)
	w := httptest.NewRecorder()
	h.HandleCharts(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "event:") || !strings.Contains(body, "data:") {
		t.Error("response should contain SSE event format")
	}
	for _, signal := range []string{"dailyData", "weekdayData", "hourlyData", "paymentData"} {
		if !strings.Contains(body, signal) {
			t.Errorf("expected signal %q in body", signal)
		}
	}
}

func TestSSEHandlers_HandleRefreshAll(t *testing.T) {
	h := newTestSSEHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all?product_line=Health+and+beauty", nil)
	w := httptest.NewRecorder()
	h.HandleRefreshAll(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "event:") || !strings.Contains(body, "data:") {
		t.Error("response should contain SSE event format")
	}
	if !strings.Contains(body, "dailyData") {
		t.Error("expected chart signals alongside the fragment")
	}
	if !strings.Contains(body, "$400.00") {
		t.Errorf("expected filtered total in fragment, body:\n%s", body)
	}
}
