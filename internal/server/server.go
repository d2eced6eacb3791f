package server

import (
	"log/slog"
	"net/http"

	"sales-dashboard/internal/handlers"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(api *handlers.APIHandlers, sse *handlers.SSEHandlers, templateHandlers *TemplateHandlers, metricsHandler http.Handler, logger *slog.Logger) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: api,
		sseHandlers: sse,
	}
	s.setupRoutes(templateHandlers, metricsHandler)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers, metricsHandler http.Handler) {
	// Dashboard shell and operational routes
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)
	s.mux.Handle("GET /metrics", metricsHandler)

	// REST API: all endpoints accept the selection as query params
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/daily-totals", s.apiHandlers.HandleDailyTotals)
	s.mux.HandleFunc("GET /api/daily-counts", s.apiHandlers.HandleDailyCounts)
	s.mux.HandleFunc("GET /api/weekday-means", s.apiHandlers.HandleWeekdayMeans)
	s.mux.HandleFunc("GET /api/hourly", s.apiHandlers.HandleHourlyDistribution)
	s.mux.HandleFunc("GET /api/ratings", s.apiHandlers.HandleRatings)
	s.mux.HandleFunc("GET /api/customer-type-spend", s.apiHandlers.HandleCustomerTypeSpend)
	s.mux.HandleFunc("GET /api/category-breakdown", s.apiHandlers.HandleCategoryBreakdown)
	s.mux.HandleFunc("GET /api/correlation", s.apiHandlers.HandleCorrelation)
	s.mux.HandleFunc("GET /api/payment-methods", s.apiHandlers.HandlePaymentMethods)
	s.mux.HandleFunc("GET /api/cost-income", s.apiHandlers.HandleCostIncome)
	s.mux.HandleFunc("GET /api/filter-options", s.apiHandlers.HandleFilterOptions)
	s.mux.HandleFunc("GET /api/export", s.apiHandlers.HandleExport)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/summary", s.sseHandlers.HandleSummary)
	s.mux.HandleFunc("GET /sse/charts", s.sseHandlers.HandleCharts)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
