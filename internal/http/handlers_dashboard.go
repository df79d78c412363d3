package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/report"
)

// summaryResponse decorates the financial summary with the derived
// savings figures shown on the dashboard cards.
type summaryResponse struct {
	core.FinancialSummary
	SavingsProgress core.Percent `json:"savingsProgress"`
	SavingsRate     core.Percent `json:"savingsRate"`
}

func (s *Server) getSummary(r *http.Request) (core.FinancialSummary, error) {
	if cached, ok := s.summaryCache.Get(summaryCacheKey); ok {
		slog.DebugContext(r.Context(), "Summary served from cache")
		return cached, nil
	}
	summary, err := s.engine.Summary(r.Context())
	if err != nil {
		return core.FinancialSummary{}, err
	}
	s.summaryCache.Set(summaryCacheKey, summary)
	return summary, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.getSummary(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute summary", "error", err)
		WriteError(w, err)
		return
	}

	NewResponse().JSON(summaryResponse{
		FinancialSummary: summary,
		SavingsProgress:  report.SavingsProgress(summary),
		SavingsRate:      report.SavingsRate(summary),
	}).Write(w)
}

func (s *Server) handleMonthlyFlow(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.flowCache.Get(flowCacheKey); ok {
		slog.DebugContext(r.Context(), "Monthly flow served from cache")
		NewResponse().JSON(cached).Write(w)
		return
	}

	flow, err := s.engine.MonthlyFlow(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute monthly flow", "error", err)
		WriteError(w, err)
		return
	}

	s.flowCache.Set(flowCacheKey, flow)
	NewResponse().JSON(flow).Write(w)
}

func (s *Server) handleDashboardCategories(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.engine.ExpensesByCategory(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute category breakdown", "error", err)
		WriteError(w, err)
		return
	}
	NewResponse().JSON(breakdown).Write(w)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	goals, err := s.engine.GoalProgress(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute goal progress", "error", err)
		WriteError(w, err)
		return
	}
	NewResponse().JSON(goals).Write(w)
}
