package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	granularity, err := ParseGranularityParam(r)
	if err != nil {
		NewResponse().Error(ErrorKindBadRequest, err.Error()).Write(w)
		return
	}

	entries, err := s.engine.CashFlow(r.Context(), granularity)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute cash flow",
			"period", granularity.String(), "error", err)
		WriteError(w, err)
		return
	}
	NewResponse().JSON(entries).Write(w)
}

func (s *Server) handleIncomeBySource(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.engine.IncomeBySource(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute income by source", "error", err)
		WriteError(w, err)
		return
	}
	NewResponse().JSON(breakdown).Write(w)
}

func (s *Server) handleExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.engine.ExpensesByCategory(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute expenses by category", "error", err)
		WriteError(w, err)
		return
	}
	NewResponse().JSON(breakdown).Write(w)
}
