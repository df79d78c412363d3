package http

import (
	"context"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// repository is the CRUD surface all five ledger repositories share.
// T is the record, In the creation input, P the partial-update patch.
type repository[T, In, P any] interface {
	List(ctx context.Context) ([]T, error)
	Add(ctx context.Context, in In) (T, error)
	Update(ctx context.Context, id int64, patch P) (T, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

func (s *Server) routeLedger(mux *http.ServeMux) {
	registerCollection[core.Income, ledger.IncomeInput, ledger.IncomePatch](s, mux, "incomes", s.incomes)
	registerCollection[core.Expense, ledger.ExpenseInput, ledger.ExpensePatch](s, mux, "expenses", s.expenses)
	registerCollection[core.Saving, ledger.SavingInput, ledger.SavingPatch](s, mux, "savings", s.savings)
	registerCollection[core.Investment, ledger.InvestmentInput, ledger.InvestmentPatch](s, mux, "investments", s.investments)
	registerCollection[core.Debt, ledger.DebtInput, ledger.DebtPatch](s, mux, "debts", s.debts)
}

// registerCollection wires the standard CRUD routes for one collection.
// Mutations invalidate the dashboard aggregate caches.
func registerCollection[T, In, P any](s *Server, mux *http.ServeMux, name string, repo repository[T, In, P]) {
	mux.HandleFunc("GET /api/"+name, s.withSecurityHeaders(func(w http.ResponseWriter, r *http.Request) {
		records, err := repo.List(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to list records", "collection", name, "error", err)
			WriteError(w, err)
			return
		}
		NewResponse().JSON(records).Write(w)
	}))

	mux.HandleFunc("POST /api/"+name, s.withSecurityHeaders(func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := DecodeJSONBody(r, &in); err != nil {
			NewResponse().Error(ErrorKindBadRequest, err.Error()).Write(w)
			return
		}

		record, err := repo.Add(r.Context(), in)
		if err != nil {
			WriteError(w, err)
			return
		}

		s.invalidateAggregates()
		NewResponse().Status(http.StatusCreated).JSON(record).Write(w)
	}))

	mux.HandleFunc("PATCH /api/"+name+"/{id}", s.withSecurityHeaders(func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(r)
		if err != nil {
			NewResponse().Error(ErrorKindBadRequest, err.Error()).Write(w)
			return
		}

		var patch P
		if err := DecodeJSONBody(r, &patch); err != nil {
			NewResponse().Error(ErrorKindBadRequest, err.Error()).Write(w)
			return
		}

		record, found, err := repo.Update(r.Context(), id, patch)
		if err != nil {
			WriteError(w, err)
			return
		}
		if !found {
			WriteNotFound(w)
			return
		}

		s.invalidateAggregates()
		NewResponse().JSON(record).Write(w)
	}))

	mux.HandleFunc("DELETE /api/"+name+"/{id}", s.withSecurityHeaders(func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(r)
		if err != nil {
			NewResponse().Error(ErrorKindBadRequest, err.Error()).Write(w)
			return
		}

		removed, err := repo.Delete(r.Context(), id)
		if err != nil {
			WriteError(w, err)
			return
		}
		if !removed {
			WriteNotFound(w)
			return
		}

		s.invalidateAggregates()
		NewResponse().Status(http.StatusNoContent).Write(w)
	}))
}
