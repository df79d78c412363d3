package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/ledger"
	"fintrack/internal/report"
	"fintrack/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := memory.New()
	users := ledger.NewUsers(st, ledger.DefaultUserID)
	incomes := ledger.NewIncomes(st, ledger.DefaultUserID, nil)
	expenses := ledger.NewExpenses(st, ledger.DefaultUserID, nil)
	savings := ledger.NewSavings(st, ledger.DefaultUserID, nil)
	investments := ledger.NewInvestments(st, ledger.DefaultUserID, nil)
	debts := ledger.NewDebts(st, ledger.DefaultUserID, nil)
	engine := report.NewEngine(incomes, expenses, savings, investments, debts)

	srv := NewServer(":0", users, incomes, expenses, savings, investments, debts, engine, Options{})
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doRequest(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestCurrentUser(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(t, srv, http.MethodGet, "/api/user", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var user struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.ID != ledger.DefaultUserID || user.Name == "" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestListIncomes(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(t, srv, http.MethodGet, "/api/incomes", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var records []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 seeded incomes, got %d", len(records))
	}
}

func TestCreateIncome(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/incomes",
		`{"source":"Bonus","amount":"800","date":"2023-05-01","note":"spot bonus"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID     int64  `json:"id"`
		UserID int64  `json:"userId"`
		Source string `json:"source"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.UserID != ledger.DefaultUserID || created.Source != "Bonus" {
		t.Fatalf("unexpected record: %+v", created)
	}
}

func TestCreateIncomeValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"unknown field", `{"source":"x","amount":"1","date":"2023-05-01","bogus":true}`, http.StatusBadRequest},
		{"empty source", `{"source":"","amount":"100","date":"2023-05-01"}`, http.StatusBadRequest},
		{"zero amount", `{"source":"x","amount":"0","date":"2023-05-01"}`, http.StatusBadRequest},
		{"bad date", `{"source":"x","amount":"100","date":"05/01/2023"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, srv, http.MethodPost, "/api/incomes", tt.body)
			if rr.Code != tt.want {
				t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestPatchIncome(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPatch, "/api/incomes/1", `{"amount":"5500"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var updated struct {
		Source string `json:"source"`
		Amount string `json:"amount"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Amount != "5500" || updated.Source != "Salary" {
		t.Fatalf("unexpected record: %+v", updated)
	}
}

func TestPatchIncomeNotFound(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(t, srv, http.MethodPatch, "/api/incomes/999", `{"amount":"1"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "not_found") {
		t.Fatalf("expected not_found error kind, got %s", rr.Body.String())
	}
}

func TestDeleteIncome(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodDelete, "/api/incomes/2", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, srv, http.MethodDelete, "/api/incomes/2", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rr.Code)
	}
}

func TestBadIDPath(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/api/incomes/abc", "/api/incomes/0", "/api/incomes/-3"} {
		rr := doRequest(t, srv, http.MethodDelete, path, "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d", path, rr.Code)
		}
	}
}

func TestDashboardSummary(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/dashboard/summary", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var summary struct {
		TotalIncome   string  `json:"totalIncome"`
		TotalExpenses string  `json:"totalExpenses"`
		NetWorth      string  `json:"netWorth"`
		SavingsRate   float64 `json:"savingsRate"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Seed data: income 6650, expenses 2170, savings 7500, investments
	// 7000, debts 17500.
	if summary.TotalIncome != "6650" {
		t.Fatalf("totalIncome = %s", summary.TotalIncome)
	}
	if summary.TotalExpenses != "2170" {
		t.Fatalf("totalExpenses = %s", summary.TotalExpenses)
	}
	if summary.NetWorth != "1480" {
		t.Fatalf("netWorth = %s", summary.NetWorth)
	}
	if summary.SavingsRate <= 0 {
		t.Fatalf("savingsRate = %v", summary.SavingsRate)
	}
}

func TestSummaryCacheInvalidatedByWrite(t *testing.T) {
	srv := newTestServer(t)

	// Warm the cache.
	doRequest(t, srv, http.MethodGet, "/api/dashboard/summary", "")

	rr := doRequest(t, srv, http.MethodPost, "/api/incomes",
		`{"source":"Bonus","amount":"1000","date":"2023-05-01"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/dashboard/summary", "")
	var summary struct {
		TotalIncome string `json:"totalIncome"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalIncome != "7650" {
		t.Fatalf("stale summary after write: totalIncome = %s", summary.TotalIncome)
	}
}

func TestMonthlyFlow(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/dashboard/flow", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var flows []struct {
		Label    string `json:"label"`
		Income   string `json:"income"`
		Expenses string `json:"expenses"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &flows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Seed incomes span April only; the April bucket must exist and carry
	// both sides.
	found := false
	for _, f := range flows {
		if f.Label == "Apr" {
			found = true
			if f.Income != "6650" || f.Expenses != "2170" {
				t.Fatalf("unexpected April flow: %+v", f)
			}
		}
	}
	if !found {
		t.Fatal("missing April bucket")
	}
}

func TestCashFlowGranularity(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/reports/cashflow?period=quarterly", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var entries []struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) == 0 || !strings.HasPrefix(entries[len(entries)-1].Label, "Q") {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/reports/cashflow?period=weekly", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown granularity, got %d", rr.Code)
	}
}

func TestGoalProgressEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/dashboard/goals", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var goals []struct {
		GoalName string  `json:"goalName"`
		Percent  float64 `json:"percent"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &goals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}
	if goals[0].GoalName != "Emergency Fund" || goals[0].Percent != 60 {
		t.Fatalf("unexpected first goal: %+v", goals[0])
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("request 61 should be limited")
	}
	// Other clients are tracked separately.
	if !rl.allow("10.0.0.2") {
		t.Fatal("separate client should not be limited")
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(t, srv, http.MethodGet, "/api/incomes", "")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
}
