package ledger_test

import (
	"context"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"

	"github.com/shopspring/decimal"
)

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) RecordChanged(_ context.Context, collection, op string, _ int64) {
	n.events = append(n.events, collection+":"+op)
}

func TestIncomesListSeed(t *testing.T) {
	repo := ledger.NewIncomes(memory.New(), ledger.DefaultUserID, nil)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 seeded incomes, got %d", len(got))
	}
	if got[0].Source != "Salary" || !got[0].Amount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected first seed record: %+v", got[0])
	}
}

func TestIncomesAddAssignsNextID(t *testing.T) {
	ctx := context.Background()
	repo := ledger.NewIncomes(memory.New(), ledger.DefaultUserID, nil)

	before, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var maxID int64
	for _, rec := range before {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}

	added, err := repo.Add(ctx, ledger.IncomeInput{
		Source: "Bonus",
		Amount: decimal.NewFromInt(800),
		Date:   core.NewDate(2023, 5, 1),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID <= maxID {
		t.Fatalf("expected id > %d, got %d", maxID, added.ID)
	}
	if added.UserID != ledger.DefaultUserID {
		t.Fatalf("expected owner %d, got %d", ledger.DefaultUserID, added.UserID)
	}

	after, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d records, got %d", len(before)+1, len(after))
	}
}

func TestIncomesAddRejectsInvalid(t *testing.T) {
	repo := ledger.NewIncomes(memory.New(), ledger.DefaultUserID, nil)

	_, err := repo.Add(context.Background(), ledger.IncomeInput{
		Source: "",
		Amount: decimal.NewFromInt(100),
		Date:   core.NewDate(2023, 5, 1),
	})
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIncomesUpdate(t *testing.T) {
	ctx := context.Background()
	repo := ledger.NewIncomes(memory.New(), ledger.DefaultUserID, nil)

	newAmount := decimal.NewFromInt(5500)
	updated, found, err := repo.Update(ctx, 1, ledger.IncomePatch{Amount: &newAmount})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !found {
		t.Fatal("expected record 1 to exist")
	}
	if !updated.Amount.Equal(newAmount) {
		t.Fatalf("amount not applied: %s", updated.Amount)
	}
	if updated.Source != "Salary" {
		t.Fatalf("untouched field changed: %q", updated.Source)
	}
	if updated.ID != 1 || updated.UserID != ledger.DefaultUserID {
		t.Fatalf("identity changed: id=%d user=%d", updated.ID, updated.UserID)
	}
}

func TestIncomesUpdateUnknownID(t *testing.T) {
	repo := ledger.NewIncomes(memory.New(), ledger.DefaultUserID, nil)

	amount := decimal.NewFromInt(1)
	_, found, err := repo.Update(context.Background(), 999, ledger.IncomePatch{Amount: &amount})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if found {
		t.Fatal("expected not-found for unknown id")
	}
}

func TestIncomesDelete(t *testing.T) {
	ctx := context.Background()
	repo := ledger.NewIncomes(memory.New(), ledger.DefaultUserID, nil)

	removed, err := repo.Delete(ctx, 2)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("expected record 2 to be removed")
	}

	_, found, err := repo.Get(ctx, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("record still present after delete")
	}
}

func TestIncomesDeleteUnknownIDLeavesCollection(t *testing.T) {
	ctx := context.Background()
	repo := ledger.NewIncomes(memory.New(), ledger.DefaultUserID, nil)

	before, _ := repo.List(ctx)
	removed, err := repo.Delete(ctx, 999)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed {
		t.Fatal("expected no removal for unknown id")
	}
	after, _ := repo.List(ctx)
	if len(after) != len(before) {
		t.Fatalf("collection changed: %d -> %d", len(before), len(after))
	}
}

// Writes must not drop other users' records from the shared collection.
func TestIncomesWritePreservesOtherUsers(t *testing.T) {
	ctx := context.Background()
	seed := []byte(`[
		{"id":1,"userId":1,"source":"Salary","amount":"5000","date":"2023-04-01"},
		{"id":2,"userId":2,"source":"Consulting","amount":"900","date":"2023-04-02"}
	]`)
	st := memory.NewSeeded(map[string][]byte{store.KeyIncomes: seed})

	mine := ledger.NewIncomes(st, 1, nil)
	theirs := ledger.NewIncomes(st, 2, nil)

	added, err := mine.Add(ctx, ledger.IncomeInput{
		Source: "Bonus",
		Amount: decimal.NewFromInt(800),
		Date:   core.NewDate(2023, 5, 1),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID != 3 {
		t.Fatalf("id must be unique across owners, got %d", added.ID)
	}

	other, err := theirs.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(other) != 1 || other[0].Source != "Consulting" {
		t.Fatalf("other user's records lost: %+v", other)
	}

	if _, err := mine.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	other, _ = theirs.List(ctx)
	if len(other) != 1 {
		t.Fatalf("delete crossed user boundary: %+v", other)
	}
}

func TestIncomesScopedToUser(t *testing.T) {
	ctx := context.Background()
	seed := []byte(`[
		{"id":1,"userId":1,"source":"Salary","amount":"5000","date":"2023-04-01"},
		{"id":2,"userId":2,"source":"Consulting","amount":"900","date":"2023-04-02"}
	]`)
	st := memory.NewSeeded(map[string][]byte{store.KeyIncomes: seed})
	repo := ledger.NewIncomes(st, 1, nil)

	// Record 2 belongs to user 2 and must be invisible here.
	_, found, err := repo.Get(ctx, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("record of another user must not be visible")
	}
	if removed, _ := repo.Delete(ctx, 2); removed {
		t.Fatal("record of another user must not be deletable")
	}
}

func TestIncomesNotifier(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	repo := ledger.NewIncomes(memory.New(), ledger.DefaultUserID, n)

	if _, err := repo.Add(ctx, ledger.IncomeInput{
		Source: "Bonus",
		Amount: decimal.NewFromInt(800),
		Date:   core.NewDate(2023, 5, 1),
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	amount := decimal.NewFromInt(850)
	if _, _, err := repo.Update(ctx, 1, ledger.IncomePatch{Amount: &amount}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{"incomes:add", "incomes:update", "incomes:delete"}
	if len(n.events) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), n.events)
	}
	for i, ev := range want {
		if n.events[i] != ev {
			t.Fatalf("event %d: expected %q, got %q", i, ev, n.events[i])
		}
	}
}
