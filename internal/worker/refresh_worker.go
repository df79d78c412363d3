// Package worker implements the background refresh worker. It consumes
// ledger change events and recomputes the financial summary, so stale
// or malformed records are surfaced in the logs close to the write that
// introduced them instead of at the next dashboard visit.
package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	applog "fintrack/internal/log"
	"fintrack/internal/report"
)

type RefreshWorker struct {
	engine   *report.Engine
	client   *amqp.Client
	interval time.Duration
	logger   *applog.Logger
}

func NewRefreshWorker(engine *report.Engine, client *amqp.Client, interval time.Duration, logger *applog.Logger) *RefreshWorker {
	return &RefreshWorker{
		engine:   engine,
		client:   client,
		interval: interval,
		logger:   logger.WithComponent(applog.ComponentWorker),
	}
}

// Run consumes change events and ticks a periodic refresh until ctx is
// cancelled. Both loops share the engine; it is stateless, so there is
// nothing to guard.
func (w *RefreshWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := w.client.ConsumeRecordChanges(ctx, func(msg *amqp.RecordChangeMessage) error {
			w.logger.InfoContext(ctx, "Ledger change received",
				applog.FieldCollection, msg.Collection,
				applog.FieldOperation, msg.Op,
				applog.FieldRecordID, msg.ID)
			return w.refresh(ctx)
		})
		if err == context.Canceled {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := w.refresh(ctx); err != nil {
					w.logger.ErrorContext(ctx, "Periodic refresh failed", applog.FieldError, err)
				}
			}
		}
	})

	return g.Wait()
}

func (w *RefreshWorker) refresh(ctx context.Context) error {
	summary, err := w.engine.Summary(ctx)
	if err != nil {
		return fmt.Errorf("refresh summary: %w", err)
	}

	w.logger.InfoContext(ctx, "Financial summary refreshed",
		"total_income", summary.TotalIncome.String(),
		"total_expenses", summary.TotalExpenses.String(),
		"total_savings", summary.TotalSavings.String(),
		"total_investments", summary.TotalInvestments.String(),
		"total_debts", summary.TotalDebts.String(),
		"net_worth", summary.NetWorth.String())
	return nil
}
