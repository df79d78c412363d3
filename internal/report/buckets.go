package report

import (
	"log/slog"
	"sort"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

// Grouping primitives of the aggregation engine. All of them accept
// empty input and then produce empty output; a record with a zero date
// where one is required is a data-integrity problem and is logged and
// skipped rather than aborting the fold.

// GroupByMonth buckets records by calendar month of their date field and
// sums the amount field. Buckets come back in chronological order.
func GroupByMonth[T any](records []T, date func(T) core.Date, amount func(T) decimal.Decimal) []core.MonthBucket {
	totals := make(map[periodKey]decimal.Decimal)
	for _, rec := range records {
		d := date(rec)
		if d.IsZero() {
			slog.Warn("Skipping record with missing date in month grouping")
			continue
		}
		k := keyFor(d, Monthly)
		totals[k] = totals[k].Add(amount(rec))
	}

	keys := make([]periodKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	out := make([]core.MonthBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, core.MonthBucket{
			Year:  k.year,
			Month: k.index,
			Label: monthLabel(k.index),
			Total: totals[k],
		})
	}
	return out
}

// GroupByCategory buckets records by an arbitrary string field and sums
// the amount field. Buckets keep the first-seen order of the key.
func GroupByCategory[T any](records []T, key func(T) string, amount func(T) decimal.Decimal) []core.CategoryTotal {
	order := make([]string, 0)
	totals := make(map[string]decimal.Decimal)
	for _, rec := range records {
		k := key(rec)
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(amount(rec))
	}

	out := make([]core.CategoryTotal, 0, len(order))
	for _, k := range order {
		out = append(out, core.CategoryTotal{Key: k, Total: totals[k]})
	}
	return out
}

// GroupByPeriod generalizes month bucketing to month, quarter, or year
// granularity. Buckets come back sorted by year then sub-period index;
// the label is formatted from the structured key only here, never parsed
// back.
func GroupByPeriod[T any](records []T, g Granularity, date func(T) core.Date, amount func(T) decimal.Decimal) []core.PeriodTotal {
	totals := make(map[periodKey]decimal.Decimal)
	for _, rec := range records {
		d := date(rec)
		if d.IsZero() {
			slog.Warn("Skipping record with missing date in period grouping",
				"granularity", g.String())
			continue
		}
		k := keyFor(d, g)
		totals[k] = totals[k].Add(amount(rec))
	}

	keys := make([]periodKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	out := make([]core.PeriodTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, core.PeriodTotal{
			Year:  k.year,
			Index: k.index,
			Label: k.label(g),
			Total: totals[k],
		})
	}
	return out
}
