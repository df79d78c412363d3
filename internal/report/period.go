package report

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/core"
)

// Granularity selects the bucket width of a period series.
type Granularity int

const (
	Monthly Granularity = iota
	Quarterly
	Yearly
)

func (g Granularity) String() string {
	switch g {
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	default:
		return "period"
	}
}

// ParseGranularity parses a user-supplied granularity name.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "monthly":
		return Monthly, nil
	case "quarter", "quarterly":
		return Quarterly, nil
	case "year", "yearly":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown granularity %q", s)
	}
}

// periodKey is the sortable identity of a bucket. Labels are formatted
// from it only at the boundary; sorting always compares year first, then
// the sub-period index.
type periodKey struct {
	year  int
	index int
}

func (k periodKey) before(o periodKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	return k.index < o.index
}

// keyFor buckets a date at the given granularity. The index is the month
// (1-12), quarter (1-4), or 0 for yearly buckets.
func keyFor(d core.Date, g Granularity) periodKey {
	switch g {
	case Quarterly:
		return periodKey{year: d.Year(), index: (d.Month()-1)/3 + 1}
	case Yearly:
		return periodKey{year: d.Year()}
	default:
		return periodKey{year: d.Year(), index: d.Month()}
	}
}

// label formats a bucket key for display.
func (k periodKey) label(g Granularity) string {
	switch g {
	case Quarterly:
		return fmt.Sprintf("Q%d %d", k.index, k.year)
	case Yearly:
		return fmt.Sprintf("%d", k.year)
	default:
		return fmt.Sprintf("%d/%d", k.index, k.year)
	}
}

// monthLabel is the locale-invariant short month name ("Apr").
func monthLabel(month int) string {
	return time.Month(month).String()[:3]
}
