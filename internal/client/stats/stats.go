// Package stats aggregates ledger entries for the statistics views. All
// functions are linear scans over the in-memory list.
package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// Filter selects entries by their "YYYY-MM-DD" date.
type Filter func(date string) bool

func All() Filter {
	return func(string) bool { return true }
}

// Month matches dates in "YYYY-MM".
func Month(ym string) Filter {
	prefix := ym + "-"
	return func(d string) bool { return strings.HasPrefix(d, prefix) }
}

// Year matches dates in "YYYY".
func Year(y string) Filter {
	prefix := y + "-"
	return func(d string) bool { return strings.HasPrefix(d, prefix) }
}

// Range matches from <= date <= to. An empty bound is open.
func Range(from, to string) Filter {
	return func(d string) bool {
		if from != "" && d < from {
			return false
		}
		if to != "" && d > to {
			return false
		}
		return true
	}
}

type Totals struct {
	Income    int64
	Expense   int64
	Remaining int64
	Count     int
}

func Summarize(entries []models.Entry, f Filter) Totals {
	var t Totals
	for _, e := range entries {
		if !f(e.Date) {
			continue
		}
		t.Count++
		if e.Kind == ledger.KindIncome {
			t.Income += e.Amount
		} else {
			t.Expense += e.Amount
		}
	}
	t.Remaining = t.Income - t.Expense
	return t
}

// Bucket is the income and expense of one day or month. Index is 1-based.
type Bucket struct {
	Index   int
	Income  int64
	Expense int64
}

func (b *Bucket) add(e models.Entry) {
	if e.Kind == ledger.KindIncome {
		b.Income += e.Amount
	} else {
		b.Expense += e.Amount
	}
}

// DaysIn returns the number of days of month "YYYY-MM".
func DaysIn(month string) (int, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, fmt.Errorf("month must be YYYY-MM: %w", err)
	}
	return t.AddDate(0, 1, -1).Day(), nil
}

// Daily returns one bucket per day of month.
func Daily(entries []models.Entry, month string) ([]Bucket, error) {
	days, err := DaysIn(month)
	if err != nil {
		return nil, err
	}

	out := make([]Bucket, days)
	for i := range out {
		out[i].Index = i + 1
	}

	in := Month(month)
	for _, e := range entries {
		if !in(e.Date) || len(e.Date) < 10 {
			continue
		}
		day, err := strconv.Atoi(e.Date[8:10])
		if err != nil || day < 1 || day > days {
			continue
		}
		out[day-1].add(e)
	}
	return out, nil
}

// Monthly returns twelve buckets for year.
func Monthly(entries []models.Entry, year string) []Bucket {
	out := make([]Bucket, 12)
	for i := range out {
		out[i].Index = i + 1
	}

	in := Year(year)
	for _, e := range entries {
		if !in(e.Date) || len(e.Date) < 7 {
			continue
		}
		m, err := strconv.Atoi(e.Date[5:7])
		if err != nil || m < 1 || m > 12 {
			continue
		}
		out[m-1].add(e)
	}
	return out
}

type CategoryShare struct {
	Category string
	Amount   int64
	// Share is the percentage of all matching expenses, one decimal place.
	Share decimal.Decimal
}

// ByCategory sums expenses per category, largest first.
func ByCategory(entries []models.Entry, f Filter) []CategoryShare {
	sums := map[string]int64{}
	var total int64
	for _, e := range entries {
		if e.Kind != ledger.KindExpense || !f(e.Date) {
			continue
		}
		key := e.Category
		if strings.TrimSpace(key) == "" {
			key = ledger.FallbackCategory
		}
		sums[key] += e.Amount
		total += e.Amount
	}

	out := make([]CategoryShare, 0, len(sums))
	hundred := decimal.NewFromInt(100)
	for c, amt := range sums {
		share := decimal.Zero
		if total > 0 {
			share = decimal.NewFromInt(amt).Mul(hundred).Div(decimal.NewFromInt(total)).Round(1)
		}
		out = append(out, CategoryShare{Category: c, Amount: amt, Share: share})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}
