package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/export"
	"github.com/dmitrijs2005/gophledger/internal/client/stats"
	"github.com/dmitrijs2005/gophledger/internal/ledger"
)

const statsUsage = "Usage: stats month [YYYY-MM] | stats year [YYYY] | stats range <from> <to>"

func (a *App) printTotals(t stats.Totals) {
	a.printf("수입 %s / 지출 %s / 잔액 %s (%d건)\n",
		export.FormatKRW(t.Income), export.FormatKRW(t.Expense), export.FormatKRW(t.Remaining), t.Count)
}

func (a *App) printBuckets(buckets []stats.Bucket, unit string) {
	for _, b := range buckets {
		if b.Income == 0 && b.Expense == 0 {
			continue
		}
		a.printf("%2d%s  +%s  -%s\n", b.Index, unit, export.FormatKRW(b.Income), export.FormatKRW(b.Expense))
	}
}

func validDate(s string) bool {
	_, err := time.Parse(ledger.DateLayout, s)
	return err == nil
}

// Stats prints totals for a month, a year or a date range, with a per-day
// or per-month breakdown.
func (a *App) Stats(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(statsUsage)
		return nil
	}
	if !a.ready(ctx) {
		return nil
	}
	items := a.ledger.Items()

	switch args[0] {
	case "month":
		month := now().Format("2006-01")
		if len(args) > 1 {
			month = args[1]
		}
		daily, err := stats.Daily(items, month)
		if err != nil {
			a.println(statsUsage)
			return nil
		}
		a.println(month)
		a.printTotals(stats.Summarize(items, stats.Month(month)))
		a.printBuckets(daily, "일")

	case "year":
		year := now().Format("2006")
		if len(args) > 1 {
			year = args[1]
		}
		if _, err := time.Parse("2006", year); err != nil {
			a.println(statsUsage)
			return nil
		}
		a.println(year)
		a.printTotals(stats.Summarize(items, stats.Year(year)))
		a.printBuckets(stats.Monthly(items, year), "월")

	case "range":
		if len(args) != 3 || !validDate(args[1]) || !validDate(args[2]) {
			a.println(statsUsage)
			return nil
		}
		a.printf("%s ~ %s\n", args[1], args[2])
		a.printTotals(stats.Summarize(items, stats.Range(args[1], args[2])))

	default:
		a.println(statsUsage)
	}
	return nil
}

// Categories prints the expense share per category, for one month when
// given.
func (a *App) Categories(ctx context.Context, args []string) error {
	if !a.ready(ctx) {
		return nil
	}

	f := stats.All()
	if len(args) > 0 {
		if _, err := stats.DaysIn(args[0]); err != nil {
			a.println("Usage: categories [YYYY-MM]")
			return nil
		}
		f = stats.Month(args[0])
	}

	shares := stats.ByCategory(a.ledger.Items(), f)
	if len(shares) == 0 {
		a.println("지출 내역이 없습니다.")
		return nil
	}
	for _, s := range shares {
		a.printf("%-6s %s (%s%%)\n", s.Category, export.FormatKRW(s.Amount), s.Share.StringFixed(1))
	}
	return nil
}
