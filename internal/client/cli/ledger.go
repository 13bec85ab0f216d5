package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/export"
	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/stats"
	"github.com/dmitrijs2005/gophledger/internal/ledger"
)

// now is a test seam for the clock.
var now = time.Now

// ready blocks until the ledger has finished loading for the current user.
func (a *App) ready(ctx context.Context) bool {
	if !a.requireLogin() {
		return false
	}
	if err := a.ledger.WaitReady(ctx); err != nil {
		a.println("내역을 불러오지 못했습니다.")
		return false
	}
	return true
}

func (a *App) findEntry(id string) (models.Entry, bool) {
	for _, e := range a.ledger.Items() {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}

func (a *App) printEntry(e models.Entry) {
	sign := "-"
	if e.Kind == ledger.KindIncome {
		sign = "+"
	}
	a.printf("%s  %s  %s  %-6s %s%s  %s\n", e.ID, e.Date, e.Kind.Label(), e.Category, sign, export.FormatKRW(e.Amount), e.Memo)
}

func (a *App) readKind(def ledger.Kind) (ledger.Kind, error) {
	for {
		s, err := GetSimpleText(a.reader, fmt.Sprintf("구분 (income/expense) [%s]", def), a.out)
		if err != nil {
			return "", err
		}
		if s == "" {
			return def, nil
		}
		if k, ok := parseKind(s); ok {
			return k, nil
		}
		a.println(ledger.ErrInvalidKind.Error())
	}
}

func (a *App) readCategory(def string) (string, error) {
	a.println(categoryMenu())
	for {
		s, err := GetSimpleText(a.reader, fmt.Sprintf("카테고리 [%s]", def), a.out)
		if err != nil {
			return "", err
		}
		if s == "" {
			return def, nil
		}
		c, perr := pickCategory(s)
		if perr == nil {
			return c, nil
		}
		a.println(perr.Error())
	}
}

func (a *App) readAmount(prompt string, allowBlank bool) (int64, bool, error) {
	for {
		s, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return 0, false, err
		}
		if s == "" && allowBlank {
			return 0, false, nil
		}
		n, perr := parseAmount(s)
		if perr == nil {
			return n, true, nil
		}
		a.println(perr.Error())
	}
}

// Add prompts for a new entry and stores it.
func (a *App) Add(ctx context.Context, _ []string) error {
	if !a.ready(ctx) {
		return nil
	}

	today := now().Format(ledger.DateLayout)
	date, err := GetSimpleText(a.reader, fmt.Sprintf("날짜 (YYYY-MM-DD) [%s]", today), a.out)
	if err != nil {
		return err
	}
	if date == "" {
		date = today
	}
	kind, err := a.readKind(ledger.KindExpense)
	if err != nil {
		return err
	}
	category, err := a.readCategory(ledger.Categories[0])
	if err != nil {
		return err
	}
	memo, err := GetSimpleText(a.reader, fmt.Sprintf("메모 (최대 %d자)", ledger.MaxMemoLength), a.out)
	if err != nil {
		return err
	}
	amount, _, err := a.readAmount("금액", false)
	if err != nil {
		return err
	}

	r := a.ledger.Add(ctx, models.NewEntry{Date: date, Kind: kind, Category: category, Memo: memo, Amount: amount})
	if report(a, r, "저장되었습니다.") {
		a.printEntry(r.Value())
	}
	return r.Err()
}

// List prints entries, optionally only those of one month, followed by
// the totals.
func (a *App) List(ctx context.Context, args []string) error {
	if !a.ready(ctx) {
		return nil
	}

	f := stats.All()
	if len(args) > 0 {
		if _, err := stats.DaysIn(args[0]); err != nil {
			a.println("Usage: list [YYYY-MM]")
			return nil
		}
		f = stats.Month(args[0])
	}

	items := a.ledger.Items()
	shown := 0
	for _, e := range items {
		if f(e.Date) {
			a.printEntry(e)
			shown++
		}
	}
	if shown == 0 {
		a.println("내역이 없습니다.")
		return nil
	}
	a.printTotals(stats.Summarize(items, f))
	return nil
}

// Update edits one entry. Blank answers keep the current value and only
// changed fields are sent.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: update <id>")
		return nil
	}
	if !a.ready(ctx) {
		return nil
	}
	cur, ok := a.findEntry(args[0])
	if !ok {
		a.println("해당 내역을 찾을 수 없습니다.")
		return nil
	}

	var patch models.EntryPatch

	date, err := GetSimpleText(a.reader, fmt.Sprintf("날짜 [%s]", cur.Date), a.out)
	if err != nil {
		return err
	}
	if date != "" && date != cur.Date {
		patch.Date = &date
	}
	kind, err := a.readKind(cur.Kind)
	if err != nil {
		return err
	}
	if kind != cur.Kind {
		patch.Kind = &kind
	}
	category, err := a.readCategory(cur.Category)
	if err != nil {
		return err
	}
	if category != cur.Category {
		patch.Category = &category
	}
	memo, err := GetSimpleText(a.reader, fmt.Sprintf("메모 [%s] ('-' 입력 시 비움)", cur.Memo), a.out)
	if err != nil {
		return err
	}
	switch {
	case memo == "-":
		if cur.Memo != "" {
			empty := ""
			patch.Memo = &empty
		}
	case memo != "" && memo != cur.Memo:
		patch.Memo = &memo
	}
	amount, set, err := a.readAmount(fmt.Sprintf("금액 [%s]", export.FormatKRW(cur.Amount)), true)
	if err != nil {
		return err
	}
	if set && amount != cur.Amount {
		patch.Amount = &amount
	}

	r := a.ledger.Update(ctx, cur.ID, patch)
	if report(a, r, "수정되었습니다.") {
		a.printEntry(r.Value())
	}
	return r.Err()
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: delete <id>")
		return nil
	}
	if !a.ready(ctx) {
		return nil
	}
	r := a.ledger.Remove(ctx, args[0])
	report(a, r, "삭제되었습니다.")
	return r.Err()
}
