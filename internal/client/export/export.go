// Package export writes ledger data out of the client: backup and
// spreadsheet file names, the xlsx writer and amount formatting.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
)

const (
	DomainLedger = "ledger"
	DomainMemo   = "memo"

	SheetName = "내역"
	// numFmtThousands is the built-in "#,##0" number format.
	numFmtThousands = 3
)

var header = []any{"날짜", "구분", "카테고리", "메모", "금액"}

// BackupFilename returns "<domain>-backup-YYYYMMDD-HHMMSS.json".
func BackupFilename(domain string, t time.Time) string {
	return fmt.Sprintf("%s-backup-%s.json", domain, t.Format("20060102-150405"))
}

// XLSXFilename returns "entries_YYYYMMDD_HHMM.xlsx".
func XLSXFilename(t time.Time) string {
	return fmt.Sprintf("entries_%s.xlsx", t.Format("20060102_1504"))
}

// FormatKRW renders n with thousands separators and the won suffix.
func FormatKRW(n int64) string {
	return humanize.Comma(n) + "원"
}

// WriteXLSX writes entries as a single-sheet workbook with one header row.
// Amounts are numeric cells shown with thousands separators.
func WriteXLSX(w io.Writer, entries []models.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.Date, e.Kind.Label(), e.Category, e.Memo, e.Amount}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(entries) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
		if err != nil {
			return fmt.Errorf("amount style: %w", err)
		}
		last := fmt.Sprintf("E%d", len(entries)+1)
		if err := f.SetCellStyle(SheetName, "E2", last, style); err != nil {
			return fmt.Errorf("apply amount style: %w", err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "D", "D", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "E", "E", 16); err != nil {
		return err
	}

	return f.Write(w)
}
