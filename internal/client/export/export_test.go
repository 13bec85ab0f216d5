package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFilenames(t *testing.T) {
	ts := time.Date(2025, 3, 7, 9, 5, 4, 0, time.UTC)

	assert.Equal(t, "ledger-backup-20250307-090504.json", BackupFilename(DomainLedger, ts))
	assert.Equal(t, "memo-backup-20250307-090504.json", BackupFilename(DomainMemo, ts))
	assert.Equal(t, "entries_20250307_0905.xlsx", XLSXFilename(ts))
}

func TestFormatKRW(t *testing.T) {
	assert.Equal(t, "0원", FormatKRW(0))
	assert.Equal(t, "1,234원", FormatKRW(1234))
	assert.Equal(t, "999,999,999,999원", FormatKRW(ledger.MaxAmount))
	assert.Equal(t, "-8,000원", FormatKRW(-8000))
}

func TestWriteXLSX(t *testing.T) {
	entries := []models.Entry{
		{ID: "2", Date: "2025-10-02", Kind: ledger.KindIncome, Category: "급여", Amount: 2000000},
		{ID: "1", Date: "2025-10-01", Kind: ledger.KindExpense, Category: "식비", Memo: "점심", Amount: 8000},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, entries))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"날짜", "구분", "카테고리", "메모", "금액"}, rows[0])
	assert.Equal(t, []string{"2025-10-02", "수입", "급여", "", "2000000"}, rows[1])
	assert.Equal(t, []string{"2025-10-01", "지출", "식비", "점심", "8000"}, rows[2])

	shown, err := f.GetCellValue(SheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "2,000,000", shown)
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
