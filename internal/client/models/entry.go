package models

import "github.com/dmitrijs2005/gophledger/internal/ledger"

// Entry is one ledger row as confirmed by the backend. The JSON shape is
// the backup file format.
type Entry struct {
	ID       string      `json:"id"`
	Date     string      `json:"date"`
	Kind     ledger.Kind `json:"type"`
	Category string      `json:"category"`
	Memo     string      `json:"memo"`
	Amount   int64       `json:"amount"`
}

// NewEntry is an entry that has not been stored yet.
type NewEntry struct {
	Date     string
	Kind     ledger.Kind
	Category string
	Memo     string
	Amount   int64
}

// EntryPatch lists the fields to change; nil fields are left as they are
// and are not sent to the backend.
type EntryPatch struct {
	Date     *string
	Kind     *ledger.Kind
	Category *string
	Memo     *string
	Amount   *int64
}

func (p EntryPatch) Empty() bool {
	return p.Date == nil && p.Kind == nil && p.Category == nil && p.Memo == nil && p.Amount == nil
}

// Validate applies the ledger field rules to a new entry.
func (e NewEntry) Validate() error {
	if err := ledger.ValidateDate(e.Date); err != nil {
		return err
	}
	if err := ledger.ValidateKind(string(e.Kind)); err != nil {
		return err
	}
	if err := ledger.ValidateCategory(e.Category); err != nil {
		return err
	}
	if err := ledger.ValidateMemo(e.Memo); err != nil {
		return err
	}
	return ledger.ValidateAmount(e.Amount)
}
