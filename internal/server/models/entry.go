package models

import "time"

// Entry is a ledger row owned by exactly one user.
type Entry struct {
	ID        string
	UserID    string
	Date      string
	Type      string
	Category  string
	Memo      string
	Amount    int64
	CreatedAt time.Time
}

// EntryPatch lists the fields to change in an update; nil means "keep".
type EntryPatch struct {
	Date     *string
	Type     *string
	Category *string
	Memo     *string
	Amount   *int64
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.Date == nil && p.Type == nil && p.Category == nil && p.Memo == nil && p.Amount == nil
}
