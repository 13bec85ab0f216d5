// Package models defines the client-side records: identities, ledger
// entries and memos.
package models

// Identity is the signed-in user as cached on the device.
type Identity struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// IdentityRecord is an identity as returned by the backend, including the
// stored PIN digest the client verifies on login.
type IdentityRecord struct {
	ID           string
	Nickname     string
	PasswordHash string
}

func (r IdentityRecord) Identity() Identity {
	return Identity{ID: r.ID, Nickname: r.Nickname}
}
