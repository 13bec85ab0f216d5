package rpc

import "time"

// Identity is a user account as stored by the backend. PasswordHash is the
// hex SHA-256 digest of the PIN; the client compares it on login.
type Identity struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Entry is one ledger row.
type Entry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"user_id"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Memo      string    `json:"memo"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateIdentityRequest struct {
	Nickname     string `json:"nickname"`
	PasswordHash string `json:"password_hash"`
}

type CreateIdentityResponse struct {
	Identity Identity `json:"identity"`
}

type FindIdentityRequest struct {
	Nickname string `json:"nickname"`
}

type FindIdentityResponse struct {
	Identity Identity `json:"identity"`
}

type DeleteIdentityRequest struct {
	ID string `json:"id"`
}

type DeleteIdentityResponse struct{}

type ListEntriesRequest struct {
	OwnerID string `json:"owner_id"`
}

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

type InsertEntryRequest struct {
	OwnerID  string `json:"owner_id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Memo     string `json:"memo"`
	Amount   int64  `json:"amount"`
}

type InsertEntryResponse struct {
	Entry Entry `json:"entry"`
}

// UpdateEntryRequest carries a partial update: nil fields are omitted from
// the encoded message and left untouched by the backend.
type UpdateEntryRequest struct {
	OwnerID  string  `json:"owner_id"`
	ID       string  `json:"id"`
	Date     *string `json:"date,omitempty"`
	Type     *string `json:"type,omitempty"`
	Category *string `json:"category,omitempty"`
	Memo     *string `json:"memo,omitempty"`
	Amount   *int64  `json:"amount,omitempty"`
}

type UpdateEntryResponse struct {
	Entry Entry `json:"entry"`
}

type DeleteEntryRequest struct {
	OwnerID string `json:"owner_id"`
	ID      string `json:"id"`
}

type DeleteEntryResponse struct{}

type DeleteAllEntriesRequest struct {
	OwnerID string `json:"owner_id"`
}

type DeleteAllEntriesResponse struct {
	Deleted int64 `json:"deleted"`
}

type PresignBackupUploadRequest struct {
	OwnerID  string `json:"owner_id"`
	Filename string `json:"filename"`
}

type PresignBackupUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type PresignBackupDownloadRequest struct {
	OwnerID string `json:"owner_id"`
	Key     string `json:"key"`
}

type PresignBackupDownloadResponse struct {
	URL string `json:"url"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
