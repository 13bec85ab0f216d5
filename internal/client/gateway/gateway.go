// Package gateway is the client's typed boundary to the ledger backend.
// Each call is one request and one response: no retries, no caching.
package gateway

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophledger/internal/client/models"
)

var (
	ErrValidation   = errors.New("rejected by server")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
)

// Gateway is implemented by GRPCGateway and by test fakes. Every entry call
// is scoped by the caller-supplied owner id.
type Gateway interface {
	CreateIdentity(ctx context.Context, nickname, passwordHash string) (*models.IdentityRecord, error)
	FindIdentity(ctx context.Context, nickname string) (*models.IdentityRecord, error)
	DeleteIdentity(ctx context.Context, id string) error

	ListEntries(ctx context.Context, ownerID string) ([]models.Entry, error)
	InsertEntry(ctx context.Context, ownerID string, e models.NewEntry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.Entry, error)
	DeleteEntry(ctx context.Context, ownerID, id string) error
	DeleteAllEntries(ctx context.Context, ownerID string) (int64, error)

	PresignBackupUpload(ctx context.Context, ownerID, filename string) (key, url string, err error)
	PresignBackupDownload(ctx context.Context, ownerID, key string) (string, error)

	Ping(ctx context.Context) error
}
