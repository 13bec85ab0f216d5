package entries

import (
	"context"

	"github.com/dmitrijs2005/gophledger/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, ownerID string) ([]*models.Entry, error)
	Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Update(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.Entry, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteAll(ctx context.Context, ownerID string) (int64, error)
}
