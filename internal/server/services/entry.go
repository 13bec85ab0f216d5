package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophledger/internal/common"
	"github.com/dmitrijs2005/gophledger/internal/ledger"
	"github.com/dmitrijs2005/gophledger/internal/server/models"
	"github.com/dmitrijs2005/gophledger/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// EntryService validates and persists ledger entries. Every call is scoped
// to one owner.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager) *EntryService {
	return &EntryService{db: db, repomanager: m}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", common.ErrInvalidArgument, err)
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("%w: owner is required", common.ErrInvalidArgument)
	}
	return nil
}

// checkEntryID rejects an empty id. Ids are uuids, so anything that does not
// parse cannot name a stored row.
func checkEntryID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", common.ErrInvalidArgument)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("entry %q: %w", id, common.ErrorNotFound)
	}
	return nil
}

// List returns the owner's entries, newest date first.
func (s *EntryService) List(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	items, err := s.repomanager.Entries(s.db).List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return items, nil
}

// Insert validates e, assigns it a new id and stores it. The returned
// entry carries the server-side created_at.
func (s *EntryService) Insert(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if err := requireOwner(e.UserID); err != nil {
		return nil, err
	}
	if err := validateEntry(e); err != nil {
		return nil, invalid(err)
	}

	in := *e
	in.ID = newID()

	out, err := s.repomanager.Entries(s.db).Insert(ctx, &in)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	return out, nil
}

// Update applies the defined fields of patch and returns the full row.
func (s *EntryService) Update(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.Entry, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if err := checkEntryID(id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrInvalidArgument)
	}
	if err := validatePatch(patch); err != nil {
		return nil, invalid(err)
	}

	out, err := s.repomanager.Entries(s.db).Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, fmt.Errorf("error updating entry: %w", err)
	}
	return out, nil
}

func (s *EntryService) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := checkEntryID(id); err != nil {
		return err
	}
	if err := s.repomanager.Entries(s.db).Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}
	return nil
}

// DeleteAll removes every entry of the owner and reports how many rows went.
func (s *EntryService) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	if err := requireOwner(ownerID); err != nil {
		return 0, err
	}
	n, err := s.repomanager.Entries(s.db).DeleteAll(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("error deleting entries: %w", err)
	}
	return n, nil
}

func validateEntry(e *models.Entry) error {
	if err := ledger.ValidateDate(e.Date); err != nil {
		return err
	}
	if err := ledger.ValidateKind(e.Type); err != nil {
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

func validatePatch(p models.EntryPatch) error {
	if p.Date != nil {
		if err := ledger.ValidateDate(*p.Date); err != nil {
			return err
		}
	}
	if p.Type != nil {
		if err := ledger.ValidateKind(*p.Type); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := ledger.ValidateCategory(*p.Category); err != nil {
			return err
		}
	}
	if p.Memo != nil {
		if err := ledger.ValidateMemo(*p.Memo); err != nil {
			return err
		}
	}
	if p.Amount != nil {
		if err := ledger.ValidateAmount(*p.Amount); err != nil {
			return err
		}
	}
	return nil
}
