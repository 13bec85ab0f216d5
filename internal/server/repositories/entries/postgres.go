// Package entries provides the PostgreSQL-backed repository for ledger rows.
// Every statement is scoped by user_id; a row owned by someone else behaves
// exactly like a missing row.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophledger/internal/common"
	"github.com/dmitrijs2005/gophledger/internal/dbx"
	"github.com/dmitrijs2005/gophledger/internal/server/models"
)

const entryColumns = `id, user_id, date, type, category, memo, amount, created_at`

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var (
		e    models.Entry
		memo sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Type, &e.Category, &memo, &e.Amount, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Memo = memo.String
	return &e, nil
}

// List returns the owner's entries, newest date first and, within a date,
// the most recently created first.
func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores entry (ID and UserID must be set) and fills CreatedAt.
func (r *PostgresRepository) Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO ledger_entries (id, user_id, date, type, category, memo, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.Date, entry.Type, entry.Category, entry.Memo, entry.Amount,
	).Scan(&entry.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrFailedPrecondition
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// Update applies the non-nil fields of patch and returns the full row as
// stored afterwards.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.Entry, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: empty patch", common.ErrInvalidArgument)
	}

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Date != nil {
		set("date", *patch.Date)
	}
	if patch.Type != nil {
		set("type", *patch.Type)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Memo != nil {
		set("memo", *patch.Memo)
	}
	if patch.Amount != nil {
		set("amount", *patch.Amount)
	}
	args = append(args, ownerID, id)

	query := fmt.Sprintf(`UPDATE ledger_entries SET %s
		WHERE user_id = $%d AND id = $%d
		RETURNING %s`, strings.Join(sets, ", "), len(args)-1, len(args), entryColumns)

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Delete removes one entry of the owner.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE user_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteAll removes every entry of the owner and returns how many went away.
func (r *PostgresRepository) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE user_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
