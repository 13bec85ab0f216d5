package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophledger/internal/common"
	"github.com/dmitrijs2005/gophledger/internal/dbx"
	"github.com/dmitrijs2005/gophledger/internal/server/models"
	"github.com/dmitrijs2005/gophledger/internal/server/repositories/entries"
	"github.com/dmitrijs2005/gophledger/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	created   []*models.User
	byName    map[string]*models.User
	createFn  func(*models.User) (*models.User, error)
	deleted   []string
	deleteErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createFn != nil {
		return f.createFn(u)
	}
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	if u, ok := f.byName[nickname]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEntriesRepo struct {
	listOut   []*models.Entry
	listOwner string
	inserted  []*models.Entry
	insertErr error

	updOwner, updID string
	updPatch        models.EntryPatch
	updOut          *models.Entry
	updErr          error

	delOwner, delID string
	delErr          error

	deleteAllN int64
}

func (f *fakeEntriesRepo) List(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	f.listOwner = ownerID
	return f.listOut, nil
}

func (f *fakeEntriesRepo) Insert(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, e)
	return e, nil
}

func (f *fakeEntriesRepo) Update(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.Entry, error) {
	f.updOwner, f.updID, f.updPatch = ownerID, id, patch
	return f.updOut, f.updErr
}

func (f *fakeEntriesRepo) Delete(ctx context.Context, ownerID, id string) error {
	f.delOwner, f.delID = ownerID, id
	return f.delErr
}

func (f *fakeEntriesRepo) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	return f.deleteAllN, nil
}

type fakeRepoManager struct {
	users   *fakeUsersRepo
	entries *fakeEntriesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository { return m.entries }

func newFakeManager() *fakeRepoManager {
	return &fakeRepoManager{users: &fakeUsersRepo{byName: map[string]*models.User{}}, entries: &fakeEntriesRepo{}}
}

func fixedIDs(t interface{ Cleanup(func()) }, ids ...string) {
	orig := newID
	i := 0
	newID = func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
	t.Cleanup(func() { newID = orig })
}
