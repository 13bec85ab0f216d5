package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/common"
	"github.com/dmitrijs2005/gophledger/internal/logging"
	"github.com/dmitrijs2005/gophledger/internal/rpc"
	"github.com/dmitrijs2005/gophledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeUser struct {
	createOut *models.User
	createErr error
	findOut   *models.User
	findErr   error
	deleteErr error
	deletedID string
}

func (f *fakeUser) CreateIdentity(ctx context.Context, nickname, hash string) (*models.User, error) {
	return f.createOut, f.createErr
}
func (f *fakeUser) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return f.findOut, f.findErr
}
func (f *fakeUser) DeleteIdentity(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeEntry struct {
	listOut  []*models.Entry
	err      error
	inserted *models.Entry
	patch    models.EntryPatch
	deleted  int64
}

func (f *fakeEntry) List(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	return f.listOut, f.err
}
func (f *fakeEntry) Insert(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = e
	out := *e
	out.ID = "e-new"
	return &out, nil
}
func (f *fakeEntry) Update(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.patch = patch
	return &models.Entry{ID: id, UserID: ownerID, Amount: 1}, nil
}
func (f *fakeEntry) Delete(ctx context.Context, ownerID, id string) error { return f.err }
func (f *fakeEntry) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	return f.deleted, f.err
}

type fakeBackup struct {
	key, url string
	err      error
}

func (f *fakeBackup) PresignUpload(ctx context.Context, ownerID, filename string) (string, string, error) {
	return f.key, f.url, f.err
}
func (f *fakeBackup) PresignDownload(ctx context.Context, ownerID, key string) (string, error) {
	return f.url, f.err
}

func newServer(u userSvc, e entrySvc, b backupSvc) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", "key", logging.NopLogger{}, u, e, b)
}

// ---- tests ----

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeUser{}, &fakeEntry{}, &fakeBackup{})
	resp, err := s.Ping(context.Background(), &rpc.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestCreateIdentity(t *testing.T) {
	created := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	u := &fakeUser{createOut: &models.User{ID: "u-1", Nickname: "alice", PasswordHash: "h", CreatedAt: created}}
	s := newServer(u, &fakeEntry{}, &fakeBackup{})

	resp, err := s.CreateIdentity(context.Background(), &rpc.CreateIdentityRequest{Nickname: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, rpc.Identity{ID: "u-1", Nickname: "alice", PasswordHash: "h", CreatedAt: created}, resp.Identity)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("%w: nickname is required", common.ErrInvalidArgument), codes.InvalidArgument},
		{fmt.Errorf("error searching user: %w", common.ErrorNotFound), codes.NotFound},
		{fmt.Errorf("error creating user: %w", common.ErrNicknameTaken), codes.AlreadyExists},
		{fmt.Errorf("error deleting user: %w", common.ErrFailedPrecondition), codes.FailedPrecondition},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("db down"), codes.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			s := newServer(&fakeUser{createErr: tc.err}, &fakeEntry{}, &fakeBackup{})
			_, err := s.CreateIdentity(context.Background(), &rpc.CreateIdentityRequest{})
			assert.Equal(t, tc.code, status.Code(err))
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	s := newServer(&fakeUser{findErr: errors.New("pq: password authentication failed")}, &fakeEntry{}, &fakeBackup{})
	_, err := s.FindIdentity(context.Background(), &rpc.FindIdentityRequest{Nickname: "a"})
	assert.Equal(t, "internal error", status.Convert(err).Message())
}

func TestDeleteIdentity(t *testing.T) {
	u := &fakeUser{}
	s := newServer(u, &fakeEntry{}, &fakeBackup{})
	_, err := s.DeleteIdentity(context.Background(), &rpc.DeleteIdentityRequest{ID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.deletedID)
}

func TestListEntries(t *testing.T) {
	e := &fakeEntry{listOut: []*models.Entry{
		{ID: "b", UserID: "u-1", Date: "2024-03-05"},
		{ID: "a", UserID: "u-1", Date: "2024-03-01"},
	}}
	s := newServer(&fakeUser{}, e, &fakeBackup{})

	resp, err := s.ListEntries(context.Background(), &rpc.ListEntriesRequest{OwnerID: "u-1"})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "b", resp.Entries[0].ID)
	assert.Equal(t, "u-1", resp.Entries[1].OwnerID)
}

func TestInsertEntry(t *testing.T) {
	e := &fakeEntry{}
	s := newServer(&fakeUser{}, e, &fakeBackup{})

	resp, err := s.InsertEntry(context.Background(), &rpc.InsertEntryRequest{
		OwnerID: "u-1", Date: "2024-03-05", Type: "income", Category: "급여", Memo: "3월", Amount: 3_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "e-new", resp.Entry.ID)
	assert.Equal(t, "u-1", e.inserted.UserID)
	assert.Equal(t, int64(3_000_000), resp.Entry.Amount)
}

func TestUpdateEntry_PassesOnlyDefinedFields(t *testing.T) {
	e := &fakeEntry{}
	s := newServer(&fakeUser{}, e, &fakeBackup{})
	memo := "새 메모"

	resp, err := s.UpdateEntry(context.Background(), &rpc.UpdateEntryRequest{OwnerID: "u-1", ID: "e-1", Memo: &memo})
	require.NoError(t, err)
	assert.Equal(t, "e-1", resp.Entry.ID)
	require.NotNil(t, e.patch.Memo)
	assert.Equal(t, memo, *e.patch.Memo)
	assert.Nil(t, e.patch.Amount)
	assert.Nil(t, e.patch.Date)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	s := newServer(&fakeUser{}, &fakeEntry{err: common.ErrorNotFound}, &fakeBackup{})
	_, err := s.DeleteEntry(context.Background(), &rpc.DeleteEntryRequest{OwnerID: "u-1", ID: "x"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestDeleteAllEntries(t *testing.T) {
	s := newServer(&fakeUser{}, &fakeEntry{deleted: 7}, &fakeBackup{})
	resp, err := s.DeleteAllEntries(context.Background(), &rpc.DeleteAllEntriesRequest{OwnerID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Deleted)
}

func TestPresignBackup(t *testing.T) {
	b := &fakeBackup{key: "backups/u-1/x.json", url: "https://s3/x"}
	s := newServer(&fakeUser{}, &fakeEntry{}, b)

	up, err := s.PresignBackupUpload(context.Background(), &rpc.PresignBackupUploadRequest{OwnerID: "u-1", Filename: "x.json"})
	require.NoError(t, err)
	assert.Equal(t, "backups/u-1/x.json", up.Key)
	assert.Equal(t, "https://s3/x", up.URL)

	down, err := s.PresignBackupDownload(context.Background(), &rpc.PresignBackupDownloadRequest{OwnerID: "u-1", Key: up.Key})
	require.NoError(t, err)
	assert.Equal(t, "https://s3/x", down.URL)

	b.err = fmt.Errorf("%w: outside", common.ErrInvalidArgument)
	_, err = s.PresignBackupDownload(context.Background(), &rpc.PresignBackupDownloadRequest{OwnerID: "u-1", Key: "backups/u-2/x"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
