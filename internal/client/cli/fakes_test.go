package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/config"
	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/result"
	"github.com/dmitrijs2005/gophledger/internal/client/services"
	"github.com/dmitrijs2005/gophledger/internal/client/storage"
	"github.com/dmitrijs2005/gophledger/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeCreds struct {
	current  *models.Identity
	lastPIN  []string
	failWith result.Result[models.Identity]
	deleted  bool
}

func (f *fakeCreds) Current() *models.Identity { return f.current }

func (f *fakeCreds) Register(_ context.Context, nickname, pin, confirm string) result.Result[models.Identity] {
	f.lastPIN = []string{pin, confirm}
	if f.failWith.Kind() != result.KindNone {
		return f.failWith
	}
	f.current = &models.Identity{ID: "u-1", Nickname: nickname}
	return result.Success(*f.current)
}

func (f *fakeCreds) Login(_ context.Context, nickname, pin string) result.Result[models.Identity] {
	f.lastPIN = []string{pin}
	if f.failWith.Kind() != result.KindNone {
		return f.failWith
	}
	f.current = &models.Identity{ID: "u-1", Nickname: nickname}
	return result.Success(*f.current)
}

func (f *fakeCreds) Logout(context.Context) result.Result[result.Empty] {
	f.current = nil
	return result.Success(result.Empty{})
}

func (f *fakeCreds) DeleteAccount(context.Context) result.Result[result.Empty] {
	f.deleted = true
	f.current = nil
	return result.Success(result.Empty{})
}

type fakeLedger struct {
	items   []models.Entry
	waitErr error

	added     []models.NewEntry
	patchedID string
	patch     models.EntryPatch
	removed   []string
	imported  [][]byte
	migrated  bool
}

func (f *fakeLedger) WaitReady(context.Context) error { return f.waitErr }
func (f *fakeLedger) Items() []models.Entry           { return append([]models.Entry(nil), f.items...) }

func (f *fakeLedger) Add(_ context.Context, e models.NewEntry) result.Result[models.Entry] {
	f.added = append(f.added, e)
	created := models.Entry{ID: "e-new", Date: e.Date, Kind: e.Kind, Category: e.Category, Memo: e.Memo, Amount: e.Amount}
	f.items = append([]models.Entry{created}, f.items...)
	return result.Success(created)
}

func (f *fakeLedger) Remove(_ context.Context, id string) result.Result[result.Empty] {
	f.removed = append(f.removed, id)
	return result.Success(result.Empty{})
}

func (f *fakeLedger) Update(_ context.Context, id string, patch models.EntryPatch) result.Result[models.Entry] {
	f.patchedID, f.patch = id, patch
	for _, e := range f.items {
		if e.ID == id {
			return result.Success(e)
		}
	}
	return result.Failure[models.Entry](result.KindNotFound, "not found")
}

func (f *fakeLedger) Export() result.Result[[]byte] {
	return result.Success([]byte(`[{"id":"e-1"}]`))
}

func (f *fakeLedger) Import(_ context.Context, raw []byte) result.Result[services.ImportReport] {
	f.imported = append(f.imported, raw)
	return result.Success(services.ImportReport{Total: 2, Imported: 1, Skipped: 1})
}

func (f *fakeLedger) MigrateLegacy(context.Context) result.Result[services.ImportReport] {
	f.migrated = true
	return result.Success(services.ImportReport{Total: 3, Imported: 3})
}

type fakeLegacy struct {
	has       bool
	hasErr    error
	pin       string
	unlockPIN string
}

func (f *fakeLegacy) HasPassword(context.Context) (bool, error) { return f.has, f.hasErr }

func (f *fakeLegacy) Unlock(_ context.Context, pin string) result.Result[result.Empty] {
	f.unlockPIN = pin
	if pin != f.pin {
		return result.Failure[result.Empty](result.KindWrongPassword, "비밀번호가 일치하지 않습니다.")
	}
	return result.Success(result.Empty{})
}

type fakeRemote struct {
	pingErr     error
	presignErr  error
	owner       string
	filename    string
	downloadKey string
}

func (f *fakeRemote) PresignBackupUpload(_ context.Context, ownerID, filename string) (string, string, error) {
	f.owner, f.filename = ownerID, filename
	if f.presignErr != nil {
		return "", "", f.presignErr
	}
	return "backups/" + ownerID + "/" + filename, "http://s3.test/put", nil
}

func (f *fakeRemote) PresignBackupDownload(_ context.Context, ownerID, key string) (string, error) {
	f.owner, f.downloadKey = ownerID, key
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "http://s3.test/get", nil
}

func (f *fakeRemote) Ping(context.Context) error { return f.pingErr }

var errFake = errors.New("fake failure")

type testApp struct {
	*App
	creds  *fakeCreds
	ledger *fakeLedger
	legacy *fakeLegacy
	remote *fakeRemote
	memos  *services.MemoStore
	buf    *bytes.Buffer
}

// newTestApp builds an App over fakes with a signed-in user, reading input
// from the given string. Memos use a real store on in-memory SQLite.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	memos, err := services.NewMemoStore(context.Background(), storage.NewSQLiteRepository(db), logging.NopLogger{})
	require.NoError(t, err)

	ta := &testApp{
		creds:  &fakeCreds{current: &models.Identity{ID: "u-1", Nickname: "준"}},
		ledger: &fakeLedger{},
		legacy: &fakeLegacy{},
		remote: &fakeRemote{},
		memos:  memos,
		buf:    &bytes.Buffer{},
	}
	ta.App = &App{
		config: &config.Config{ExportDir: t.TempDir()},
		log:    logging.NopLogger{},
		creds:  ta.creds,
		ledger: ta.ledger,
		memos:  memos,
		legacy: ta.legacy,
		remote: ta.remote,
		reader: rdr(input),
		out:    ta.buf,
		mode:   ModeOffline,
	}
	return ta
}

// stubNow fixes the package clock for one test.
func stubNow(t *testing.T, ts time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = old })
}

// stubPasswords feeds the given answers to successive password prompts.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(answers) {
			return nil, errFake
		}
		i++
		return []byte(answers[i-1]), nil
	}
	t.Cleanup(func() { readPassword = old })
}
