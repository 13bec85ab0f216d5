package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/gateway"
	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/session"
	"github.com/dmitrijs2005/gophledger/internal/client/storage"
	"github.com/dmitrijs2005/gophledger/internal/logging"
	"github.com/stretchr/testify/require"
)

type storedEntry struct {
	models.Entry
	seq int
}

// fakeGateway is an in-memory backend. Fields ending in Err force the
// matching call to fail.
type fakeGateway struct {
	mu      sync.Mutex
	users   map[string]models.IdentityRecord
	entries map[string][]storedEntry
	seq     int
	calls   []string

	findErr, createErr, deleteIdentityErr error
	listErr, insertErr, updateErr         error
	deleteErr, deleteAllErr               error

	// insertHook runs before each insert; a non-nil error fails that insert.
	insertHook  func(n int, e models.NewEntry) error
	insertDelay time.Duration
	inserts     int
	// listGate, when set, is waited on before ListEntries returns for owner.
	listGate map[string]chan struct{}
	// listHook runs after ListEntries has read its rows.
	listHook func(owner string)

	inflight, maxInflight int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		users:   map[string]models.IdentityRecord{},
		entries: map[string][]storedEntry{},
	}
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) enter() {
	f.mu.Lock()
	f.inflight++
	if f.inflight > f.maxInflight {
		f.maxInflight = f.inflight
	}
	f.mu.Unlock()
}

func (f *fakeGateway) leave() {
	f.mu.Lock()
	f.inflight--
	f.mu.Unlock()
}

func (f *fakeGateway) CreateIdentity(_ context.Context, nickname, hash string) (*models.IdentityRecord, error) {
	f.record("CreateIdentity")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[nickname]; ok {
		return nil, gateway.ErrConflict
	}
	f.seq++
	rec := models.IdentityRecord{ID: fmt.Sprintf("u-%d", f.seq), Nickname: nickname, PasswordHash: hash}
	f.users[nickname] = rec
	return &rec, nil
}

func (f *fakeGateway) FindIdentity(_ context.Context, nickname string) (*models.IdentityRecord, error) {
	f.record("FindIdentity")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	rec, ok := f.users[nickname]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeGateway) DeleteIdentity(_ context.Context, id string) error {
	f.record("DeleteIdentity")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteIdentityErr != nil {
		return f.deleteIdentityErr
	}
	for nick, u := range f.users {
		if u.ID == id {
			delete(f.users, nick)
			return nil
		}
	}
	return gateway.ErrNotFound
}

func (f *fakeGateway) ListEntries(_ context.Context, owner string) ([]models.Entry, error) {
	f.record("ListEntries")

	f.mu.Lock()
	gate := f.listGate[owner]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	if f.listErr != nil {
		f.mu.Unlock()
		return nil, f.listErr
	}

	rows := append([]storedEntry(nil), f.entries[owner]...)
	hook := f.listHook
	f.mu.Unlock()

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]models.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Entry)
	}
	if hook != nil {
		hook(owner)
	}
	return out, nil
}

func (f *fakeGateway) InsertEntry(_ context.Context, owner string, e models.NewEntry) (*models.Entry, error) {
	f.record("InsertEntry")
	f.enter()
	defer f.leave()
	time.Sleep(f.insertDelay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.insertHook != nil {
		if err := f.insertHook(f.inserts, e); err != nil {
			return nil, err
		}
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrValidation, err)
	}

	f.seq++
	row := models.Entry{
		ID:       fmt.Sprintf("e-%d", f.seq),
		Date:     e.Date,
		Kind:     e.Kind,
		Category: e.Category,
		Memo:     e.Memo,
		Amount:   e.Amount,
	}
	f.entries[owner] = append(f.entries[owner], storedEntry{Entry: row, seq: f.seq})
	return &row, nil
}

func (f *fakeGateway) UpdateEntry(_ context.Context, owner, id string, p models.EntryPatch) (*models.Entry, error) {
	f.record("UpdateEntry")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, r := range f.entries[owner] {
		if r.ID != id {
			continue
		}
		if p.Date != nil {
			r.Date = *p.Date
		}
		if p.Kind != nil {
			r.Kind = *p.Kind
		}
		if p.Category != nil {
			r.Category = *p.Category
		}
		if p.Memo != nil {
			r.Memo = *p.Memo
		}
		if p.Amount != nil {
			r.Amount = *p.Amount
		}
		f.entries[owner][i] = r
		out := r.Entry
		return &out, nil
	}
	return nil, gateway.ErrNotFound
}

func (f *fakeGateway) DeleteEntry(_ context.Context, owner, id string) error {
	f.record("DeleteEntry")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	rows := f.entries[owner]
	for i, r := range rows {
		if r.ID == id {
			f.entries[owner] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return gateway.ErrNotFound
}

func (f *fakeGateway) DeleteAllEntries(_ context.Context, owner string) (int64, error) {
	f.record("DeleteAllEntries")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteAllErr != nil {
		return 0, f.deleteAllErr
	}
	n := int64(len(f.entries[owner]))
	delete(f.entries, owner)
	return n, nil
}

func (f *fakeGateway) PresignBackupUpload(_ context.Context, owner, filename string) (string, string, error) {
	return "backups/" + owner + "/" + filename, "http://upload", nil
}

func (f *fakeGateway) PresignBackupDownload(_ context.Context, owner, key string) (string, error) {
	return "http://download/" + key, nil
}

func (f *fakeGateway) Ping(context.Context) error { return nil }

// seed stores rows for owner directly, bypassing the call log.
func (f *fakeGateway) seed(owner string, rows ...models.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		f.seq++
		f.entries[owner] = append(f.entries[owner], storedEntry{Entry: r, seq: f.seq})
	}
}

var errBoom = errors.New("boom")

// failingRepo wraps a Repository and fails Set when setErr is non-nil.
type failingRepo struct {
	storage.Repository
	setErr error
}

func (r *failingRepo) Set(ctx context.Context, k string, v []byte) error {
	if r.setErr != nil {
		return r.setErr
	}
	return r.Repository.Set(ctx, k, v)
}

func newSQLiteRepo(t *testing.T) storage.Repository {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewSQLiteRepository(db)
}

type fixture struct {
	gw     *fakeGateway
	repo   storage.Repository
	sess   *session.Session
	ledger *LedgerStore
	creds  *CredentialStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	gw := newFakeGateway()
	repo := newSQLiteRepo(t)
	sess := session.New(repo)
	require.NoError(t, sess.Restore(ctx))

	ledger := NewLedgerStore(ctx, gw, repo, sess, logging.NopLogger{})
	creds := NewCredentialStore(gw, sess, ledger, logging.NopLogger{})
	return &fixture{gw: gw, repo: repo, sess: sess, ledger: ledger, creds: creds}
}

// signIn registers nickname and waits for its ledger to load.
func (fx *fixture) signIn(t *testing.T, nickname string) models.Identity {
	t.Helper()
	res := fx.creds.Register(context.Background(), nickname, "12345678", "12345678")
	require.True(t, res.Ok(), res.Message())
	require.NoError(t, fx.ledger.WaitReady(context.Background()))
	return res.Value()
}

// spyLogger records messages so tests can wait for background work.
type spyLogger struct {
	logging.NopLogger

	mu   sync.Mutex
	msgs []string
}

func (l *spyLogger) Info(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	l.mu.Unlock()
}

func (l *spyLogger) saw(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
