package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophledger/internal/client/config"
	"github.com/dmitrijs2005/gophledger/internal/client/gateway"
	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/result"
	"github.com/dmitrijs2005/gophledger/internal/client/services"
	"github.com/dmitrijs2005/gophledger/internal/client/session"
	"github.com/dmitrijs2005/gophledger/internal/client/storage"
	"github.com/dmitrijs2005/gophledger/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

const onlineCheckInterval = 30 * time.Second

type credentials interface {
	Current() *models.Identity
	Register(ctx context.Context, nickname, pin, pinConfirm string) result.Result[models.Identity]
	Login(ctx context.Context, nickname, pin string) result.Result[models.Identity]
	Logout(ctx context.Context) result.Result[result.Empty]
	DeleteAccount(ctx context.Context) result.Result[result.Empty]
}

type ledgerStore interface {
	WaitReady(ctx context.Context) error
	Items() []models.Entry
	Add(ctx context.Context, e models.NewEntry) result.Result[models.Entry]
	Remove(ctx context.Context, id string) result.Result[result.Empty]
	Update(ctx context.Context, id string, patch models.EntryPatch) result.Result[models.Entry]
	Export() result.Result[[]byte]
	Import(ctx context.Context, raw []byte) result.Result[services.ImportReport]
	MigrateLegacy(ctx context.Context) result.Result[services.ImportReport]
}

type memoStore interface {
	Create(ctx context.Context) result.Result[models.Memo]
	Update(ctx context.Context, id, content string) result.Result[models.Memo]
	Delete(ctx context.Context, id string) result.Result[result.Empty]
	Discard(ctx context.Context, id string) result.Result[bool]
	Get(id string) (models.Memo, bool)
	Items() []models.Memo
	Export() result.Result[[]byte]
	Import(ctx context.Context, raw []byte) result.Result[int]
}

type legacyGate interface {
	HasPassword(ctx context.Context) (bool, error)
	Unlock(ctx context.Context, pin string) result.Result[result.Empty]
}

type backupGateway interface {
	PresignBackupUpload(ctx context.Context, ownerID, filename string) (string, string, error)
	PresignBackupDownload(ctx context.Context, ownerID, key string) (string, error)
	Ping(ctx context.Context) error
}

type App struct {
	config *config.Config
	log    logging.Logger
	closer []io.Closer

	creds  credentials
	ledger ledgerStore
	memos  memoStore
	legacy legacyGate
	remote backupGateway

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the device database, restores the session and builds the
// stores on top of a gRPC gateway.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	l := logging.New(c.LogBackend, os.Stderr, false)

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	gw, err := gateway.NewGRPCGateway(c.ServerEndpointAddr, c.APIKey, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app, err := newApp(ctx, c, l, db, gw)
	if err != nil {
		_ = gw.Close()
		_ = db.Close()
		return nil, err
	}
	app.closer = []io.Closer{gw, db}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, l logging.Logger, db *sql.DB, gw gateway.Gateway) (*App, error) {
	repo := storage.NewSQLiteRepository(db)

	sess := session.New(repo)
	if err := sess.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	ledger := services.NewLedgerStore(ctx, gw, repo, sess, l)
	memos, err := services.NewMemoStore(ctx, repo, l)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		log:    l,
		creds:  services.NewCredentialStore(gw, sess, ledger, l),
		ledger: ledger,
		memos:  memos,
		legacy: services.NewLegacyGate(repo, l),
		remote: gw,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		mode:   ModeOffline,
	}, nil
}

// Run starts the connectivity watcher and the REPL, and releases resources
// when the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)
	a.Root(ctx)
}

func (a *App) Close() {
	for _, c := range a.closer {
		_ = c.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.creds.Current() != nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.remote.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints the failure message of r, or ok when r succeeded, and
// tells the caller which happened.
func report[T any](a *App, r result.Result[T], ok string) bool {
	if !r.Ok() {
		a.println(r.Message())
		return false
	}
	if ok != "" {
		a.println(ok)
	}
	return true
}

// requireLogin prints a hint and returns false when nobody is signed in.
func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	a.println("로그인이 필요합니다.")
	return false
}
