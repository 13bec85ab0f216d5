package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophledger/internal/client/gateway"
	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/result"
	"github.com/dmitrijs2005/gophledger/internal/client/session"
	"github.com/dmitrijs2005/gophledger/internal/client/storage"
	"github.com/dmitrijs2005/gophledger/internal/logging"
)

const (
	msgAddError       = "내역 추가 중 오류가 발생했습니다."
	msgRemoveError    = "내역 삭제 중 오류가 발생했습니다."
	msgUpdateError    = "내역 수정 중 오류가 발생했습니다."
	msgDeleteAllError = "전체 삭제 중 오류가 발생했습니다."
	msgEmptyPatch     = "변경할 항목이 없습니다."
	msgOwnerChanged   = "작업 중 사용자가 변경되었습니다."
	msgExportError    = "내보내기 중 오류가 발생했습니다."
	msgNoLegacyData   = "이전 데이터가 없습니다."
	msgLegacyRead     = "이전 데이터를 읽는 중 오류가 발생했습니다."
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}
	return "uninitialized"
}

// LedgerStore mirrors the current owner's ledger rows. Memory changes only
// after the gateway confirms a mutation, and mutations run one at a time.
type LedgerStore struct {
	gw   gateway.Gateway
	repo storage.Repository
	log  logging.Logger

	// flight serializes mutations, including account deletion.
	flight sync.Mutex

	mu    sync.Mutex
	state State
	owner string
	items []models.Entry
	gen   uint64
	ready chan struct{}
}

// NewLedgerStore builds a store subscribed to sess and starts loading for
// its current identity.
func NewLedgerStore(ctx context.Context, gw gateway.Gateway, repo storage.Repository, sess *session.Session, l logging.Logger) *LedgerStore {
	s := &LedgerStore{
		gw:    gw,
		repo:  repo,
		log:   l,
		ready: make(chan struct{}),
	}

	sess.Subscribe(func(ctx context.Context, id *models.Identity) {
		s.SetOwner(ctx, ownerOf(id))
	})
	s.SetOwner(ctx, ownerOf(sess.Current()))

	return s
}

func ownerOf(id *models.Identity) string {
	if id == nil {
		return ""
	}
	return id.ID
}

// SetOwner discards the current list and loads the rows of owner in the
// background. An empty owner is Ready at once with no rows. A load that
// finishes after a newer SetOwner is dropped.
func (s *LedgerStore) SetOwner(ctx context.Context, owner string) {
	s.mu.Lock()
	if s.state != StateReady {
		// wake waiters of the superseded generation
		close(s.ready)
	}
	s.gen++
	gen := s.gen
	s.owner = owner
	s.items = nil
	ready := make(chan struct{})
	s.ready = ready

	if owner == "" {
		s.state = StateReady
		close(ready)
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.mu.Unlock()

	go s.load(context.WithoutCancel(ctx), gen, owner, ready)
}

func (s *LedgerStore) load(ctx context.Context, gen uint64, owner string, ready chan struct{}) {
	ctx = logging.WithOwner(ctx, owner)
	rows, err := s.gw.ListEntries(ctx, owner)
	if err != nil {
		s.log.Error(ctx, "ledger load failed", "error", err)
		rows = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		s.log.Info(ctx, "stale ledger load discarded")
		return
	}
	s.items = rows
	s.state = StateReady
	close(ready)
}

// WaitReady blocks until the current owner's rows are loaded.
func (s *LedgerStore) WaitReady(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.state == StateReady {
			s.mu.Unlock()
			return nil
		}
		ch := s.ready
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *LedgerStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *LedgerStore) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Items returns a copy of the list, newest first.
func (s *LedgerStore) Items() []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Entry(nil), s.items...)
}

// begin waits for Ready and returns the owner and generation a mutation
// runs against, with ctx tagged for logging. Callers hold flight.
func (s *LedgerStore) begin(ctx context.Context) (context.Context, string, uint64, error) {
	if err := s.WaitReady(ctx); err != nil {
		return ctx, "", 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return logging.WithOwner(ctx, s.owner), s.owner, s.gen, nil
}

// apply runs fn on the list only when gen is still current.
func (s *LedgerStore) apply(gen uint64, fn func([]models.Entry) []models.Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.items = fn(s.items)
	return true
}

// clearFor empties the list of owner and retires any load of the current
// generation so it cannot reinstall deleted rows.
func (s *LedgerStore) clearFor(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner != owner {
		return
	}
	s.gen++
	s.items = nil
	if s.state != StateReady {
		s.state = StateReady
		close(s.ready)
	}
}

func ctxFailure[T any](err error) result.Result[T] {
	return result.Failure[T](result.KindTransport, err.Error())
}

// Add inserts e through the gateway and prepends the stored row.
func (s *LedgerStore) Add(ctx context.Context, e models.NewEntry) result.Result[models.Entry] {
	s.flight.Lock()
	defer s.flight.Unlock()

	ctx, owner, gen, err := s.begin(ctx)
	if err != nil {
		return ctxFailure[models.Entry](err)
	}
	if owner == "" {
		return result.Failure[models.Entry](result.KindValidation, msgLoginRequired)
	}

	row, err := s.gw.InsertEntry(ctx, owner, e)
	if err != nil {
		s.log.Error(ctx, "insert entry failed", "error", err)
		return fromGatewayError[models.Entry](err, msgAddError)
	}

	s.apply(gen, func(items []models.Entry) []models.Entry {
		return append([]models.Entry{*row}, items...)
	})
	return result.Success(*row)
}

// Remove deletes the row with id.
func (s *LedgerStore) Remove(ctx context.Context, id string) result.Result[result.Empty] {
	s.flight.Lock()
	defer s.flight.Unlock()

	ctx, owner, gen, err := s.begin(ctx)
	if err != nil {
		return ctxFailure[result.Empty](err)
	}
	if owner == "" {
		return result.Failure[result.Empty](result.KindValidation, msgLoginRequired)
	}

	if err := s.gw.DeleteEntry(ctx, owner, id); err != nil {
		s.log.Error(ctx, "delete entry failed", "entry_id", id, "error", err)
		return fromGatewayError[result.Empty](err, msgRemoveError)
	}

	s.apply(gen, func(items []models.Entry) []models.Entry {
		out := items[:0:0]
		for _, it := range items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	})
	return result.Success(result.Empty{})
}

// Update sends the set fields of patch and replaces the row in memory with
// the full record the backend returns.
func (s *LedgerStore) Update(ctx context.Context, id string, patch models.EntryPatch) result.Result[models.Entry] {
	if patch.Empty() {
		return result.Failure[models.Entry](result.KindValidation, msgEmptyPatch)
	}

	s.flight.Lock()
	defer s.flight.Unlock()

	ctx, owner, gen, err := s.begin(ctx)
	if err != nil {
		return ctxFailure[models.Entry](err)
	}
	if owner == "" {
		return result.Failure[models.Entry](result.KindValidation, msgLoginRequired)
	}

	row, err := s.gw.UpdateEntry(ctx, owner, id, patch)
	if err != nil {
		s.log.Error(ctx, "update entry failed", "entry_id", id, "error", err)
		return fromGatewayError[models.Entry](err, msgUpdateError)
	}

	s.apply(gen, func(items []models.Entry) []models.Entry {
		out := make([]models.Entry, len(items))
		for i, it := range items {
			if it.ID == id {
				it = *row
			}
			out[i] = it
		}
		return out
	})
	return result.Success(*row)
}

// DeleteAll removes every row of the owner and returns how many went.
func (s *LedgerStore) DeleteAll(ctx context.Context) result.Result[int64] {
	s.flight.Lock()
	defer s.flight.Unlock()

	ctx, owner, gen, err := s.begin(ctx)
	if err != nil {
		return ctxFailure[int64](err)
	}
	if owner == "" {
		return result.Failure[int64](result.KindValidation, msgLoginRequired)
	}

	n, err := s.gw.DeleteAllEntries(ctx, owner)
	if err != nil {
		s.log.Error(ctx, "delete all entries failed", "error", err)
		return fromGatewayError[int64](err, msgDeleteAllError)
	}

	s.apply(gen, func([]models.Entry) []models.Entry { return nil })
	return result.Success(n)
}

// Export serializes the confirmed rows as an indented JSON array.
func (s *LedgerStore) Export() result.Result[[]byte] {
	items := s.Items()
	if items == nil {
		items = []models.Entry{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		s.log.Error(context.Background(), "ledger export failed", "error", err)
		return result.Failure[[]byte](result.KindInternal, msgExportError)
	}
	return result.Success(data)
}

// ImportReport counts the outcome of an import.
type ImportReport struct {
	Total    int
	Imported int
	Skipped  int
	Failed   int
}

// Import validates the whole payload, then inserts each row through the
// gateway. Nothing is sent if any row is malformed. Rows whose id is
// already in the list are skipped. Rows persisted before a failure are kept.
func (s *LedgerStore) Import(ctx context.Context, raw []byte) result.Result[ImportReport] {
	rows, msg := parseLedgerRows(raw)
	if msg != "" {
		return result.Failure[ImportReport](result.KindStructuralImport, msg)
	}

	s.flight.Lock()
	defer s.flight.Unlock()

	return s.importRows(ctx, rows)
}

func (s *LedgerStore) importRows(ctx context.Context, rows []importRow) result.Result[ImportReport] {
	ctx, owner, gen, err := s.begin(ctx)
	if err != nil {
		return ctxFailure[ImportReport](err)
	}
	if owner == "" {
		return result.Failure[ImportReport](result.KindValidation, msgLoginRequired)
	}

	known := make(map[string]struct{})
	for _, it := range s.Items() {
		known[it.ID] = struct{}{}
	}

	report := ImportReport{Total: len(rows)}
	for _, r := range oldestFirst(rows) {
		if _, ok := known[r.ID]; ok && r.ID != "" {
			report.Skipped++
			continue
		}

		row, err := s.gw.InsertEntry(ctx, owner, r.Entry)
		if err != nil {
			s.log.Error(ctx, "import row failed", "source_id", r.ID, "error", err)
			report.Failed++
			continue
		}

		applied := s.apply(gen, func(items []models.Entry) []models.Entry {
			return append([]models.Entry{*row}, items...)
		})
		if !applied {
			return result.Failure[ImportReport](result.KindTransport, msgOwnerChanged)
		}
		known[r.ID] = struct{}{}
		report.Imported++
	}

	if report.Failed > 0 {
		attempted := report.Total - report.Skipped
		return result.Failure[ImportReport](result.KindTransport, fmt.Sprintf("%d건 중 %d건 실패", attempted, report.Failed))
	}

	s.log.Info(ctx, "ledger import finished", "imported", report.Imported, "skipped", report.Skipped)
	return result.Success(report)
}

// MigrateLegacy imports the old device-local ledger through Import's path
// and drops the legacy keys once every row is stored.
func (s *LedgerStore) MigrateLegacy(ctx context.Context) result.Result[ImportReport] {
	raw, err := s.repo.Get(ctx, storage.KeyLegacyLedger)
	if err != nil {
		s.log.Error(ctx, "legacy ledger read failed", "error", err)
		return result.Failure[ImportReport](result.KindInternal, msgLegacyRead)
	}
	if len(raw) == 0 {
		return result.Failure[ImportReport](result.KindNotFound, msgNoLegacyData)
	}

	rows, msg := parseLedgerRows(raw)
	if msg != "" {
		return result.Failure[ImportReport](result.KindStructuralImport, msg)
	}

	s.flight.Lock()
	defer s.flight.Unlock()

	res := s.importRows(ctx, rows)
	if !res.Ok() {
		return res
	}

	if err := s.repo.DeleteKeys(ctx, storage.KeyLegacyLedger, storage.KeyLegacyPasswordHash); err != nil {
		s.log.Warn(ctx, "legacy key cleanup failed", "error", err)
	}
	return res
}
