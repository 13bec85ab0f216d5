package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/result"
	"github.com/dmitrijs2005/gophledger/internal/client/storage"
	"github.com/dmitrijs2005/gophledger/internal/logging"
	"github.com/google/uuid"
)

const (
	msgMemoTooLong   = "메모는 5000자까지 입력할 수 있습니다."
	msgMemoNotFound  = "메모를 찾을 수 없습니다."
	msgMemoSaveError = "메모 저장 중 오류가 발생했습니다."
)

var (
	newMemoID = uuid.NewString
	now       = time.Now
)

// MemoStore keeps memos in one on-device slot. The whole collection is
// rewritten on every mutation and memory follows only a successful write.
type MemoStore struct {
	repo storage.Repository
	log  logging.Logger

	mu    sync.Mutex
	items []models.Memo
}

// NewMemoStore reads the snapshot once. An unreadable snapshot starts the
// store empty; storage errors are returned.
func NewMemoStore(ctx context.Context, repo storage.Repository, l logging.Logger) (*MemoStore, error) {
	raw, err := repo.Get(ctx, storage.KeyMemoItems)
	if err != nil {
		return nil, fmt.Errorf("load memos: %w", err)
	}

	var items []models.Memo
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			l.Warn(ctx, "memo snapshot unreadable, starting empty", "error", err)
			items = nil
		}
	}

	return &MemoStore{repo: repo, log: l, items: items}, nil
}

// persist writes next and swaps it in. Callers hold mu.
func (m *MemoStore) persist(ctx context.Context, next []models.Memo) error {
	if next == nil {
		next = []models.Memo{}
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := m.repo.Set(ctx, storage.KeyMemoItems, raw); err != nil {
		return err
	}
	m.items = next
	return nil
}

func (m *MemoStore) indexOf(id string) int {
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Create prepends an empty memo and returns it.
func (m *MemoStore) Create(ctx context.Context) result.Result[models.Memo] {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := now().UTC()
	memo := models.Memo{ID: newMemoID(), CreatedAt: ts, UpdatedAt: ts}

	next := append([]models.Memo{memo}, m.items...)
	if err := m.persist(ctx, next); err != nil {
		m.log.Error(ctx, "memo create failed", "error", err)
		return result.Failure[models.Memo](result.KindInternal, msgMemoSaveError)
	}
	return result.Success(memo)
}

// Update replaces the content of id and refreshes UpdatedAt.
func (m *MemoStore) Update(ctx context.Context, id, content string) result.Result[models.Memo] {
	if utf8.RuneCountInString(content) > models.MaxMemoContentLength {
		return result.Failure[models.Memo](result.KindValidation, msgMemoTooLong)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return result.Failure[models.Memo](result.KindNotFound, msgMemoNotFound)
	}

	next := append([]models.Memo(nil), m.items...)
	next[i].Content = content
	next[i].UpdatedAt = now().UTC()

	if err := m.persist(ctx, next); err != nil {
		m.log.Error(ctx, "memo update failed", "memo_id", id, "error", err)
		return result.Failure[models.Memo](result.KindInternal, msgMemoSaveError)
	}
	return result.Success(next[i])
}

// Delete removes id.
func (m *MemoStore) Delete(ctx context.Context, id string) result.Result[result.Empty] {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.deleteLocked(ctx, id)
}

func (m *MemoStore) deleteLocked(ctx context.Context, id string) result.Result[result.Empty] {
	i := m.indexOf(id)
	if i < 0 {
		return result.Failure[result.Empty](result.KindNotFound, msgMemoNotFound)
	}

	next := make([]models.Memo, 0, len(m.items)-1)
	next = append(next, m.items[:i]...)
	next = append(next, m.items[i+1:]...)

	if err := m.persist(ctx, next); err != nil {
		m.log.Error(ctx, "memo delete failed", "memo_id", id, "error", err)
		return result.Failure[result.Empty](result.KindInternal, msgMemoSaveError)
	}
	return result.Success(result.Empty{})
}

// Discard deletes id when its content is blank and reports whether it did.
func (m *MemoStore) Discard(ctx context.Context, id string) result.Result[bool] {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 || strings.TrimSpace(m.items[i].Content) != "" {
		return result.Success(false)
	}

	if res := m.deleteLocked(ctx, id); !res.Ok() {
		return result.Failure[bool](res.Kind(), res.Message())
	}
	return result.Success(true)
}

func (m *MemoStore) Get(id string) (models.Memo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id); i >= 0 {
		return m.items[i], true
	}
	return models.Memo{}, false
}

// Items returns a copy of the memos, newest first.
func (m *MemoStore) Items() []models.Memo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Memo(nil), m.items...)
}

func (m *MemoStore) Export() result.Result[[]byte] {
	items := m.Items()
	if items == nil {
		items = []models.Memo{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return result.Failure[[]byte](result.KindInternal, msgExportError)
	}
	return result.Success(data)
}

// Import replaces the whole collection with raw after checking that every
// element has a unique string id, string content and both timestamps. It
// returns the memo count.
func (m *MemoStore) Import(ctx context.Context, raw []byte) result.Result[int] {
	arr, msg := decodeArray(raw)
	if msg != "" {
		return result.Failure[int](result.KindStructuralImport, msg)
	}
	if arr == nil {
		return result.Failure[int](result.KindStructuralImport, msgMemoBadForm)
	}

	seen := make(map[string]struct{}, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return result.Failure[int](result.KindStructuralImport, msgStructure)
		}
		id, ok := obj["id"].(string)
		if !ok {
			return result.Failure[int](result.KindStructuralImport, msgStructure)
		}
		if _, dup := seen[id]; dup {
			return result.Failure[int](result.KindStructuralImport, msgStructure)
		}
		seen[id] = struct{}{}

		content, ok := obj["content"].(string)
		if !ok || utf8.RuneCountInString(content) > models.MaxMemoContentLength {
			return result.Failure[int](result.KindStructuralImport, msgStructure)
		}
		for _, key := range []string{"createdAt", "updatedAt"} {
			if _, ok := obj[key].(string); !ok {
				return result.Failure[int](result.KindStructuralImport, msgStructure)
			}
		}
	}

	var items []models.Memo
	if err := json.Unmarshal(raw, &items); err != nil {
		return result.Failure[int](result.KindStructuralImport, msgStructure)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persist(ctx, items); err != nil {
		m.log.Error(ctx, "memo import failed", "error", err)
		return result.Failure[int](result.KindInternal, msgMemoSaveError)
	}
	return result.Success(len(items))
}
