package services

import (
	"context"

	"github.com/dmitrijs2005/gophledger/internal/client/result"
	"github.com/dmitrijs2005/gophledger/internal/client/storage"
	"github.com/dmitrijs2005/gophledger/internal/logging"
)

const (
	msgNoLegacyPIN  = "등록된 비밀번호가 없습니다."
	msgLegacyPINErr = "이전 비밀번호 확인 중 오류가 발생했습니다."
)

// LegacyGate checks the PIN of the single-user device ledger that predates
// accounts. It only guards MigrateLegacy.
type LegacyGate struct {
	repo storage.Repository
	log  logging.Logger
}

func NewLegacyGate(repo storage.Repository, l logging.Logger) *LegacyGate {
	return &LegacyGate{repo: repo, log: l}
}

// HasPassword reports whether a legacy PIN digest is stored.
func (g *LegacyGate) HasPassword(ctx context.Context) (bool, error) {
	v, err := g.repo.Get(ctx, storage.KeyLegacyPasswordHash)
	if err != nil {
		return false, err
	}
	return len(v) > 0, nil
}

// Unlock verifies pin against the stored legacy digest.
func (g *LegacyGate) Unlock(ctx context.Context, pin string) result.Result[result.Empty] {
	stored, err := g.repo.Get(ctx, storage.KeyLegacyPasswordHash)
	if err != nil {
		g.log.Error(ctx, "legacy pin read failed", "error", err)
		return result.Failure[result.Empty](result.KindInternal, msgLegacyPINErr)
	}
	if len(stored) == 0 {
		return result.Failure[result.Empty](result.KindNotFound, msgNoLegacyPIN)
	}
	if !ValidPIN(pin) {
		return result.Failure[result.Empty](result.KindValidation, msgPINShapeLogin)
	}
	if !VerifyPIN(pin, string(stored)) {
		return result.Failure[result.Empty](result.KindWrongPassword, msgWrongPIN)
	}
	return result.Success(result.Empty{})
}
