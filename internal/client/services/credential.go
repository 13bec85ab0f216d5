package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophledger/internal/client/gateway"
	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/result"
	"github.com/dmitrijs2005/gophledger/internal/client/session"
	"github.com/dmitrijs2005/gophledger/internal/logging"
)

const (
	msgNicknameRequired   = "닉네임을 입력해주세요."
	msgPINShapeRegister   = "비밀번호는 숫자 8자리여야 합니다."
	msgPINShapeLogin      = "비밀번호는 숫자 8자리입니다."
	msgPINMismatch        = "비밀번호가 일치하지 않습니다."
	msgNicknameTaken      = "이미 사용 중인 닉네임입니다."
	msgNicknameCheckError = "닉네임 중복 확인 중 오류가 발생했습니다."
	msgRegisterError      = "회원가입 중 오류가 발생했습니다."
	msgLoginError         = "로그인 중 오류가 발생했습니다."
	msgUnknownNickname    = "존재하지 않는 닉네임입니다."
	msgWrongPIN           = "비밀번호가 올바르지 않습니다."
	msgDeleteAccountError = "회원탈퇴 중 오류가 발생했습니다."
	msgLogoutError        = "로그아웃 중 오류가 발생했습니다."
)

var pinPattern = regexp.MustCompile(`^[0-9]{8}$`)

// ValidPIN reports whether pin is exactly eight ASCII digits.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// HashPIN returns the lowercase hex SHA-256 digest of pin. There is no salt.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// VerifyPIN compares the digest of pin with a stored digest in constant time.
func VerifyPIN(pin, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(HashPIN(pin)), []byte(strings.ToLower(digest))) == 1
}

// CredentialStore turns (nickname, PIN) pairs into identities and owns the
// session lifecycle.
type CredentialStore struct {
	gw     gateway.Gateway
	sess   *session.Session
	ledger *LedgerStore
	log    logging.Logger
}

func NewCredentialStore(gw gateway.Gateway, sess *session.Session, ledger *LedgerStore, l logging.Logger) *CredentialStore {
	return &CredentialStore{gw: gw, sess: sess, ledger: ledger, log: l}
}

// Current returns the signed-in identity, or nil.
func (c *CredentialStore) Current() *models.Identity {
	return c.sess.Current()
}

// Register creates an identity and signs it in. The nickname pre-check is a
// shortcut; the backend's unique constraint is what actually rejects
// duplicates, and both surface as Conflict.
func (c *CredentialStore) Register(ctx context.Context, nickname, pin, pinConfirm string) result.Result[models.Identity] {
	nick := strings.TrimSpace(nickname)
	if nick == "" {
		return result.Failure[models.Identity](result.KindValidation, msgNicknameRequired)
	}
	if !ValidPIN(pin) {
		return result.Failure[models.Identity](result.KindValidation, msgPINShapeRegister)
	}
	if pin != pinConfirm {
		return result.Failure[models.Identity](result.KindValidation, msgPINMismatch)
	}

	_, err := c.gw.FindIdentity(ctx, nick)
	switch {
	case err == nil:
		return result.Failure[models.Identity](result.KindConflict, msgNicknameTaken)
	case !errors.Is(err, gateway.ErrNotFound):
		c.log.Error(ctx, "nickname check failed", "nickname", nick, "error", err)
		return result.Failure[models.Identity](result.KindTransport, msgNicknameCheckError)
	}

	rec, err := c.gw.CreateIdentity(ctx, nick, HashPIN(pin))
	if err != nil {
		if errors.Is(err, gateway.ErrConflict) {
			return result.Failure[models.Identity](result.KindConflict, msgNicknameTaken)
		}
		c.log.Error(ctx, "register failed", "nickname", nick, "error", err)
		return fromGatewayError[models.Identity](err, msgRegisterError)
	}

	id := rec.Identity()
	if err := c.sess.Replace(ctx, &id); err != nil {
		c.log.Error(ctx, "session save failed", "owner_id", id.ID, "error", err)
		return result.Failure[models.Identity](result.KindInternal, msgRegisterError)
	}

	c.log.Info(ctx, "registered", "owner_id", id.ID)
	return result.Success(id)
}

// Login looks the nickname up and checks the PIN digest locally.
func (c *CredentialStore) Login(ctx context.Context, nickname, pin string) result.Result[models.Identity] {
	nick := strings.TrimSpace(nickname)
	if nick == "" {
		return result.Failure[models.Identity](result.KindValidation, msgNicknameRequired)
	}
	if !ValidPIN(pin) {
		return result.Failure[models.Identity](result.KindValidation, msgPINShapeLogin)
	}

	rec, err := c.gw.FindIdentity(ctx, nick)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return result.Failure[models.Identity](result.KindNotFound, msgUnknownNickname)
		}
		c.log.Error(ctx, "login lookup failed", "nickname", nick, "error", err)
		return result.Failure[models.Identity](result.KindTransport, msgLoginError)
	}

	if !VerifyPIN(pin, rec.PasswordHash) {
		return result.Failure[models.Identity](result.KindWrongPassword, msgWrongPIN)
	}

	id := rec.Identity()
	if err := c.sess.Replace(ctx, &id); err != nil {
		c.log.Error(ctx, "session save failed", "owner_id", id.ID, "error", err)
		return result.Failure[models.Identity](result.KindInternal, msgLoginError)
	}

	c.log.Info(ctx, "logged in", "owner_id", id.ID)
	return result.Success(id)
}

// Logout clears the session. No remote call is made.
func (c *CredentialStore) Logout(ctx context.Context) result.Result[result.Empty] {
	if err := c.sess.Replace(ctx, nil); err != nil {
		c.log.Error(ctx, "session clear failed", "error", err)
		return result.Failure[result.Empty](result.KindInternal, msgLogoutError)
	}
	return result.Success(result.Empty{})
}

// DeleteAccount removes the owner's entries, then the identity, then signs
// out. It holds the ledger's mutation lock for the whole sequence. Entries
// deleted before a later step fails stay deleted.
func (c *CredentialStore) DeleteAccount(ctx context.Context) result.Result[result.Empty] {
	cur := c.sess.Current()
	if cur == nil {
		return result.Failure[result.Empty](result.KindValidation, msgLoginRequired)
	}

	ctx = logging.WithOwner(ctx, cur.ID)

	c.ledger.flight.Lock()
	defer c.ledger.flight.Unlock()

	// A load still reading rows would put them back after clearFor.
	if err := c.ledger.WaitReady(ctx); err != nil {
		return result.Failure[result.Empty](result.KindTransport, msgDeleteAccountError)
	}

	if _, err := c.gw.DeleteAllEntries(ctx, cur.ID); err != nil {
		c.log.Error(ctx, "delete entries failed", "error", err)
		return result.Failure[result.Empty](result.KindTransport, msgDeleteAccountError)
	}
	c.ledger.clearFor(cur.ID)

	if err := c.gw.DeleteIdentity(ctx, cur.ID); err != nil {
		c.log.Error(ctx, "delete identity failed", "error", err)
		return result.Failure[result.Empty](result.KindTransport, msgDeleteAccountError)
	}

	if err := c.sess.Replace(ctx, nil); err != nil {
		c.log.Error(ctx, "session clear failed", "error", err)
		return result.Failure[result.Empty](result.KindInternal, msgDeleteAccountError)
	}

	c.log.Info(ctx, "account deleted")
	return result.Success(result.Empty{})
}
