// Package services contains server-side business logic. This file implements
// UserService, which creates, finds and deletes identities.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophledger/internal/common"
	"github.com/dmitrijs2005/gophledger/internal/server/models"
	"github.com/dmitrijs2005/gophledger/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// newID is swapped in tests for deterministic ids.
var newID = uuid.NewString

var passwordHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// UserService manages identities. Nickname uniqueness is enforced by the
// users_nickname_key constraint, not by a prior lookup.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// CreateIdentity registers a nickname with the hex SHA-256 digest of its PIN.
// A taken nickname yields common.ErrNicknameTaken.
func (s *UserService) CreateIdentity(ctx context.Context, nickname, passwordHash string) (*models.User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", common.ErrInvalidArgument)
	}
	if !passwordHashPattern.MatchString(passwordHash) {
		return nil, fmt.Errorf("%w: password hash must be 64 lowercase hex characters", common.ErrInvalidArgument)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{ID: newID(), Nickname: nickname, PasswordHash: passwordHash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// FindByNickname returns the identity registered under nickname, or
// common.ErrorNotFound.
func (s *UserService) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", common.ErrInvalidArgument)
	}

	u, err := s.repomanager.Users(s.db).GetByNickname(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return u, nil
}

// DeleteIdentity removes the identity. It fails with
// common.ErrFailedPrecondition while the identity still owns entries.
func (s *UserService) DeleteIdentity(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", common.ErrInvalidArgument)
	}
	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}
