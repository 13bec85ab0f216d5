package users

import (
	"context"

	"github.com/dmitrijs2005/gophledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
