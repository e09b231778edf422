package repository

import (
	"context"
	"time"

	"github.com/jhoicas/prisma-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}
