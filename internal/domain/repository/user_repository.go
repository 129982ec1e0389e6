package repository

import (
	"context"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios (solo lo que auth necesita).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
