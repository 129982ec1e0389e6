package repository

import (
	"context"
	"time"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// PartRepository puerto CRUD para el catálogo de repuestos.
// Los Get* excluyen repuestos con soft delete salvo que se indique lo contrario.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	GetByCode(ctx context.Context, partCode string) (*entity.Part, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Part, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

// CategoryRepository puerto mínimo de categorías: lo consume el catálogo
// de repuestos para validar la categoría al crear, nunca los workflows.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
