package repository

import (
	"context"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// WarehouseRepository puerto CRUD para bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByCode(ctx context.Context, code string) (*entity.Warehouse, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
}
