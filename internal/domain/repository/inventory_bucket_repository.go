package repository

import (
	"context"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// InventoryBucketRepository puerto para consultar/actualizar el bucket de
// inventario por (bodega, repuesto). Las mutaciones se usan dentro de
// transacciones para garantizar consistencia.
type InventoryBucketRepository interface {
	// Get devuelve el bucket; si no existe, uno en cero (no nil).
	Get(ctx context.Context, warehouseCode, partID string) (*entity.InventoryBucket, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, warehouseCode, partID string) (*entity.InventoryBucket, error)
	Upsert(ctx context.Context, bucket *entity.InventoryBucket) error
	// List filtra opcionalmente por bodega y/o repuesto (cadenas vacías = sin filtro).
	List(ctx context.Context, warehouseCode, partID string, limit, offset int) ([]*entity.InventoryBucket, error)
}
