package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

var _ repository.InventoryBucketRepository = (*InventoryBucketRepo)(nil)

// InventoryBucketRepo implementación de InventoryBucketRepository sobre
// PostgreSQL (usable con pool o tx).
type InventoryBucketRepo struct {
	q Querier
}

// NewInventoryBucketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryBucketRepository(q Querier) *InventoryBucketRepo {
	return &InventoryBucketRepo{q: q}
}

// Get obtiene el bucket de (bodega, repuesto). Si la fila no existe
// devuelve un bucket en cero, nunca nil: la ausencia de fila significa
// cantidad cero.
func (r *InventoryBucketRepo) Get(ctx context.Context, warehouseCode, partID string) (*entity.InventoryBucket, error) {
	return r.get(ctx, warehouseCode, partID, false)
}

// GetForUpdate obtiene el bucket y bloquea la fila (SELECT FOR UPDATE).
// El ciclo read-modify-write del libro corre siempre bajo este lock.
func (r *InventoryBucketRepo) GetForUpdate(ctx context.Context, warehouseCode, partID string) (*entity.InventoryBucket, error) {
	return r.get(ctx, warehouseCode, partID, true)
}

func (r *InventoryBucketRepo) get(ctx context.Context, warehouseCode, partID string, forUpdate bool) (*entity.InventoryBucket, error) {
	query := `
		SELECT warehouse_code, part_id, on_hand_qty, last_updated_at
		FROM inventory_buckets WHERE warehouse_code = $1 AND part_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var b entity.InventoryBucket
	err := r.q.QueryRow(ctx, query, warehouseCode, partID).Scan(
		&b.WarehouseCode, &b.PartID, &b.OnHandQty, &b.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if !forUpdate {
				return &entity.InventoryBucket{WarehouseCode: warehouseCode, PartID: partID, OnHandQty: decimal.Zero}, nil
			}
			// FOR UPDATE sobre una fila inexistente no bloquea nada: hay que
			// sembrar la fila en cero y volver a leer con lock para que dos
			// transacciones que crean el mismo bucket se serialicen.
			return r.seedAndLock(ctx, warehouseCode, partID, query)
		}
		return nil, fmt.Errorf("get inventory bucket: %w", err)
	}
	return &b, nil
}

func (r *InventoryBucketRepo) seedAndLock(ctx context.Context, warehouseCode, partID, lockQuery string) (*entity.InventoryBucket, error) {
	seed := `
		INSERT INTO inventory_buckets (warehouse_code, part_id, on_hand_qty, last_updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (warehouse_code, part_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, seed, warehouseCode, partID); err != nil {
		return nil, fmt.Errorf("seed inventory bucket: %w", err)
	}
	var b entity.InventoryBucket
	err := r.q.QueryRow(ctx, lockQuery, warehouseCode, partID).Scan(
		&b.WarehouseCode, &b.PartID, &b.OnHandQty, &b.LastUpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("lock inventory bucket: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el bucket por (bodega, repuesto).
func (r *InventoryBucketRepo) Upsert(ctx context.Context, bucket *entity.InventoryBucket) error {
	query := `
		INSERT INTO inventory_buckets (warehouse_code, part_id, on_hand_qty, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (warehouse_code, part_id)
		DO UPDATE SET on_hand_qty = EXCLUDED.on_hand_qty, last_updated_at = EXCLUDED.last_updated_at`
	_, err := r.q.Exec(ctx, query, bucket.WarehouseCode, bucket.PartID, bucket.OnHandQty, bucket.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert inventory bucket: %w", err)
	}
	return nil
}

// List lista buckets con filtros opcionales (cadena vacía = sin filtro).
func (r *InventoryBucketRepo) List(ctx context.Context, warehouseCode, partID string, limit, offset int) ([]*entity.InventoryBucket, error) {
	query := `
		SELECT warehouse_code, part_id, on_hand_qty, last_updated_at
		FROM inventory_buckets WHERE 1=1`
	args := []any{}
	if warehouseCode != "" {
		args = append(args, warehouseCode)
		query += fmt.Sprintf(" AND warehouse_code = $%d", len(args))
	}
	if partID != "" {
		args = append(args, partID)
		query += fmt.Sprintf(" AND part_id = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY warehouse_code, part_id LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory buckets: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryBucket
	for rows.Next() {
		var b entity.InventoryBucket
		if err := rows.Scan(&b.WarehouseCode, &b.PartID, &b.OnHandQty, &b.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory bucket: %w", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory buckets: %w", err)
	}
	return out, nil
}
