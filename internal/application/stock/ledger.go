// Package stock implementa el libro de inventario: las mutaciones del
// bucket (bodega, repuesto) que ejecutan los cierres de nota y los
// ajustes manuales. Toda mutación corre sobre un repositorio atado a una
// transacción y bloquea la fila con SELECT FOR UPDATE antes del
// read-modify-write.
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

// Increase suma qty al bucket; lo crea en cero si no existe.
// qty <= 0 es no-op. Nunca falla por reglas de negocio.
func Increase(ctx context.Context, buckets repository.InventoryBucketRepository, warehouseCode, partID string, qty decimal.Decimal, now time.Time) error {
	if !qty.IsPositive() {
		return nil
	}
	bucket, err := buckets.GetForUpdate(ctx, warehouseCode, partID)
	if err != nil {
		return err
	}
	bucket.OnHandQty = bucket.OnHandQty.Add(qty)
	bucket.LastUpdatedAt = now
	return buckets.Upsert(ctx, bucket)
}

// Decrease resta qty del bucket. qty <= 0 es no-op. Si la resta dejaría el
// bucket negativo retorna ErrInsufficientStock; el caller debe abortar la
// transacción completa (ningún descuento parcial sobrevive).
// Es la política autoritativa del cierre de despacho.
func Decrease(ctx context.Context, buckets repository.InventoryBucketRepository, warehouseCode, partID string, qty decimal.Decimal, now time.Time) error {
	if !qty.IsPositive() {
		return nil
	}
	bucket, err := buckets.GetForUpdate(ctx, warehouseCode, partID)
	if err != nil {
		return err
	}
	if bucket.OnHandQty.LessThan(qty) {
		return fmt.Errorf("%w: bodega %s repuesto %s disponible %s solicitado %s",
			domain.ErrInsufficientStock, warehouseCode, partID, bucket.OnHandQty, qty)
	}
	bucket.OnHandQty = bucket.OnHandQty.Sub(qty)
	bucket.LastUpdatedAt = now
	return buckets.Upsert(ctx, bucket)
}

// DecreaseClamped resta qty con piso en cero, sin conflicto por faltante.
// Operación distinta y con nombre explícito: la usa solo el ajuste manual
// de stock, nunca el cierre de notas.
func DecreaseClamped(ctx context.Context, buckets repository.InventoryBucketRepository, warehouseCode, partID string, qty decimal.Decimal, now time.Time) error {
	if !qty.IsPositive() {
		return nil
	}
	bucket, err := buckets.GetForUpdate(ctx, warehouseCode, partID)
	if err != nil {
		return err
	}
	bucket.OnHandQty = bucket.OnHandQty.Sub(qty)
	if bucket.OnHandQty.IsNegative() {
		bucket.OnHandQty = decimal.Zero
	}
	bucket.LastUpdatedAt = now
	return buckets.Upsert(ctx, bucket)
}
