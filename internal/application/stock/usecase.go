package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio de buckets atado a esa tx.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(buckets repository.InventoryBucketRepository) error) error
}

// UseCase consultas de stock y ajustes manuales.
type UseCase struct {
	buckets  repository.InventoryBucketRepository
	txRunner TxRunner
	clock    clock.Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(buckets repository.InventoryBucketRepository, txRunner TxRunner, clk clock.Clock) *UseCase {
	return &UseCase{buckets: buckets, txRunner: txRunner, clock: clk}
}

// List lista buckets con filtros opcionales por bodega y repuesto.
// Lectura simple, fuera de la superficie crítica de consistencia.
func (uc *UseCase) List(ctx context.Context, warehouseCode, partID string, page dto.PageRequest) (*dto.StockListResponse, error) {
	page.DefaultPage()
	list, err := uc.buckets.List(ctx, warehouseCode, partID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockBucketResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.StockBucketResponse{
			WarehouseCode: b.WarehouseCode,
			PartID:        b.PartID,
			OnHandQty:     b.OnHandQty.IntPart(),
			LastUpdatedAt: b.LastUpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Adjust aplica un ajuste manual: INCREASE suma; DECREASE resta con piso en
// cero (DecreaseClamped). El cierre de despacho usa la política de conflicto,
// no esta.
func (uc *UseCase) Adjust(ctx context.Context, in dto.StockAdjustmentRequest) (*dto.StockAdjustmentResponse, error) {
	if in.WarehouseCode == "" || in.PartID == "" || in.Qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	qty := decimal.NewFromInt(in.Qty)
	now := uc.clock.Now()

	var out *dto.StockAdjustmentResponse
	err := uc.txRunner.RunStock(ctx, func(buckets repository.InventoryBucketRepository) error {
		var err error
		switch in.Type {
		case dto.AdjustmentIncrease:
			err = Increase(ctx, buckets, in.WarehouseCode, in.PartID, qty, now)
		case dto.AdjustmentDecrease:
			err = DecreaseClamped(ctx, buckets, in.WarehouseCode, in.PartID, qty, now)
		default:
			return domain.ErrInvalidInput
		}
		if err != nil {
			return err
		}
		// La cantidad reportada se lee dentro de la misma tx: tras el
		// commit otra mutación concurrente ya podría haberla cambiado.
		bucket, err := buckets.Get(ctx, in.WarehouseCode, in.PartID)
		if err != nil {
			return err
		}
		out = &dto.StockAdjustmentResponse{
			WarehouseCode: bucket.WarehouseCode,
			PartID:        bucket.PartID,
			OnHandQty:     bucket.OnHandQty.IntPart(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
