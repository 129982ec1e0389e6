package shipping

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/application/stock"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

// Complete cierra la nota. Con algún SHORTAGE presente el cierre la deja en
// DELAYED sin tocar el libro de inventario; con todas las líneas READY
// descuenta picked_qty por línea y la deja en COMPLETED. Una mezcla de READY
// y PENDING sin faltantes se rechaza con conflicto. Los descuentos y el
// cambio de estado se confirman juntos o ninguno: si el stock resulta
// insuficiente al descontar, la transacción completa se revierte.
func (uc *UseCase) Complete(ctx context.Context, noteID string) (*dto.CompleteShippingResponse, error) {
	var resp *dto.CompleteShippingResponse

	err := uc.txRunner.RunShipping(ctx, func(
		notes repository.ShippingNoteRepository,
		buckets repository.InventoryBucketRepository,
		_ repository.SequenceCounterRepository,
	) error {
		// Bloquea la cabecera: dos cierres en carrera se serializan y el
		// segundo ve el estado terminal del primero
		note, err := notes.GetByIDForUpdate(ctx, noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		if note.Status.Terminal() {
			return fmt.Errorf("%w: la nota %s está %s", domain.ErrNoteTerminal, note.ShippingNo, note.Status)
		}

		now := uc.clock.Now()

		if note.HasShortage() {
			// Faltante: cierre sin mutación del libro
			if err := notes.UpdateStatus(ctx, note.ID, entity.ShippingDelayed, &now, now); err != nil {
				return err
			}
			resp = &dto.CompleteShippingResponse{
				CompletedAt:     formatInstant(now),
				TotalShippedQty: 0,
				Status:          string(entity.ShippingDelayed),
			}
			return nil
		}
		if !note.AllLinesReady() {
			return fmt.Errorf("%w: la nota %s tiene líneas sin alistar", domain.ErrLinesNotDecided, note.ShippingNo)
		}

		shipped := decimal.Zero
		for i := range note.Lines {
			line := &note.Lines[i]
			if err := stock.Decrease(ctx, buckets, note.WarehouseCode, line.PartID, line.PickedQty, now); err != nil {
				return err
			}
			shipped = shipped.Add(line.PickedQty)
		}

		if err := notes.UpdateStatus(ctx, note.ID, entity.ShippingCompleted, &now, now); err != nil {
			return err
		}
		resp = &dto.CompleteShippingResponse{
			CompletedAt:     formatInstant(now),
			TotalShippedQty: shipped.IntPart(),
			Status:          string(entity.ShippingCompleted),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
