package shipping

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

// UpdateLine registra el alistamiento de una línea. El estado de la línea es
// función pura de (allocated, picked, onHand); el cliente nunca lo fija.
// Si la derivación produce SHORTAGE, la nota COMPLETA pasa a DELAYED de
// inmediato (terminal, con completedAt): es la alerta temprana de faltante.
// En otro caso el primer toque pasa la nota de PENDING a IN_PROGRESS.
func (uc *UseCase) UpdateLine(ctx context.Context, noteID, lineID string, in dto.UpdateShippingLineRequest) (*dto.ShippingNoteResponse, error) {
	var note *entity.ShippingNote

	err := uc.txRunner.RunShipping(ctx, func(
		notes repository.ShippingNoteRepository,
		buckets repository.InventoryBucketRepository,
		_ repository.SequenceCounterRepository,
	) error {
		var err error
		// Bloquea la cabecera para serializar con cierres concurrentes
		note, err = notes.GetByIDForUpdate(ctx, noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		if note.Status.Terminal() {
			return fmt.Errorf("%w: la nota %s está %s", domain.ErrNoteTerminal, note.ShippingNo, note.Status)
		}
		line := note.LineByID(lineID)
		if line == nil {
			return domain.ErrNotFound
		}

		allocated := decimal.NewFromInt(in.AllocatedQty)
		picked := decimal.NewFromInt(in.PickedQty)
		if allocated.IsNegative() || picked.IsNegative() {
			return fmt.Errorf("%w: las cantidades no pueden ser negativas", domain.ErrInvalidInput)
		}
		// Tres comparaciones por pares, cada una con su propio mensaje
		if picked.GreaterThan(allocated) {
			return fmt.Errorf("%w: picked_qty %s excede allocated_qty %s", domain.ErrInvalidInput, picked, allocated)
		}
		if allocated.GreaterThan(line.OrderedQty) {
			return fmt.Errorf("%w: allocated_qty %s excede ordered_qty %s", domain.ErrInvalidInput, allocated, line.OrderedQty)
		}
		if picked.GreaterThan(line.OrderedQty) {
			return fmt.Errorf("%w: picked_qty %s excede ordered_qty %s", domain.ErrInvalidInput, picked, line.OrderedQty)
		}

		bucket, err := buckets.Get(ctx, note.WarehouseCode, line.PartID)
		if err != nil {
			return err
		}

		line.AllocatedQty = allocated
		line.PickedQty = picked
		line.Status = entity.DeriveShippingLine(allocated, picked, bucket.OnHandQty)
		if err := notes.UpdateLine(ctx, line); err != nil {
			return err
		}

		now := uc.clock.Now()
		if line.Status == entity.ShippingLineShortage {
			// Faltante detectado: la nota entera queda DELAYED
			note.Status = entity.ShippingDelayed
			note.CompletedAt = &now
			note.UpdatedAt = now
			return notes.UpdateStatus(ctx, note.ID, note.Status, &now, now)
		}
		// Primer toque: PENDING -> IN_PROGRESS
		if note.Status == entity.ShippingPending {
			note.Status = entity.ShippingInProgress
			note.UpdatedAt = now
			return notes.UpdateStatus(ctx, note.ID, note.Status, nil, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}
