package receiving

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

// Complete cierra la nota: exige que toda línea esté decidida, aumenta el
// libro de inventario por cada línea ACCEPTED y congela la nota en
// COMPLETED_ISSUE (si hubo rechazos) o COMPLETED_OK. Todo en una sola
// transacción: los aumentos y el cambio de estado se confirman juntos o
// ninguno. Un segundo intento sobre una nota terminal se rechaza con
// conflicto, nunca repite los efectos sobre el libro.
func (uc *UseCase) Complete(ctx context.Context, noteID string) (*dto.CompleteReceivingResponse, error) {
	var resp *dto.CompleteReceivingResponse

	err := uc.txRunner.RunReceiving(ctx, func(
		notes repository.ReceivingNoteRepository,
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
			return fmt.Errorf("%w: la nota %s está %s", domain.ErrNoteTerminal, note.ReceivingNo, note.Status)
		}
		if !note.AllLinesDecided() {
			return fmt.Errorf("%w: la nota %s tiene líneas sin inspeccionar", domain.ErrLinesNotDecided, note.ReceivingNo)
		}

		now := uc.clock.Now()
		applied := decimal.Zero
		for i := range note.Lines {
			line := &note.Lines[i]
			if line.Status != entity.ReceivingLineAccepted {
				continue // REJECTED aporta cero
			}
			if err := stock.Increase(ctx, buckets, note.WarehouseCode, line.PartID, line.OrderedQty, now); err != nil {
				return err
			}
			applied = applied.Add(line.OrderedQty)
		}

		final := entity.ReceivingCompletedOK
		if note.HasRejectedLine() {
			final = entity.ReceivingCompletedIssue
		}
		if err := notes.UpdateStatus(ctx, note.ID, final, &now, now); err != nil {
			return err
		}

		resp = &dto.CompleteReceivingResponse{
			CompletedAt:     formatInstant(now),
			AppliedQtyTotal: applied.IntPart(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
