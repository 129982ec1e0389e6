package receiving

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

// UpdateLine registra la inspección de una línea. El estado de la línea es
// función pura de las cantidades (nunca lo fija el cliente):
// issueQty = hasIssue ? max(0, ordered-inspected) : 0, REJECTED sí y solo sí
// hasIssue. El primer toque pasa la nota de PENDING a IN_PROGRESS.
func (uc *UseCase) UpdateLine(ctx context.Context, noteID, lineID string, in dto.UpdateReceivingLineRequest) (*dto.ReceivingNoteResponse, error) {
	var note *entity.ReceivingNote

	err := uc.txRunner.RunReceiving(ctx, func(
		notes repository.ReceivingNoteRepository,
		_ repository.InventoryBucketRepository,
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
			return fmt.Errorf("%w: la nota %s está %s", domain.ErrNoteTerminal, note.ReceivingNo, note.Status)
		}
		line := note.LineByID(lineID)
		if line == nil {
			return domain.ErrNotFound
		}
		if line.Status.Decided() {
			return fmt.Errorf("%w: línea %s en estado %s", domain.ErrLineDecided, lineID, line.Status)
		}

		inspected := decimal.NewFromInt(in.InspectedQty)
		if inspected.IsNegative() {
			return fmt.Errorf("%w: inspected_qty no puede ser negativo", domain.ErrInvalidInput)
		}
		if inspected.GreaterThan(line.OrderedQty) {
			return fmt.Errorf("%w: inspected_qty %s excede ordered_qty %s", domain.ErrInvalidInput, inspected, line.OrderedQty)
		}

		issueQty, status := entity.DeriveReceivingLine(line.OrderedQty, inspected, in.HasIssue)
		line.InspectedQty = inspected
		line.IssueQty = issueQty
		line.Status = status
		if err := notes.UpdateLine(ctx, line); err != nil {
			return err
		}

		// Primer toque: PENDING -> IN_PROGRESS
		if note.Status == entity.ReceivingPending {
			note.Status = entity.ReceivingInProgress
			note.UpdatedAt = uc.clock.Now()
			return notes.UpdateStatus(ctx, note.ID, note.Status, nil, note.UpdatedAt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}
