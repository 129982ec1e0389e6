package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/application/sequence"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
	"github.com/hanbit-parts/warehouse-api/internal/domain/timewindow"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
)

// UseCase ciclo de vida de notas de recepción: creación con número
// asignado, inspección línea a línea, cierre con aumento del libro de
// inventario, listados y borrado del agregado.
type UseCase struct {
	txRunner   TxRunner
	notes      repository.ReceivingNoteRepository
	parts      repository.PartRepository
	warehouses repository.WarehouseRepository
	allocator  *sequence.Allocator
	clock      clock.Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	notes repository.ReceivingNoteRepository,
	parts repository.PartRepository,
	warehouses repository.WarehouseRepository,
	allocator *sequence.Allocator,
	clk clock.Clock,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		notes:      notes,
		parts:      parts,
		warehouses: warehouses,
		allocator:  allocator,
		clock:      clk,
	}
}

// Create crea la nota con sus líneas en PENDING. El snapshot del repuesto
// (código/nombre/lote/imagen) se copia a cada línea; el número de recepción
// se reserva en la misma transacción que inserta el agregado.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateReceivingNoteRequest) (*dto.ReceivingNoteResponse, error) {
	if in.SupplierName == "" || in.WarehouseCode == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	expected, err := timewindow.ParseKSTDay(in.ExpectedReceiveDate)
	if err != nil {
		return nil, err
	}

	wh, err := uc.warehouses.GetByCode(ctx, in.WarehouseCode)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	// Validar repuestos y armar snapshots (solo lectura, fuera de la tx)
	now := uc.clock.Now()
	noteID := uuid.New().String()
	lines := make([]entity.ReceivingNoteLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.PartID == "" || l.OrderedQty <= 0 {
			return nil, domain.ErrInvalidInput
		}
		part, err := uc.parts.GetByID(ctx, l.PartID)
		if err != nil {
			return nil, err
		}
		if part == nil || !part.Active() {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, entity.ReceivingNoteLine{
			ID:         uuid.New().String(),
			NoteID:     noteID,
			PartID:     part.ID,
			PartCode:   part.PartCode,
			PartName:   part.Name,
			Lot:        part.Lot,
			ImageURL:   part.ImageURL,
			OrderedQty: decimal.NewFromInt(l.OrderedQty),
			Status:     entity.ReceivingLinePending,
		})
	}

	note := &entity.ReceivingNote{
		ID:                  noteID,
		SupplierName:        in.SupplierName,
		WarehouseCode:       in.WarehouseCode,
		RequestedAt:         now,
		ExpectedReceiveDate: expected,
		Status:              entity.ReceivingPending,
		Lines:               lines,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = uc.txRunner.RunReceiving(ctx, func(
		notes repository.ReceivingNoteRepository,
		_ repository.InventoryBucketRepository,
		counters repository.SequenceCounterRepository,
	) error {
		no, err := uc.allocator.Generate(ctx, counters, entity.NoteTypeIn, in.WarehouseCode, now)
		if err != nil {
			return err
		}
		note.ReceivingNo = no
		return notes.Create(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// GetDetail obtiene el agregado completo.
func (uc *UseCase) GetDetail(ctx context.Context, id string) (*dto.ReceivingNoteResponse, error) {
	note, err := uc.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return toNoteResponse(note), nil
}

// ListNotDone lista notas no terminales, filtradas por día KST sobre requested_at.
func (uc *UseCase) ListNotDone(ctx context.Context, filter dto.DateFilter, page dto.PageRequest) (*dto.NoteListResponse, error) {
	return uc.list(ctx, filter, page, uc.notes.ListNotDone)
}

// ListDone lista notas terminales, filtradas por día KST sobre completed_at.
func (uc *UseCase) ListDone(ctx context.Context, filter dto.DateFilter, page dto.PageRequest) (*dto.NoteListResponse, error) {
	return uc.list(ctx, filter, page, uc.notes.ListDone)
}

func (uc *UseCase) list(
	ctx context.Context,
	filter dto.DateFilter,
	page dto.PageRequest,
	query func(context.Context, timewindow.Window, int, int) ([]*entity.NoteSummary, error),
) (*dto.NoteListResponse, error) {
	w, err := timewindow.Normalize(filter.Date, filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	summaries, err := query(ctx, w, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.NoteListResponse{
		Items: toSummaryResponses(summaries),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete borra nota y líneas como una unidad. Las notas terminales son
// inmutables y no se pueden borrar.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunReceiving(ctx, func(
		notes repository.ReceivingNoteRepository,
		_ repository.InventoryBucketRepository,
		_ repository.SequenceCounterRepository,
	) error {
		note, err := notes.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		if note.Status.Terminal() {
			return fmt.Errorf("%w: la nota %s está %s", domain.ErrNoteTerminal, note.ReceivingNo, note.Status)
		}
		return notes.Delete(ctx, id)
	})
}

// ── mapeo a DTO ───────────────────────────────────────────────────────────────

const rfc3339Nano = "2006-01-02T15:04:05.999999999Z07:00"

func formatInstant(t time.Time) string {
	return t.UTC().Format(rfc3339Nano)
}

func formatInstantPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatInstant(*t)
	return &s
}

func toNoteResponse(n *entity.ReceivingNote) *dto.ReceivingNoteResponse {
	lines := make([]dto.ReceivingNoteLineResponse, 0, len(n.Lines))
	for _, l := range n.Lines {
		lines = append(lines, dto.ReceivingNoteLineResponse{
			ID:           l.ID,
			PartID:       l.PartID,
			PartCode:     l.PartCode,
			PartName:     l.PartName,
			Lot:          l.Lot,
			ImageURL:     l.ImageURL,
			OrderedQty:   l.OrderedQty.IntPart(),
			InspectedQty: l.InspectedQty.IntPart(),
			IssueQty:     l.IssueQty.IntPart(),
			Status:       string(l.Status),
		})
	}
	return &dto.ReceivingNoteResponse{
		ID:                  n.ID,
		SupplierName:        n.SupplierName,
		WarehouseCode:       n.WarehouseCode,
		ReceivingNo:         n.ReceivingNo,
		RequestedAt:         formatInstant(n.RequestedAt),
		ExpectedReceiveDate: n.ExpectedReceiveDate.In(timewindow.KST).Format("2006-01-02"),
		CompletedAt:         formatInstantPtr(n.CompletedAt),
		Status:              string(n.Status),
		Lines:               lines,
	}
}

func toSummaryResponses(summaries []*entity.NoteSummary) []dto.NoteSummaryResponse {
	items := make([]dto.NoteSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.NoteSummaryResponse{
			ID:               s.ID,
			NoteNo:           s.NoteNo,
			CounterpartyName: s.CounterpartyName,
			BranchName:       s.BranchName,
			WarehouseCode:    s.WarehouseCode,
			ItemKinds:        s.ItemKinds,
			TotalQty:         s.TotalQty.IntPart(),
			Status:           s.Status,
			RequestedAt:      formatInstant(s.RequestedAt),
			CompletedAt:      formatInstantPtr(s.CompletedAt),
		})
	}
	return items
}
