package shipping

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

// UseCase ciclo de vida de notas de despacho: creación con número asignado,
// alistamiento línea a línea con detección de faltantes, cierre con
// descuento del libro de inventario, listados, borrado y lista de picking.
type UseCase struct {
	txRunner   TxRunner
	notes      repository.ShippingNoteRepository
	buckets    repository.InventoryBucketRepository
	parts      repository.PartRepository
	warehouses repository.WarehouseRepository
	allocator  *sequence.Allocator
	pdf        PickingListGenerator
	clock      clock.Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	notes repository.ShippingNoteRepository,
	buckets repository.InventoryBucketRepository,
	parts repository.PartRepository,
	warehouses repository.WarehouseRepository,
	allocator *sequence.Allocator,
	pdf PickingListGenerator,
	clk clock.Clock,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		notes:      notes,
		buckets:    buckets,
		parts:      parts,
		warehouses: warehouses,
		allocator:  allocator,
		pdf:        pdf,
		clock:      clk,
	}
}

// Create crea la nota con sus líneas en PENDING, con snapshot de repuesto y
// número de despacho reservado en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateShippingNoteRequest) (*dto.ShippingNoteResponse, error) {
	if in.CustomerName == "" || in.WarehouseCode == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	expected, err := timewindow.ParseKSTDay(in.ExpectedShipDate)
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

	now := uc.clock.Now()
	noteID := uuid.New().String()
	lines := make([]entity.ShippingNoteLine, 0, len(in.Lines))
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
		lines = append(lines, entity.ShippingNoteLine{
			ID:         uuid.New().String(),
			NoteID:     noteID,
			PartID:     part.ID,
			PartCode:   part.PartCode,
			PartName:   part.Name,
			Lot:        part.Lot,
			ImageURL:   part.ImageURL,
			OrderedQty: decimal.NewFromInt(l.OrderedQty),
			Status:     entity.ShippingLinePending,
		})
	}

	note := &entity.ShippingNote{
		ID:               noteID,
		CustomerName:     in.CustomerName,
		BranchName:       in.BranchName,
		WarehouseCode:    in.WarehouseCode,
		RequestedAt:      now,
		ExpectedShipDate: expected,
		Status:           entity.ShippingPending,
		Lines:            lines,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.RunShipping(ctx, func(
		notes repository.ShippingNoteRepository,
		_ repository.InventoryBucketRepository,
		counters repository.SequenceCounterRepository,
	) error {
		no, err := uc.allocator.Generate(ctx, counters, entity.NoteTypeOut, in.WarehouseCode, now)
		if err != nil {
			return err
		}
		note.ShippingNo = no
		return notes.Create(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// GetDetail obtiene el agregado completo.
func (uc *UseCase) GetDetail(ctx context.Context, id string) (*dto.ShippingNoteResponse, error) {
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
	return &dto.NoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete borra nota y líneas como una unidad; las terminales son inmutables.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunShipping(ctx, func(
		notes repository.ShippingNoteRepository,
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
			return fmt.Errorf("%w: la nota %s está %s", domain.ErrNoteTerminal, note.ShippingNo, note.Status)
		}
		return notes.Delete(ctx, id)
	})
}

// PickingListPDF genera la lista de picking de la nota en PDF.
func (uc *UseCase) PickingListPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	note, err := uc.notes.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if note == nil {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err = uc.pdf.GeneratePickingList(ctx, note)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("picking_%s.pdf", note.ShippingNo), nil
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

func toNoteResponse(n *entity.ShippingNote) *dto.ShippingNoteResponse {
	lines := make([]dto.ShippingNoteLineResponse, 0, len(n.Lines))
	for _, l := range n.Lines {
		lines = append(lines, dto.ShippingNoteLineResponse{
			ID:           l.ID,
			PartID:       l.PartID,
			PartCode:     l.PartCode,
			PartName:     l.PartName,
			Lot:          l.Lot,
			ImageURL:     l.ImageURL,
			OrderedQty:   l.OrderedQty.IntPart(),
			AllocatedQty: l.AllocatedQty.IntPart(),
			PickedQty:    l.PickedQty.IntPart(),
			Status:       string(l.Status),
		})
	}
	return &dto.ShippingNoteResponse{
		ID:               n.ID,
		CustomerName:     n.CustomerName,
		BranchName:       n.BranchName,
		WarehouseCode:    n.WarehouseCode,
		ShippingNo:       n.ShippingNo,
		RequestedAt:      formatInstant(n.RequestedAt),
		ExpectedShipDate: n.ExpectedShipDate.In(timewindow.KST).Format("2006-01-02"),
		CompletedAt:      formatInstantPtr(n.CompletedAt),
		Status:           string(n.Status),
		Lines:            lines,
	}
}
