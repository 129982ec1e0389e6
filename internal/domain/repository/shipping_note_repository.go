package repository

import (
	"context"
	"time"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/timewindow"
)

// ShippingNoteRepository puerto de persistencia para notas de despacho.
// Mismo contrato de agregado que ReceivingNoteRepository.
type ShippingNoteRepository interface {
	Create(ctx context.Context, note *entity.ShippingNote) error
	GetByID(ctx context.Context, id string) (*entity.ShippingNote, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ShippingNote, error)
	UpdateLine(ctx context.Context, line *entity.ShippingNoteLine) error
	UpdateStatus(ctx context.Context, noteID string, status entity.ShippingNoteStatus, completedAt *time.Time, updatedAt time.Time) error
	ListNotDone(ctx context.Context, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error)
	ListDone(ctx context.Context, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error)
	Delete(ctx context.Context, id string) error
}
