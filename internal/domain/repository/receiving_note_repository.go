package repository

import (
	"context"
	"time"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/timewindow"
)

// ReceivingNoteRepository puerto de persistencia para notas de recepción.
// El agregado (cabecera + líneas) se carga y borra siempre completo;
// GetByIDForUpdate bloquea la fila de cabecera para serializar las
// mutaciones concurrentes sobre la misma nota.
type ReceivingNoteRepository interface {
	Create(ctx context.Context, note *entity.ReceivingNote) error
	// GetByID carga nota + líneas en una lectura. nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.ReceivingNote, error)
	// GetByIDForUpdate igual que GetByID pero con SELECT ... FOR UPDATE sobre la cabecera.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ReceivingNote, error)
	UpdateLine(ctx context.Context, line *entity.ReceivingNoteLine) error
	UpdateStatus(ctx context.Context, noteID string, status entity.ReceivingNoteStatus, completedAt *time.Time, updatedAt time.Time) error
	// ListNotDone filtra por requested_at; ListDone por completed_at.
	ListNotDone(ctx context.Context, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error)
	ListDone(ctx context.Context, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error)
	// Delete borra cabecera y líneas como una unidad.
	Delete(ctx context.Context, id string) error
}
