package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/application/export"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/timewindow"
)

// fakeNoteLister implementa los dos puertos de notas devolviendo resúmenes
// fijos; el export solo consume ListDone.
type fakeNoteLister struct {
	done []*entity.NoteSummary
	// ventana recibida en la última llamada, para verificar el filtro
	lastWindow timewindow.Window
}

func (f *fakeNoteLister) Create(context.Context, *entity.ReceivingNote) error { return nil }
func (f *fakeNoteLister) GetByID(context.Context, string) (*entity.ReceivingNote, error) {
	return nil, nil
}
func (f *fakeNoteLister) GetByIDForUpdate(context.Context, string) (*entity.ReceivingNote, error) {
	return nil, nil
}
func (f *fakeNoteLister) UpdateLine(context.Context, *entity.ReceivingNoteLine) error { return nil }
func (f *fakeNoteLister) UpdateStatus(context.Context, string, entity.ReceivingNoteStatus, *time.Time, time.Time) error {
	return nil
}
func (f *fakeNoteLister) ListNotDone(context.Context, timewindow.Window, int, int) ([]*entity.NoteSummary, error) {
	return nil, nil
}
func (f *fakeNoteLister) ListDone(_ context.Context, w timewindow.Window, _, _ int) ([]*entity.NoteSummary, error) {
	f.lastWindow = w
	return f.done, nil
}
func (f *fakeNoteLister) Delete(context.Context, string) error { return nil }

// fakeShippingLister igual que fakeNoteLister, para el puerto de despacho.
type fakeShippingLister struct {
	done []*entity.NoteSummary
}

func (f *fakeShippingLister) Create(context.Context, *entity.ShippingNote) error { return nil }
func (f *fakeShippingLister) GetByID(context.Context, string) (*entity.ShippingNote, error) {
	return nil, nil
}
func (f *fakeShippingLister) GetByIDForUpdate(context.Context, string) (*entity.ShippingNote, error) {
	return nil, nil
}
func (f *fakeShippingLister) UpdateLine(context.Context, *entity.ShippingNoteLine) error { return nil }
func (f *fakeShippingLister) UpdateStatus(context.Context, string, entity.ShippingNoteStatus, *time.Time, time.Time) error {
	return nil
}
func (f *fakeShippingLister) ListNotDone(context.Context, timewindow.Window, int, int) ([]*entity.NoteSummary, error) {
	return nil, nil
}
func (f *fakeShippingLister) ListDone(context.Context, timewindow.Window, int, int) ([]*entity.NoteSummary, error) {
	return f.done, nil
}
func (f *fakeShippingLister) Delete(context.Context, string) error { return nil }

func sampleSummary() *entity.NoteSummary {
	completed := time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC)
	return &entity.NoteSummary{
		ID:               "n1",
		NoteNo:           "IN-WH-SEL-20251102-001",
		CounterpartyName: "Proveedor Hanbit",
		WarehouseCode:    "WH-SEL",
		ItemKinds:        2,
		TotalQty:         decimal.NewFromInt(80),
		Status:           "COMPLETED_OK",
		RequestedAt:      time.Date(2025, 11, 2, 1, 0, 0, 0, time.UTC),
		CompletedAt:      &completed,
	}
}

func TestDoneNotesXLSX_Recepciones(t *testing.T) {
	receiving := &fakeNoteLister{done: []*entity.NoteSummary{sampleSummary()}}
	uc := export.NewUseCase(receiving, &fakeShippingLister{})

	data, filename, err := uc.DoneNotesXLSX(context.Background(), entity.NoteTypeIn, dto.DateFilter{Date: "2025-11-02"})
	require.NoError(t, err)
	assert.Equal(t, "notas_IN_terminadas.xlsx", filename)
	require.NotEmpty(t, data)

	// La ventana del día KST llegó al repositorio
	require.NotNil(t, receiving.lastWindow.From)
	assert.Equal(t, time.Date(2025, 11, 1, 15, 0, 0, 0, time.UTC), receiving.lastWindow.From.UTC())

	// El archivo se puede reabrir y trae cabecera + fila de datos
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Recepciones")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nota", rows[0][0])
	assert.Equal(t, "IN-WH-SEL-20251102-001", rows[1][0])
	assert.Equal(t, "Proveedor Hanbit", rows[1][1])
	// La hora terminada se exporta en KST (05:30 UTC = 14:30 KST)
	assert.Equal(t, "2025-11-02 14:30:00", rows[1][8])
}

func TestDoneNotesXLSX_Despachos(t *testing.T) {
	shipping := &fakeShippingLister{done: nil}
	uc := export.NewUseCase(&fakeNoteLister{}, shipping)

	data, filename, err := uc.DoneNotesXLSX(context.Background(), entity.NoteTypeOut, dto.DateFilter{})
	require.NoError(t, err)
	assert.Equal(t, "notas_OUT_terminadas.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Despachos")
	require.NoError(t, err)
	require.Len(t, rows, 1, "sin notas solo queda la cabecera")
}

func TestDoneNotesXLSX_Errores(t *testing.T) {
	uc := export.NewUseCase(&fakeNoteLister{}, &fakeShippingLister{})

	_, _, err := uc.DoneNotesXLSX(context.Background(), entity.NoteType("BOGUS"), dto.DateFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.DoneNotesXLSX(context.Background(), entity.NoteTypeIn, dto.DateFilter{Date: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
