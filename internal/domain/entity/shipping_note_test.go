package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// SHORTAGE tiene prioridad absoluta: se evalúa antes que READY.
func TestDeriveShippingLine_ShortageGana(t *testing.T) {
	status := entity.DeriveShippingLine(d(10), d(10), d(7))
	assert.Equal(t, entity.ShippingLineShortage, status,
		"allocated > onHand debe dar SHORTAGE aunque picked == allocated")
}

func TestDeriveShippingLine_Ready(t *testing.T) {
	status := entity.DeriveShippingLine(d(10), d(10), d(10))
	assert.Equal(t, entity.ShippingLineReady, status)

	// onHand sobrante también es READY.
	status = entity.DeriveShippingLine(d(10), d(10), d(25))
	assert.Equal(t, entity.ShippingLineReady, status)
}

func TestDeriveShippingLine_Pending(t *testing.T) {
	// picked != allocated → todavía PENDING.
	status := entity.DeriveShippingLine(d(10), d(4), d(20))
	assert.Equal(t, entity.ShippingLinePending, status)

	// allocated == 0 nunca es READY, aunque picked también sea 0.
	status = entity.DeriveShippingLine(d(0), d(0), d(20))
	assert.Equal(t, entity.ShippingLinePending, status)
}

func TestShippingNote_HasShortageYAllLinesReady(t *testing.T) {
	note := &entity.ShippingNote{Lines: []entity.ShippingNoteLine{
		{ID: "l1", Status: entity.ShippingLineReady},
		{ID: "l2", Status: entity.ShippingLinePending},
	}}
	assert.False(t, note.HasShortage())
	assert.False(t, note.AllLinesReady())

	note.Lines[1].Status = entity.ShippingLineShortage
	assert.True(t, note.HasShortage())

	note.Lines[1].Status = entity.ShippingLineReady
	assert.True(t, note.AllLinesReady())
}

func TestShippingNoteStatus_Terminal(t *testing.T) {
	assert.False(t, entity.ShippingPending.Terminal())
	assert.False(t, entity.ShippingInProgress.Terminal())
	assert.True(t, entity.ShippingDelayed.Terminal())
	assert.True(t, entity.ShippingCompleted.Terminal())
}
