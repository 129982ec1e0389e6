package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Sin incidencia la línea queda ACCEPTED con issue 0, sin importar la diferencia.
func TestDeriveReceivingLine_SinIncidencia(t *testing.T) {
	issue, status := entity.DeriveReceivingLine(d(40), d(40), false)
	assert.True(t, issue.IsZero())
	assert.Equal(t, entity.ReceivingLineAccepted, status)

	// Inspeccionado menor al pedido pero sin marcar incidencia: igual ACCEPTED.
	issue, status = entity.DeriveReceivingLine(d(50), d(45), false)
	assert.True(t, issue.IsZero())
	assert.Equal(t, entity.ReceivingLineAccepted, status)
}

// Con incidencia: issue = max(0, ordered - inspected) y la línea queda REJECTED.
func TestDeriveReceivingLine_ConIncidencia(t *testing.T) {
	issue, status := entity.DeriveReceivingLine(d(50), d(48), true)
	assert.True(t, issue.Equal(d(2)), "issue debe ser ordered-inspected")
	assert.Equal(t, entity.ReceivingLineRejected, status)

	// Inspeccionado por encima del pedido: el issue se recorta a cero.
	issue, status = entity.DeriveReceivingLine(d(50), d(55), true)
	assert.True(t, issue.IsZero())
	assert.Equal(t, entity.ReceivingLineRejected, status)
}

func TestReceivingNote_AllLinesDecided(t *testing.T) {
	note := &entity.ReceivingNote{Lines: []entity.ReceivingNoteLine{
		{ID: "l1", Status: entity.ReceivingLineAccepted},
		{ID: "l2", Status: entity.ReceivingLinePending},
	}}
	assert.False(t, note.AllLinesDecided())

	note.Lines[1].Status = entity.ReceivingLineRejected
	assert.True(t, note.AllLinesDecided())
	assert.True(t, note.HasRejectedLine())
}

func TestReceivingNoteStatus_Terminal(t *testing.T) {
	assert.False(t, entity.ReceivingPending.Terminal())
	assert.False(t, entity.ReceivingInProgress.Terminal())
	assert.True(t, entity.ReceivingCompletedOK.Terminal())
	assert.True(t, entity.ReceivingCompletedIssue.Terminal())
}
