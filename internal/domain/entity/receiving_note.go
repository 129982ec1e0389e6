package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivingNoteStatus estado de una nota de recepción. Solo avanza hacia
// adelante; los estados COMPLETED_* son terminales.
type ReceivingNoteStatus string

const (
	ReceivingPending        ReceivingNoteStatus = "PENDING"
	ReceivingInProgress     ReceivingNoteStatus = "IN_PROGRESS"
	ReceivingCompletedOK    ReceivingNoteStatus = "COMPLETED_OK"
	ReceivingCompletedIssue ReceivingNoteStatus = "COMPLETED_ISSUE"
)

// Terminal indica si la nota ya no acepta mutaciones.
func (s ReceivingNoteStatus) Terminal() bool {
	return s == ReceivingCompletedOK || s == ReceivingCompletedIssue
}

// ReceivingLineStatus estado de una línea de recepción.
// Siempre es función pura de sus cantidades; nunca lo fija el cliente.
type ReceivingLineStatus string

const (
	ReceivingLinePending  ReceivingLineStatus = "PENDING"
	ReceivingLineAccepted ReceivingLineStatus = "ACCEPTED"
	ReceivingLineRejected ReceivingLineStatus = "REJECTED"
)

// Decided indica si la línea ya fue inspeccionada.
func (s ReceivingLineStatus) Decided() bool {
	return s == ReceivingLineAccepted || s == ReceivingLineRejected
}

// ReceivingNote nota de recepción (agregado: cabecera + líneas).
// Las líneas se cargan y persisten siempre junto con la cabecera.
type ReceivingNote struct {
	ID                  string
	SupplierName        string
	WarehouseCode       string
	ReceivingNo         string // asignado por el alocador de números de nota
	RequestedAt         time.Time
	ExpectedReceiveDate time.Time
	CompletedAt         *time.Time
	Status              ReceivingNoteStatus
	Lines               []ReceivingNoteLine
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LineByID busca una línea del agregado. nil si no existe.
func (n *ReceivingNote) LineByID(lineID string) *ReceivingNoteLine {
	for i := range n.Lines {
		if n.Lines[i].ID == lineID {
			return &n.Lines[i]
		}
	}
	return nil
}

// AllLinesDecided indica si ninguna línea sigue PENDING.
func (n *ReceivingNote) AllLinesDecided() bool {
	for i := range n.Lines {
		if !n.Lines[i].Status.Decided() {
			return false
		}
	}
	return true
}

// HasRejectedLine indica si alguna línea fue rechazada.
func (n *ReceivingNote) HasRejectedLine() bool {
	for i := range n.Lines {
		if n.Lines[i].Status == ReceivingLineRejected {
			return true
		}
	}
	return false
}

// ReceivingNoteLine línea de recepción. El snapshot del repuesto
// (código/nombre/lote/imagen) se copia al crear la línea y es inmune a
// ediciones posteriores del catálogo.
type ReceivingNoteLine struct {
	ID           string
	NoteID       string
	PartID       string
	PartCode     string
	PartName     string
	Lot          string
	ImageURL     string
	OrderedQty   decimal.Decimal
	InspectedQty decimal.Decimal
	IssueQty     decimal.Decimal
	Status       ReceivingLineStatus
}

// DeriveReceivingLine deriva (issueQty, status) a partir de las cantidades:
// issueQty = hasIssue ? max(0, ordered-inspected) : 0; REJECTED sí y solo sí hasIssue.
func DeriveReceivingLine(orderedQty, inspectedQty decimal.Decimal, hasIssue bool) (decimal.Decimal, ReceivingLineStatus) {
	if !hasIssue {
		return decimal.Zero, ReceivingLineAccepted
	}
	issue := orderedQty.Sub(inspectedQty)
	if issue.IsNegative() {
		issue = decimal.Zero
	}
	return issue, ReceivingLineRejected
}
