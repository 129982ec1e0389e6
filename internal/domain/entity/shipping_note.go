package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingNoteStatus estado de una nota de despacho. DELAYED y COMPLETED
// son terminales; DELAYED se alcanza anticipadamente al detectar faltante.
type ShippingNoteStatus string

const (
	ShippingPending    ShippingNoteStatus = "PENDING"
	ShippingInProgress ShippingNoteStatus = "IN_PROGRESS"
	ShippingDelayed    ShippingNoteStatus = "DELAYED"
	ShippingCompleted  ShippingNoteStatus = "COMPLETED"
)

// Terminal indica si la nota ya no acepta mutaciones.
func (s ShippingNoteStatus) Terminal() bool {
	return s == ShippingDelayed || s == ShippingCompleted
}

// ShippingLineStatus estado de una línea de despacho, derivado de las
// cantidades y del stock disponible.
type ShippingLineStatus string

const (
	ShippingLinePending  ShippingLineStatus = "PENDING"
	ShippingLineReady    ShippingLineStatus = "READY"
	ShippingLineShortage ShippingLineStatus = "SHORTAGE"
)

// ShippingNote nota de despacho (agregado: cabecera + líneas).
type ShippingNote struct {
	ID               string
	CustomerName     string
	BranchName       string
	WarehouseCode    string
	ShippingNo       string
	RequestedAt      time.Time
	ExpectedShipDate time.Time
	CompletedAt      *time.Time
	Status           ShippingNoteStatus
	Lines            []ShippingNoteLine
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LineByID busca una línea del agregado. nil si no existe.
func (n *ShippingNote) LineByID(lineID string) *ShippingNoteLine {
	for i := range n.Lines {
		if n.Lines[i].ID == lineID {
			return &n.Lines[i]
		}
	}
	return nil
}

// HasShortage indica si alguna línea está en SHORTAGE.
func (n *ShippingNote) HasShortage() bool {
	for i := range n.Lines {
		if n.Lines[i].Status == ShippingLineShortage {
			return true
		}
	}
	return false
}

// AllLinesReady indica si todas las líneas están READY.
func (n *ShippingNote) AllLinesReady() bool {
	for i := range n.Lines {
		if n.Lines[i].Status != ShippingLineReady {
			return false
		}
	}
	return true
}

// ShippingNoteLine línea de despacho con snapshot del repuesto.
type ShippingNoteLine struct {
	ID           string
	NoteID       string
	PartID       string
	PartCode     string
	PartName     string
	Lot          string
	ImageURL     string
	OrderedQty   decimal.Decimal
	AllocatedQty decimal.Decimal
	PickedQty    decimal.Decimal
	Status       ShippingLineStatus
}

// DeriveShippingLine deriva el estado de la línea en orden de prioridad:
// allocated > onHand -> SHORTAGE; allocated > 0 y picked == allocated y
// onHand >= allocated -> READY; en otro caso PENDING.
func DeriveShippingLine(allocatedQty, pickedQty, onHand decimal.Decimal) ShippingLineStatus {
	if allocatedQty.GreaterThan(onHand) {
		return ShippingLineShortage
	}
	if allocatedQty.IsPositive() && pickedQty.Equal(allocatedQty) && onHand.GreaterThanOrEqual(allocatedQty) {
		return ShippingLineReady
	}
	return ShippingLinePending
}
