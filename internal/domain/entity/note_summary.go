package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteSummary fila de listado de notas (recepción o despacho): agregados
// por nota calculados en la consulta, sin cargar las líneas completas.
type NoteSummary struct {
	ID               string
	NoteNo           string
	CounterpartyName string // proveedor (recepción) o cliente (despacho)
	BranchName       string // solo despacho
	WarehouseCode    string
	ItemKinds        int64 // cantidad de líneas (clases de repuesto)
	TotalQty         decimal.Decimal
	Status           string
	RequestedAt      time.Time
	CompletedAt      *time.Time
}
