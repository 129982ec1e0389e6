package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBucket cantidad disponible de un repuesto en una bodega.
// Clave compuesta (WarehouseCode, PartID). OnHandQty nunca es negativo.
type InventoryBucket struct {
	WarehouseCode string
	PartID        string
	OnHandQty     decimal.Decimal
	LastUpdatedAt time.Time
}
