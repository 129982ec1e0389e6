package dto

// StockBucketResponse fila de GET /api/stock.
type StockBucketResponse struct {
	WarehouseCode string `json:"warehouse_code"`
	PartID        string `json:"part_id"`
	OnHandQty     int64  `json:"on_hand_qty"`
	LastUpdatedAt string `json:"last_updated_at"`
}

// StockListResponse listado paginado de buckets.
type StockListResponse struct {
	Items []StockBucketResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// Tipos de ajuste manual de stock.
const (
	AdjustmentIncrease = "INCREASE"
	AdjustmentDecrease = "DECREASE" // resta con piso en cero, nunca conflictúa
)

// StockAdjustmentRequest body para POST /api/stock/adjustments.
type StockAdjustmentRequest struct {
	WarehouseCode string `json:"warehouse_code"`
	PartID        string `json:"part_id"`
	Type          string `json:"type"` // INCREASE | DECREASE
	Qty           int64  `json:"qty"`
}

// StockAdjustmentResponse bucket resultante tras el ajuste.
type StockAdjustmentResponse struct {
	WarehouseCode string `json:"warehouse_code"`
	PartID        string `json:"part_id"`
	OnHandQty     int64  `json:"on_hand_qty"`
}
