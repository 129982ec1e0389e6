package dto

// CreateShippingNoteRequest body para POST /api/shipments.
type CreateShippingNoteRequest struct {
	CustomerName     string                     `json:"customer_name"`
	BranchName       string                     `json:"branch_name"`
	WarehouseCode    string                     `json:"warehouse_code"`
	ExpectedShipDate string                     `json:"expected_ship_date"` // día KST yyyy-MM-dd
	Lines            []CreateShippingNoteLineIn `json:"lines"`
}

// CreateShippingNoteLineIn línea solicitada al crear la nota.
type CreateShippingNoteLineIn struct {
	PartID     string `json:"part_id"`
	OrderedQty int64  `json:"ordered_qty"`
}

// UpdateShippingLineRequest body para PUT /api/shipments/:id/lines/:lineId.
type UpdateShippingLineRequest struct {
	AllocatedQty int64 `json:"allocated_qty"`
	PickedQty    int64 `json:"picked_qty"`
}

// ShippingNoteResponse detalle completo de la nota de despacho.
type ShippingNoteResponse struct {
	ID               string                     `json:"id"`
	CustomerName     string                     `json:"customer_name"`
	BranchName       string                     `json:"branch_name"`
	WarehouseCode    string                     `json:"warehouse_code"`
	ShippingNo       string                     `json:"shipping_no"`
	RequestedAt      string                     `json:"requested_at"`
	ExpectedShipDate string                     `json:"expected_ship_date"`
	CompletedAt      *string                    `json:"completed_at"`
	Status           string                     `json:"status"`
	Lines            []ShippingNoteLineResponse `json:"lines"`
}

// ShippingNoteLineResponse línea del detalle.
type ShippingNoteLineResponse struct {
	ID           string `json:"id"`
	PartID       string `json:"part_id"`
	PartCode     string `json:"part_code"`
	PartName     string `json:"part_name"`
	Lot          string `json:"lot"`
	ImageURL     string `json:"image_url"`
	OrderedQty   int64  `json:"ordered_qty"`
	AllocatedQty int64  `json:"allocated_qty"`
	PickedQty    int64  `json:"picked_qty"`
	Status       string `json:"status"`
}

// CompleteShippingResponse resultado de POST /api/shipments/:id/complete.
type CompleteShippingResponse struct {
	CompletedAt     string `json:"completed_at"` // ISO-8601 UTC
	TotalShippedQty int64  `json:"total_shipped_qty"`
	Status          string `json:"status"` // COMPLETED o DELAYED
}
