package dto

// CreateReceivingNoteRequest body para POST /api/receivings.
type CreateReceivingNoteRequest struct {
	SupplierName        string                      `json:"supplier_name"`
	WarehouseCode       string                      `json:"warehouse_code"`
	ExpectedReceiveDate string                      `json:"expected_receive_date"` // día KST yyyy-MM-dd
	Lines               []CreateReceivingNoteLineIn `json:"lines"`
}

// CreateReceivingNoteLineIn línea solicitada al crear la nota.
type CreateReceivingNoteLineIn struct {
	PartID     string `json:"part_id"`
	OrderedQty int64  `json:"ordered_qty"`
}

// UpdateReceivingLineRequest body para PUT /api/receivings/:id/lines/:lineId.
type UpdateReceivingLineRequest struct {
	InspectedQty int64 `json:"inspected_qty"`
	HasIssue     bool  `json:"has_issue"`
}

// ReceivingNoteResponse detalle completo de la nota de recepción.
type ReceivingNoteResponse struct {
	ID                  string                      `json:"id"`
	SupplierName        string                      `json:"supplier_name"`
	WarehouseCode       string                      `json:"warehouse_code"`
	ReceivingNo         string                      `json:"receiving_no"`
	RequestedAt         string                      `json:"requested_at"`
	ExpectedReceiveDate string                      `json:"expected_receive_date"`
	CompletedAt         *string                     `json:"completed_at"`
	Status              string                      `json:"status"`
	Lines               []ReceivingNoteLineResponse `json:"lines"`
}

// ReceivingNoteLineResponse línea del detalle.
type ReceivingNoteLineResponse struct {
	ID           string `json:"id"`
	PartID       string `json:"part_id"`
	PartCode     string `json:"part_code"`
	PartName     string `json:"part_name"`
	Lot          string `json:"lot"`
	ImageURL     string `json:"image_url"`
	OrderedQty   int64  `json:"ordered_qty"`
	InspectedQty int64  `json:"inspected_qty"`
	IssueQty     int64  `json:"issue_qty"`
	Status       string `json:"status"`
}

// CompleteReceivingResponse resultado de POST /api/receivings/:id/complete.
type CompleteReceivingResponse struct {
	CompletedAt     string `json:"completed_at"` // ISO-8601 UTC
	AppliedQtyTotal int64  `json:"applied_qty_total"`
}

// NoteSummaryResponse fila de los listados de notas (recepción y despacho).
type NoteSummaryResponse struct {
	ID               string  `json:"id"`
	NoteNo           string  `json:"note_no"`
	CounterpartyName string  `json:"counterparty_name"`
	BranchName       string  `json:"branch_name,omitempty"`
	WarehouseCode    string  `json:"warehouse_code"`
	ItemKinds        int64   `json:"item_kinds"`
	TotalQty         int64   `json:"total_qty"`
	Status           string  `json:"status"`
	RequestedAt      string  `json:"requested_at"`
	CompletedAt      *string `json:"completed_at"`
}

// NoteListResponse listado paginado de resúmenes de nota.
type NoteListResponse struct {
	Items []NoteSummaryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
