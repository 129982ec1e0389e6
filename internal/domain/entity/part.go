package entity

import "time"

// Part repuesto del catálogo. PartCode es único entre repuestos activos.
// Las líneas de nota copian un snapshot (código/nombre/lote/imagen) al
// crearse, así las ediciones posteriores del catálogo no las afectan.
type Part struct {
	ID         string
	PartCode   string
	Name       string
	CategoryID string
	CarModel   string // modelo de vehículo al que aplica el repuesto
	Lot        string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // soft delete; un repuesto borrado no entra en notas nuevas
}

// Active indica si el repuesto no está borrado.
func (p *Part) Active() bool { return p.DeletedAt == nil }

// Category categoría de repuestos, referenciada por Part.CategoryID.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
