package entity

import "time"

// Warehouse bodega física. Code es el identificador que viaja en notas,
// buckets de inventario y contadores de secuencia.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
