package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleWorker  = "worker"
)

// User usuario de la aplicación. WarehouseCode es la bodega asignada
// (vacío para administradores globales).
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	Name          string
	Role          string
	WarehouseCode string
	Status        string // active | disabled
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
