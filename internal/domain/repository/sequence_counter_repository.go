package repository

import (
	"context"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// SequenceCounterRepository puerto del contador de números de nota.
type SequenceCounterRepository interface {
	// Reserve incrementa atómicamente el contador de la fila
	// (type, warehouseCode, dateYmd) y devuelve el valor reservado (1-based).
	// Si la fila no existe la crea; una carrera de inserción concurrente
	// nunca propaga error al caller ni repite números.
	Reserve(ctx context.Context, noteType entity.NoteType, warehouseCode, dateYmd string) (int64, error)
}
