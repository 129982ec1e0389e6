package postgres

import (
	"context"
	"fmt"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

var _ repository.SequenceCounterRepository = (*SequenceCounterRepo)(nil)

// SequenceCounterRepo implementación de SequenceCounterRepository sobre
// PostgreSQL. Se usa siempre dentro de la transacción que crea la nota,
// así el consecutivo reservado y la nota se confirman juntos.
type SequenceCounterRepo struct {
	q Querier
}

// NewSequenceCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceCounterRepository(q Querier) *SequenceCounterRepo {
	return &SequenceCounterRepo{q: q}
}

// Reserve reserva el siguiente consecutivo en un solo statement atómico:
// la primera nota del día siembra la fila con next_seq = 2 y recibe 1;
// las siguientes incrementan bajo el lock de fila que toma el upsert.
// Reservas concurrentes sobre la misma clave se serializan ahí, de modo
// que N llamadas devuelven N valores distintos y contiguos desde 1.
// No usa 23505 como señal: un error de statement abortaría la transacción
// que está creando la nota.
func (r *SequenceCounterRepo) Reserve(ctx context.Context, noteType entity.NoteType, warehouseCode, dateYmd string) (int64, error) {
	var next int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO sequence_counters (note_type, warehouse_code, date_ymd, next_seq)
		VALUES ($1, $2, $3, 2)
		ON CONFLICT (note_type, warehouse_code, date_ymd)
		DO UPDATE SET next_seq = sequence_counters.next_seq + 1
		RETURNING next_seq`, noteType, warehouseCode, dateYmd).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reserve sequence counter: %w", err)
	}
	return next - 1, nil
}
