package receiving

import (
	"context"

	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la asignación del número de
// nota, la mutación del libro de inventario y el cambio de estado de la
// nota se confirmen o reviertan juntos.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		notes repository.ReceivingNoteRepository,
		buckets repository.InventoryBucketRepository,
		counters repository.SequenceCounterRepository,
	) error) error
}
