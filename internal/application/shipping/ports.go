package shipping

import (
	"context"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Los descuentos del libro de inventario y
// el cambio de estado de la nota se confirman o revierten juntos.
type TxRunner interface {
	RunShipping(ctx context.Context, fn func(
		notes repository.ShippingNoteRepository,
		buckets repository.InventoryBucketRepository,
		counters repository.SequenceCounterRepository,
	) error) error
}

// PickingListGenerator genera el PDF de la lista de picking de una nota.
type PickingListGenerator interface {
	GeneratePickingList(ctx context.Context, note *entity.ShippingNote) ([]byte, error)
}
