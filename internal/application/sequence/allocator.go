// Package sequence asigna números de nota libres de colisión:
// "{TYPE}-{BODEGA}-{YYYYMMDD}-{seq:03d}" con un contador monótono por
// (tipo, bodega, día UTC) reservado bajo lock exclusivo de fila.
package sequence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

const ymdLayout = "20060102"

// Allocator genera números de nota. Sin estado propio: el contador vive en
// la fila de sequence_counters y se reserva dentro de la transacción del
// caller, así el número queda atado a la creación de la nota.
type Allocator struct{}

// NewAllocator construye el alocador.
func NewAllocator() *Allocator { return &Allocator{} }

// Generate reserva el siguiente consecutivo para (noteType, warehouseCode,
// día UTC de at) y devuelve el número formateado. Para N llamadas
// concurrentes sobre la misma clave los N números son distintos y los seq
// ocupados forman el prefijo contiguo 1..N.
func (a *Allocator) Generate(ctx context.Context, counters repository.SequenceCounterRepository, noteType entity.NoteType, warehouseCode string, at time.Time) (string, error) {
	if !noteType.Valid() {
		return "", fmt.Errorf("%w: tipo de nota %q desconocido", domain.ErrInvalidInput, noteType)
	}
	if strings.TrimSpace(warehouseCode) == "" {
		return "", fmt.Errorf("%w: código de bodega vacío", domain.ErrInvalidInput)
	}
	if at.IsZero() {
		return "", fmt.Errorf("%w: instante disparador vacío", domain.ErrInvalidInput)
	}

	dateYmd := at.UTC().Format(ymdLayout)
	seq, err := counters.Reserve(ctx, noteType, warehouseCode, dateYmd)
	if err != nil {
		return "", fmt.Errorf("reservar consecutivo: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s-%03d", noteType, warehouseCode, dateYmd, seq), nil
}
