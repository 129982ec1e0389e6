package sequence_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-parts/warehouse-api/internal/application/sequence"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// fakeCounterRepo contador en memoria protegido por mutex, suficiente para
// verificar el contrato "N llamadas concurrentes → números 1..N distintos".
type fakeCounterRepo struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{seqs: make(map[string]int64)}
}

func (f *fakeCounterRepo) Reserve(_ context.Context, noteType entity.NoteType, warehouseCode, dateYmd string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := string(noteType) + "|" + warehouseCode + "|" + dateYmd
	f.seqs[key]++
	return f.seqs[key], nil
}

func TestGenerate_Formato(t *testing.T) {
	counters := newFakeCounterRepo()
	alloc := sequence.NewAllocator()
	at := time.Date(2025, 11, 2, 3, 0, 0, 0, time.UTC)

	no, err := alloc.Generate(context.Background(), counters, entity.NoteTypeIn, "WH-SEL", at)
	require.NoError(t, err)
	assert.Equal(t, "IN-WH-SEL-20251102-001", no)

	// Segunda reserva sobre la misma clave avanza el consecutivo.
	no, err = alloc.Generate(context.Background(), counters, entity.NoteTypeIn, "WH-SEL", at)
	require.NoError(t, err)
	assert.Equal(t, "IN-WH-SEL-20251102-002", no)

	// Otra clave (tipo distinto) arranca su propio contador en 1.
	no, err = alloc.Generate(context.Background(), counters, entity.NoteTypeOut, "WH-SEL", at)
	require.NoError(t, err)
	assert.Equal(t, "OUT-WH-SEL-20251102-001", no)
}

// El día de la clave es el día UTC del instante disparador, no el día KST.
func TestGenerate_DiaUTC(t *testing.T) {
	counters := newFakeCounterRepo()
	alloc := sequence.NewAllocator()
	// 2025-11-02 23:30 UTC sigue siendo 20251102 aunque en KST ya sea día 3.
	at := time.Date(2025, 11, 2, 23, 30, 0, 0, time.UTC)

	no, err := alloc.Generate(context.Background(), counters, entity.NoteTypeOut, "WH-BUS", at)
	require.NoError(t, err)
	assert.Equal(t, "OUT-WH-BUS-20251102-001", no)
}

func TestGenerate_EntradasInvalidas(t *testing.T) {
	counters := newFakeCounterRepo()
	alloc := sequence.NewAllocator()
	at := time.Date(2025, 11, 2, 3, 0, 0, 0, time.UTC)

	_, err := alloc.Generate(context.Background(), counters, entity.NoteType("BOGUS"), "WH-SEL", at)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = alloc.Generate(context.Background(), counters, entity.NoteTypeIn, "  ", at)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = alloc.Generate(context.Background(), counters, entity.NoteTypeIn, "WH-SEL", time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// N generaciones concurrentes sobre la misma clave: N números distintos y
// los consecutivos ocupan el prefijo contiguo 1..N.
func TestGenerate_ConcurrenciaSinColisiones(t *testing.T) {
	counters := newFakeCounterRepo()
	alloc := sequence.NewAllocator()
	at := time.Date(2025, 11, 2, 3, 0, 0, 0, time.UTC)

	const n = 50
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			no, err := alloc.Generate(context.Background(), counters, entity.NoteTypeIn, "WH-SEL", at)
			assert.NoError(t, err)
			results <- no
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, n)
	for no := range results {
		assert.False(t, seen[no], "número repetido: %s", no)
		seen[no] = true
	}
	require.Len(t, seen, n)
	// Prefijo contiguo: cada seq de 1..N debe estar ocupado.
	for i := 1; i <= n; i++ {
		no := fmt.Sprintf("IN-WH-SEL-20251102-%03d", i)
		assert.True(t, seen[no], "falta el consecutivo %s", no)
	}
}
