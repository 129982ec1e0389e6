package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/application/stock"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBucketRepo struct {
	buckets map[string]*entity.InventoryBucket
}

func newFakeBucketRepo() *fakeBucketRepo {
	return &fakeBucketRepo{buckets: make(map[string]*entity.InventoryBucket)}
}

func key(warehouseCode, partID string) string { return warehouseCode + "|" + partID }

func (f *fakeBucketRepo) Get(_ context.Context, warehouseCode, partID string) (*entity.InventoryBucket, error) {
	if b, ok := f.buckets[key(warehouseCode, partID)]; ok {
		c := *b
		return &c, nil
	}
	return &entity.InventoryBucket{WarehouseCode: warehouseCode, PartID: partID, OnHandQty: decimal.Zero}, nil
}

func (f *fakeBucketRepo) GetForUpdate(ctx context.Context, warehouseCode, partID string) (*entity.InventoryBucket, error) {
	return f.Get(ctx, warehouseCode, partID)
}

func (f *fakeBucketRepo) Upsert(_ context.Context, bucket *entity.InventoryBucket) error {
	c := *bucket
	f.buckets[key(bucket.WarehouseCode, bucket.PartID)] = &c
	return nil
}

func (f *fakeBucketRepo) List(_ context.Context, warehouseCode, partID string, _, _ int) ([]*entity.InventoryBucket, error) {
	out := make([]*entity.InventoryBucket, 0, len(f.buckets))
	for _, b := range f.buckets {
		if warehouseCode != "" && b.WarehouseCode != warehouseCode {
			continue
		}
		if partID != "" && b.PartID != partID {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeBucketRepo) set(warehouseCode, partID string, qty int64) {
	f.buckets[key(warehouseCode, partID)] = &entity.InventoryBucket{
		WarehouseCode: warehouseCode,
		PartID:        partID,
		OnHandQty:     decimal.NewFromInt(qty),
	}
}

func (f *fakeBucketRepo) onHand(warehouseCode, partID string) decimal.Decimal {
	if b, ok := f.buckets[key(warehouseCode, partID)]; ok {
		return b.OnHandQty
	}
	return decimal.Zero
}

type fakeTxRunner struct {
	buckets *fakeBucketRepo
}

func (f *fakeTxRunner) RunStock(_ context.Context, fn func(buckets repository.InventoryBucketRepository) error) error {
	snap := make(map[string]*entity.InventoryBucket, len(f.buckets.buckets))
	for k, v := range f.buckets.buckets {
		c := *v
		snap[k] = &c
	}
	if err := fn(f.buckets); err != nil {
		f.buckets.buckets = snap
		return err
	}
	return nil
}

var testNow = time.Date(2025, 11, 2, 3, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones del libro
// ──────────────────────────────────────────────────────────────────────────────

func TestIncrease_CreaBucketEnCeroSiNoExiste(t *testing.T) {
	buckets := newFakeBucketRepo()

	err := stock.Increase(context.Background(), buckets, "WH-SEL", "p1", decimal.NewFromInt(30), testNow)
	require.NoError(t, err)
	assert.True(t, buckets.onHand("WH-SEL", "p1").Equal(decimal.NewFromInt(30)))

	// Acumula sobre lo existente
	err = stock.Increase(context.Background(), buckets, "WH-SEL", "p1", decimal.NewFromInt(12), testNow)
	require.NoError(t, err)
	assert.True(t, buckets.onHand("WH-SEL", "p1").Equal(decimal.NewFromInt(42)))
}

func TestIncrease_QtyNoPositiva_EsNoOp(t *testing.T) {
	buckets := newFakeBucketRepo()

	require.NoError(t, stock.Increase(context.Background(), buckets, "WH-SEL", "p1", decimal.Zero, testNow))
	require.NoError(t, stock.Increase(context.Background(), buckets, "WH-SEL", "p1", decimal.NewFromInt(-5), testNow))
	assert.Empty(t, buckets.buckets, "una qty no positiva no debe crear el bucket")
}

func TestDecrease_InsuficienteRetornaConflicto(t *testing.T) {
	buckets := newFakeBucketRepo()
	buckets.set("WH-SEL", "p1", 5)

	err := stock.Decrease(context.Background(), buckets, "WH-SEL", "p1", decimal.NewFromInt(8), testNow)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	// El bucket queda intacto: el caller es quien aborta la transacción
	assert.True(t, buckets.onHand("WH-SEL", "p1").Equal(decimal.NewFromInt(5)))

	// Con stock exacto el descuento llega a cero sin conflicto
	err = stock.Decrease(context.Background(), buckets, "WH-SEL", "p1", decimal.NewFromInt(5), testNow)
	require.NoError(t, err)
	assert.True(t, buckets.onHand("WH-SEL", "p1").IsZero())
}

func TestDecreaseClamped_PisoEnCero(t *testing.T) {
	buckets := newFakeBucketRepo()
	buckets.set("WH-SEL", "p1", 5)

	// Resta más de lo disponible: sin conflicto, el bucket queda en cero
	err := stock.DecreaseClamped(context.Background(), buckets, "WH-SEL", "p1", decimal.NewFromInt(8), testNow)
	require.NoError(t, err)
	assert.True(t, buckets.onHand("WH-SEL", "p1").IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// UseCase — ajustes manuales y listado
// ──────────────────────────────────────────────────────────────────────────────

func newUseCase(buckets *fakeBucketRepo) *stock.UseCase {
	return stock.NewUseCase(buckets, &fakeTxRunner{buckets: buckets}, clock.Fixed{T: testNow})
}

func TestAdjust_IncreaseYDecrease(t *testing.T) {
	buckets := newFakeBucketRepo()
	uc := newUseCase(buckets)

	resp, err := uc.Adjust(context.Background(), dto.StockAdjustmentRequest{
		WarehouseCode: "WH-SEL", PartID: "p1", Type: dto.AdjustmentIncrease, Qty: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), resp.OnHandQty)

	// DECREASE manual usa piso en cero, nunca conflictúa por faltante
	resp, err = uc.Adjust(context.Background(), dto.StockAdjustmentRequest{
		WarehouseCode: "WH-SEL", PartID: "p1", Type: dto.AdjustmentDecrease, Qty: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.OnHandQty)
}

// La cantidad de la respuesta debe salir de la lectura hecha dentro de la
// transacción: si entre el commit y una relectura por pool otro ajuste
// cambiara el bucket, la respuesta reflejaría un valor ajeno al ajuste.
func TestAdjust_RespuestaLeidaDentroDeLaTransaccion(t *testing.T) {
	txBuckets := newFakeBucketRepo()
	poolBuckets := newFakeBucketRepo()
	// Simula una mutación concurrente ya visible fuera de la tx
	poolBuckets.set("WH-SEL", "p1", 999)
	uc := stock.NewUseCase(poolBuckets, &fakeTxRunner{buckets: txBuckets}, clock.Fixed{T: testNow})

	resp, err := uc.Adjust(context.Background(), dto.StockAdjustmentRequest{
		WarehouseCode: "WH-SEL", PartID: "p1", Type: dto.AdjustmentIncrease, Qty: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), resp.OnHandQty)
	assert.True(t, txBuckets.onHand("WH-SEL", "p1").Equal(decimal.NewFromInt(40)))
}

func TestAdjust_EntradasInvalidas(t *testing.T) {
	buckets := newFakeBucketRepo()
	uc := newUseCase(buckets)

	_, err := uc.Adjust(context.Background(), dto.StockAdjustmentRequest{
		WarehouseCode: "", PartID: "p1", Type: dto.AdjustmentIncrease, Qty: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(context.Background(), dto.StockAdjustmentRequest{
		WarehouseCode: "WH-SEL", PartID: "p1", Type: dto.AdjustmentIncrease, Qty: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(context.Background(), dto.StockAdjustmentRequest{
		WarehouseCode: "WH-SEL", PartID: "p1", Type: "TRANSFER", Qty: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltraPorBodega(t *testing.T) {
	buckets := newFakeBucketRepo()
	buckets.set("WH-SEL", "p1", 10)
	buckets.set("WH-BUS", "p1", 20)
	uc := newUseCase(buckets)

	resp, err := uc.List(context.Background(), "WH-SEL", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "WH-SEL", resp.Items[0].WarehouseCode)
	assert.Equal(t, int64(10), resp.Items[0].OnHandQty)
	assert.Equal(t, 20, resp.Page.Limit)
}
