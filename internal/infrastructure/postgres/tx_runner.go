package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanbit-parts/warehouse-api/internal/application/receiving"
	"github.com/hanbit-parts/warehouse-api/internal/application/shipping"
	"github.com/hanbit-parts/warehouse-api/internal/application/stock"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

var _ receiving.TxRunner = (*TxRunner)(nil)
var _ shipping.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL,
// pasando repositorios atados a la tx. Un error del callback revierte
// todo lo hecho dentro, incluidas las mutaciones del libro de inventario.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving transacción para el workflow de recepción: nota, libro de
// inventario y contador de números comparten la misma tx.
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	notes repository.ReceivingNoteRepository,
	buckets repository.InventoryBucketRepository,
	counters repository.SequenceCounterRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewReceivingNoteRepository(q), NewInventoryBucketRepository(q), NewSequenceCounterRepository(q))
	})
}

// RunShipping transacción para el workflow de despacho.
func (r *TxRunner) RunShipping(ctx context.Context, fn func(
	notes repository.ShippingNoteRepository,
	buckets repository.InventoryBucketRepository,
	counters repository.SequenceCounterRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewShippingNoteRepository(q), NewInventoryBucketRepository(q), NewSequenceCounterRepository(q))
	})
}

// RunStock transacción para ajustes manuales de stock.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	buckets repository.InventoryBucketRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInventoryBucketRepository(q))
	})
}
