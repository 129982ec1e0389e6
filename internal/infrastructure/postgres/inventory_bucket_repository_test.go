package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRow devuelve un resultado fijo (o un error) al hacer Scan.
type scriptedRow struct {
	err  error
	wh   string
	part string
	qty  decimal.Decimal
	at   time.Time
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.wh
	*(dest[1].(*string)) = r.part
	*(dest[2].(*decimal.Decimal)) = r.qty
	*(dest[3].(*time.Time)) = r.at
	return nil
}

// fakeQuerier registra cada sentencia ejecutada y entrega filas
// pre-programadas en orden.
type fakeQuerier struct {
	execs   []string
	queries []string
	rows    []scriptedRow
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *fakeQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("Query no esperado en este test")
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.queries = append(q.queries, sql)
	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

func flatSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

// Si la fila no existe, GetForUpdate debe sembrarla en cero (ON CONFLICT DO
// NOTHING) y releerla con FOR UPDATE: un SELECT FOR UPDATE sobre una fila
// inexistente no bloquea nada y dos creadoras concurrentes del mismo bucket
// se pisarían la escritura.
func TestGetForUpdate_BucketAusente_SiembraYRelee(t *testing.T) {
	q := &fakeQuerier{rows: []scriptedRow{
		{err: pgx.ErrNoRows},
		{wh: "WH-SEL", part: "p1", qty: decimal.Zero, at: time.Now()},
	}}
	repo := NewInventoryBucketRepository(q)

	bucket, err := repo.GetForUpdate(context.Background(), "WH-SEL", "p1")
	require.NoError(t, err)
	require.NotNil(t, bucket)
	assert.Equal(t, "WH-SEL", bucket.WarehouseCode)
	assert.Equal(t, "p1", bucket.PartID)
	assert.True(t, bucket.OnHandQty.IsZero())

	require.Len(t, q.execs, 1)
	seed := flatSQL(q.execs[0])
	assert.Contains(t, seed, "INSERT INTO inventory_buckets")
	assert.Contains(t, seed, "VALUES ($1, $2, 0, now())")
	assert.Contains(t, seed, "ON CONFLICT (warehouse_code, part_id) DO NOTHING")

	require.Len(t, q.queries, 2)
	assert.Contains(t, flatSQL(q.queries[0]), "FOR UPDATE")
	assert.Contains(t, flatSQL(q.queries[1]), "FOR UPDATE")
}

// Con la fila presente no hay siembra: una sola lectura con lock.
func TestGetForUpdate_BucketExistente_NoSiembra(t *testing.T) {
	q := &fakeQuerier{rows: []scriptedRow{
		{wh: "WH-SEL", part: "p1", qty: decimal.NewFromInt(12), at: time.Now()},
	}}
	repo := NewInventoryBucketRepository(q)

	bucket, err := repo.GetForUpdate(context.Background(), "WH-SEL", "p1")
	require.NoError(t, err)
	assert.True(t, bucket.OnHandQty.Equal(decimal.NewFromInt(12)))
	assert.Empty(t, q.execs)
	require.Len(t, q.queries, 1)
	assert.Contains(t, flatSQL(q.queries[0]), "FOR UPDATE")
}

// La lectura sin lock conserva el contrato original: ausencia de fila
// significa cantidad cero y no escribe nada.
func TestGet_BucketAusente_DevuelveCeroSinEscribir(t *testing.T) {
	q := &fakeQuerier{rows: []scriptedRow{{err: pgx.ErrNoRows}}}
	repo := NewInventoryBucketRepository(q)

	bucket, err := repo.Get(context.Background(), "WH-SEL", "p9")
	require.NoError(t, err)
	assert.True(t, bucket.OnHandQty.IsZero())
	assert.Empty(t, q.execs)
	require.Len(t, q.queries, 1)
	assert.NotContains(t, flatSQL(q.queries[0]), "FOR UPDATE")
}
