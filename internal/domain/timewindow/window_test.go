package timewindow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/timewindow"
)

func mustUTC(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return ts.UTC()
}

// Un día KST D mapea a [D-1 15:00:00Z, D 14:59:59.999999999Z].
func TestNormalize_DiaUnico(t *testing.T) {
	w, err := timewindow.Normalize("2025-11-02", "", "")
	require.NoError(t, err)

	require.NotNil(t, w.From)
	require.NotNil(t, w.To)
	assert.Equal(t, mustUTC(t, "2025-11-01T15:00:00Z"), *w.From)
	assert.Equal(t, mustUTC(t, "2025-11-02T14:59:59.999999999Z"), *w.To)
	assert.False(t, w.HasRange)
	assert.False(t, w.Empty())
}

// Si viene dateFrom o dateTo, el rango gana por completo sobre date.
func TestNormalize_RangoGanaSobreDate(t *testing.T) {
	w, err := timewindow.Normalize("2025-01-01", "2025-11-01", "2025-11-03")
	require.NoError(t, err)

	require.NotNil(t, w.From)
	require.NotNil(t, w.To)
	assert.Equal(t, mustUTC(t, "2025-10-31T15:00:00Z"), *w.From)
	assert.Equal(t, mustUTC(t, "2025-11-03T14:59:59.999999999Z"), *w.To)
	assert.True(t, w.HasRange)
}

// dateFrom > dateTo se intercambian en vez de producir una ventana vacía.
func TestNormalize_RangoInvertido_SeIntercambia(t *testing.T) {
	w, err := timewindow.Normalize("", "2025-11-03", "2025-11-01")
	require.NoError(t, err)

	require.NotNil(t, w.From)
	require.NotNil(t, w.To)
	assert.Equal(t, mustUTC(t, "2025-10-31T15:00:00Z"), *w.From)
	assert.Equal(t, mustUTC(t, "2025-11-03T14:59:59.999999999Z"), *w.To)
}

// Un solo extremo del rango deja el otro abierto.
func TestNormalize_RangoAbiertoPorUnLado(t *testing.T) {
	w, err := timewindow.Normalize("", "2025-11-01", "")
	require.NoError(t, err)
	require.NotNil(t, w.From)
	assert.Nil(t, w.To)
	assert.Equal(t, mustUTC(t, "2025-10-31T15:00:00Z"), *w.From)

	w, err = timewindow.Normalize("", "", "2025-11-01")
	require.NoError(t, err)
	assert.Nil(t, w.From)
	require.NotNil(t, w.To)
	assert.Equal(t, mustUTC(t, "2025-11-01T14:59:59.999999999Z"), *w.To)
}

// Sin parámetros de fecha → ventana vacía sin error.
func TestNormalize_SinFiltros(t *testing.T) {
	w, err := timewindow.Normalize("", "", "")
	require.NoError(t, err)
	assert.True(t, w.Empty())
}

// Una fecha malformada nunca se ignora en silencio.
func TestNormalize_FechaInvalida_RetornaError(t *testing.T) {
	cases := []struct {
		name                 string
		date, dateFrom, dateTo string
	}{
		{"date malformada", "02-11-2025", "", ""},
		{"dateFrom malformada", "", "no-es-fecha", "2025-11-03"},
		{"dateTo malformada", "", "2025-11-01", "2025/11/03"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := timewindow.Normalize(tc.date, tc.dateFrom, tc.dateTo)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ParseKSTDay devuelve la medianoche KST del día expresada en UTC.
func TestParseKSTDay(t *testing.T) {
	d, err := timewindow.ParseKSTDay("2025-11-02")
	require.NoError(t, err)
	assert.Equal(t, mustUTC(t, "2025-11-01T15:00:00Z"), d)

	_, err = timewindow.ParseKSTDay("noviembre 2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
