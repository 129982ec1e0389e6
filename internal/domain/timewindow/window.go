// Package timewindow convierte días locales KST de los filtros de consulta
// en límites UTC inclusivos. Los timestamps se persisten siempre en UTC;
// los parámetros de fecha se interpretan como días calendario KST (UTC+9).
package timewindow

import (
	"fmt"
	"time"

	"github.com/hanbit-parts/warehouse-api/internal/domain"
)

// KST es una zona de offset fijo: Corea no tiene horario de verano.
var KST = time.FixedZone("KST", 9*60*60)

const dayLayout = "2006-01-02"

// Window límites UTC inclusivos derivados de los filtros de fecha.
// From/To nil significan límite abierto.
type Window struct {
	From     *time.Time
	To       *time.Time
	HasRange bool
}

// Empty indica que no se aplicó ningún filtro de fecha.
func (w Window) Empty() bool { return w.From == nil && w.To == nil }

// Normalize resuelve los parámetros date / dateFrom / dateTo:
//   - si hay rango (dateFrom o dateTo), gana por completo sobre date;
//   - solo date: se usa como ambos límites;
//   - un solo extremo del rango: el otro queda abierto (nil);
//   - dateFrom > dateTo: se intercambian.
//
// El día KST D mapea a [D-1 15:00:00Z, D 14:59:59.999999999Z].
// Cualquier fecha no parseable retorna error: un filtro malformado
// nunca se ignora en silencio.
func Normalize(date, dateFrom, dateTo string) (Window, error) {
	if dateFrom != "" || dateTo != "" {
		var fromDay, toDay *time.Time
		if dateFrom != "" {
			d, err := parseKSTDay(dateFrom)
			if err != nil {
				return Window{}, err
			}
			fromDay = &d
		}
		if dateTo != "" {
			d, err := parseKSTDay(dateTo)
			if err != nil {
				return Window{}, err
			}
			toDay = &d
		}
		if fromDay != nil && toDay != nil && fromDay.After(*toDay) {
			fromDay, toDay = toDay, fromDay
		}
		w := Window{HasRange: true}
		if fromDay != nil {
			f := DayStartUTC(*fromDay)
			w.From = &f
		}
		if toDay != nil {
			t := DayEndUTC(*toDay)
			w.To = &t
		}
		return w, nil
	}

	if date == "" {
		return Window{}, nil
	}
	d, err := parseKSTDay(date)
	if err != nil {
		return Window{}, err
	}
	from := DayStartUTC(d)
	to := DayEndUTC(d)
	return Window{From: &from, To: &to, HasRange: false}, nil
}

// DayStartUTC devuelve el inicio del día KST en UTC (D-1 15:00:00Z).
func DayStartUTC(kstDay time.Time) time.Time {
	return kstDay.UTC()
}

// DayEndUTC devuelve el fin inclusivo del día KST en UTC (D 14:59:59.999999999Z).
func DayEndUTC(kstDay time.Time) time.Time {
	return kstDay.AddDate(0, 0, 1).Add(-time.Nanosecond).UTC()
}

// ParseKSTDay parsea "yyyy-MM-dd" como inicio de día KST y lo devuelve en UTC.
// Lo usan también las fechas esperadas de recepción/despacho en la creación de notas.
func ParseKSTDay(s string) (time.Time, error) {
	d, err := parseKSTDay(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC(), nil
}

func parseKSTDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dayLayout, s, KST)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q no cumple el formato yyyy-MM-dd", domain.ErrInvalidInput, s)
	}
	return d, nil
}
