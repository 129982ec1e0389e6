package clock

import "time"

// Clock abstrae la hora actual para que los timestamps de completado
// sean deterministas en tests.
type Clock interface {
	Now() time.Time
}

// System usa el reloj del sistema, siempre en UTC.
type System struct{}

// Now devuelve la hora actual en UTC.
func (System) Now() time.Time { return time.Now().UTC() }

// Fixed devuelve siempre el mismo instante. Para tests.
type Fixed struct {
	T time.Time
}

// Now devuelve el instante fijado, en UTC.
func (f Fixed) Now() time.Time { return f.T.UTC() }
