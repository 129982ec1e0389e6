package entity

// NoteType tipo de nota para el alocador de números: IN (recepción) u OUT (despacho).
type NoteType string

const (
	NoteTypeIn  NoteType = "IN"
	NoteTypeOut NoteType = "OUT"
)

// Valid indica si el tipo es uno de los dos conocidos.
func (t NoteType) Valid() bool { return t == NoteTypeIn || t == NoteTypeOut }

// SequenceCounter contador monótono por (tipo, bodega, día UTC).
// NextSeq arranca en 1 y solo se lee/incrementa bajo lock exclusivo de fila.
type SequenceCounter struct {
	Type          NoteType
	WarehouseCode string
	DateYmd       string // día UTC del instante disparador, formato yyyymmdd
	NextSeq       int64
}
