package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
	"github.com/hanbit-parts/warehouse-api/internal/domain/timewindow"
)

var _ repository.ShippingNoteRepository = (*ShippingNoteRepo)(nil)

// ShippingNoteRepo implementación de ShippingNoteRepository sobre
// PostgreSQL (usable con pool o tx).
type ShippingNoteRepo struct {
	q Querier
}

// NewShippingNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShippingNoteRepository(q Querier) *ShippingNoteRepo {
	return &ShippingNoteRepo{q: q}
}

// Create inserta cabecera y líneas dentro de la tx del caller.
func (r *ShippingNoteRepo) Create(ctx context.Context, note *entity.ShippingNote) error {
	head := `
		INSERT INTO shipping_notes (id, customer_name, branch_name, warehouse_code, shipping_no, requested_at, expected_ship_date, completed_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, head,
		note.ID, note.CustomerName, note.BranchName, note.WarehouseCode, note.ShippingNo,
		note.RequestedAt, note.ExpectedShipDate, note.CompletedAt, note.Status,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipping note: %w", err)
	}
	line := `
		INSERT INTO shipping_note_lines (id, note_id, part_id, part_code, part_name, lot, image_url, ordered_qty, allocated_qty, picked_qty, status, line_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for i := range note.Lines {
		l := &note.Lines[i]
		_, err := r.q.Exec(ctx, line,
			l.ID, l.NoteID, l.PartID, l.PartCode, l.PartName, l.Lot, l.ImageURL,
			l.OrderedQty, l.AllocatedQty, l.PickedQty, l.Status, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert shipping line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el agregado completo. nil si no existe.
func (r *ShippingNoteRepo) GetByID(ctx context.Context, id string) (*entity.ShippingNote, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene el agregado bloqueando la cabecera (SELECT FOR
// UPDATE): serializa alistamientos y cierres concurrentes sobre la misma nota.
func (r *ShippingNoteRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ShippingNote, error) {
	return r.get(ctx, id, true)
}

func (r *ShippingNoteRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.ShippingNote, error) {
	head := `
		SELECT id, customer_name, branch_name, warehouse_code, shipping_no, requested_at, expected_ship_date, completed_at, status, created_at, updated_at
		FROM shipping_notes WHERE id = $1`
	if forUpdate {
		head += " FOR UPDATE"
	}
	var n entity.ShippingNote
	err := r.q.QueryRow(ctx, head, id).Scan(
		&n.ID, &n.CustomerName, &n.BranchName, &n.WarehouseCode, &n.ShippingNo,
		&n.RequestedAt, &n.ExpectedShipDate, &n.CompletedAt, &n.Status,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipping note: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, note_id, part_id, part_code, part_name, lot, image_url, ordered_qty, allocated_qty, picked_qty, status
		FROM shipping_note_lines WHERE note_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("get shipping lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.ShippingNoteLine
		if err := rows.Scan(
			&l.ID, &l.NoteID, &l.PartID, &l.PartCode, &l.PartName, &l.Lot, &l.ImageURL,
			&l.OrderedQty, &l.AllocatedQty, &l.PickedQty, &l.Status,
		); err != nil {
			return nil, fmt.Errorf("scan shipping line: %w", err)
		}
		n.Lines = append(n.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipping lines: %w", err)
	}
	return &n, nil
}

// UpdateLine persiste cantidades y estado derivado de una línea.
func (r *ShippingNoteRepo) UpdateLine(ctx context.Context, line *entity.ShippingNoteLine) error {
	query := `
		UPDATE shipping_note_lines
		SET allocated_qty = $1, picked_qty = $2, status = $3
		WHERE id = $4`
	tag, err := r.q.Exec(ctx, query, line.AllocatedQty, line.PickedQty, line.Status, line.ID)
	if err != nil {
		return fmt.Errorf("update shipping line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update shipping line: línea %s no existe", line.ID)
	}
	return nil
}

// UpdateStatus persiste el estado de la cabecera y, en cierres, completed_at.
func (r *ShippingNoteRepo) UpdateStatus(ctx context.Context, noteID string, status entity.ShippingNoteStatus, completedAt *time.Time, updatedAt time.Time) error {
	query := `
		UPDATE shipping_notes
		SET status = $1, completed_at = $2, updated_at = $3
		WHERE id = $4`
	tag, err := r.q.Exec(ctx, query, status, completedAt, updatedAt, noteID)
	if err != nil {
		return fmt.Errorf("update shipping note status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update shipping note status: nota %s no existe", noteID)
	}
	return nil
}

// ListNotDone lista resúmenes de notas no terminales, filtrando por
// requested_at dentro de la ventana.
func (r *ShippingNoteRepo) ListNotDone(ctx context.Context, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error) {
	return r.list(ctx, "n.status IN ('PENDING', 'IN_PROGRESS')", "n.requested_at", w, limit, offset)
}

// ListDone lista resúmenes de notas terminales (DELAYED incluida),
// filtrando por completed_at.
func (r *ShippingNoteRepo) ListDone(ctx context.Context, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error) {
	return r.list(ctx, "n.status IN ('DELAYED', 'COMPLETED')", "n.completed_at", w, limit, offset)
}

func (r *ShippingNoteRepo) list(ctx context.Context, statusCond, dateCol string, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error) {
	query := `
		SELECT n.id, n.shipping_no, n.customer_name, n.branch_name, n.warehouse_code,
		       COUNT(l.id), COALESCE(SUM(l.ordered_qty), 0), n.status, n.requested_at, n.completed_at
		FROM shipping_notes n
		LEFT JOIN shipping_note_lines l ON l.note_id = n.id
		WHERE ` + statusCond
	args := []any{}
	if w.From != nil {
		args = append(args, *w.From)
		query += fmt.Sprintf(" AND %s >= $%d", dateCol, len(args))
	}
	if w.To != nil {
		args = append(args, *w.To)
		query += fmt.Sprintf(" AND %s <= $%d", dateCol, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" GROUP BY n.id ORDER BY n.requested_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipping notes: %w", err)
	}
	defer rows.Close()

	var out []*entity.NoteSummary
	for rows.Next() {
		var s entity.NoteSummary
		if err := rows.Scan(
			&s.ID, &s.NoteNo, &s.CounterpartyName, &s.BranchName, &s.WarehouseCode,
			&s.ItemKinds, &s.TotalQty, &s.Status, &s.RequestedAt, &s.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shipping summary: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipping summaries: %w", err)
	}
	return out, nil
}

// Delete borra líneas y cabecera como una unidad.
func (r *ShippingNoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shipping_note_lines WHERE note_id = $1`, id); err != nil {
		return fmt.Errorf("delete shipping lines: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM shipping_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipping note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete shipping note: nota %s no existe", id)
	}
	return nil
}
