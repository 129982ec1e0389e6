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

var _ repository.ReceivingNoteRepository = (*ReceivingNoteRepo)(nil)

// ReceivingNoteRepo implementación de ReceivingNoteRepository sobre
// PostgreSQL (usable con pool o tx).
type ReceivingNoteRepo struct {
	q Querier
}

// NewReceivingNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceivingNoteRepository(q Querier) *ReceivingNoteRepo {
	return &ReceivingNoteRepo{q: q}
}

// Create inserta cabecera y líneas. Se asume dentro de una tx: el número
// reservado y el agregado se confirman juntos.
func (r *ReceivingNoteRepo) Create(ctx context.Context, note *entity.ReceivingNote) error {
	head := `
		INSERT INTO receiving_notes (id, supplier_name, warehouse_code, receiving_no, requested_at, expected_receive_date, completed_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, head,
		note.ID, note.SupplierName, note.WarehouseCode, note.ReceivingNo,
		note.RequestedAt, note.ExpectedReceiveDate, note.CompletedAt, note.Status,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receiving note: %w", err)
	}
	line := `
		INSERT INTO receiving_note_lines (id, note_id, part_id, part_code, part_name, lot, image_url, ordered_qty, inspected_qty, issue_qty, status, line_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for i := range note.Lines {
		l := &note.Lines[i]
		_, err := r.q.Exec(ctx, line,
			l.ID, l.NoteID, l.PartID, l.PartCode, l.PartName, l.Lot, l.ImageURL,
			l.OrderedQty, l.InspectedQty, l.IssueQty, l.Status, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert receiving line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el agregado completo. nil si no existe.
func (r *ReceivingNoteRepo) GetByID(ctx context.Context, id string) (*entity.ReceivingNote, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene el agregado bloqueando la cabecera (SELECT FOR
// UPDATE): serializa inspecciones y cierres concurrentes sobre la misma nota.
func (r *ReceivingNoteRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ReceivingNote, error) {
	return r.get(ctx, id, true)
}

func (r *ReceivingNoteRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.ReceivingNote, error) {
	head := `
		SELECT id, supplier_name, warehouse_code, receiving_no, requested_at, expected_receive_date, completed_at, status, created_at, updated_at
		FROM receiving_notes WHERE id = $1`
	if forUpdate {
		head += " FOR UPDATE"
	}
	var n entity.ReceivingNote
	err := r.q.QueryRow(ctx, head, id).Scan(
		&n.ID, &n.SupplierName, &n.WarehouseCode, &n.ReceivingNo,
		&n.RequestedAt, &n.ExpectedReceiveDate, &n.CompletedAt, &n.Status,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receiving note: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, note_id, part_id, part_code, part_name, lot, image_url, ordered_qty, inspected_qty, issue_qty, status
		FROM receiving_note_lines WHERE note_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("get receiving lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.ReceivingNoteLine
		if err := rows.Scan(
			&l.ID, &l.NoteID, &l.PartID, &l.PartCode, &l.PartName, &l.Lot, &l.ImageURL,
			&l.OrderedQty, &l.InspectedQty, &l.IssueQty, &l.Status,
		); err != nil {
			return nil, fmt.Errorf("scan receiving line: %w", err)
		}
		n.Lines = append(n.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receiving lines: %w", err)
	}
	return &n, nil
}

// UpdateLine persiste cantidades y estado derivado de una línea.
func (r *ReceivingNoteRepo) UpdateLine(ctx context.Context, line *entity.ReceivingNoteLine) error {
	query := `
		UPDATE receiving_note_lines
		SET inspected_qty = $1, issue_qty = $2, status = $3
		WHERE id = $4`
	tag, err := r.q.Exec(ctx, query, line.InspectedQty, line.IssueQty, line.Status, line.ID)
	if err != nil {
		return fmt.Errorf("update receiving line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update receiving line: línea %s no existe", line.ID)
	}
	return nil
}

// UpdateStatus persiste el estado de la cabecera y, en cierres, completed_at.
func (r *ReceivingNoteRepo) UpdateStatus(ctx context.Context, noteID string, status entity.ReceivingNoteStatus, completedAt *time.Time, updatedAt time.Time) error {
	query := `
		UPDATE receiving_notes
		SET status = $1, completed_at = $2, updated_at = $3
		WHERE id = $4`
	tag, err := r.q.Exec(ctx, query, status, completedAt, updatedAt, noteID)
	if err != nil {
		return fmt.Errorf("update receiving note status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update receiving note status: nota %s no existe", noteID)
	}
	return nil
}

// ListNotDone lista resúmenes de notas no terminales, filtrando por
// requested_at dentro de la ventana.
func (r *ReceivingNoteRepo) ListNotDone(ctx context.Context, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error) {
	return r.list(ctx, "n.status IN ('PENDING', 'IN_PROGRESS')", "n.requested_at", w, limit, offset)
}

// ListDone lista resúmenes de notas terminales, filtrando por completed_at.
func (r *ReceivingNoteRepo) ListDone(ctx context.Context, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error) {
	return r.list(ctx, "n.status IN ('COMPLETED_OK', 'COMPLETED_ISSUE')", "n.completed_at", w, limit, offset)
}

func (r *ReceivingNoteRepo) list(ctx context.Context, statusCond, dateCol string, w timewindow.Window, limit, offset int) ([]*entity.NoteSummary, error) {
	query := `
		SELECT n.id, n.receiving_no, n.supplier_name, n.warehouse_code,
		       COUNT(l.id), COALESCE(SUM(l.ordered_qty), 0), n.status, n.requested_at, n.completed_at
		FROM receiving_notes n
		LEFT JOIN receiving_note_lines l ON l.note_id = n.id
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
		return nil, fmt.Errorf("list receiving notes: %w", err)
	}
	defer rows.Close()

	var out []*entity.NoteSummary
	for rows.Next() {
		var s entity.NoteSummary
		if err := rows.Scan(
			&s.ID, &s.NoteNo, &s.CounterpartyName, &s.WarehouseCode,
			&s.ItemKinds, &s.TotalQty, &s.Status, &s.RequestedAt, &s.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan receiving summary: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receiving summaries: %w", err)
	}
	return out, nil
}

// Delete borra líneas y cabecera como una unidad.
func (r *ReceivingNoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM receiving_note_lines WHERE note_id = $1`, id); err != nil {
		return fmt.Errorf("delete receiving lines: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM receiving_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receiving note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete receiving note: nota %s no existe", id)
	}
	return nil
}
