package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = "id, part_code, name, category_id, car_model, lot, image_url, created_at, updated_at, deleted_at"

// Create persiste un repuesto nuevo. El índice parcial único sobre
// part_code (WHERE deleted_at IS NULL) respalda la unicidad entre activos.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	query := `
		INSERT INTO parts (id, part_code, name, category_id, car_model, lot, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		part.ID, part.PartCode, part.Name, part.CategoryID, part.CarModel,
		part.Lot, part.ImageURL, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto activo por ID. nil si no existe o está borrado.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByCode obtiene un repuesto activo por part_code. nil si no existe.
func (r *PartRepo) GetByCode(ctx context.Context, partCode string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE part_code = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, partCode))
}

func (r *PartRepo) scanOne(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(
		&p.ID, &p.PartCode, &p.Name, &p.CategoryID, &p.CarModel,
		&p.Lot, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// List lista repuestos activos paginados.
func (r *PartRepo) List(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts WHERE deleted_at IS NULL
		ORDER BY part_code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(
			&p.ID, &p.PartCode, &p.Name, &p.CategoryID, &p.CarModel,
			&p.Lot, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parts: %w", err)
	}
	return out, nil
}

// SoftDelete marca el repuesto como borrado. Los snapshots copiados en
// líneas de nota no se tocan.
func (r *PartRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE parts SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("soft delete part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
