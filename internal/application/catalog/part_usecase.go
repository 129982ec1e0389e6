// Package catalog administra el catálogo de repuestos y sus categorías.
// Las notas copian snapshots de estos datos al crearse, por lo que las
// mutaciones del catálogo nunca reescriben líneas existentes.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
	"github.com/hanbit-parts/warehouse-api/pkg/logger"
)

// EventPublisher publica eventos de catálogo a interesados externos
// (etiquetadoras, sincronización con el ERP). Best effort: una falla al
// publicar no revierte la escritura en BD.
type EventPublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// PartCreatedEvent payload publicado al crear un repuesto.
type PartCreatedEvent struct {
	PartID   string `json:"part_id"`
	PartCode string `json:"part_code"`
	Name     string `json:"name"`
	CarModel string `json:"car_model"`
}

// UseCase operaciones del catálogo.
type UseCase struct {
	parts      repository.PartRepository
	categories repository.CategoryRepository
	events     EventPublisher // opcional; nil desactiva la publicación
	clock      clock.Clock
	log        *logger.Logger
}

// NewUseCase construye el caso de uso. events puede ser nil.
func NewUseCase(
	parts repository.PartRepository,
	categories repository.CategoryRepository,
	events EventPublisher,
	clk clock.Clock,
	log *logger.Logger,
) *UseCase {
	return &UseCase{parts: parts, categories: categories, events: events, clock: clk, log: log}
}

// CreatePart registra un repuesto nuevo. part_code debe ser único entre
// repuestos activos y la categoría debe existir.
func (uc *UseCase) CreatePart(ctx context.Context, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.PartCode == "" || in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, in.CategoryID)
	}
	existing, err := uc.parts.GetByCode(ctx, in.PartCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: part_code %s ya existe", domain.ErrDuplicate, in.PartCode)
	}

	now := uc.clock.Now()
	part := &entity.Part{
		ID:         uuid.New().String(),
		PartCode:   in.PartCode,
		Name:       in.Name,
		CategoryID: in.CategoryID,
		CarModel:   in.CarModel,
		Lot:        in.Lot,
		ImageURL:   in.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.parts.Create(ctx, part); err != nil {
		return nil, err
	}

	uc.publishPartCreated(ctx, part)
	return toPartResponse(part), nil
}

// publishPartCreated publica el evento en best effort: una falla se loguea
// y no afecta la respuesta.
func (uc *UseCase) publishPartCreated(ctx context.Context, part *entity.Part) {
	if uc.events == nil {
		return
	}
	payload, err := json.Marshal(PartCreatedEvent{
		PartID:   part.ID,
		PartCode: part.PartCode,
		Name:     part.Name,
		CarModel: part.CarModel,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("part_id", part.ID).Msg("serializar evento part.created")
		return
	}
	if err := uc.events.Publish(ctx, payload); err != nil {
		uc.log.Warn().Err(err).Str("part_id", part.ID).Msg("publicar evento part.created")
	}
}

// GetPart obtiene un repuesto activo por id.
func (uc *UseCase) GetPart(ctx context.Context, id string) (*dto.PartResponse, error) {
	part, err := uc.parts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil || !part.Active() {
		return nil, domain.ErrNotFound
	}
	return toPartResponse(part), nil
}

// ListParts lista repuestos activos paginados.
func (uc *UseCase) ListParts(ctx context.Context, page dto.PageRequest) (*dto.PartListResponse, error) {
	page.DefaultPage()
	parts, err := uc.parts.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// DeletePart hace soft delete: el repuesto deja de entrar en notas nuevas
// pero los snapshots de líneas existentes quedan intactos.
func (uc *UseCase) DeletePart(ctx context.Context, id string) error {
	part, err := uc.parts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if part == nil || !part.Active() {
		return domain.ErrNotFound
	}
	return uc.parts.SoftDelete(ctx, id, uc.clock.Now())
}

// CreateCategory registra una categoría.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: cat.ID, Name: cat.Name}, nil
}

// ListCategories lista todas las categorías.
func (uc *UseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	return &dto.PartResponse{
		ID:         p.ID,
		PartCode:   p.PartCode,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		CarModel:   p.CarModel,
		Lot:        p.Lot,
		ImageURL:   p.ImageURL,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
