// Package warehouse administra el maestro de bodegas. El código de bodega
// viaja por notas, buckets y contadores, por eso no es editable una vez creado.
package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
)

// UseCase operaciones del maestro de bodegas.
type UseCase struct {
	warehouses repository.WarehouseRepository
	clock      clock.Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(warehouses repository.WarehouseRepository, clk clock.Clock) *UseCase {
	return &UseCase{warehouses: warehouses, clock: clk}
}

// Create registra una bodega nueva. Code es único.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouses.Create(ctx, wh); err != nil {
		return nil, err
	}
	return toResponse(wh), nil
}

// GetByCode obtiene una bodega por código.
func (uc *UseCase) GetByCode(ctx context.Context, code string) (*dto.WarehouseResponse, error) {
	wh, err := uc.warehouses.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(wh), nil
}

// List lista bodegas paginadas.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.warehouses.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, wh := range list {
		items = append(items, *toResponse(wh))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toResponse(wh *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        wh.ID,
		Code:      wh.Code,
		Name:      wh.Name,
		Address:   wh.Address,
		CreatedAt: wh.CreatedAt,
		UpdatedAt: wh.UpdatedAt,
	}
}
