package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-parts/warehouse-api/internal/application/catalog"
	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
	"github.com/hanbit-parts/warehouse-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePartRepo struct {
	parts map[string]*entity.Part
}

func newFakePartRepo() *fakePartRepo { return &fakePartRepo{parts: make(map[string]*entity.Part)} }

func (f *fakePartRepo) Create(_ context.Context, p *entity.Part) error {
	c := *p
	f.parts[p.ID] = &c
	return nil
}

func (f *fakePartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	return f.parts[id], nil
}

func (f *fakePartRepo) GetByCode(_ context.Context, code string) (*entity.Part, error) {
	for _, p := range f.parts {
		if p.PartCode == code && p.Active() {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePartRepo) List(context.Context, int, int) ([]*entity.Part, error) {
	out := make([]*entity.Part, 0, len(f.parts))
	for _, p := range f.parts {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePartRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	p, ok := f.parts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.DeletedAt = &at
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeCategoryRepo) List(context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

type fakePublisher struct {
	payloads [][]byte
	fail     bool
}

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	if f.fail {
		return errors.New("broker caído")
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 11, 2, 3, 0, 0, 0, time.UTC)

func newUseCase(events catalog.EventPublisher) (*catalog.UseCase, *fakePartRepo) {
	parts := newFakePartRepo()
	categories := &fakeCategoryRepo{categories: map[string]*entity.Category{
		"c1": {ID: "c1", Name: "Frenos"},
	}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return catalog.NewUseCase(parts, categories, events, clock.Fixed{T: testNow}, log), parts
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePart
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePart_PublicaEvento(t *testing.T) {
	events := &fakePublisher{}
	uc, _ := newUseCase(events)

	resp, err := uc.CreatePart(context.Background(), dto.CreatePartRequest{
		PartCode:   "BRK-001",
		Name:       "Pastilla de freno",
		CategoryID: "c1",
		CarModel:   "Avante",
		Lot:        "L-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "BRK-001", resp.PartCode)
	assert.NotEmpty(t, resp.ID)

	require.Len(t, events.payloads, 1)
	var ev catalog.PartCreatedEvent
	require.NoError(t, json.Unmarshal(events.payloads[0], &ev))
	assert.Equal(t, resp.ID, ev.PartID)
	assert.Equal(t, "BRK-001", ev.PartCode)
	assert.Equal(t, "Avante", ev.CarModel)
}

// La publicación es best effort: un broker caído no afecta la respuesta.
func TestCreatePart_PublisherCaido_NoFalla(t *testing.T) {
	uc, parts := newUseCase(&fakePublisher{fail: true})

	resp, err := uc.CreatePart(context.Background(), dto.CreatePartRequest{
		PartCode: "BRK-001", Name: "Pastilla de freno", CategoryID: "c1",
	})
	require.NoError(t, err)
	assert.NotNil(t, parts.parts[resp.ID], "el repuesto debe quedar persistido")
}

// Con events nil la publicación está desactivada.
func TestCreatePart_SinPublisher(t *testing.T) {
	uc, _ := newUseCase(nil)
	_, err := uc.CreatePart(context.Background(), dto.CreatePartRequest{
		PartCode: "BRK-001", Name: "Pastilla de freno", CategoryID: "c1",
	})
	require.NoError(t, err)
}

func TestCreatePart_CodigoDuplicado(t *testing.T) {
	uc, _ := newUseCase(nil)
	in := dto.CreatePartRequest{PartCode: "BRK-001", Name: "Pastilla de freno", CategoryID: "c1"}
	_, err := uc.CreatePart(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.CreatePart(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreatePart_CategoriaInexistente(t *testing.T) {
	uc, _ := newUseCase(nil)
	_, err := uc.CreatePart(context.Background(), dto.CreatePartRequest{
		PartCode: "BRK-001", Name: "Pastilla de freno", CategoryID: "c-nope",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePart_EntradasInvalidas(t *testing.T) {
	uc, _ := newUseCase(nil)
	_, err := uc.CreatePart(context.Background(), dto.CreatePartRequest{Name: "x", CategoryID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Soft delete y reuso de código
// ──────────────────────────────────────────────────────────────────────────────

func TestDeletePart_SoftDeleteLiberaElCodigo(t *testing.T) {
	uc, _ := newUseCase(nil)
	resp, err := uc.CreatePart(context.Background(), dto.CreatePartRequest{
		PartCode: "BRK-001", Name: "Pastilla de freno", CategoryID: "c1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeletePart(context.Background(), resp.ID))

	// El repuesto borrado ya no se obtiene ni se borra dos veces
	_, err = uc.GetPart(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = uc.DeletePart(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El part_code queda libre para un repuesto nuevo
	_, err = uc.CreatePart(context.Background(), dto.CreatePartRequest{
		PartCode: "BRK-001", Name: "Pastilla de freno v2", CategoryID: "c1",
	})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCategoryYListar(t *testing.T) {
	uc, _ := newUseCase(nil)
	resp, err := uc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Suspensión"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)

	_, err = uc.CreateCategory(context.Background(), dto.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cats, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2) // la sembrada en el fixture + la nueva
}
