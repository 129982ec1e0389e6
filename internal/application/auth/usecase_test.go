package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-parts/warehouse-api/internal/application/auth"
	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
	"github.com/hanbit-parts/warehouse-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

type fakeWarehouseRepo struct {
	byCode map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	f.byCode[w.Code] = w
	return nil
}

func (f *fakeWarehouseRepo) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	return f.byCode[code], nil
}

func (f *fakeWarehouseRepo) List(context.Context, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "warehouse-api-test"}

func newUseCase() (*auth.UseCase, *fakeUserRepo) {
	users := &fakeUserRepo{byEmail: make(map[string]*entity.User)}
	warehouses := &fakeWarehouseRepo{byCode: map[string]*entity.Warehouse{
		"WH-SEL": {ID: "w1", Code: "WH-SEL", Name: "Bodega Seúl"},
	}}
	now := time.Date(2025, 11, 2, 3, 0, 0, 0, time.UTC)
	return auth.NewUseCase(users, warehouses, jwtCfg, clock.Fixed{T: now}), users
}

func TestRegister_HasheaYAsignaRolPorDefecto(t *testing.T) {
	uc, users := newUseCase()

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "worker@hanbit.co",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWorker, resp.Role, "sin rol explícito el defecto es worker")
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "worker@hanbit.co", resp.Name, "sin nombre se usa el email")

	// El hash nunca es el password en claro
	stored := users.byEmail["worker@hanbit.co"]
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	in := dto.RegisterRequest{Email: "worker@hanbit.co", Password: "secreta123"}
	_, err := uc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@b.co", Password: "x", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@b.co", Password: "x", WarehouseCode: "WH-NOPE",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_TokenConClaims(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:         "manager@hanbit.co",
		Password:      "secreta123",
		Role:          entity.RoleManager,
		WarehouseCode: "WH-SEL",
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "manager@hanbit.co",
		Password: "secreta123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, warehouseCode, role, err := jwt.Parse(jwtCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, "WH-SEL", warehouseCode)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_Fallos(t *testing.T) {
	uc, users := newUseCase()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "worker@hanbit.co", Password: "secreta123",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@hanbit.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "worker@hanbit.co", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario deshabilitado: password correcta pero acceso denegado
	users.byEmail["worker@hanbit.co"].Status = "disabled"
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "worker@hanbit.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
