package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
	"github.com/hanbit-parts/warehouse-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	users      repository.UserRepository
	warehouses repository.WarehouseRepository
	jwtCfg     JWTConfig
	clock      clock.Clock
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, warehouses repository.WarehouseRepository, jwtCfg JWTConfig, clk clock.Clock) *UseCase {
	return &UseCase{users: users, warehouses: warehouses, jwtCfg: jwtCfg, clock: clk}
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe. Si el usuario viene
// con bodega asignada, la bodega debe existir.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.WarehouseCode != "" {
		wh, err := uc.warehouses.GetByCode(ctx, in.WarehouseCode)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseCode)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleWorker
	case entity.RoleAdmin, entity.RoleManager, entity.RoleWorker:
	default:
		return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrInvalidInput, role)
	}
	user := &entity.User{
		ID:            uuid.New().String(),
		Email:         in.Email,
		PasswordHash:  string(hash),
		Name:          name,
		Role:          role,
		WarehouseCode: in.WarehouseCode,
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.WarehouseCode, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		WarehouseCode: u.WarehouseCode,
		Status:        u.Status,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
