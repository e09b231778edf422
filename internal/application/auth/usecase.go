// Package auth autenticación y alta de usuarios del personal.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
	"github.com/jhoicas/prisma-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación del panel: alta del personal y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	hashCost int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, hashCost: bcrypt.DefaultCost}
}

// CreateStaff crea un usuario del personal: hashea password con bcrypt y persiste.
// Devuelve ErrDuplicate si el username ya existe.
func (uc *AuthUseCase) CreateStaff(ctx context.Context, in dto.CreateStaffRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.userRepo.ExistsUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Email:        strings.TrimSpace(in.Email),
		Role:         entity.RoleStaff,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password del personal, genera JWT y retorna token + usuario.
// Los clientes del portal no entran por aquí aunque su username sea válido.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() || user.Role != entity.RoleStaff {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, "", jwt.RoleStaff, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
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
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
