package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/jwt"
)

// MinPasswordLength largo mínimo de contraseña en el registro.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// HashPassword hashea con bcrypt (costo por defecto).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RegisterUser crea un usuario. Devuelve ErrConflict si el username o el email ya existen.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	role, ok := entity.NormalizeRole(in.Role)
	if username == "" || !strings.Contains(email, "@") || !ok || len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.userRepo.ExistsUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	// La restricción única de la DB cubre la carrera entre el chequeo y el insert.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// SelfRegister es el registro por la API. Sin rol se crea un cliente; los roles contador y
// admin sólo los puede asignar un admin autenticado (callerRole). El alta inicial de un admin
// se hace con cmd/create_user.
func (uc *AuthUseCase) SelfRegister(ctx context.Context, in dto.RegisterRequest, callerRole string) (*dto.UserResponse, error) {
	if strings.TrimSpace(in.Role) == "" {
		in.Role = entity.RoleCliente
	}
	role, ok := entity.NormalizeRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if role != entity.RoleCliente && callerRole != entity.RoleAdmin {
		return nil, fmt.Errorf("sólo un admin puede registrar usuarios con rol %s: %w", role, domain.ErrForbidden)
	}
	return uc.RegisterUser(ctx, in)
}

// Login verifica username/password y emite un JWT con sub=username y el rol.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	role, _ := entity.NormalizeRole(user.Role)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        role,
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
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
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
