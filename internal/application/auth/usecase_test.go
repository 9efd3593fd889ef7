package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/auth"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/memory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/jwt"
)

const secret = "auth-test-secret"

func newUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.New().Repos().Users, auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "test"})
}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newUC()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Email: "ana@pulperia.cr", Password: "secreto123", Role: "contabilidad"})
	require.NoError(t, err)
	assert.Equal(t, "contador", u.Role, "contabilidad se normaliza a contador")

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 1800, resp.ExpiresIn)

	sub, role, err := jwt.Parse(secret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana", sub)
	assert.Equal(t, "contador", role)
}

func TestRegister_Duplicado(t *testing.T) {
	ctx := context.Background()
	uc := newUC()
	in := dto.RegisterRequest{Username: "ana", Email: "ana@pulperia.cr", Password: "secreto123", Role: "cliente"}
	_, err := uc.RegisterUser(ctx, in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, in)
	assert.ErrorIs(t, err, domain.ErrConflict)

	in.Username = "ana2"
	_, err = uc.RegisterUser(ctx, in)
	assert.ErrorIs(t, err, domain.ErrConflict, "email repetido también es conflicto")
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc := newUC()
	cases := []dto.RegisterRequest{
		{Username: "", Email: "a@b.c", Password: "secreto123", Role: "cliente"},
		{Username: "a", Email: "sin-arroba", Password: "secreto123", Role: "cliente"},
		{Username: "a", Email: "a@b.c", Password: "corta", Role: "cliente"},
		{Username: "a", Email: "a@b.c", Password: "secreto123", Role: "gerente"},
	}
	for _, in := range cases {
		_, err := uc.RegisterUser(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc := newUC()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Email: "ana@pulperia.cr", Password: "secreto123", Role: "cliente"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSelfRegister_RolesPrivilegiados(t *testing.T) {
	ctx := context.Background()
	uc := newUC()

	u, err := uc.SelfRegister(ctx, dto.RegisterRequest{Username: "ana", Email: "ana@pulperia.cr", Password: "secreto123"}, "")
	require.NoError(t, err)
	assert.Equal(t, "cliente", u.Role, "sin rol se registra como cliente")

	for _, caller := range []string{"", "cliente", "contador"} {
		_, err = uc.SelfRegister(ctx, dto.RegisterRequest{Username: "eve", Email: "eve@pulperia.cr", Password: "secreto123", Role: "admin"}, caller)
		assert.ErrorIs(t, err, domain.ErrForbidden, "caller %q no puede crear admins", caller)
		_, err = uc.SelfRegister(ctx, dto.RegisterRequest{Username: "eve", Email: "eve@pulperia.cr", Password: "secreto123", Role: "contabilidad"}, caller)
		assert.ErrorIs(t, err, domain.ErrForbidden, "caller %q no puede crear contadores", caller)
	}

	u, err = uc.SelfRegister(ctx, dto.RegisterRequest{Username: "eve", Email: "eve@pulperia.cr", Password: "secreto123", Role: "contador"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "contador", u.Role)

	_, err = uc.SelfRegister(ctx, dto.RegisterRequest{Username: "zed", Email: "zed@pulperia.cr", Password: "secreto123", Role: "jefe"}, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
