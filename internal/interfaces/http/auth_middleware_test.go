package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/access"
	apphttp "github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/interfaces/http"
	pkgjwt "github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsername  = "ana"
	testIssuer    = "pulperia-pos-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - el guardia indicado (RequireRole o Require)
//   - un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		guard,
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":       true,
				"role":     apphttp.GetRole(c),
				"username": apphttp.GetUsername(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole("admin"))
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, "admin", body["role"], "el role debe ser admin")
	assert.Equal(t, testUsername, body["username"])
}

// El alias "contabilidad" se normaliza a contador.
func TestRequireRole_AliasContabilidad(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole("admin", "contador"))
	resp := doRequest(t, app, tokenForRole(t, "contabilidad"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"contabilidad debe tratarse como contador")
}

func TestRequireRole_ClienteBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole("admin"))
	resp := doRequest(t, app, tokenForRole(t, "cliente"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"cliente no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole("admin"))
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin rol debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"la respuesta debe indicar el código MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole("admin"))
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole("admin"))
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole("admin"))
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, "admin", testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(apphttp.RequireRole("admin"))
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "token expirado debe rechazarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Require (tabla de capacidades)
// ──────────────────────────────────────────────────────────────────────────────

func TestRequire_TablaDeCapacidades(t *testing.T) {
	cases := []struct {
		role   string
		cap    access.Capability
		status int
	}{
		{"admin", access.BillingWrite, http.StatusOK},
		{"contador", access.AuditWrite, http.StatusOK},
		{"contador", access.BillingWrite, http.StatusOK},
		{"admin", access.SaleOwn, http.StatusForbidden},
		{"cliente", access.SaleOwn, http.StatusOK},
		{"cliente", access.InventoryWrite, http.StatusForbidden},
		{"cliente", access.DashboardRead, http.StatusForbidden},
		{"desconocido", access.SaleOwn, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.role+"_"+string(tc.cap), func(t *testing.T) {
			app := buildTestApp(apphttp.Require(tc.cap))
			resp := doRequest(t, app, tokenForRole(t, tc.role))
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequire_MensajeListaRoles(t *testing.T) {
	app := buildTestApp(apphttp.Require(access.BillingExport))
	resp := doRequest(t, app, tokenForRole(t, "cliente"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "admin", "el mensaje debe indicar los roles permitidos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests OptionalAuth
// ──────────────────────────────────────────────────────────────────────────────

func buildOptionalApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.OptionalAuth(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
	})
	return app
}

func TestOptionalAuth_SinHeaderPasaAnonimo(t *testing.T) {
	resp := doRequest(t, buildOptionalApp(), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["role"], "sin token no hay rol")
}

func TestOptionalAuth_CargaRolDelToken(t *testing.T) {
	resp := doRequest(t, buildOptionalApp(), tokenForRole(t, "admin"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin", body["role"])
}

func TestOptionalAuth_TokenInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildOptionalApp(), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}
