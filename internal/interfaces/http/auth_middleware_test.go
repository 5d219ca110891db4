package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

const (
	mwSecret   = "clave-del-middleware"
	mwUserID   = "00000000-0000-0000-0000-000000000001"
	mwUsername = "bodega.central"
)

// policyApp reproduce los tres niveles del router: lectura, escritura y borrado.
func policyApp() *fiber.App {
	app := fiber.New()
	echo := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"role":     apphttp.GetRole(c),
		})
	}
	g := app.Group("/api", apphttp.AuthMiddleware(mwSecret))
	g.Get("/doc", apphttp.RequireRole(), echo)
	g.Post("/doc", apphttp.RequireRole(apphttp.RoleAdmin, apphttp.RoleBodeguero), echo)
	g.Delete("/doc", apphttp.RequireRole(apphttp.RoleAdmin), echo)
	return app
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(mwSecret, mwUserID, mwUsername, role, "almacen-test", 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, authHeader string) (int, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, "/api/doc", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	if resp.StatusCode != http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

func TestRequireRole_PoliticaDelAlmacen(t *testing.T) {
	app := policyApp()
	tests := []struct {
		role   string
		method string
		want   int
	}{
		{apphttp.RoleVendedor, http.MethodGet, http.StatusOK},
		{apphttp.RoleVendedor, http.MethodPost, http.StatusForbidden},
		{apphttp.RoleVendedor, http.MethodDelete, http.StatusForbidden},
		{apphttp.RoleBodeguero, http.MethodGet, http.StatusOK},
		{apphttp.RoleBodeguero, http.MethodPost, http.StatusOK},
		{apphttp.RoleBodeguero, http.MethodDelete, http.StatusForbidden},
		{apphttp.RoleAdmin, http.MethodGet, http.StatusOK},
		{apphttp.RoleAdmin, http.MethodPost, http.StatusOK},
		{apphttp.RoleAdmin, http.MethodDelete, http.StatusOK},
		{"auditor", http.MethodGet, http.StatusOK},
		{"auditor", http.MethodPost, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method, func(t *testing.T) {
			status, body := call(t, app, tt.method, bearer(t, tt.role))
			assert.Equal(t, tt.want, status)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", body.Code)
			}
		})
	}
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := policyApp()
	otherSecret, err := pkgjwt.Generate("otra-clave", mwUserID, mwUsername, apphttp.RoleAdmin, "almacen-test", 60)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(mwSecret, mwUserID, mwUsername, apphttp.RoleAdmin, "almacen-test", -1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"otra clave", "Bearer " + otherSecret, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"sin rol", bearer(t, ""), "MISSING_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, app, http.MethodGet, tt.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

// El operador de los documentos sale del token.
func TestAuthMiddleware_DejaClaimsEnLocals(t *testing.T) {
	app := policyApp()
	req := httptest.NewRequest(http.MethodPost, "/api/doc", nil)
	req.Header.Set("Authorization", bearer(t, apphttp.RoleBodeguero))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, mwUserID, body["user_id"])
	assert.Equal(t, mwUsername, body["username"])
	assert.Equal(t, apphttp.RoleBodeguero, body["role"])
}
