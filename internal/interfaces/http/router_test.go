package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/semaforo-stock/internal/application/auth"
	"github.com/jhoicas/semaforo-stock/internal/application/dashboard"
	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/application/ingest"
	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/cache"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/semaforo-stock/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/semaforo-stock/pkg/jwt"
)

const sheetCSV = "codigo,nome,categoria,estoque_atual,estoque_min,estoque_max,custo_unitario\n" +
	"S001,Planilla A,Casa,10,20,50,5.00\n" +
	"S002,Planilla B,Casa,90,20,50,7.50\n"

type stubFetcher struct {
	data []byte
	err  error
}

func (f *stubFetcher) Fetch(context.Context, string) ([]byte, error) { return f.data, f.err }

type stubReport struct{}

func (stubReport) GenerateStockReport(context.Context, *dto.DashboardSummaryDTO, []dto.ProductStatusResponse) ([]byte, error) {
	return []byte("%PDF-1.4 test"), nil
}

const testSheetsURL = "https://example.com/products.csv"

type testEnv struct {
	app   *fiber.App
	store *memory.Store
	token string
}

// newTestEnv arma el router completo sobre el store en memoria con el catálogo demo.
func newTestEnv(t *testing.T, secret string) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()
	store := memory.NewStore()
	fetcher := &stubFetcher{data: []byte(sheetCSV)}
	sources := ingest.NewSourcePolicy(testSheetsURL)

	importUC := ingest.NewImportUseCase(store, fetcher, sources, log)
	_, seeded, err := ingest.SeedDemo(ctx, store.Products(), importUC)
	require.NoError(t, err)
	require.True(t, seeded)

	hash, err := auth.HashPassword("secreto")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		Dashboard:        dashboard.NewDashboardUseCase(store.Products(), stubReport{}),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, log),
		History:          inventory.NewHistoryUseCase(store.Movements(), 0),
		Import:           importUC,
		Preview:          ingest.NewPreviewUseCase(fetcher, cache.NewMemoryCache(), 0, sources, log),
		AuthUC: auth.NewAuthUseCase(
			auth.Credentials{Username: "admin", PasswordHash: hash},
			auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"},
		),
		JWTSecret: secret,
		SheetsURL: testSheetsURL,
		Health: map[string]apphttp.Pinger{
			"store": apphttp.PingFunc(func(context.Context) error { return nil }),
		},
	})

	env := &testEnv{app: app, store: store}
	if secret != "" {
		tok, err := pkgjwt.Generate(secret, "admin", pkgjwt.RoleOperator, "test", 60)
		require.NoError(t, err)
		env.token = "Bearer " + tok
	}
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.token != "" {
		req.Header.Set("Authorization", e.token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestProducts_ListYFiltroPorEstado(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all dto.ListResponse[dto.ProductStatusResponse]
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Equal(t, 8, all.Total)

	resp, body = env.do(t, http.MethodGet, "/api/products?status=critical", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var critical dto.ListResponse[dto.ProductStatusResponse]
	require.NoError(t, json.Unmarshal(body, &critical))
	assert.Equal(t, 3, critical.Total)
	for _, p := range critical.Items {
		assert.Equal(t, "CRITICAL", p.Status)
	}

	resp, _ = env.do(t, http.MethodGet, "/api/products?status=AZUL", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProducts_GetByCode(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, http.MethodGet, "/api/products/P003", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p dto.ProductStatusResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "WARNING", p.Status)

	resp, body = env.do(t, http.MethodGet, "/api/products/NOPE", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestDashboard_SummaryYReporte(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var s dto.DashboardSummaryDTO
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, 8, s.TotalProducts)

	resp, body = env.do(t, http.MethodGet, "/api/dashboard/report.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestMovements_RegistroEHistorial(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, http.MethodPost, "/api/inventory/movements", dto.RegisterMovementRequest{
		Code: "P001", Type: "inbound", Quantity: 50, Reason: "compra",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var mov dto.MovementResponse
	require.NoError(t, json.Unmarshal(body, &mov))
	assert.Equal(t, int64(150), mov.BalanceBefore)
	assert.Equal(t, int64(200), mov.BalanceAfter)
	assert.Equal(t, inventory.DefaultUser, mov.User)

	resp, body = env.do(t, http.MethodPost, "/api/inventory/movements", dto.RegisterMovementRequest{
		Code: "P001", Type: "outbound", Quantity: 300,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")

	resp, _ = env.do(t, http.MethodPost, "/api/inventory/movements", dto.RegisterMovementRequest{
		Code: "UNKNOWN", Type: "inbound", Quantity: 1,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, "/api/inventory/movements", dto.RegisterMovementRequest{
		Code: "P001", Type: "inbound", Quantity: 0,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")

	resp, body = env.do(t, http.MethodGet, "/api/inventory/movements?code=P001", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var hist dto.ListResponse[dto.MovementResponse]
	require.NoError(t, json.Unmarshal(body, &hist))
	require.Equal(t, 1, hist.Total)
	assert.Equal(t, int64(200), hist.Items[0].BalanceAfter)
}

func TestMovements_FallaDeStore_Retorna503(t *testing.T) {
	env := newTestEnv(t, "")
	env.store.Fault = func(op string) error {
		if op == "commit" {
			return assert.AnError
		}
		return nil
	}

	resp, body := env.do(t, http.MethodPost, "/api/inventory/movements", dto.RegisterMovementRequest{
		Code: "P001", Type: "inbound", Quantity: 5,
	})
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "STORE")

	p, err := env.store.Products().GetByCode(context.Background(), "P001")
	require.NoError(t, err)
	assert.Equal(t, int64(150), p.CurrentStock)
}

func TestEscrituras_ExigenToken(t *testing.T) {
	env := newTestEnv(t, "jwt-secret")
	env.token = ""

	resp, _ := env.do(t, http.MethodPost, "/api/inventory/movements", dto.RegisterMovementRequest{
		Code: "P001", Type: "inbound", Quantity: 1,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// lecturas siguen públicas
	resp, _ = env.do(t, http.MethodGet, "/api/products", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLogin_EmiteTokenValido(t *testing.T) {
	env := newTestEnv(t, "jwt-secret")
	env.token = ""

	resp, body := env.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "admin", Password: "secreto"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	env.token = "Bearer " + out.Token

	resp, body = env.do(t, http.MethodPost, "/api/inventory/movements", dto.RegisterMovementRequest{
		Code: "P008", Type: "outbound", Quantity: 5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var mov dto.MovementResponse
	require.NoError(t, json.Unmarshal(body, &mov))
	assert.Equal(t, "admin", mov.User)

	env.token = ""
	resp, _ = env.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "admin", Password: "otra"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestImport_SheetsYArchivo(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, http.MethodPost, "/api/import/sheets", dto.ImportSheetRequest{})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var res dto.ImportResultDTO
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 2, res.Created)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "productos.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("codigo;nome;categoria;estoque_atual;estoque_min;estoque_max;custo_unitario\nP001;Produto A2;Eletrônicos;999;50;300;26,00\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	p, err := env.store.Products().GetByCode(context.Background(), "P001")
	require.NoError(t, err)
	assert.Equal(t, "Produto A2", p.Name)
	assert.Equal(t, int64(150), p.CurrentStock, "la importación no pisa el saldo existente")
}

func TestImport_ArchivoSinColumnas_Retorna422(t *testing.T) {
	env := newTestEnv(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "productos.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("codigo,nome\nX1,Algo\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, "SCHEMA", out["code"])
	assert.Contains(t, out["missing"], "current_stock")
}

func TestPreview_DesdeCacheEInvalidacion(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, http.MethodGet, "/api/import/preview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var first dto.SheetPreviewDTO
	require.NoError(t, json.Unmarshal(body, &first))
	assert.False(t, first.Cached)
	assert.Len(t, first.Products, 2)

	_, body = env.do(t, http.MethodGet, "/api/import/preview", nil)
	var second dto.SheetPreviewDTO
	require.NoError(t, json.Unmarshal(body, &second))
	assert.True(t, second.Cached)

	resp, _ = env.do(t, http.MethodDelete, "/api/import/preview", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	_, body = env.do(t, http.MethodGet, "/api/import/preview", nil)
	var third dto.SheetPreviewDTO
	require.NoError(t, json.Unmarshal(body, &third))
	assert.False(t, third.Cached)
}

func TestPreview_FuenteNoPermitida(t *testing.T) {
	env := newTestEnv(t, "")

	for _, raw := range []string{
		"http://169.254.169.254/latest/meta-data/",
		"http://localhost:6379/",
		"https://example.com/otra.csv",
	} {
		resp, body := env.do(t, http.MethodGet, "/api/import/preview?url="+url.QueryEscape(raw), nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, raw)
		assert.Contains(t, string(body), "VALIDATION")
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "")
	resp, body := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"store":"ok"`)
}

func TestErrorHandler_MapeaErroresDeDominio(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/store", func(*fiber.Ctx) error { return domain.NewStoreError("leer", assert.AnError) })
	app.Get("/wrapped", func(*fiber.Ctx) error { return domain.NewStoreError("leer", domain.ErrNotFound) })
	app.Get("/fiber", func(*fiber.Ctx) error { return fiber.ErrMethodNotAllowed })

	cases := map[string]int{
		"/store":   fiber.StatusServiceUnavailable,
		"/wrapped": fiber.StatusNotFound,
		"/fiber":   fiber.StatusMethodNotAllowed,
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
