package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semaforo-stock/internal/application/auth"
	"github.com/jhoicas/semaforo-stock/internal/application/dashboard"
	"github.com/jhoicas/semaforo-stock/internal/application/ingest"
	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Dashboard        *dashboard.DashboardUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	History          *inventory.HistoryUseCase
	Import           *ingest.ImportUseCase
	Preview          *ingest.PreviewUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string // vacío = escrituras abiertas
	SheetsURL        string
	Health           map[string]Pinger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.Health))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Escrituras: Bearer Token si JWT_SECRET está configurado
	write := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(deps.JWTSecret, jwt.RoleOperator)}

	// Products y dashboard (lectura pública)
	productHandler := NewProductHandler(deps.Dashboard)
	api.Get("/products", productHandler.List)
	api.Get("/products/:code", productHandler.GetByCode)

	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
	api.Get("/dashboard/report.pdf", dashboardHandler.GetReport)

	// Inventory movements
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.History)
	api.Get("/inventory/movements", inventoryHandler.History)
	api.Post("/inventory/movements", append(write, inventoryHandler.RegisterMovement)...)

	// Import / preview de planillas
	importHandler := NewImportHandler(deps.Import, deps.Preview, deps.SheetsURL)
	api.Get("/import/preview", importHandler.Preview)
	api.Delete("/import/preview", importHandler.InvalidatePreview)
	api.Post("/import/sheets", append(write, importHandler.ImportSheet)...)
	api.Post("/import/file", append(write, importHandler.ImportFile)...)
}
