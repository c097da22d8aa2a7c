package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/application/reporting"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *usecase.ItemUseCase
	StockLedger  *ledger.StockLedgerUseCase
	Statements   *reporting.StatementUseCase
	StatementPDF *reporting.StatementPDFUseCase
	ExpenseAgg   *reporting.ExpenseAggregator
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)

	// Kardex (protegido; escrituras limitadas a admin y bodeguero)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockLedger)
	stockWrite := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	stock.Post("/batches", stockWrite, stockHandler.ReceiveBatch)
	stock.Post("/batches/consume", stockWrite, stockHandler.Consume)
	stock.Post("/batches/adjust", stockWrite, stockHandler.Adjust)
	stock.Post("/serials", stockWrite, stockHandler.ReceiveSerial)
	stock.Post("/serials/consume", stockWrite, stockHandler.ConsumeSerial)
	stock.Get("/batches", stockHandler.Batches)
	stock.Get("/movements", stockHandler.Movements)
	stock.Get("/value", stockHandler.Value)

	// Reportes financieros (protegido, solo admin y contador)
	reports := protected.Group("/reports", RequireRole(entity.RoleAdmin, entity.RoleContador))
	reportHandler := NewReportHandler(deps.Statements, deps.StatementPDF, deps.ExpenseAgg)
	reports.Get("/profit-loss", reportHandler.ProfitLoss)
	reports.Get("/profit-loss/compare", reportHandler.Compare)
	reports.Get("/profit-loss/pdf", reportHandler.ProfitLossPDF)
	reports.Get("/expenses", reportHandler.Expenses)
}
