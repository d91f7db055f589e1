package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizador-api/internal/application/analytics"
	"github.com/jhoicas/cotizador-api/internal/application/auth"
	"github.com/jhoicas/cotizador-api/internal/application/clients"
	"github.com/jhoicas/cotizador-api/internal/application/expenses"
	"github.com/jhoicas/cotizador-api/internal/application/quotes"
	"github.com/jhoicas/cotizador-api/internal/application/rates"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	QuoteUC     *quotes.UseCase
	ExpenseUC   *expenses.UseCase
	ClientUC    *clients.UseCase
	DashboardUC *analytics.UseCase
	RatesSvc    *rates.Service
	JWTSecret   string
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

	// Quotes (protegido)
	quotesGroup := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotesGroup.Post("/", quoteHandler.Create)
	quotesGroup.Get("/", quoteHandler.List)
	quotesGroup.Get("/:id", quoteHandler.GetByID)
	quotesGroup.Put("/:id", quoteHandler.Update)
	quotesGroup.Delete("/:id", quoteHandler.Delete)
	quotesGroup.Get("/:id/totals", quoteHandler.Totals)
	quotesGroup.Get("/:id/profitability", quoteHandler.Profitability)
	quotesGroup.Get("/:id/export", quoteHandler.Export)

	// Expenses (protegido)
	expensesGroup := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expensesGroup.Post("/", expenseHandler.Create)
	expensesGroup.Get("/", expenseHandler.List)
	expensesGroup.Get("/summary", expenseHandler.MonthSummary)
	expensesGroup.Get("/:id", expenseHandler.GetByID)
	expensesGroup.Put("/:id", expenseHandler.Update)
	expensesGroup.Delete("/:id", expenseHandler.Delete)

	// Clients (protegido)
	clientsGroup := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Put("/:id", clientHandler.Update)
	clientsGroup.Delete("/:id", clientHandler.Delete)

	// Rates + conversor + gráficas (protegido)
	ratesGroup := protected.Group("/rates")
	ratesHandler := NewRatesHandler(deps.RatesSvc)
	ratesGroup.Get("/", ratesHandler.Table)
	ratesGroup.Post("/refresh", ratesHandler.Refresh)
	ratesGroup.Get("/convert", ratesHandler.Convert)
	ratesGroup.Get("/:code/history", ratesHandler.History)
	ratesGroup.Get("/:code/chart", ratesHandler.Chart)

	// Dashboard (protegido)
	dashboardGroup := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboardGroup.Get("/summary", dashboardHandler.Summary)
}
