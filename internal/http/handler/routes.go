package handler

import (
	"github.com/gofiber/fiber/v2"

	"expenseapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// The export route is only registered when reports is non-nil.
func RegisterRoutes(app *fiber.App, store Pinger, expenses service.ExpenseService, reports service.ReportService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	app.Post("/expense", CreateExpense(expenses))
	app.Get("/expenses", ListExpenses(expenses))
	app.Get("/categories", ListCategories(expenses))
	app.Get("/expenses/month", ListExpensesByMonth(expenses))

	if reports != nil {
		app.Post("/expenses/month/export", ExportMonth(reports))
	}
}
