package handler

import (
	"github.com/gofiber/fiber/v2"

	"expenseapi/internal/service"
)

type createExpenseResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// CreateExpense godoc
// @Summary Add an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body service.CreateExpenseInput true "Expense"
// @Success 201 {object} createExpenseResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /expense [post]
func CreateExpense(svc service.ExpenseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateExpenseInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_DATA", "Missing data", "")
		}

		e, err := svc.Create(c.UserContext(), in)
		if err != nil {
			if ok, werr := writeValidationError(c, err); ok {
				return werr
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", "")
		}

		return c.Status(fiber.StatusCreated).JSON(createExpenseResponse{
			Message: "Expense added successfully!",
			ID:      e.ID,
		})
	}
}

// ListExpenses godoc
// @Summary List all expenses
// @Tags expenses
// @Produce json
// @Success 200 {array} model.Expense
// @Failure 500 {object} errorPayload
// @Router /expenses [get]
func ListExpenses(svc service.ExpenseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", "")
		}
		return c.JSON(nonNil(items))
	}
}

// ListCategories godoc
// @Summary List expense categories
// @Tags expenses
// @Produce json
// @Success 200 {array} string
// @Router /categories [get]
func ListCategories(svc service.ExpenseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Categories())
	}
}

// ListExpensesByMonth godoc
// @Summary List expenses of a calendar month
// @Tags expenses
// @Produce json
// @Param month query string true "Full English month name, e.g. March"
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {array} model.Expense
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /expenses/month [get]
func ListExpensesByMonth(svc service.ExpenseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListByMonth(c.UserContext(), monthQuery(c))
		if err != nil {
			if ok, werr := writeValidationError(c, err); ok {
				return werr
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error processing the request", err.Error())
		}
		return c.JSON(nonNil(items))
	}
}

// ExportMonth godoc
// @Summary Export a month of expenses as CSV
// @Description Uploads the report to object storage and returns a presigned download URL.
// @Tags reports
// @Produce json
// @Param month query string true "Full English month name"
// @Param year query int false "Year, defaults to the current year"
// @Success 201 {object} service.ReportResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /expenses/month/export [post]
func ExportMonth(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ExportMonth(c.UserContext(), monthQuery(c))
		if err != nil {
			if ok, werr := writeValidationError(c, err); ok {
				return werr
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error processing the request", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func monthQuery(c *fiber.Ctx) service.MonthQuery {
	return service.MonthQuery{Month: c.Query("month"), Year: c.Query("year")}
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
