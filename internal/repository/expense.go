package repository

import (
	"context"

	"expenseapi/internal/model"
)

// ExpenseRepository defines data access for expenses.
// No business logic here; strictly persistence operations.
type ExpenseRepository interface {
	// Create inserts a new expense and returns it with the store-assigned ID.
	Create(ctx context.Context, e *model.Expense) (*model.Expense, error)

	// List returns every stored expense in the store's natural order.
	List(ctx context.Context) ([]model.Expense, error)

	// ListByDateRange returns expenses whose date falls in the half-open range.
	ListByDateRange(ctx context.Context, r model.DateRange) ([]model.Expense, error)

	// Ping checks connectivity with the underlying store.
	Ping(ctx context.Context) error
}
