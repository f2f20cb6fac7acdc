package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"expenseapi/internal/model"
	"expenseapi/internal/repository"
)

const table = "expenses"

// Date and time are stored as DATE/TIME and rendered back to text in the layouts of model.Expense.
var columns = []string{
	"id",
	"name",
	"amount",
	"category",
	"to_char(spent_on, 'YYYY-MM-DD')",
	"to_char(spent_at, 'HH24:MI:SS')",
}

// ExpensePostgres is a PostgreSQL implementation of repository.ExpenseRepository.
// Queries are built with squirrel and executed through database/sql.
type ExpensePostgres struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewExpensePostgres creates a new ExpensePostgres repository.
func NewExpensePostgres(db *sql.DB) *ExpensePostgres {
	return &ExpensePostgres{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ repository.ExpenseRepository = (*ExpensePostgres)(nil)

// Create inserts a new expense row with a generated UUID and returns the stored record.
func (r *ExpensePostgres) Create(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}

	q, args, err := r.sb.Insert(table).
		Columns("id", "name", "amount", "category", "spent_on", "spent_at").
		Values(
			id,
			e.Name,
			e.Amount,
			e.Category,
			squirrel.Expr("CAST(? AS DATE)", e.Date),
			squirrel.Expr("CAST(? AS TIME)", e.Time),
		).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out model.Expense
	if err := scanExpense(r.db.QueryRowContext(ctx, q, args...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every expense in insertion order.
func (r *ExpensePostgres) List(ctx context.Context) ([]model.Expense, error) {
	q, args, err := r.sb.Select(columns...).
		From(table).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return r.query(ctx, q, args...)
}

// ListByDateRange compares the typed DATE column against the range bounds.
func (r *ExpensePostgres) ListByDateRange(ctx context.Context, dr model.DateRange) ([]model.Expense, error) {
	q, args, err := r.sb.Select(columns...).
		From(table).
		Where(squirrel.And{
			squirrel.GtOrEq{"spent_on": dr.From},
			squirrel.Lt{"spent_on": dr.To},
		}).
		OrderBy("spent_on", "spent_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return r.query(ctx, q, args...)
}

// Ping verifies the connection pool can reach the database.
func (r *ExpensePostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *ExpensePostgres) query(ctx context.Context, q string, args ...any) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Expense, 0)
	for rows.Next() {
		var e model.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner, e *model.Expense) error {
	return s.Scan(
		&e.ID,
		&e.Name,
		&e.Amount,
		&e.Category,
		&e.Date,
		&e.Time,
	)
}
