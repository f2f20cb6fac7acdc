package mocks

import (
	"context"

	"expenseapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) List(ctx context.Context) ([]model.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByDateRange(ctx context.Context, r model.DateRange) ([]model.Expense, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
