package mocks

import (
	"context"

	"expenseapi/internal/model"
	"expenseapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) Create(ctx context.Context, in service.CreateExpenseInput) (*model.Expense, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseService) List(ctx context.Context) ([]model.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseService) Categories() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockExpenseService) ListByMonth(ctx context.Context, q service.MonthQuery) ([]model.Expense, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ExportMonth(ctx context.Context, q service.MonthQuery) (*service.ReportResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportResult), args.Error(1)
}
