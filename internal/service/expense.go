package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"expenseapi/internal/model"
	"expenseapi/internal/repository"
)

var (
	ErrMissingData   = errors.New("missing data")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidTime   = errors.New("invalid time")
	ErrMonthRequired = errors.New("month parameter is required")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidYear   = errors.New("invalid year")
)

// CreateExpenseInput is the request schema for a new expense.
// Pointer fields distinguish absent values from zero values.
type CreateExpenseInput struct {
	Name     *string  `json:"name"`
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
	Date     *string  `json:"date,omitempty"`
	Time     *string  `json:"time,omitempty"`
}

// Validate enforces the presence rules for required fields.
// A zero amount counts as missing: an expense of nothing is not recorded.
func (in CreateExpenseInput) Validate() error {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return ErrMissingData
	}
	if in.Amount == nil || *in.Amount == 0 {
		return ErrMissingData
	}
	if in.Category == nil || strings.TrimSpace(*in.Category) == "" {
		return ErrMissingData
	}
	if in.Date != nil {
		if _, err := time.Parse(model.DateLayout, *in.Date); err != nil {
			return ErrInvalidDate
		}
	}
	if in.Time != nil {
		if _, err := time.Parse(model.TimeLayout, *in.Time); err != nil {
			return ErrInvalidTime
		}
	}
	return nil
}

// MonthQuery selects a calendar month by its English name and an optional year.
// An empty Year means the current year.
type MonthQuery struct {
	Month string
	Year  string
}

// ResolvePeriod validates q and returns the date range it covers relative to now.
func ResolvePeriod(q MonthQuery, now time.Time) (model.DateRange, error) {
	if q.Month == "" {
		return model.DateRange{}, ErrMonthRequired
	}
	month, ok := model.ParseMonth(q.Month)
	if !ok {
		return model.DateRange{}, ErrInvalidMonth
	}

	year := now.Year()
	if q.Year != "" {
		y, err := strconv.Atoi(q.Year)
		if err != nil || y < 1 || y > 9999 {
			return model.DateRange{}, ErrInvalidYear
		}
		year = y
	}
	return model.MonthRange(year, month), nil
}

// EventPublisher announces expenses that have been stored.
type EventPublisher interface {
	PublishExpenseCreated(ctx context.Context, e model.Expense) error
}

// ExpenseService defines the expense use cases.
type ExpenseService interface {
	// Create validates the input, fills date/time defaults and stores the expense.
	Create(ctx context.Context, in CreateExpenseInput) (*model.Expense, error)

	// List returns every stored expense.
	List(ctx context.Context) ([]model.Expense, error)

	// Categories returns the fixed category list.
	Categories() []string

	// ListByMonth returns the expenses dated within the requested month.
	ListByMonth(ctx context.Context, q MonthQuery) ([]model.Expense, error)
}

// Option customizes an expense service.
type Option func(*expenseService)

// WithClock replaces the wall clock used for defaults and the current year.
func WithClock(now func() time.Time) Option {
	return func(s *expenseService) { s.now = now }
}

// WithPublisher sets the publisher notified after each successful create.
func WithPublisher(p EventPublisher) Option {
	return func(s *expenseService) { s.events = p }
}

type expenseService struct {
	repo   repository.ExpenseRepository
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

// NewExpenseService constructs a new ExpenseService.
func NewExpenseService(repo repository.ExpenseRepository, log *zap.Logger, opts ...Option) ExpenseService {
	s := &expenseService{repo: repo, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *expenseService) Create(ctx context.Context, in CreateExpenseInput) (*model.Expense, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	e := &model.Expense{
		Name:     *in.Name,
		Amount:   *in.Amount,
		Category: *in.Category,
		Date:     now.Format(model.DateLayout),
		Time:     now.Format(model.TimeLayout),
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Time != nil {
		e.Time = *in.Time
	}

	stored, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("store expense: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishExpenseCreated(ctx, *stored); err != nil {
			s.log.Warn("publish expense created failed",
				zap.String("expense_id", stored.ID),
				zap.Error(err),
			)
		}
	}
	return stored, nil
}

func (s *expenseService) List(ctx context.Context) ([]model.Expense, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return items, nil
}

func (s *expenseService) Categories() []string {
	return model.Categories()
}

func (s *expenseService) ListByMonth(ctx context.Context, q MonthQuery) ([]model.Expense, error) {
	r, err := ResolvePeriod(q, s.now())
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByDateRange(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("list expenses from %s to %s: %w", r.FromString(), r.ToString(), err)
	}
	return items, nil
}
