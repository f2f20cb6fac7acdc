package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"expenseapi/internal/model"
	"expenseapi/internal/repository"
	"expenseapi/internal/storage"
)

var reportHeader = []string{"id", "name", "amount", "category", "date", "time"}

// ReportResult describes an exported monthly report.
type ReportResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// ReportService exports monthly expense reports to object storage.
type ReportService interface {
	// ExportMonth writes the month's expenses as CSV and returns a time-limited download URL.
	ExportMonth(ctx context.Context, q MonthQuery) (*ReportResult, error)
}

type reportService struct {
	repo   repository.ExpenseRepository
	store  storage.Storage
	expiry time.Duration
	now    func() time.Time
}

// NewReportService constructs a ReportService; expiry bounds the lifetime of returned URLs.
func NewReportService(repo repository.ExpenseRepository, store storage.Storage, expiry time.Duration) ReportService {
	return &reportService{repo: repo, store: store, expiry: expiry, now: time.Now}
}

func (s *reportService) ExportMonth(ctx context.Context, q MonthQuery) (*ReportResult, error) {
	r, err := ResolvePeriod(q, s.now())
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByDateRange(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	body, err := renderCSV(items)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	period := r.From.Format("2006-01")
	key := path.Join("reports", period, uuid.NewString()+".csv")

	if _, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "text/csv",
		Metadata:    map[string]string{"period": period},
	}); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.expiry)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; cleanup failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign report: %w", err)
	}

	return &ReportResult{Key: key, URL: url, Count: len(items)}, nil
}

func renderCSV(items []model.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportHeader); err != nil {
		return nil, err
	}
	for _, e := range items {
		rec := []string{
			e.ID,
			e.Name,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			e.Category,
			e.Date,
			e.Time,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
