package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"expenseapi/internal/model"
	repoMocks "expenseapi/internal/repository/mocks"
	"expenseapi/internal/storage"
	storeMocks "expenseapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	body, err := renderCSV([]model.Expense{
		{ID: "a1", Name: "Coffee, large", Amount: 4.5, Category: "Food", Date: "2026-03-14", Time: "08:15:00"},
		{ID: "a2", Name: "Rent", Amount: 900, Category: "Rent", Date: "2026-03-01", Time: "09:00:00"},
	})

	require.NoError(t, err)
	assert.Equal(t,
		"id,name,amount,category,date,time\n"+
			"a1,\"Coffee, large\",4.5,Food,2026-03-14,08:15:00\n"+
			"a2,Rent,900,Rent,2026-03-01,09:00:00\n",
		string(body))
}

func TestReportService_ExportMonth(t *testing.T) {
	ctx := context.Background()
	march := model.MonthRange(2026, time.March)
	items := []model.Expense{{ID: "a1", Name: "Coffee", Amount: 4.5, Category: "Food", Date: "2026-03-14", Time: "08:15:00"}}
	isReportKey := mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "reports/2026-03/") && strings.HasSuffix(key, ".csv")
	})

	tests := []struct {
		name       string
		q          MonthQuery
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockExpenseRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			q:    MonthQuery{Month: "March"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockExpenseRepository) {
				mRepo.On("ListByDateRange", ctx, march).Return(items, nil)
				mStore.On("Put", ctx, isReportKey, mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "text/csv" && opt.Size > 0 && opt.Metadata["period"] == "2026-03"
				})).Return(func(_ context.Context, key string, r io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key}
				}, nil)
				mStore.On("PresignGet", ctx, isReportKey, 15*time.Minute).Return("https://s3.local/signed", nil)
			},
		},
		{
			name:       "invalid month",
			q:          MonthQuery{Month: "Smarch"},
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockExpenseRepository) {},
			wantErr:    ErrInvalidMonth,
		},
		{
			name: "repository error",
			q:    MonthQuery{Month: "March"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockExpenseRepository) {
				mRepo.On("ListByDateRange", ctx, march).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "list expenses: db fail",
		},
		{
			name: "upload error",
			q:    MonthQuery{Month: "March"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockExpenseRepository) {
				mRepo.On("ListByDateRange", ctx, march).Return(items, nil)
				mStore.On("Put", ctx, isReportKey, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("bucket gone"))
			},
			wantErrMsg: "upload report: bucket gone",
		},
		{
			name: "presign error removes the object",
			q:    MonthQuery{Month: "March"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockExpenseRepository) {
				mRepo.On("ListByDateRange", ctx, march).Return(items, nil)
				mStore.On("Put", ctx, isReportKey, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mStore.On("PresignGet", ctx, isReportKey, 15*time.Minute).Return("", errors.New("no signer"))
				mStore.On("Delete", ctx, isReportKey).Return(nil)
			},
			wantErrMsg: "presign report: no signer",
		},
		{
			name: "presign and cleanup errors",
			q:    MonthQuery{Month: "March"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockExpenseRepository) {
				mRepo.On("ListByDateRange", ctx, march).Return(items, nil)
				mStore.On("Put", ctx, isReportKey, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mStore.On("PresignGet", ctx, isReportKey, 15*time.Minute).Return("", errors.New("no signer"))
				mStore.On("Delete", ctx, isReportKey).Return(errors.New("delete fail"))
			},
			wantErrMsg: "cleanup failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockExpenseRepository)
			svc := NewReportService(mRepo, mStore, 15*time.Minute).(*reportService)
			svc.now = fixedClock

			tt.setupMocks(mStore, mRepo)

			res, err := svc.ExportMonth(ctx, tt.q)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
				assert.Nil(t, res)
			default:
				require.NoError(t, err)
				assert.Equal(t, "https://s3.local/signed", res.URL)
				assert.Equal(t, 1, res.Count)
				assert.True(t, strings.HasPrefix(res.Key, "reports/2026-03/"))
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}
