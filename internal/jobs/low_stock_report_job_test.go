package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLowStockQuery struct {
	mock.Mock
}

func (m *MockLowStockQuery) Handle(
	ctx context.Context,
	query queries.GetLowStockProductsQuery,
) ([]queries.ProductView, error) {
	args := m.Called(ctx, query)
	products, _ := args.Get(0).([]queries.ProductView)
	return products, args.Error(1)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestLowStockReportJob_Run_LogsEachProduct(t *testing.T) {
	query := new(MockLowStockQuery)
	query.On("Handle", mock.Anything, mock.Anything).Return([]queries.ProductView{
		{ID: kernel.NewUUID(), Name: "Water 20L", Category: "water", StockQuantity: 2, LowStockThreshold: 10},
		{ID: kernel.NewUUID(), Name: "Soda", Category: "drinks", StockQuantity: 5, LowStockThreshold: 5},
	}, nil)
	logger, buf := bufferLogger()

	jobs.NewLowStockReportJob(query, "", logger).Run(t.Context())

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Product is low on stock"))
	assert.Contains(t, out, `"name":"Water 20L"`)
	assert.Contains(t, out, `"products":2`)
	assert.Contains(t, out, `"component":"low_stock_report_job"`)
	query.AssertExpectations(t)
}

func TestLowStockReportJob_Run_NothingLow(t *testing.T) {
	query := new(MockLowStockQuery)
	query.On("Handle", mock.Anything, mock.Anything).Return([]queries.ProductView{}, nil)
	logger, buf := bufferLogger()

	jobs.NewLowStockReportJob(query, "", logger).Run(t.Context())

	assert.Contains(t, buf.String(), "No products are low on stock")
	assert.NotContains(t, buf.String(), "Product is low on stock")
}

func TestLowStockReportJob_Run_QueryError(t *testing.T) {
	query := new(MockLowStockQuery)
	query.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	logger, buf := bufferLogger()

	jobs.NewLowStockReportJob(query, "", logger).Run(t.Context())

	assert.Contains(t, buf.String(), "Low stock report failed")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestJobManager_InvalidSchedule(t *testing.T) {
	logger, _ := bufferLogger()
	manager := jobs.NewJobManager(new(MockLowStockQuery), jobs.Config{LowStockReportSchedule: "every minute"}, logger)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "low stock report job")
}

func TestJobManager_StartStop(t *testing.T) {
	logger, buf := bufferLogger()
	manager := jobs.NewJobManager(new(MockLowStockQuery), jobs.Config{}, logger)

	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.Contains(t, buf.String(), jobs.DefaultLowStockReportSchedule)
	assert.Contains(t, buf.String(), "Low stock report job stopped")
}
