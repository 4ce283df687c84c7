package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultLowStockReportSchedule runs the report every five minutes.
const DefaultLowStockReportSchedule = "0 */5 * * * *"

// LowStockQuery lists the products at or below their threshold.
type LowStockQuery interface {
	Handle(ctx context.Context, query queries.GetLowStockProductsQuery) ([]queries.ProductView, error)
}

// LowStockReportJob periodically logs the products that need restocking.
type LowStockReportJob struct {
	query    LowStockQuery
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLowStockReportJob creates the job. An empty schedule falls back to
// DefaultLowStockReportSchedule. The schedule has a leading seconds field.
func NewLowStockReportJob(query LowStockQuery, schedule string, logger *slog.Logger) *LowStockReportJob {
	if schedule == "" {
		schedule = DefaultLowStockReportSchedule
	}
	return &LowStockReportJob{
		query:    query,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "low_stock_report_job"),
	}
}

// Start registers the report and starts the scheduler.
func (j *LowStockReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report.
func (j *LowStockReportJob) Run(ctx context.Context) {
	products, err := j.query.Handle(ctx, queries.NewGetLowStockProductsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Low stock report failed", "error", err)
		return
	}
	if len(products) == 0 {
		j.logger.DebugContext(ctx, "No products are low on stock")
		return
	}

	for _, p := range products {
		j.logger.WarnContext(ctx, "Product is low on stock",
			slog.String("product_id", p.ID.String()),
			slog.String("name", p.Name),
			slog.String("category", p.Category),
			slog.Int("stock_quantity", p.StockQuantity),
			slog.Int("low_stock_threshold", p.LowStockThreshold),
		)
	}
	j.logger.InfoContext(ctx, "Low stock report", "products", len(products))
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *LowStockReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Low stock report job stopped")
}
