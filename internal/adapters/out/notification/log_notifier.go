package notification

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// LogNotifier delivers notifications as structured log records.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) NotifyAdmins(ctx context.Context, summary ports.OrderSummary) error {
	n.logger.InfoContext(ctx, "New order received",
		slog.String("orderId", summary.OrderID.String()),
		slog.String("customerName", summary.CustomerName),
		slog.String("total", summary.Total.String()),
		slog.Int("itemCount", summary.ItemCount),
	)
	return nil
}

func (n *LogNotifier) NotifyBuyer(
	ctx context.Context,
	buyerID kernel.UUID,
	title, message string,
	payload map[string]string,
) error {
	attrs := []any{
		slog.String("buyerId", buyerID.String()),
		slog.String("title", title),
		slog.String("message", message),
	}
	for key, value := range payload {
		attrs = append(attrs, slog.String("payload."+key, value))
	}

	n.logger.InfoContext(ctx, "Buyer notification", attrs...)
	return nil
}
