package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Handler executes a single command or query.
type Handler[Req, Res any] interface {
	Handle(ctx context.Context, req Req) (Res, error)
}

// Commands groups the command handlers the server dispatches to.
type Commands struct {
	CreateOrder    Handler[commands.CreateOrderCommand, *order.Order]
	EditOrder      Handler[commands.EditOrderCommand, *order.Order]
	ConfirmOrder   Handler[commands.ConfirmOrderCommand, *order.Order]
	MarkProcessing Handler[commands.MarkProcessingCommand, *order.Order]
	SetOnTheWay    Handler[commands.SetOnTheWayCommand, *order.Order]
	UpdateBill     Handler[commands.UpdateBillCommand, *order.Order]
	MarkDelivered  Handler[commands.MarkDeliveredCommand, *order.Order]
	CancelOrder    Handler[commands.CancelOrderCommand, *order.Order]
	ForceSetStatus Handler[commands.ForceSetStatusCommand, *order.Order]

	CreateProduct  Handler[commands.CreateProductCommand, *inventory.Product]
	UpdateProduct  Handler[commands.UpdateProductCommand, *inventory.Product]
	DeleteProduct  Handler[commands.DeleteProductCommand, *inventory.Product]
	AdjustStock    Handler[commands.AdjustStockCommand, inventory.StockEntry]
	RestockProduct Handler[commands.RestockProductCommand, inventory.StockEntry]
	DeductStock    Handler[commands.DeductStockCommand, inventory.StockEntry]
	RestoreStock   Handler[commands.RestoreStockCommand, inventory.StockEntry]
}

// Queries groups the read side handlers.
type Queries struct {
	ListOrders            Handler[queries.ListOrdersQuery, []queries.OrderView]
	GetOrder              Handler[queries.GetOrderQuery, queries.OrderView]
	GetOrderStatusHistory Handler[queries.GetOrderStatusHistoryQuery, []queries.StatusChangeView]
	GetOrderStats         Handler[queries.GetOrderStatsQuery, queries.OrderStats]
	GetStockHistory       Handler[queries.GetStockHistoryQuery, []queries.StockEntryView]
	GetLowStockProducts   Handler[queries.GetLowStockProductsQuery, []queries.ProductView]
	GetProduct            Handler[queries.GetProductQuery, queries.ProductView]
	ListProducts          Handler[queries.ListProductsQuery, []queries.ProductView]
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	commands Commands
	queries  Queries
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(cmds Commands, qs Queries, logger *slog.Logger) *Server {
	return &Server{
		commands: cmds,
		queries:  qs,
		logger:   logger.With(slog.String("component", "http")),
	}
}

func actor(ctx echo.Context) string {
	return strings.TrimSpace(ctx.Request().Header.Get(ActorHeader))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// moneyOf treats a missing amount as an unconstructed Money, which command
// constructors reject as required.
func moneyOf(amount *decimal.Decimal) (kernel.Money, error) {
	if amount == nil {
		return kernel.Money{}, nil
	}
	return kernel.NewMoney(*amount)
}

func dayOf(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var buyerID *kernel.UUID
	if params.BuyerId != nil {
		id, err := fromAPIUUID(*params.BuyerId)
		if err != nil {
			return s.fail(ctx, err)
		}
		buyerID = &id
	}

	query, err := queries.NewListOrdersQuery(deref(params.Status), buyerID, dayOf(params.From), dayOf(params.To))
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.queries.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Order, len(views))
	for i, view := range views {
		response[i] = toOrderFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	buyerID, err := fromAPIUUID(body.Buyer.Id)
	if err != nil {
		return s.fail(ctx, err)
	}
	total, err := moneyOf(body.Total)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.OrderLine, len(body.Items))
	for i, item := range body.Items {
		productID, idErr := fromAPIUUID(item.ProductId)
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		lines[i] = commands.OrderLine{ProductID: productID, Name: deref(item.Name), Quantity: item.Quantity}
		if item.Rate != nil {
			rate, rateErr := kernel.NewMoney(*item.Rate)
			if rateErr != nil {
				return s.fail(ctx, rateErr)
			}
			lines[i].Rate = &rate
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		commands.BuyerDetails{
			ID:      buyerID,
			Name:    body.Buyer.Name,
			Phone:   deref(body.Buyer.Phone),
			Address: deref(body.Buyer.Address),
		},
		deref(body.DeliveryAddress),
		body.Latitude, body.Longitude,
		total,
		lines,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrder(o))
}

// GetOrderStats handles GET /api/v1/orders/stats.
func (s *Server) GetOrderStats(ctx echo.Context, params GetOrderStatsParams) error {
	query, err := queries.NewGetOrderStatsQuery(dayOf(params.From), dayOf(params.To))
	if err != nil {
		return s.fail(ctx, err)
	}

	stats, err := s.queries.GetOrderStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderStats(stats))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := fromAPIUUID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderFromView(view))
}

// GetOrderStatusHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderStatusHistory(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := fromAPIUUID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderStatusHistoryQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.queries.GetOrderStatusHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]StatusChange, len(views))
	for i, view := range views {
		response[i] = toStatusChange(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// EditOrder handles PUT /api/v1/orders/{orderId}.
func (s *Server) EditOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	var body EditOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.ItemQuantity, len(body.Items))
	for i, item := range body.Items {
		productID, err := fromAPIUUID(item.ProductId)
		if err != nil {
			return s.fail(ctx, err)
		}
		items[i] = commands.ItemQuantity{ProductID: productID, Quantity: item.Quantity}
	}

	return s.orderCommand(ctx, orderID, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewEditOrderCommand(id, items, body.DeliveryAddress, body.Phone, actor(ctx))
		if err != nil {
			return nil, err
		}
		return s.commands.EditOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	return s.orderCommand(ctx, orderID, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewConfirmOrderCommand(id, actor(ctx))
		if err != nil {
			return nil, err
		}
		return s.commands.ConfirmOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// MarkProcessing handles POST /api/v1/orders/{orderId}/processing.
func (s *Server) MarkProcessing(ctx echo.Context, orderID openapi_types.UUID) error {
	var body MarkProcessing
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.orderCommand(ctx, orderID, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewMarkProcessingCommand(
			id, body.TrackingNumber, deref(body.Carrier), body.EstimatedDelivery, actor(ctx),
		)
		if err != nil {
			return nil, err
		}
		return s.commands.MarkProcessing.Handle(ctx.Request().Context(), cmd)
	})
}

// SetOnTheWay handles POST /api/v1/orders/{orderId}/on-the-way.
func (s *Server) SetOnTheWay(ctx echo.Context, orderID openapi_types.UUID) error {
	var body SetOnTheWay
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.orderCommand(ctx, orderID, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewSetOnTheWayCommand(id, body.TotalSeconds, actor(ctx))
		if err != nil {
			return nil, err
		}
		return s.commands.SetOnTheWay.Handle(ctx.Request().Context(), cmd)
	})
}

// UpdateBill handles PUT /api/v1/orders/{orderId}/bill.
func (s *Server) UpdateBill(ctx echo.Context, orderID openapi_types.UUID) error {
	var body UpdateBill
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.orderCommand(ctx, orderID, func(id kernel.UUID) (*order.Order, error) {
		finalAmount, err := kernel.NewMoney(body.FinalAmount)
		if err != nil {
			return nil, err
		}
		cmd, err := commands.NewUpdateBillCommand(id, finalAmount, deref(body.Notes), actor(ctx))
		if err != nil {
			return nil, err
		}
		return s.commands.UpdateBill.Handle(ctx.Request().Context(), cmd)
	})
}

// MarkDelivered handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) MarkDelivered(ctx echo.Context, orderID openapi_types.UUID) error {
	return s.orderCommand(ctx, orderID, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewMarkDeliveredCommand(id, actor(ctx))
		if err != nil {
			return nil, err
		}
		return s.commands.MarkDelivered.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. The body is optional.
func (s *Server) CancelOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	var body CancelOrder
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	return s.orderCommand(ctx, orderID, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewCancelOrderCommand(id, actor(ctx), deref(body.Reason))
		if err != nil {
			return nil, err
		}
		return s.commands.CancelOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// ForceSetStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) ForceSetStatus(ctx echo.Context, orderID openapi_types.UUID) error {
	var body ForceStatus
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.orderCommand(ctx, orderID, func(id kernel.UUID) (*order.Order, error) {
		status, err := order.ParseStatus(body.Status)
		if err != nil {
			return nil, err
		}
		cmd, err := commands.NewForceSetStatusCommand(id, status, actor(ctx))
		if err != nil {
			return nil, err
		}
		return s.commands.ForceSetStatus.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) orderCommand(
	ctx echo.Context,
	orderID openapi_types.UUID,
	run func(id kernel.UUID) (*order.Order, error),
) error {
	id, err := fromAPIUUID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	o, err := run(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var body NewProduct
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	rate, err := moneyOf(body.Rate)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateProductCommand(
		kernel.NewUUID(), body.Name, body.Category, body.StockQuantity, body.LowStockThreshold, rate,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.commands.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toProduct(p))
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context, params ListProductsParams) error {
	views, err := s.queries.ListProducts.Handle(ctx.Request().Context(), queries.NewListProductsQuery(deref(params.Category)))
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Product, len(views))
	for i, view := range views {
		response[i] = toProductFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetProduct handles GET /api/v1/products/{productId}.
func (s *Server) GetProduct(ctx echo.Context, productID openapi_types.UUID) error {
	id, err := fromAPIUUID(productID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetProductQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.GetProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toProductFromView(view))
}

// UpdateProduct handles PUT /api/v1/products/{productId}.
func (s *Server) UpdateProduct(ctx echo.Context, productID openapi_types.UUID) error {
	var body UpdateProduct
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fromAPIUUID(productID)
	if err != nil {
		return s.fail(ctx, err)
	}
	rate, err := moneyOf(body.Rate)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateProductCommand(id, body.Name, body.Category, body.LowStockThreshold, rate)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.commands.UpdateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toProduct(p))
}

// DeleteProduct handles DELETE /api/v1/products/{productId}.
func (s *Server) DeleteProduct(ctx echo.Context, productID openapi_types.UUID) error {
	id, err := fromAPIUUID(productID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteProductCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.commands.DeleteProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "product deleted",
		slog.String("product_id", p.ID().String()),
		slog.String("name", p.Name()),
	)
	return ctx.NoContent(http.StatusNoContent)
}

// GetLowStockProducts handles GET /api/v1/products/low-stock.
func (s *Server) GetLowStockProducts(ctx echo.Context) error {
	views, err := s.queries.GetLowStockProducts.Handle(ctx.Request().Context(), queries.NewGetLowStockProductsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Product, len(views))
	for i, view := range views {
		response[i] = toProductFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetStockHistory handles GET /api/v1/products/{productId}/stock-history.
func (s *Server) GetStockHistory(ctx echo.Context, productID openapi_types.UUID) error {
	id, err := fromAPIUUID(productID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetStockHistoryQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.queries.GetStockHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]StockEntry, len(views))
	for i, view := range views {
		response[i] = toStockEntryFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// DeductStock handles POST /api/v1/products/{productId}/stock/deduct.
func (s *Server) DeductStock(ctx echo.Context, productID openapi_types.UUID) error {
	var body StockQuantity
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.stockCommand(ctx, productID, func(id kernel.UUID) (inventory.StockEntry, error) {
		orderID, err := optionalOrderID(body.OrderId)
		if err != nil {
			return inventory.StockEntry{}, err
		}
		cmd, err := commands.NewDeductStockCommand(id, body.Quantity, orderID, actor(ctx))
		if err != nil {
			return inventory.StockEntry{}, err
		}
		return s.commands.DeductStock.Handle(ctx.Request().Context(), cmd)
	})
}

// RestoreStock handles POST /api/v1/products/{productId}/stock/restore.
func (s *Server) RestoreStock(ctx echo.Context, productID openapi_types.UUID) error {
	var body StockQuantity
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.stockCommand(ctx, productID, func(id kernel.UUID) (inventory.StockEntry, error) {
		orderID, err := optionalOrderID(body.OrderId)
		if err != nil {
			return inventory.StockEntry{}, err
		}
		cmd, err := commands.NewRestoreStockCommand(id, body.Quantity, orderID, actor(ctx))
		if err != nil {
			return inventory.StockEntry{}, err
		}
		return s.commands.RestoreStock.Handle(ctx.Request().Context(), cmd)
	})
}

// RestockProduct handles POST /api/v1/products/{productId}/stock/restock.
func (s *Server) RestockProduct(ctx echo.Context, productID openapi_types.UUID) error {
	var body Restock
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.stockCommand(ctx, productID, func(id kernel.UUID) (inventory.StockEntry, error) {
		cmd, err := commands.NewRestockProductCommand(id, body.Quantity, actor(ctx), deref(body.Notes))
		if err != nil {
			return inventory.StockEntry{}, err
		}
		return s.commands.RestockProduct.Handle(ctx.Request().Context(), cmd)
	})
}

// AdjustStock handles POST /api/v1/products/{productId}/stock/adjust.
func (s *Server) AdjustStock(ctx echo.Context, productID openapi_types.UUID) error {
	var body AdjustStock
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.stockCommand(ctx, productID, func(id kernel.UUID) (inventory.StockEntry, error) {
		cmd, err := commands.NewAdjustStockCommand(id, body.Quantity, actor(ctx), deref(body.Notes))
		if err != nil {
			return inventory.StockEntry{}, err
		}
		return s.commands.AdjustStock.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) stockCommand(
	ctx echo.Context,
	productID openapi_types.UUID,
	run func(id kernel.UUID) (inventory.StockEntry, error),
) error {
	id, err := fromAPIUUID(productID)
	if err != nil {
		return s.fail(ctx, err)
	}
	entry, err := run(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toStockEntry(entry))
}

func optionalOrderID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent order reference
	}
	orderID, err := fromAPIUUID(*id)
	if err != nil {
		return nil, err
	}
	return &orderID, nil
}
