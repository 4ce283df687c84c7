package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ActorHeader carries the identity recorded in the audit trail.
const ActorHeader = "X-Actor"

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Buyer struct {
	Id      openapi_types.UUID `json:"id"`
	Name    string             `json:"name"`
	Phone   *string            `json:"phone,omitempty"`
	Address *string            `json:"address,omitempty"`
}

type NewOrderItem struct {
	ProductId openapi_types.UUID `json:"productId"`
	Name      *string            `json:"name,omitempty"`
	Rate      *decimal.Decimal   `json:"rate,omitempty"`
	Quantity  int                `json:"quantity"`
}

type NewOrder struct {
	Buyer           Buyer            `json:"buyer"`
	DeliveryAddress *string          `json:"deliveryAddress,omitempty"`
	Latitude        *float64         `json:"latitude,omitempty"`
	Longitude       *float64         `json:"longitude,omitempty"`
	Total           *decimal.Decimal `json:"total"`
	Items           []NewOrderItem   `json:"items"`
}

type ItemQuantity struct {
	ProductId openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

type EditOrder struct {
	Items           []ItemQuantity `json:"items"`
	DeliveryAddress *string        `json:"deliveryAddress,omitempty"`
	Phone           *string        `json:"phone,omitempty"`
}

type MarkProcessing struct {
	TrackingNumber    string     `json:"trackingNumber"`
	Carrier           *string    `json:"carrier,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

type SetOnTheWay struct {
	TotalSeconds int64 `json:"totalSeconds"`
}

type UpdateBill struct {
	FinalAmount decimal.Decimal `json:"finalAmount"`
	Notes       *string         `json:"notes,omitempty"`
}

type CancelOrder struct {
	Reason *string `json:"reason,omitempty"`
}

type ForceStatus struct {
	Status string `json:"status"`
}

type NewProduct struct {
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	StockQuantity     int              `json:"stockQuantity"`
	LowStockThreshold *int             `json:"lowStockThreshold,omitempty"`
	Rate              *decimal.Decimal `json:"rate"`
}

type UpdateProduct struct {
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	LowStockThreshold *int             `json:"lowStockThreshold,omitempty"`
	Rate              *decimal.Decimal `json:"rate"`
}

type StockQuantity struct {
	Quantity int                 `json:"quantity"`
	OrderId  *openapi_types.UUID `json:"orderId,omitempty"`
}

type Restock struct {
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes,omitempty"`
}

type AdjustStock struct {
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes,omitempty"`
}

type OrderItem struct {
	ProductId openapi_types.UUID `json:"productId"`
	Name      string             `json:"name"`
	Rate      json.Number        `json:"rate"`
	Quantity  int                `json:"quantity"`
	Subtotal  json.Number        `json:"subtotal"`
}

type Delivery struct {
	TrackingNumber    *string    `json:"trackingNumber,omitempty"`
	Carrier           *string    `json:"carrier,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	TotalSeconds      *int64     `json:"totalSeconds,omitempty"`
	StartEpoch        *int64     `json:"startEpoch,omitempty"`
	StartedAt         *time.Time `json:"startedAt,omitempty"`
	LegacyMinutes     *int       `json:"legacyMinutes,omitempty"`
}

type Billing struct {
	FinalAmount   json.Number `json:"finalAmount"`
	PaymentStatus string      `json:"paymentStatus"`
	BilledBy      *string     `json:"billedBy,omitempty"`
	BilledAt      *time.Time  `json:"billedAt,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
}

type Order struct {
	Id              openapi_types.UUID `json:"id"`
	Buyer           Buyer              `json:"buyer"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Latitude        *float64           `json:"latitude,omitempty"`
	Longitude       *float64           `json:"longitude,omitempty"`
	Total           json.Number        `json:"total"`
	Status          string             `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	StatusUpdatedAt *time.Time         `json:"statusUpdatedAt,omitempty"`
	Delivery        *Delivery          `json:"delivery,omitempty"`
	ConfirmedBy     *string            `json:"confirmedBy,omitempty"`
	DeliveredBy     *string            `json:"deliveredBy,omitempty"`
	Billing         *Billing           `json:"billing,omitempty"`
	Items           []OrderItem        `json:"items"`
}

type StatusChange struct {
	Id        openapi_types.UUID `json:"id"`
	OldStatus *string            `json:"oldStatus,omitempty"`
	NewStatus string             `json:"newStatus"`
	ChangedBy string             `json:"changedBy"`
	ChangedAt time.Time          `json:"changedAt"`
	Notes     *string            `json:"notes,omitempty"`
}

type Product struct {
	Id                openapi_types.UUID `json:"id"`
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	StockQuantity     int                `json:"stockQuantity"`
	LowStockThreshold int                `json:"lowStockThreshold"`
	Rate              json.Number        `json:"rate"`
	UpdatedAt         *time.Time         `json:"updatedAt,omitempty"`
}

type StockEntry struct {
	Id             openapi_types.UUID  `json:"id"`
	ProductId      openapi_types.UUID  `json:"productId"`
	OrderId        *openapi_types.UUID `json:"orderId,omitempty"`
	ChangeType     string              `json:"changeType"`
	QuantityChange int                 `json:"quantityChange"`
	QuantityBefore int                 `json:"quantityBefore"`
	QuantityAfter  int                 `json:"quantityAfter"`
	ChangedBy      string              `json:"changedBy"`
	ChangedAt      time.Time           `json:"changedAt"`
	Notes          *string             `json:"notes,omitempty"`
}

type OrderStats struct {
	TotalOrders     int64       `json:"totalOrders"`
	PendingOrders   int64       `json:"pendingOrders"`
	DeliveredOrders int64       `json:"deliveredOrders"`
	TotalRevenue    json.Number `json:"totalRevenue"`
	ProductsCount   int64       `json:"productsCount"`
	TodayOrders     int64       `json:"todayOrders"`
	DateRangeLabel  string      `json:"dateRangeLabel"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status  *string             `form:"status,omitempty" json:"status,omitempty"`
	BuyerId *openapi_types.UUID `form:"buyerId,omitempty" json:"buyerId,omitempty"`
	From    *openapi_types.Date `form:"from,omitempty" json:"from,omitempty"`
	To      *openapi_types.Date `form:"to,omitempty" json:"to,omitempty"`
}

// GetOrderStatsParams defines parameters for GetOrderStats.
type GetOrderStatsParams struct {
	From *openapi_types.Date `form:"from,omitempty" json:"from,omitempty"`
	To   *openapi_types.Date `form:"to,omitempty" json:"to,omitempty"`
}

// ListProductsParams defines parameters for ListProducts.
type ListProductsParams struct {
	Category *string `form:"category,omitempty" json:"category,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	CreateOrder(ctx echo.Context) error
	GetOrderStats(ctx echo.Context, params GetOrderStatsParams) error
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	EditOrder(ctx echo.Context, orderID openapi_types.UUID) error
	GetOrderStatusHistory(ctx echo.Context, orderID openapi_types.UUID) error
	ConfirmOrder(ctx echo.Context, orderID openapi_types.UUID) error
	MarkProcessing(ctx echo.Context, orderID openapi_types.UUID) error
	SetOnTheWay(ctx echo.Context, orderID openapi_types.UUID) error
	UpdateBill(ctx echo.Context, orderID openapi_types.UUID) error
	MarkDelivered(ctx echo.Context, orderID openapi_types.UUID) error
	CancelOrder(ctx echo.Context, orderID openapi_types.UUID) error
	ForceSetStatus(ctx echo.Context, orderID openapi_types.UUID) error

	ListProducts(ctx echo.Context, params ListProductsParams) error
	CreateProduct(ctx echo.Context) error
	GetProduct(ctx echo.Context, productID openapi_types.UUID) error
	UpdateProduct(ctx echo.Context, productID openapi_types.UUID) error
	DeleteProduct(ctx echo.Context, productID openapi_types.UUID) error
	GetLowStockProducts(ctx echo.Context) error
	GetStockHistory(ctx echo.Context, productID openapi_types.UUID) error
	DeductStock(ctx echo.Context, productID openapi_types.UUID) error
	RestoreStock(ctx echo.Context, productID openapi_types.UUID) error
	RestockProduct(ctx echo.Context, productID openapi_types.UUID) error
	AdjustStock(ctx echo.Context, productID openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

type idHandler func(ctx echo.Context, id openapi_types.UUID) error

// pathID binds the uuid path parameter name before calling next.
func pathID(name string, next idHandler) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var id openapi_types.UUID
		err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
		return next(ctx, id)
	}
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "buyerId", ctx.QueryParams(), &params.BuyerId); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter buyerId: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrderStats(ctx echo.Context) error {
	var params GetOrderStatsParams

	if err := runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	return w.Handler.GetOrderStats(ctx, params)
}

func (w *ServerInterfaceWrapper) ListProducts(ctx echo.Context) error {
	var params ListProductsParams

	if err := runtime.BindQueryParameter("form", true, false, "category", ctx.QueryParams(), &params.Category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter category: %s", err))
	}

	return w.Handler.ListProducts(ctx, params)
}

// EchoRouter is the part of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/orders", w.ListOrders)
	router.POST(baseURL+"/orders", si.CreateOrder)
	router.GET(baseURL+"/orders/stats", w.GetOrderStats)
	router.GET(baseURL+"/orders/:orderId", pathID("orderId", si.GetOrder))
	router.PUT(baseURL+"/orders/:orderId", pathID("orderId", si.EditOrder))
	router.GET(baseURL+"/orders/:orderId/history", pathID("orderId", si.GetOrderStatusHistory))
	router.POST(baseURL+"/orders/:orderId/confirm", pathID("orderId", si.ConfirmOrder))
	router.POST(baseURL+"/orders/:orderId/processing", pathID("orderId", si.MarkProcessing))
	router.POST(baseURL+"/orders/:orderId/on-the-way", pathID("orderId", si.SetOnTheWay))
	router.PUT(baseURL+"/orders/:orderId/bill", pathID("orderId", si.UpdateBill))
	router.POST(baseURL+"/orders/:orderId/deliver", pathID("orderId", si.MarkDelivered))
	router.POST(baseURL+"/orders/:orderId/cancel", pathID("orderId", si.CancelOrder))
	router.PUT(baseURL+"/orders/:orderId/status", pathID("orderId", si.ForceSetStatus))

	router.GET(baseURL+"/products", w.ListProducts)
	router.POST(baseURL+"/products", si.CreateProduct)
	router.GET(baseURL+"/products/low-stock", si.GetLowStockProducts)
	router.GET(baseURL+"/products/:productId", pathID("productId", si.GetProduct))
	router.PUT(baseURL+"/products/:productId", pathID("productId", si.UpdateProduct))
	router.DELETE(baseURL+"/products/:productId", pathID("productId", si.DeleteProduct))
	router.GET(baseURL+"/products/:productId/stock-history", pathID("productId", si.GetStockHistory))
	router.POST(baseURL+"/products/:productId/stock/deduct", pathID("productId", si.DeductStock))
	router.POST(baseURL+"/products/:productId/stock/restore", pathID("productId", si.RestoreStock))
	router.POST(baseURL+"/products/:productId/stock/restock", pathID("productId", si.RestockProduct))
	router.POST(baseURL+"/products/:productId/stock/adjust", pathID("productId", si.AdjustStock))
}
