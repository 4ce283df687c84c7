package cmd

import (
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/notification"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	dispatcher *notification.Dispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: notification.NewDispatcher(
			notification.NewLogNotifier(logger),
			notification.Config{QueueSize: config.NotificationQueueSize},
			logger,
		),
		logger: logger,
	}
}

// Dispatcher is the event publisher shared by all order command handlers.
func (c *CompositionRoot) Dispatcher() *notification.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCommands() httpin.Commands {
	uow, stock, catalog := c.orderUoWFactory(), c.stockUoWFactory(), c.catalogUoWFactory()
	return httpin.Commands{
		CreateOrder:    commands.NewCreateOrderCommandHandler(uow, c.dispatcher),
		EditOrder:      commands.NewEditOrderCommandHandler(uow, c.dispatcher),
		ConfirmOrder:   commands.NewConfirmOrderCommandHandler(uow, c.dispatcher),
		MarkProcessing: commands.NewMarkProcessingCommandHandler(uow, c.dispatcher),
		SetOnTheWay:    commands.NewSetOnTheWayCommandHandler(uow, c.dispatcher),
		UpdateBill:     commands.NewUpdateBillCommandHandler(uow, c.dispatcher),
		MarkDelivered:  commands.NewMarkDeliveredCommandHandler(uow, c.dispatcher),
		CancelOrder:    commands.NewCancelOrderCommandHandler(uow, c.dispatcher),
		ForceSetStatus: commands.NewForceSetStatusCommandHandler(uow, c.dispatcher),
		CreateProduct:  commands.NewCreateProductCommandHandler(catalog),
		UpdateProduct:  commands.NewUpdateProductCommandHandler(catalog),
		DeleteProduct:  commands.NewDeleteProductCommandHandler(catalog),
		AdjustStock:    commands.NewAdjustStockCommandHandler(stock),
		RestockProduct: commands.NewRestockProductCommandHandler(stock),
		DeductStock:    commands.NewDeductStockCommandHandler(stock),
		RestoreStock:   commands.NewRestoreStockCommandHandler(stock),
	}
}

func (c *CompositionRoot) CreateQueries() httpin.Queries {
	return httpin.Queries{
		ListOrders:            queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrder:              queries.NewGetOrderQueryHandler(c.gormDB),
		GetOrderStatusHistory: queries.NewGetOrderStatusHistoryQueryHandler(c.gormDB),
		GetOrderStats:         queries.NewGetOrderStatsQueryHandler(c.gormDB),
		GetStockHistory:       queries.NewGetStockHistoryQueryHandler(c.gormDB),
		GetLowStockProducts:   queries.NewGetLowStockProductsQueryHandler(c.gormDB),
		GetProduct:            queries.NewGetProductQueryHandler(c.gormDB),
		ListProducts:          queries.NewListProductsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.CreateCommands(), c.CreateQueries(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		queries.NewGetLowStockProductsQueryHandler(c.gormDB),
		jobs.Config{LowStockReportSchedule: c.config.LowStockReportSchedule},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}
