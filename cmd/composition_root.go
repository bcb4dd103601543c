package cmd

import (
	"log/slog"

	"laundry/internal/adapters/out/messaging"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use-case handlers. Handlers are cheap
// value types; each accessor builds a fresh one over the shared factories.
type CompositionRoot struct {
	config          Config
	gormDB          *gorm.DB
	uowFactory      postgres.GormUnitOfWorkFactory
	providerFactory *messaging.HTTPProviderFactory
	renderer        *services.TemplateRenderer
	logger          *slog.Logger
}

// NewCompositionRoot builds the application's object graph from its
// configuration and shared connections.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		providerFactory: messaging.NewHTTPProviderFactory(messaging.Config{
			Timeout: config.ProviderTimeout,
		}),
		renderer: services.NewTemplateRenderer(),
		logger:   logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(
		f,
		c.CreateGenerateInvoiceCommandHandler(),
		c.CreateDispatchNotificationCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() commands.GenerateInvoiceCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateInvoiceCommandHandler(f, c.config.TaxRate)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchNotificationCommandHandler() commands.DispatchNotificationCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationCommandHandler(f, c.providerFactory, c.renderer, c.config.RetryBaseDelay)
}

func (c *CompositionRoot) CreateProcessRetryQueueCommandHandler() commands.ProcessRetryQueueCommandHandler {
	var f commands.RetryUoWFactory = FuncRetryUoWFactory(func() commands.RetryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessRetryQueueCommandHandler(f, c.providerFactory, c.config.RetryBaseDelay, c.logger)
}

func (c *CompositionRoot) CreateResendNotificationCommandHandler() commands.ResendNotificationCommandHandler {
	var f commands.ResendUoWFactory = FuncResendUoWFactory(func() commands.ResendUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResendNotificationCommandHandler(f)
}

func (c *CompositionRoot) CreateUpsertSenderCommandHandler() commands.UpsertSenderCommandHandler {
	var f commands.SenderUoWFactory = FuncSenderUoWFactory(func() commands.SenderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpsertSenderCommandHandler(f)
}

func (c *CompositionRoot) CreateTestSenderConnectionCommandHandler() commands.TestSenderConnectionCommandHandler {
	var f commands.SenderUoWFactory = FuncSenderUoWFactory(func() commands.SenderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTestSenderConnectionCommandHandler(f, c.providerFactory)
}

func (c *CompositionRoot) CreateUpsertTemplateCommandHandler() commands.UpsertTemplateCommandHandler {
	var f commands.TemplateUoWFactory = FuncTemplateUoWFactory(func() commands.TemplateUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpsertTemplateCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteTemplateCommandHandler() commands.DeleteTemplateCommandHandler {
	var f commands.TemplateUoWFactory = FuncTemplateUoWFactory(func() commands.TemplateUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteTemplateCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationHistoryQueryHandler() queries.GetNotificationHistoryQueryHandler {
	return queries.NewGetNotificationHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSendersQueryHandler() queries.GetSendersQueryHandler {
	return queries.NewGetSendersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTemplatesQueryHandler() queries.GetTemplatesQueryHandler {
	return queries.NewGetTemplatesQueryHandler(c.gormDB)
}

// ProviderFactory exposes the shared messaging factory for callers outside
// the command handlers.
func (c *CompositionRoot) ProviderFactory() ports.ProviderFactory {
	return c.providerFactory
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncRetryUoWFactory func() commands.RetryUoW

func (f FuncRetryUoWFactory) Create() commands.RetryUoW {
	return f()
}

type FuncResendUoWFactory func() commands.ResendUoW

func (f FuncResendUoWFactory) Create() commands.ResendUoW {
	return f()
}

type FuncSenderUoWFactory func() commands.SenderUoW

func (f FuncSenderUoWFactory) Create() commands.SenderUoW {
	return f()
}

type FuncTemplateUoWFactory func() commands.TemplateUoW

func (f FuncTemplateUoWFactory) Create() commands.TemplateUoW {
	return f()
}
