// Package http exposes the dashboard's REST surface on echo. Handlers bind
// JSON, construct commands or queries, and map domain errors to status
// codes; all business rules live behind the use-case handlers.
package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	recordPaymentHandler     commands.RecordPaymentCommandHandler
	upsertSenderHandler      commands.UpsertSenderCommandHandler
	testSenderHandler        commands.TestSenderConnectionCommandHandler
	upsertTemplateHandler    commands.UpsertTemplateCommandHandler
	deleteTemplateHandler    commands.DeleteTemplateCommandHandler
	resendHandler            commands.ResendNotificationCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	getHistoryHandler   queries.GetNotificationHistoryQueryHandler
	getSendersHandler   queries.GetSendersQueryHandler
	getTemplatesHandler queries.GetTemplatesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	upsertSenderHandler commands.UpsertSenderCommandHandler,
	testSenderHandler commands.TestSenderConnectionCommandHandler,
	upsertTemplateHandler commands.UpsertTemplateCommandHandler,
	deleteTemplateHandler commands.DeleteTemplateCommandHandler,
	resendHandler commands.ResendNotificationCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getHistoryHandler queries.GetNotificationHistoryQueryHandler,
	getSendersHandler queries.GetSendersQueryHandler,
	getTemplatesHandler queries.GetTemplatesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		recordPaymentHandler:     recordPaymentHandler,
		upsertSenderHandler:      upsertSenderHandler,
		testSenderHandler:        testSenderHandler,
		upsertTemplateHandler:    upsertTemplateHandler,
		deleteTemplateHandler:    deleteTemplateHandler,
		resendHandler:            resendHandler,
		getOrderHandler:          getOrderHandler,
		getHistoryHandler:        getHistoryHandler,
		getSendersHandler:        getSendersHandler,
		getTemplatesHandler:      getTemplatesHandler,
	}
}

// RegisterRoutes attaches all dashboard routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/payments", s.RecordPayment)

	api.GET("/notifications/history", s.GetNotificationHistory)
	api.POST("/notifications/resend/:id", s.ResendNotification)
	api.POST("/notifications/test-connection", s.TestSenderConnection)

	api.GET("/notifications/senders", s.GetSenders)
	api.POST("/notifications/senders", s.CreateSender)
	api.PUT("/notifications/senders/:id", s.UpdateSender)

	api.GET("/notifications/templates", s.GetTemplates)
	api.POST("/notifications/templates", s.CreateTemplate)
	api.PUT("/notifications/templates/:id", s.UpdateTemplate)
	api.DELETE("/notifications/templates/:id", s.DeleteTemplate)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
