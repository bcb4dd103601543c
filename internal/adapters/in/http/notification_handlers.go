package http

import (
	"net/http"
	"strconv"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"

	"github.com/labstack/echo/v4"
)

// GetNotificationHistory handles GET /api/v1/notifications/history.
// Supports page/pageSize and status/type/phone/customer/from/to filters;
// from and to are RFC 3339 timestamps, customer is a customer UUID.
func (s *Server) GetNotificationHistory(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))

	filter := queries.HistoryFilter{
		Status:      ctx.QueryParam("status"),
		MessageType: ctx.QueryParam("type"),
		Phone:       ctx.QueryParam("phone"),
	}
	if raw := ctx.QueryParam("customer"); raw != "" {
		customerID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid customer id: " + err.Error(),
			})
		}
		filter.CustomerID = &customerID
	}
	if raw := ctx.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid from timestamp: " + err.Error(),
			})
		}
		filter.From = &from
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid to timestamp: " + err.Error(),
			})
		}
		filter.To = &to
	}

	query, err := queries.NewGetNotificationHistoryQuery(page, pageSize, filter)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]NotificationResponse, 0, len(result.Items))
	for _, item := range result.Items {
		resp := NotificationResponse{
			ID:               item.ID.String(),
			OrderID:          item.OrderID.String(),
			SenderID:         item.SenderID.String(),
			MessageType:      item.MessageType,
			Phone:            item.Phone,
			Body:             item.Body,
			Status:           item.Status,
			RetryCount:       item.RetryCount,
			ProviderResponse: item.ProviderResponse,
			LastError:        item.LastError,
			SentAt:           item.SentAt,
			CreatedAt:        item.CreatedAt,
		}
		if item.TemplateID != nil {
			id := item.TemplateID.String()
			resp.TemplateID = &id
		}
		items = append(items, resp)
	}

	return ctx.JSON(http.StatusOK, NotificationHistoryResponse{
		Items:    items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

// ResendNotification handles POST /api/v1/notifications/resend/:id -
// re-enqueues a permanently failed notification at high priority.
func (s *Server) ResendNotification(ctx echo.Context) error {
	notificationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid notification id: " + err.Error(),
		})
	}

	cmd, err := commands.NewResendNotificationCommand(notificationID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.resendHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// TestSenderConnection handles POST /api/v1/notifications/test-connection -
// sends a probe message through the sender's provider and waits for the
// answer.
func (s *Server) TestSenderConnection(ctx echo.Context) error {
	var req TestConnectionRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	senderID, err := kernel.UUIDFromString(req.SenderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid sender id: " + err.Error(),
		})
	}

	cmd, err := commands.NewTestSenderConnectionCommand(senderID, req.Phone)
	if err != nil {
		return writeError(ctx, err)
	}

	externalID, err := s.testSenderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TestConnectionResponse{ExternalID: externalID})
}

// GetSenders handles GET /api/v1/notifications/senders.
func (s *Server) GetSenders(ctx echo.Context) error {
	senders, err := s.getSendersHandler.Handle(ctx.Request().Context(), queries.NewGetSendersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]SenderResponse, 0, len(senders))
	for _, sender := range senders {
		response = append(response, SenderResponse{
			ID:        sender.ID.String(),
			Name:      sender.Name,
			Kind:      sender.Kind,
			IsDefault: sender.IsDefault,
			IsActive:  sender.IsActive,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateSender handles POST /api/v1/notifications/senders.
func (s *Server) CreateSender(ctx echo.Context) error {
	return s.upsertSender(ctx, nil)
}

// UpdateSender handles PUT /api/v1/notifications/senders/:id.
func (s *Server) UpdateSender(ctx echo.Context) error {
	senderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid sender id: " + err.Error(),
		})
	}
	return s.upsertSender(ctx, &senderID)
}

func (s *Server) upsertSender(ctx echo.Context, senderID *kernel.UUID) error {
	var req SenderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	cmd, err := commands.NewUpsertSenderCommand(
		senderID,
		req.Name,
		notification.ProviderKind(req.Kind),
		notification.Credentials(req.Credentials),
		req.IsDefault,
		req.IsActive,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	sender, err := s.upsertSenderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	code := http.StatusOK
	if senderID == nil {
		code = http.StatusCreated
	}
	return ctx.JSON(code, SenderResponse{
		ID:        sender.ID().String(),
		Name:      sender.Name(),
		Kind:      string(sender.Kind()),
		IsDefault: sender.IsDefault(),
		IsActive:  sender.IsActive(),
	})
}

// GetTemplates handles GET /api/v1/notifications/templates.
func (s *Server) GetTemplates(ctx echo.Context) error {
	templates, err := s.getTemplatesHandler.Handle(ctx.Request().Context(), queries.NewGetTemplatesQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]TemplateResponse, 0, len(templates))
	for _, template := range templates {
		response = append(response, TemplateResponse{
			ID:       template.ID.String(),
			Name:     template.Name,
			Kind:     template.Kind,
			Body:     template.Body,
			IsActive: template.IsActive,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateTemplate handles POST /api/v1/notifications/templates.
func (s *Server) CreateTemplate(ctx echo.Context) error {
	return s.upsertTemplate(ctx, nil)
}

// UpdateTemplate handles PUT /api/v1/notifications/templates/:id.
func (s *Server) UpdateTemplate(ctx echo.Context) error {
	templateID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid template id: " + err.Error(),
		})
	}
	return s.upsertTemplate(ctx, &templateID)
}

func (s *Server) upsertTemplate(ctx echo.Context, templateID *kernel.UUID) error {
	var req TemplateRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	cmd, err := commands.NewUpsertTemplateCommand(
		templateID,
		req.Name,
		notification.TemplateType(req.Kind),
		req.Body,
		req.IsActive,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	template, err := s.upsertTemplateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	code := http.StatusOK
	if templateID == nil {
		code = http.StatusCreated
	}
	return ctx.JSON(code, TemplateResponse{
		ID:       template.ID().String(),
		Name:     template.Name(),
		Kind:     string(template.Kind()),
		Body:     template.Body(),
		IsActive: template.IsActive(),
	})
}

// DeleteTemplate handles DELETE /api/v1/notifications/templates/:id.
func (s *Server) DeleteTemplate(ctx echo.Context) error {
	templateID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid template id: " + err.Error(),
		})
	}

	cmd, err := commands.NewDeleteTemplateCommand(templateID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteTemplateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
