package http

import "time"

// Error is the uniform error payload returned by every handler.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one service line of an order intake request.
type OrderItemRequest struct {
	ServiceType string `json:"serviceType"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	CustomerID    string             `json:"customerId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	Items         []OrderItemRequest `json:"items"`
}

// ChangeOrderStatusRequest is the PUT /orders/:id/status payload. OldStatus,
// when set, rejects the transition if the order has moved on in the
// meantime. SenderId optionally overrides the default notification sender.
type ChangeOrderStatusRequest struct {
	Status    string  `json:"status"`
	OldStatus *string `json:"oldStatus,omitempty"`
	SenderID  *string `json:"senderId,omitempty"`
}

// RecordPaymentRequest is the POST /orders/:id/payments payload.
type RecordPaymentRequest struct {
	Amount string `json:"amount"`
	Method string `json:"method"`
}

// OrderItemResponse is one service line of an order read model.
type OrderItemResponse struct {
	ServiceType string `json:"serviceType"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

// OrderResponse is the order read model returned by GET /orders/:id and
// PUT /orders/:id/status.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customerId"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	TotalAmount   string              `json:"totalAmount"`
	PaidAmount    string              `json:"paidAmount"`
	Balance       string              `json:"balance"`
	Status        string              `json:"status"`
	Version       int                 `json:"version"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// SenderRequest is the sender create/update payload. Credentials is the
// provider-specific key bundle (access_token, account_sid, ...).
type SenderRequest struct {
	Name        string            `json:"name"`
	Kind        string            `json:"kind"`
	Credentials map[string]string `json:"credentials"`
	IsDefault   bool              `json:"isDefault"`
	IsActive    bool              `json:"isActive"`
}

// SenderResponse is the sender read model. Credentials are write-only and
// never returned.
type SenderResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	IsDefault bool   `json:"isDefault"`
	IsActive  bool   `json:"isActive"`
}

// TestConnectionRequest is the POST /notifications/test-connection payload.
type TestConnectionRequest struct {
	SenderID string `json:"senderId"`
	Phone    string `json:"phone"`
}

// TestConnectionResponse reports the provider's synchronous answer.
type TestConnectionResponse struct {
	ExternalID string `json:"externalId"`
}

// TemplateRequest is the template create/update payload.
type TemplateRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Body     string `json:"body"`
	IsActive bool   `json:"isActive"`
}

// TemplateResponse is the template read model.
type TemplateResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Body     string `json:"body"`
	IsActive bool   `json:"isActive"`
}

// NotificationResponse is one row of the notification history.
type NotificationResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"orderId"`
	SenderID         string     `json:"senderId"`
	TemplateID       *string    `json:"templateId,omitempty"`
	MessageType      string     `json:"messageType"`
	Phone            string     `json:"phone"`
	Body             string     `json:"body"`
	Status           string     `json:"status"`
	RetryCount       int        `json:"retryCount"`
	ProviderResponse string     `json:"providerResponse,omitempty"`
	LastError        string     `json:"lastError,omitempty"`
	SentAt           *time.Time `json:"sentAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// NotificationHistoryResponse is a page of notification history.
type NotificationHistoryResponse struct {
	Items    []NotificationResponse `json:"items"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
}
