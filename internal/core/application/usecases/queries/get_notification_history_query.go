package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrGetNotificationHistoryQueryIsNotConstructed = errors.New(
	"GetNotificationHistoryQuery must be created via NewGetNotificationHistoryQuery constructor",
)

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100
)

// HistoryFilter narrows the notification history. Zero-valued fields are
// ignored.
type HistoryFilter struct {
	// Status filters by delivery status (pending, sent, failed).
	Status string
	// MessageType filters by template type (status_change, ...).
	MessageType string
	// Phone filters by the recipient phone number, exact match.
	Phone string
	// CustomerID filters by the customer the notified order belongs to.
	CustomerID *kernel.UUID
	// From/To bound the record creation time.
	From *time.Time
	To   *time.Time
}

// GetNotificationHistoryQuery retrieves a page of sent, pending and failed
// notifications, newest first.
//
// Example:
//
//	query, err := NewGetNotificationHistoryQuery(1, 20, HistoryFilter{Status: "failed"})
//	if err != nil {
//	    return err
//	}
//	page, err := NewGetNotificationHistoryQueryHandler(db).Handle(ctx, query)
type GetNotificationHistoryQuery struct {
	page     int
	pageSize int
	filter   HistoryFilter

	guard guard.ConstructorGuard
}

// NewGetNotificationHistoryQuery creates a history query. page starts at 1;
// pageSize defaults to 20 and is capped at 100.
func NewGetNotificationHistoryQuery(page, pageSize int, filter HistoryFilter) (GetNotificationHistoryQuery, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultHistoryPageSize
	}
	if pageSize > maxHistoryPageSize {
		pageSize = maxHistoryPageSize
	}

	if filter.Status != "" {
		if err := notification.DeliveryStatus(filter.Status).Validate(); err != nil {
			return GetNotificationHistoryQuery{}, err
		}
	}
	if filter.MessageType != "" {
		if err := notification.TemplateType(filter.MessageType).Validate(); err != nil {
			return GetNotificationHistoryQuery{}, err
		}
	}
	if filter.CustomerID != nil {
		if err := filter.CustomerID.Validate(); err != nil {
			return GetNotificationHistoryQuery{}, err
		}
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return GetNotificationHistoryQuery{}, errs.NewValueIsInvalidError("history date range")
	}

	return GetNotificationHistoryQuery{
		page:     page,
		pageSize: pageSize,
		filter:   filter,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationHistoryQueryIsNotConstructed)
}

// Page returns the requested 1-based page number.
func (q GetNotificationHistoryQuery) Page() int { return q.page }

// PageSize returns the page size.
func (q GetNotificationHistoryQuery) PageSize() int { return q.pageSize }

// Filter returns the requested filter.
func (q GetNotificationHistoryQuery) Filter() HistoryFilter { return q.filter }

// NotificationHistoryItem is one row of the notification history read model.
type NotificationHistoryItem struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	SenderID         kernel.UUID
	TemplateID       *kernel.UUID
	MessageType      string
	Phone            string
	Body             string
	Status           string
	RetryCount       int
	ProviderResponse string
	LastError        string
	SentAt           *time.Time
	CreatedAt        time.Time
}

// GetNotificationHistoryQueryResponse is a page of notification history
// with the unpaged total for the same filter.
type GetNotificationHistoryQueryResponse struct {
	Items    []NotificationHistoryItem
	Total    int64
	Page     int
	PageSize int
}
