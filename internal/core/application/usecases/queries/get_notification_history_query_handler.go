package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationHistoryQueryHandler reads notification history with direct
// SQL, bypassing the aggregates for read performance.
//
// Example:
//
//	handler := NewGetNotificationHistoryQueryHandler(db)
//	query, _ := NewGetNotificationHistoryQuery(1, 20, HistoryFilter{})
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d of %d notifications\n", len(page.Items), page.Total)
type GetNotificationHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationHistoryQueryHandler creates a handler for notification
// history queries.
func NewGetNotificationHistoryQueryHandler(db *gorm.DB) GetNotificationHistoryQueryHandler {
	return GetNotificationHistoryQueryHandler{db: db}
}

// Handle executes the history query. Results are newest first; Total counts
// all rows matching the filter regardless of paging.
func (h GetNotificationHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationHistoryQuery,
) (GetNotificationHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNotificationHistoryQueryResponse{}, err
	}

	where, args := historyWhereClause(query.Filter())

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM notifications"+where, args...).
		Scan(&total).Error
	if err != nil {
		return GetNotificationHistoryQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.PageSize()
	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			id,
			order_id,
			sender_id,
			template_id,
			message_type,
			phone,
			body,
			delivery_status,
			retry_count,
			provider_response,
			last_error,
			sent_at,
			created_at
		FROM notifications%s
		ORDER BY created_at DESC
		LIMIT %d OFFSET %d
	`, where, query.PageSize(), offset), args...).Rows()
	if err != nil {
		return GetNotificationHistoryQueryResponse{}, err
	}
	defer rows.Close()

	items := make([]NotificationHistoryItem, 0, query.PageSize())
	for rows.Next() {
		var item NotificationHistoryItem
		var id, orderID, senderID uuid.UUID
		var templateID *uuid.UUID
		var sentAt *time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&senderID,
			&templateID,
			&item.MessageType,
			&item.Phone,
			&item.Body,
			&item.Status,
			&item.RetryCount,
			&item.ProviderResponse,
			&item.LastError,
			&sentAt,
			&item.CreatedAt,
		)
		if err != nil {
			return GetNotificationHistoryQueryResponse{}, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetNotificationHistoryQueryResponse{}, err
		}
		if item.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return GetNotificationHistoryQueryResponse{}, err
		}
		if item.SenderID, err = kernel.UUIDFromBytes(senderID[:]); err != nil {
			return GetNotificationHistoryQueryResponse{}, err
		}
		if templateID != nil {
			tid, tidErr := kernel.UUIDFromBytes(templateID[:])
			if tidErr != nil {
				return GetNotificationHistoryQueryResponse{}, tidErr
			}
			item.TemplateID = &tid
		}
		item.SentAt = sentAt
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return GetNotificationHistoryQueryResponse{}, err
	}

	return GetNotificationHistoryQueryResponse{
		Items:    items,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}

// historyWhereClause renders the filter into a WHERE clause with positional
// arguments, or an empty string when nothing is filtered.
func historyWhereClause(filter HistoryFilter) (string, []any) {
	conditions := make([]string, 0, 6)
	args := make([]any, 0, 6)

	if filter.Status != "" {
		conditions = append(conditions, "delivery_status = ?")
		args = append(args, filter.Status)
	}
	if filter.MessageType != "" {
		conditions = append(conditions, "message_type = ?")
		args = append(args, filter.MessageType)
	}
	if filter.Phone != "" {
		conditions = append(conditions, "phone = ?")
		args = append(args, filter.Phone)
	}
	if filter.CustomerID != nil {
		conditions = append(conditions, "order_id IN (SELECT id FROM orders WHERE customer_id = ?)")
		args = append(args, filter.CustomerID.Bytes())
	}
	if filter.From != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *filter.To)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
