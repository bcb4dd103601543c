package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSendersQueryHandler retrieves all senders from the database. The
// credentials column is deliberately not selected.
type GetSendersQueryHandler struct {
	db *gorm.DB
}

// NewGetSendersQueryHandler creates a handler for sender listing queries.
func NewGetSendersQueryHandler(db *gorm.DB) GetSendersQueryHandler {
	return GetSendersQueryHandler{db: db}
}

// Handle executes the query to retrieve all senders, default first, then by
// name.
func (h GetSendersQueryHandler) Handle(
	ctx context.Context,
	query GetSendersQuery,
) ([]GetSendersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	senders := make([]GetSendersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			kind,
			is_default,
			is_active
		FROM senders
		ORDER BY is_default DESC, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sender GetSendersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&sender.Name,
			&sender.Kind,
			&sender.IsDefault,
			&sender.IsActive,
		)
		if err != nil {
			return nil, err
		}

		senderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		sender.ID = senderID
		senders = append(senders, sender)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return senders, nil
}
