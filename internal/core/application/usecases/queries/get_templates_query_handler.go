package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTemplatesQueryHandler retrieves all message templates from the
// database.
type GetTemplatesQueryHandler struct {
	db *gorm.DB
}

// NewGetTemplatesQueryHandler creates a handler for template listing
// queries.
func NewGetTemplatesQueryHandler(db *gorm.DB) GetTemplatesQueryHandler {
	return GetTemplatesQueryHandler{db: db}
}

// Handle executes the query to retrieve all templates, sorted by type then
// name.
func (h GetTemplatesQueryHandler) Handle(
	ctx context.Context,
	query GetTemplatesQuery,
) ([]GetTemplatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	templates := make([]GetTemplatesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			kind,
			body,
			is_active
		FROM message_templates
		ORDER BY kind, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var template GetTemplatesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&template.Name,
			&template.Kind,
			&template.Body,
			&template.IsActive,
		)
		if err != nil {
			return nil, err
		}

		templateID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		template.ID = templateID
		templates = append(templates, template)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}
