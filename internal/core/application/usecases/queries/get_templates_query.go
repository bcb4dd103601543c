package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetTemplatesQueryIsNotConstructed = errors.New(
	"GetTemplatesQuery must be created via NewGetTemplatesQuery constructor",
)

// GetTemplatesQuery retrieves all message templates, active and inactive.
//
// Example:
//
//	query := NewGetTemplatesQuery()
//	templates, err := NewGetTemplatesQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get templates: %w", err)
//	}
type GetTemplatesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetTemplatesQuery creates a query to retrieve all templates.
func NewGetTemplatesQuery() GetTemplatesQuery {
	return GetTemplatesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTemplatesQuery) Validate() error {
	return q.guard.Validate(ErrGetTemplatesQueryIsNotConstructed)
}

// GetTemplatesQueryResponse represents one message template.
type GetTemplatesQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Kind     string
	Body     string
	IsActive bool
}
