package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetSendersQueryIsNotConstructed = errors.New(
	"GetSendersQuery must be created via NewGetSendersQuery constructor",
)

// GetSendersQuery retrieves all configured senders. Credentials never leave
// the write side; the read model carries configuration flags only.
type GetSendersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSendersQuery creates a query to retrieve all senders.
func NewGetSendersQuery() GetSendersQuery {
	return GetSendersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetSendersQuery) Validate() error {
	return q.guard.Validate(ErrGetSendersQueryIsNotConstructed)
}

// GetSendersQueryResponse represents one configured sender.
type GetSendersQueryResponse struct {
	ID        kernel.UUID
	Name      string
	Kind      string
	IsDefault bool
	IsActive  bool
}
