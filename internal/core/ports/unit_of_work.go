package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// InvoiceRepository returns an InvoiceRepository bound to the current
	// transaction.
	InvoiceRepository() InvoiceRepository

	// NotificationRepository returns a NotificationRepository bound to
	// the current transaction.
	NotificationRepository() NotificationRepository

	// QueueRepository returns a QueueRepository bound to the current
	// transaction.
	QueueRepository() QueueRepository

	// SenderRepository returns a SenderRepository bound to the current
	// transaction.
	SenderRepository() SenderRepository

	// TemplateRepository returns a TemplateRepository bound to the
	// current transaction.
	TemplateRepository() TemplateRepository
}
