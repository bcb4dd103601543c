// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories its operation touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// NotificationRepoFactory provides access to the notification-record repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// QueueRepoFactory provides access to the retry-queue repository within a transaction.
	QueueRepoFactory interface {
		QueueRepository() ports.QueueRepository
	}

	// SenderRepoFactory provides access to the sender repository within a transaction.
	SenderRepoFactory interface {
		SenderRepository() ports.SenderRepository
	}

	// TemplateRepoFactory provides access to the template repository within a transaction.
	TemplateRepoFactory interface {
		TemplateRepository() ports.TemplateRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BillingUoW manages transactions that touch orders and invoices
	// together: invoice generation and payment application.
	BillingUoW interface {
		TxManager
		OrderRepoFactory
		InvoiceRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}

	// DispatchUoW manages transactions for notification dispatch: reading
	// the order, picking sender and template, writing the record and its
	// queue entry.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		NotificationRepoFactory
		QueueRepoFactory
		SenderRepoFactory
		TemplateRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// RetryUoW manages transactions for draining the retry queue.
	RetryUoW interface {
		TxManager
		NotificationRepoFactory
		QueueRepoFactory
		SenderRepoFactory
	}

	// RetryUoWFactory creates new retry unit of work instances.
	RetryUoWFactory interface {
		Create() RetryUoW
	}

	// ResendUoW manages transactions for re-enqueueing failed notifications.
	ResendUoW interface {
		TxManager
		NotificationRepoFactory
		QueueRepoFactory
	}

	// ResendUoWFactory creates new resend unit of work instances.
	ResendUoWFactory interface {
		Create() ResendUoW
	}

	// SenderUoW manages transactions for sender configuration.
	SenderUoW interface {
		TxManager
		SenderRepoFactory
	}

	// SenderUoWFactory creates new sender unit of work instances.
	SenderUoWFactory interface {
		Create() SenderUoW
	}

	// TemplateUoW manages transactions for template configuration.
	TemplateUoW interface {
		TxManager
		TemplateRepoFactory
	}

	// TemplateUoWFactory creates new template unit of work instances.
	TemplateUoWFactory interface {
		Create() TemplateUoW
	}
)
