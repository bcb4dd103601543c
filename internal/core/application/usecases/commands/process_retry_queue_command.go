package commands

import (
	"errors"

	"laundry/internal/pkg/guard"
)

var ErrProcessRetryQueueCommandIsNotConstructed = errors.New(
	"ProcessRetryQueueCommand must be created via NewProcessRetryQueueCommand constructor",
)

// ProcessRetryQueueCommand represents a request to drain the due entries of
// the notification retry queue.
type ProcessRetryQueueCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessRetryQueueCommand creates a command to drain the retry queue.
func NewProcessRetryQueueCommand() ProcessRetryQueueCommand {
	return ProcessRetryQueueCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ProcessRetryQueueCommand) Validate() error {
	return c.guard.Validate(ErrProcessRetryQueueCommandIsNotConstructed)
}
