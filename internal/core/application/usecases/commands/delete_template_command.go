package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrDeleteTemplateCommandIsNotConstructed = errors.New(
	"DeleteTemplateCommand must be created via NewDeleteTemplateCommand constructor",
)

// DeleteTemplateCommand represents a request to remove a message template.
// Notification records keep their rendered body, so deleting a template
// never breaks history or retries.
type DeleteTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteTemplateCommand creates a command to delete the given template.
func NewDeleteTemplateCommand(templateID kernel.UUID) (DeleteTemplateCommand, error) {
	if err := templateID.Validate(); err != nil {
		return DeleteTemplateCommand{}, err
	}

	return DeleteTemplateCommand{
		templateID: templateID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteTemplateCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTemplateCommandIsNotConstructed)
}

// TemplateID returns the template to delete.
func (c DeleteTemplateCommand) TemplateID() kernel.UUID {
	return c.templateID
}
