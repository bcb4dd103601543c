package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrUpsertTemplateCommandIsNotConstructed = errors.New(
	"UpsertTemplateCommand must be created via NewUpsertTemplateCommand constructor",
)

// UpsertTemplateCommand represents a request to create or update a message
// template.
type UpsertTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID *kernel.UUID
	name       string
	kind       notification.TemplateType
	body       string
	isActive   bool

	guard guard.ConstructorGuard
}

// NewUpsertTemplateCommand creates a command to upsert a template. A nil
// templateID creates a new template.
func NewUpsertTemplateCommand(
	templateID *kernel.UUID,
	name string,
	kind notification.TemplateType,
	body string,
	isActive bool,
) (UpsertTemplateCommand, error) {
	if err := kind.Validate(); err != nil {
		return UpsertTemplateCommand{}, err
	}
	if templateID != nil {
		if err := templateID.Validate(); err != nil {
			return UpsertTemplateCommand{}, err
		}
	}
	if name == "" {
		return UpsertTemplateCommand{}, errs.NewValueIsRequiredError("template name")
	}
	if body == "" {
		return UpsertTemplateCommand{}, errs.NewValueIsRequiredError("template body")
	}

	return UpsertTemplateCommand{
		templateID: templateID,
		name:       name,
		kind:       kind,
		body:       body,
		isActive:   isActive,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertTemplateCommand) Validate() error {
	return c.guard.Validate(ErrUpsertTemplateCommandIsNotConstructed)
}

// TemplateID returns the template to update, or nil to create one.
func (c UpsertTemplateCommand) TemplateID() *kernel.UUID {
	return c.templateID
}

// Name returns the template display name.
func (c UpsertTemplateCommand) Name() string {
	return c.name
}

// Kind returns the template type.
func (c UpsertTemplateCommand) Kind() notification.TemplateType {
	return c.kind
}

// Body returns the template body with its placeholders.
func (c UpsertTemplateCommand) Body() string {
	return c.body
}

// IsActive reports whether the template participates in dispatch.
func (c UpsertTemplateCommand) IsActive() bool {
	return c.isActive
}
