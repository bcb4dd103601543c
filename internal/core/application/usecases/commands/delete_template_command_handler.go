package commands

import (
	"context"
)

// DeleteTemplateCommandHandler removes message templates.
type DeleteTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
}

// NewDeleteTemplateCommandHandler creates a handler for template deletion.
func NewDeleteTemplateCommandHandler(uowFactory TemplateUoWFactory) DeleteTemplateCommandHandler {
	return DeleteTemplateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delete command.
func (h DeleteTemplateCommandHandler) Handle(ctx context.Context, cmd DeleteTemplateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TemplateRepository().Delete(ctx, cmd.TemplateID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
