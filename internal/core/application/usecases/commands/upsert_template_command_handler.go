package commands

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
)

// UpsertTemplateCommandHandler creates or updates message templates.
type UpsertTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
}

// NewUpsertTemplateCommandHandler creates a handler for template
// configuration.
func NewUpsertTemplateCommandHandler(uowFactory TemplateUoWFactory) UpsertTemplateCommandHandler {
	return UpsertTemplateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the upsert command and returns the stored template.
func (h UpsertTemplateCommandHandler) Handle(ctx context.Context, cmd UpsertTemplateCommand) (*notification.Template, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	templateRepo := uow.TemplateRepository()

	if cmd.TemplateID() == nil {
		template, err := notification.NewTemplate(kernel.NewUUID(), cmd.Name(), cmd.Kind(), cmd.Body())
		if err != nil {
			return nil, err
		}
		if !cmd.IsActive() {
			if err = template.Update(cmd.Name(), cmd.Kind(), cmd.Body(), false); err != nil {
				return nil, err
			}
		}

		if err = templateRepo.Add(ctx, template); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return template, nil
	}

	template, err := templateRepo.Get(ctx, *cmd.TemplateID())
	if err != nil {
		return nil, err
	}

	if err = template.Update(cmd.Name(), cmd.Kind(), cmd.Body(), cmd.IsActive()); err != nil {
		return nil, err
	}

	if err = templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return template, nil
}
