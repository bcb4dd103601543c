package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrUpsertSenderCommandIsNotConstructed = errors.New(
	"UpsertSenderCommand must be created via NewUpsertSenderCommand constructor",
)

// UpsertSenderCommand represents a request to create or reconfigure a
// messaging sender: its provider kind, credential bundle and flags.
type UpsertSenderCommand struct { //nolint:recvcheck //using for validation
	senderID    *kernel.UUID
	name        string
	kind        notification.ProviderKind
	credentials notification.Credentials
	isDefault   bool
	isActive    bool

	guard guard.ConstructorGuard
}

// NewUpsertSenderCommand creates a command to upsert a sender. A nil
// senderID creates a new sender; otherwise the named sender is replaced.
// Credentials are validated against the provider kind's required keys.
func NewUpsertSenderCommand(
	senderID *kernel.UUID,
	name string,
	kind notification.ProviderKind,
	credentials notification.Credentials,
	isDefault bool,
	isActive bool,
) (UpsertSenderCommand, error) {
	if err := errors.Join(
		kind.Validate(),
		kind.ValidateCredentials(credentials),
	); err != nil {
		return UpsertSenderCommand{}, err
	}
	if senderID != nil {
		if err := senderID.Validate(); err != nil {
			return UpsertSenderCommand{}, err
		}
	}
	if name == "" {
		return UpsertSenderCommand{}, errs.NewValueIsRequiredError("sender name")
	}

	creds := make(notification.Credentials, len(credentials))
	for k, v := range credentials {
		creds[k] = v
	}

	return UpsertSenderCommand{
		senderID:    senderID,
		name:        name,
		kind:        kind,
		credentials: creds,
		isDefault:   isDefault,
		isActive:    isActive,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertSenderCommand) Validate() error {
	return c.guard.Validate(ErrUpsertSenderCommandIsNotConstructed)
}

// SenderID returns the sender to replace, or nil to create one.
func (c UpsertSenderCommand) SenderID() *kernel.UUID {
	return c.senderID
}

// Name returns the sender display name.
func (c UpsertSenderCommand) Name() string {
	return c.name
}

// Kind returns the provider kind.
func (c UpsertSenderCommand) Kind() notification.ProviderKind {
	return c.kind
}

// Credentials returns a copy of the credential bundle.
func (c UpsertSenderCommand) Credentials() notification.Credentials {
	creds := make(notification.Credentials, len(c.credentials))
	for k, v := range c.credentials {
		creds[k] = v
	}
	return creds
}

// IsDefault reports whether the sender should become the default.
func (c UpsertSenderCommand) IsDefault() bool {
	return c.isDefault
}

// IsActive reports whether the sender is usable for dispatch.
func (c UpsertSenderCommand) IsActive() bool {
	return c.isActive
}
