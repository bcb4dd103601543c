package notification

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrSenderIsNotConstructed = errors.New("Sender must be created via NewSender constructor")

// Sender is a configured identity and credential bundle used to originate
// outgoing customer messages through one messaging provider.
//
// At most one sender may be the default at any time; the repository clears
// other defaults in the same transaction that sets a new one.
type Sender struct {
	id          kernel.UUID
	name        string
	kind        ProviderKind
	credentials Credentials
	isDefault   bool
	isActive    bool
	guard       guard.ConstructorGuard
}

// NewSender creates a validated sender. The credential bundle must carry
// every key the provider kind requires.
func NewSender(
	id kernel.UUID,
	name string,
	kind ProviderKind,
	credentials Credentials,
	isDefault bool,
) (*Sender, error) {
	if err := errors.Join(
		id.Validate(),
		kind.Validate(),
		kind.ValidateCredentials(credentials),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("sender name")
	}

	creds := make(Credentials, len(credentials))
	for k, v := range credentials {
		creds[k] = v
	}

	return &Sender{
		id:          id,
		name:        name,
		kind:        kind,
		credentials: creds,
		isDefault:   isDefault,
		isActive:    true,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreSender reconstructs a sender from persistence.
func RestoreSender(
	id kernel.UUID,
	name string,
	kind ProviderKind,
	credentials Credentials,
	isDefault bool,
	isActive bool,
) (*Sender, error) {
	s, err := NewSender(id, name, kind, credentials, isDefault)
	if err != nil {
		return nil, err
	}
	s.isActive = isActive
	return s, nil
}

// Validate ensures the Sender was created through a constructor.
func (s *Sender) Validate() error {
	if s == nil {
		return ErrSenderIsNotConstructed
	}
	return s.guard.Validate(ErrSenderIsNotConstructed)
}

// ID returns the sender's unique identifier.
func (s *Sender) ID() kernel.UUID { return s.id }

// Name returns the operator-facing sender name.
func (s *Sender) Name() string { return s.name }

// Kind returns the provider kind this sender speaks to.
func (s *Sender) Kind() ProviderKind { return s.kind }

// Credentials returns a copy of the opaque credential bundle.
func (s *Sender) Credentials() Credentials {
	creds := make(Credentials, len(s.credentials))
	for k, v := range s.credentials {
		creds[k] = v
	}
	return creds
}

// IsDefault reports whether this sender is the fallback for dispatches that
// name no explicit sender.
func (s *Sender) IsDefault() bool { return s.isDefault }

// IsActive reports whether the sender may be used for new sends.
func (s *Sender) IsActive() bool { return s.isActive }

// MakeDefault marks the sender as the default. The exclusivity invariant is
// enforced by the repository write, not here.
func (s *Sender) MakeDefault() { s.isDefault = true }

// ClearDefault removes the default flag.
func (s *Sender) ClearDefault() { s.isDefault = false }

// Deactivate takes the sender out of rotation without deleting it.
func (s *Sender) Deactivate() {
	s.isActive = false
	s.isDefault = false
}
