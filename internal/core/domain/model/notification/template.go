package notification

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate constructor")

// TemplateType classifies a message template. The type also determines the
// retry-queue priority of messages rendered from it.
type TemplateType string

const (
	// TypeStatusChange notifies the customer that their order moved to a
	// new lifecycle status. Highest delivery priority.
	TypeStatusChange TemplateType = "status_change"

	// TypeDeliveryReminder nudges the customer to collect a ready order.
	TypeDeliveryReminder TemplateType = "delivery_reminder"

	// TypePaymentReminder nudges the customer about an open balance.
	TypePaymentReminder TemplateType = "payment_reminder"

	// TypeCustom is an operator-authored ad-hoc message.
	TypeCustom TemplateType = "custom"
)

func templateTypeStrings() map[TemplateType]bool {
	return map[TemplateType]bool{
		TypeStatusChange:     true,
		TypeDeliveryReminder: true,
		TypePaymentReminder:  true,
		TypeCustom:           true,
	}
}

// Validate checks the template type is one of the defined values.
func (t TemplateType) Validate() error {
	if !templateTypeStrings()[t] {
		return errs.NewValueIsInvalidErrorWithCause("template type is invalid",
			fmt.Errorf("%q is not a valid template type", string(t)))
	}
	return nil
}

func (t TemplateType) String() string {
	return string(t)
}

// Priority is the retry-queue ordering class of a message: 1 is drained
// before 2, which is drained before 3.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// PriorityForType derives the queue priority from the message's template
// type: status changes are high, reminders medium, everything else low.
func PriorityForType(t TemplateType) Priority {
	switch t {
	case TypeStatusChange:
		return PriorityHigh
	case TypeDeliveryReminder, TypePaymentReminder:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Validate checks the priority is one of the defined classes.
func (p Priority) Validate() error {
	if p < PriorityHigh || p > PriorityLow {
		return errs.NewValueIsOutOfRangeError("priority", int(p), int(PriorityHigh), int(PriorityLow))
	}
	return nil
}

// Template is a parametrized message body. Placeholders use the
// {{placeholder_name}} form and are substituted from an order snapshot at
// dispatch time.
type Template struct {
	id       kernel.UUID
	name     string
	kind     TemplateType
	body     string
	isActive bool
	guard    guard.ConstructorGuard
}

// NewTemplate creates a validated, active template.
func NewTemplate(id kernel.UUID, name string, kind TemplateType, body string) (*Template, error) {
	if err := errors.Join(id.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("template name")
	}
	if body == "" {
		return nil, errs.NewValueIsRequiredError("template body")
	}

	return &Template{
		id:       id,
		name:     name,
		kind:     kind,
		body:     body,
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreTemplate reconstructs a template from persistence.
func RestoreTemplate(id kernel.UUID, name string, kind TemplateType, body string, isActive bool) (*Template, error) {
	t, err := NewTemplate(id, name, kind, body)
	if err != nil {
		return nil, err
	}
	t.isActive = isActive
	return t, nil
}

// Validate ensures the Template was created through a constructor.
func (t *Template) Validate() error {
	if t == nil {
		return ErrTemplateIsNotConstructed
	}
	return t.guard.Validate(ErrTemplateIsNotConstructed)
}

// ID returns the template's unique identifier.
func (t *Template) ID() kernel.UUID { return t.id }

// Name returns the operator-facing template name.
func (t *Template) Name() string { return t.name }

// Kind returns the template's type.
func (t *Template) Kind() TemplateType { return t.kind }

// Body returns the raw body with placeholders.
func (t *Template) Body() string { return t.body }

// IsActive reports whether the template may be selected for new dispatches.
func (t *Template) IsActive() bool { return t.isActive }

// Update replaces the mutable fields of the template.
func (t *Template) Update(name string, kind TemplateType, body string, isActive bool) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if name == "" {
		return errs.NewValueIsRequiredError("template name")
	}
	if body == "" {
		return errs.NewValueIsRequiredError("template body")
	}

	t.name = name
	t.kind = kind
	t.body = body
	t.isActive = isActive
	return nil
}
