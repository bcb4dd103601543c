package notification

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

	// ErrRetriesExhausted is returned when a retry is recorded past maxRetries.
	ErrRetriesExhausted = errors.New("notification retries exhausted")
)

// DefaultMaxRetries is the retry budget for a dispatch attempt-group unless
// configured otherwise.
const DefaultMaxRetries = 3

// DeliveryStatus is the lifecycle state of a notification record.
type DeliveryStatus string

const (
	// DeliveryPending means the message is queued and awaiting (re)delivery.
	DeliveryPending DeliveryStatus = "pending"

	// DeliverySent means the provider accepted the message.
	DeliverySent DeliveryStatus = "sent"

	// DeliveryFailed means the last attempt failed; terminal once retries
	// are exhausted or the failure is permanent.
	DeliveryFailed DeliveryStatus = "failed"
)

// Validate checks the delivery status is one of the defined values.
func (s DeliveryStatus) Validate() error {
	switch s {
	case DeliveryPending, DeliverySent, DeliveryFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid",
			fmt.Errorf("%q is not a valid delivery status", string(s)))
	}
}

func (s DeliveryStatus) String() string {
	return string(s)
}

// Record logs one dispatch attempt-group for a customer message: the chosen
// sender and template, the rendered body, and the delivery outcome. It is
// created once per dispatch and updated in place as retries proceed.
type Record struct {
	id               kernel.UUID
	orderID          kernel.UUID
	senderID         kernel.UUID
	templateID       *kernel.UUID
	messageType      TemplateType
	phone            string
	body             string
	status           DeliveryStatus
	retryCount       int
	maxRetries       int
	providerResponse string
	lastError        string
	sentAt           *time.Time
	createdAt        time.Time
	guard            guard.ConstructorGuard
}

// NewRecord creates a pending record for a freshly rendered message.
// templateID is nil when the built-in fallback body was used.
func NewRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	senderID kernel.UUID,
	templateID *kernel.UUID,
	messageType TemplateType,
	phone string,
	body string,
	maxRetries int,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		senderID.Validate(),
		messageType.Validate(),
	); err != nil {
		return nil, err
	}
	if templateID != nil {
		if err := templateID.Validate(); err != nil {
			return nil, err
		}
	}
	if body == "" {
		return nil, errs.NewValueIsRequiredError("message body")
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	return &Record{
		id:          id,
		orderID:     orderID,
		senderID:    senderID,
		templateID:  templateID,
		messageType: messageType,
		phone:       phone,
		body:        body,
		status:      DeliveryPending,
		maxRetries:  maxRetries,
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreRecord reconstructs a record from persistence.
func RestoreRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	senderID kernel.UUID,
	templateID *kernel.UUID,
	messageType TemplateType,
	phone string,
	body string,
	status DeliveryStatus,
	retryCount int,
	maxRetries int,
	providerResponse string,
	lastError string,
	sentAt *time.Time,
	createdAt time.Time,
) (*Record, error) {
	r, err := NewRecord(id, orderID, senderID, templateID, messageType, phone, body, maxRetries)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if retryCount < 0 || retryCount > r.maxRetries {
		return nil, errs.NewValueIsOutOfRangeError("retryCount", retryCount, 0, r.maxRetries)
	}

	r.status = status
	r.retryCount = retryCount
	r.providerResponse = providerResponse
	r.lastError = lastError
	r.sentAt = sentAt
	r.createdAt = createdAt
	return r, nil
}

// Validate ensures the Record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID { return r.id }

// OrderID returns the notified order's identifier.
func (r *Record) OrderID() kernel.UUID { return r.orderID }

// SenderID returns the chosen sender's identifier.
func (r *Record) SenderID() kernel.UUID { return r.senderID }

// TemplateID returns the chosen template's identifier, or nil when the
// built-in fallback body was used.
func (r *Record) TemplateID() *kernel.UUID { return r.templateID }

// MessageType returns the template type the message was rendered from.
func (r *Record) MessageType() TemplateType { return r.messageType }

// Phone returns the destination phone number.
func (r *Record) Phone() string { return r.phone }

// Body returns the rendered message body.
func (r *Record) Body() string { return r.body }

// Status returns the current delivery status.
func (r *Record) Status() DeliveryStatus { return r.status }

// RetryCount returns how many re-deliveries have been attempted.
func (r *Record) RetryCount() int { return r.retryCount }

// MaxRetries returns the retry budget.
func (r *Record) MaxRetries() int { return r.maxRetries }

// ProviderResponse returns the raw payload of the last provider response.
func (r *Record) ProviderResponse() string { return r.providerResponse }

// LastError returns the message of the last delivery failure.
func (r *Record) LastError() string { return r.lastError }

// SentAt returns the successful delivery time, or nil.
func (r *Record) SentAt() *time.Time { return r.sentAt }

// CreatedAt returns the dispatch time.
func (r *Record) CreatedAt() time.Time { return r.createdAt }

// MarkSent records a successful provider send.
func (r *Record) MarkSent(providerResponse string, at time.Time) {
	r.status = DeliverySent
	r.providerResponse = providerResponse
	r.lastError = ""
	sentAt := at.UTC()
	r.sentAt = &sentAt
}

// MarkFailed records a delivery failure without consuming a retry. Used for
// the initial dispatch failure and for permanent failures.
func (r *Record) MarkFailed(cause string) {
	r.status = DeliveryFailed
	r.lastError = cause
}

// RecordRetryFailure consumes one retry after a failed re-delivery.
// Returns ErrRetriesExhausted once the budget is spent; the record is then
// terminally failed.
func (r *Record) RecordRetryFailure(cause string) error {
	r.retryCount++
	r.lastError = cause
	r.status = DeliveryFailed
	if r.retryCount >= r.maxRetries {
		return ErrRetriesExhausted
	}
	return nil
}

// RecordRetrySuccess marks a re-delivery as accepted, consuming one retry.
func (r *Record) RecordRetrySuccess(providerResponse string, at time.Time) {
	r.retryCount++
	r.MarkSent(providerResponse, at)
}

// ResetForResend reopens a terminally failed record for a fresh
// attempt-group, clearing the retry counter.
func (r *Record) ResetForResend() error {
	if r.status != DeliveryFailed {
		return errs.NewValueIsInvalidErrorWithCause("record status is invalid",
			fmt.Errorf("only failed notifications can be resent, status is %s", r.status))
	}
	r.status = DeliveryPending
	r.retryCount = 0
	r.lastError = ""
	return nil
}
