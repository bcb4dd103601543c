package ports

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/notification"
)

// MessageProvider is the uniform send capability over a third-party
// messaging back-end. Call sites depend only on this interface; new
// providers are added by implementing it, never by branching call sites.
type MessageProvider interface {
	// Send delivers message to phoneNumber and returns the provider's
	// external message identifier. Implementations bound every call with
	// a timeout; a timeout is reported as a transient ProviderError.
	Send(ctx context.Context, phoneNumber, message string) (externalID string, err error)
}

// ProviderFactory builds the MessageProvider matching a sender's kind and
// credential bundle.
type ProviderFactory interface {
	Create(sender *notification.Sender) (MessageProvider, error)
}

// ProviderError reports a failed provider call. Transient errors (network,
// auth, rate limits, timeouts) are retried by the queue; permanent errors
// (invalid destination) fail the notification immediately.
type ProviderError struct {
	Kind      notification.ProviderKind
	Permanent bool
	Message   string
	Cause     error
}

// NewTransientProviderError reports a retryable provider failure.
func NewTransientProviderError(kind notification.ProviderKind, message string, cause error) *ProviderError {
	return &ProviderError{Kind: kind, Message: message, Cause: cause}
}

// NewPermanentProviderError reports a non-retryable provider failure.
func NewPermanentProviderError(kind notification.ProviderKind, message string, cause error) *ProviderError {
	return &ProviderError{Kind: kind, Permanent: true, Message: message, Cause: cause}
}

func (e *ProviderError) Error() string {
	permanence := "transient"
	if e.Permanent {
		permanence = "permanent"
	}
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s error: %s (cause: %s)", e.Kind, permanence, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s error: %s", e.Kind, permanence, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsPermanentSendFailure reports whether err is a provider failure that must
// not be retried. Unknown error types are treated as transient so real
// provider hiccups keep their retry budget.
func IsPermanentSendFailure(err error) bool {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Permanent
	}
	return false
}
