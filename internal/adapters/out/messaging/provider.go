// Package messaging implements the outbound message-provider adapters for
// WhatsApp and SMS delivery. Each provider wraps its vendor HTTP API behind
// ports.MessageProvider; the factory picks the adapter matching a sender's
// provider kind and hands it the sender's credential bundle.
//
// Every call is bounded by a configured timeout. Transport errors, timeouts
// and vendor-side errors are reported as transient ProviderErrors and go to
// the retry queue; responses flagging an undeliverable destination are
// permanent and fail the notification immediately.
package messaging

import (
	"io"
	"net/http"
	"time"

	"laundry/internal/core/domain/model/notification"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

const (
	defaultMetaBaseURL    = "https://graph.facebook.com/v18.0"
	defaultTwilioBaseURL  = "https://api.twilio.com/2010-04-01"
	defaultGupshupBaseURL = "https://api.gupshup.io/sm/api/v1"

	defaultTimeout = 10 * time.Second

	maxResponseBytes = 64 * 1024
)

// Config carries the factory's tunables. The base URLs exist for tests and
// regional endpoints; zero values fall back to the vendor defaults.
type Config struct {
	Timeout        time.Duration
	MetaBaseURL    string
	TwilioBaseURL  string
	GupshupBaseURL string
}

// HTTPProviderFactory builds MessageProvider adapters over a shared HTTP
// client.
type HTTPProviderFactory struct {
	client         *http.Client
	metaBaseURL    string
	twilioBaseURL  string
	gupshupBaseURL string
}

// NewHTTPProviderFactory creates a provider factory with the given config.
func NewHTTPProviderFactory(cfg Config) *HTTPProviderFactory {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	f := &HTTPProviderFactory{
		client:         &http.Client{Timeout: timeout},
		metaBaseURL:    cfg.MetaBaseURL,
		twilioBaseURL:  cfg.TwilioBaseURL,
		gupshupBaseURL: cfg.GupshupBaseURL,
	}
	if f.metaBaseURL == "" {
		f.metaBaseURL = defaultMetaBaseURL
	}
	if f.twilioBaseURL == "" {
		f.twilioBaseURL = defaultTwilioBaseURL
	}
	if f.gupshupBaseURL == "" {
		f.gupshupBaseURL = defaultGupshupBaseURL
	}

	return f
}

// Create builds the MessageProvider matching the sender's kind and
// credentials.
func (f *HTTPProviderFactory) Create(sender *notification.Sender) (ports.MessageProvider, error) {
	if err := sender.Validate(); err != nil {
		return nil, err
	}

	creds := sender.Credentials()
	switch sender.Kind() {
	case notification.ProviderMeta:
		return newMetaProvider(f.client, f.metaBaseURL, creds), nil
	case notification.ProviderTwilio:
		return newTwilioProvider(f.client, f.twilioBaseURL, creds), nil
	case notification.ProviderGupshup:
		return newGupshupProvider(f.client, f.gupshupBaseURL, creds), nil
	default:
		return nil, errs.NewValueIsInvalidError("provider kind")
	}
}

// doRequest executes req and returns the status code and a bounded copy of
// the body. Transport failures, including the client timeout, come back as
// transient provider errors.
func doRequest(client *http.Client, kind notification.ProviderKind, req *http.Request) (int, []byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, ports.NewTransientProviderError(kind, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, ports.NewTransientProviderError(kind, "reading response failed", err)
	}

	return resp.StatusCode, body, nil
}
