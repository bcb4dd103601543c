package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"laundry/internal/core/domain/model/notification"
	"laundry/internal/core/ports"
)

// gupshupProvider sends WhatsApp text messages through the Gupshup
// self-serve messaging API.
type gupshupProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	source  string
}

func newGupshupProvider(client *http.Client, baseURL string, creds notification.Credentials) *gupshupProvider {
	return &gupshupProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  creds.Get(notification.CredAPIKey),
		source:  creds.Get(notification.CredSource),
	}
}

type gupshupMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type gupshupSendResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
}

// Send delivers a WhatsApp text message and returns the messageId assigned
// by Gupshup.
func (p *gupshupProvider) Send(ctx context.Context, phoneNumber, message string) (string, error) {
	msg, err := json.Marshal(gupshupMessage{Type: "text", Text: message})
	if err != nil {
		return "", ports.NewTransientProviderError(notification.ProviderGupshup, "encoding request failed", err)
	}

	form := url.Values{}
	form.Set("channel", "whatsapp")
	form.Set("source", p.source)
	form.Set("destination", phoneNumber)
	form.Set("message", string(msg))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/msg", strings.NewReader(form.Encode()))
	if err != nil {
		return "", ports.NewTransientProviderError(notification.ProviderGupshup, "building request failed", err)
	}
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	status, body, err := doRequest(p.client, notification.ProviderGupshup, req)
	if err != nil {
		return "", err
	}

	var parsed gupshupSendResponse
	if unmarshalErr := json.Unmarshal(body, &parsed); unmarshalErr != nil && status < 400 {
		return "", ports.NewTransientProviderError(notification.ProviderGupshup, "decoding response failed", unmarshalErr)
	}

	if status >= 400 || strings.EqualFold(parsed.Status, "error") {
		msg := fmt.Sprintf("messaging api returned %d", status)
		if parsed.Message != "" {
			msg = fmt.Sprintf("messaging api returned %d: %s", status, parsed.Message)
			if strings.Contains(strings.ToLower(parsed.Message), "invalid destination") {
				return "", ports.NewPermanentProviderError(notification.ProviderGupshup, msg, nil)
			}
		}
		return "", ports.NewTransientProviderError(notification.ProviderGupshup, msg, nil)
	}

	if parsed.MessageID == "" {
		return "", ports.NewTransientProviderError(notification.ProviderGupshup, "response carries no message id", nil)
	}

	return parsed.MessageID, nil
}
