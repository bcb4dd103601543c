package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"laundry/internal/core/domain/model/notification"
	"laundry/internal/core/ports"
)

// metaErrInvalidRecipient is the Graph API error code for a destination that
// cannot receive WhatsApp messages.
const metaErrInvalidRecipient = 131026

// metaProvider sends WhatsApp text messages through the Meta Cloud API.
type metaProvider struct {
	client        *http.Client
	baseURL       string
	accessToken   string
	phoneNumberID string
}

func newMetaProvider(client *http.Client, baseURL string, creds notification.Credentials) *metaProvider {
	return &metaProvider{
		client:        client,
		baseURL:       baseURL,
		accessToken:   creds.Get(notification.CredAccessToken),
		phoneNumberID: creds.Get(notification.CredPhoneNumberID),
	}
}

type metaSendRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             metaSendText `json:"text"`
}

type metaSendText struct {
	Body string `json:"body"`
}

type metaSendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Send delivers a WhatsApp text message and returns the wamid assigned by
// the Cloud API.
func (p *metaProvider) Send(ctx context.Context, phoneNumber, message string) (string, error) {
	payload, err := json.Marshal(metaSendRequest{
		MessagingProduct: "whatsapp",
		To:               phoneNumber,
		Type:             "text",
		Text:             metaSendText{Body: message},
	})
	if err != nil {
		return "", ports.NewTransientProviderError(notification.ProviderMeta, "encoding request failed", err)
	}

	url := fmt.Sprintf("%s/%s/messages", p.baseURL, p.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", ports.NewTransientProviderError(notification.ProviderMeta, "building request failed", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Content-Type", "application/json")

	status, body, err := doRequest(p.client, notification.ProviderMeta, req)
	if err != nil {
		return "", err
	}

	var parsed metaSendResponse
	if unmarshalErr := json.Unmarshal(body, &parsed); unmarshalErr != nil && status < 400 {
		return "", ports.NewTransientProviderError(notification.ProviderMeta, "decoding response failed", unmarshalErr)
	}

	if status >= 400 {
		msg := fmt.Sprintf("cloud api returned %d", status)
		if parsed.Error != nil {
			msg = fmt.Sprintf("cloud api returned %d: %s (code %d)", status, parsed.Error.Message, parsed.Error.Code)
			if parsed.Error.Code == metaErrInvalidRecipient {
				return "", ports.NewPermanentProviderError(notification.ProviderMeta, msg, nil)
			}
		}
		return "", ports.NewTransientProviderError(notification.ProviderMeta, msg, nil)
	}

	if len(parsed.Messages) == 0 || parsed.Messages[0].ID == "" {
		return "", ports.NewTransientProviderError(notification.ProviderMeta, "response carries no message id", nil)
	}

	return parsed.Messages[0].ID, nil
}
