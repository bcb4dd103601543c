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

// Twilio error codes for destinations that can never be delivered to.
const (
	twilioErrInvalidTo     = 21211
	twilioErrUnreachableTo = 21214
	twilioErrBlacklistedTo = 21610
)

// twilioProvider sends SMS through the Twilio Messages API.
type twilioProvider struct {
	client     *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
}

func newTwilioProvider(client *http.Client, baseURL string, creds notification.Credentials) *twilioProvider {
	return &twilioProvider{
		client:     client,
		baseURL:    baseURL,
		accountSID: creds.Get(notification.CredAccountSID),
		authToken:  creds.Get(notification.CredAuthToken),
		from:       creds.Get(notification.CredFromNumber),
	}
}

type twilioSendResponse struct {
	SID     string `json:"sid"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Send delivers an SMS and returns the message SID assigned by Twilio.
func (p *twilioProvider) Send(ctx context.Context, phoneNumber, message string) (string, error) {
	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("From", p.from)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", p.baseURL, p.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", ports.NewTransientProviderError(notification.ProviderTwilio, "building request failed", err)
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	status, body, err := doRequest(p.client, notification.ProviderTwilio, req)
	if err != nil {
		return "", err
	}

	var parsed twilioSendResponse
	if unmarshalErr := json.Unmarshal(body, &parsed); unmarshalErr != nil && status < 400 {
		return "", ports.NewTransientProviderError(notification.ProviderTwilio, "decoding response failed", unmarshalErr)
	}

	if status >= 400 {
		msg := fmt.Sprintf("messages api returned %d", status)
		if parsed.Message != "" {
			msg = fmt.Sprintf("messages api returned %d: %s (code %d)", status, parsed.Message, parsed.Code)
		}
		switch parsed.Code {
		case twilioErrInvalidTo, twilioErrUnreachableTo, twilioErrBlacklistedTo:
			return "", ports.NewPermanentProviderError(notification.ProviderTwilio, msg, nil)
		}
		return "", ports.NewTransientProviderError(notification.ProviderTwilio, msg, nil)
	}

	if parsed.SID == "" {
		return "", ports.NewTransientProviderError(notification.ProviderTwilio, "response carries no message sid", nil)
	}

	return parsed.SID, nil
}
