package messaging_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"laundry/internal/adapters/out/messaging"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetaSender(t *testing.T) *notification.Sender {
	t.Helper()
	s, err := notification.NewSender(kernel.NewUUID(), "Primary WhatsApp", notification.ProviderMeta,
		notification.Credentials{
			notification.CredAppID:         "app-1",
			notification.CredAccessToken:   "meta-token",
			notification.CredPhoneNumberID: "1050001",
		}, true)
	require.NoError(t, err)
	return s
}

func newTwilioSender(t *testing.T) *notification.Sender {
	t.Helper()
	s, err := notification.NewSender(kernel.NewUUID(), "Backup SMS", notification.ProviderTwilio,
		notification.Credentials{
			notification.CredAccountSID: "AC00000000000000000000000000000001",
			notification.CredAuthToken:  "twilio-secret",
			notification.CredFromNumber: "+14155550100",
		}, false)
	require.NoError(t, err)
	return s
}

func newGupshupSender(t *testing.T) *notification.Sender {
	t.Helper()
	s, err := notification.NewSender(kernel.NewUUID(), "Gupshup WhatsApp", notification.ProviderGupshup,
		notification.Credentials{
			notification.CredAPIKey: "gupshup-key",
			notification.CredSource: "917834811114",
		}, false)
	require.NoError(t, err)
	return s
}

func TestMetaProvider_Send(t *testing.T) {
	var captured struct {
		path string
		auth string
		body map[string]any
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.ABC123"}]}`))
	}))
	defer server.Close()

	factory := messaging.NewHTTPProviderFactory(messaging.Config{MetaBaseURL: server.URL})
	provider, err := factory.Create(newMetaSender(t))
	require.NoError(t, err)

	externalID, err := provider.Send(context.Background(), "+919876543210", "Your order is ready")
	require.NoError(t, err)

	assert.Equal(t, "wamid.ABC123", externalID)
	assert.Equal(t, "/1050001/messages", captured.path)
	assert.Equal(t, "Bearer meta-token", captured.auth)
	assert.Equal(t, "whatsapp", captured.body["messaging_product"])
	assert.Equal(t, "+919876543210", captured.body["to"])
	text, ok := captured.body["text"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Your order is ready", text["body"])
}

func TestMetaProvider_Send_InvalidRecipientIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Receiver is incapable of receiving this message","code":131026}}`))
	}))
	defer server.Close()

	factory := messaging.NewHTTPProviderFactory(messaging.Config{MetaBaseURL: server.URL})
	provider, err := factory.Create(newMetaSender(t))
	require.NoError(t, err)

	_, err = provider.Send(context.Background(), "+10000000000", "hello")
	require.Error(t, err)
	assert.True(t, ports.IsPermanentSendFailure(err))
}

func TestMetaProvider_Send_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	factory := messaging.NewHTTPProviderFactory(messaging.Config{MetaBaseURL: server.URL})
	provider, err := factory.Create(newMetaSender(t))
	require.NoError(t, err)

	_, err = provider.Send(context.Background(), "+919876543210", "hello")
	require.Error(t, err)
	assert.False(t, ports.IsPermanentSendFailure(err))
}

func TestTwilioProvider_Send(t *testing.T) {
	var captured struct {
		path string
		user string
		pass string
		form map[string]string
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.user, captured.pass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		captured.form = map[string]string{
			"To":   r.PostForm.Get("To"),
			"From": r.PostForm.Get("From"),
			"Body": r.PostForm.Get("Body"),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM123"}`))
	}))
	defer server.Close()

	factory := messaging.NewHTTPProviderFactory(messaging.Config{TwilioBaseURL: server.URL})
	provider, err := factory.Create(newTwilioSender(t))
	require.NoError(t, err)

	externalID, err := provider.Send(context.Background(), "+919876543210", "Balance due: 150.00")
	require.NoError(t, err)

	assert.Equal(t, "SM123", externalID)
	assert.Equal(t, "/Accounts/AC00000000000000000000000000000001/Messages.json", captured.path)
	assert.Equal(t, "AC00000000000000000000000000000001", captured.user)
	assert.Equal(t, "twilio-secret", captured.pass)
	assert.Equal(t, "+919876543210", captured.form["To"])
	assert.Equal(t, "+14155550100", captured.form["From"])
	assert.Equal(t, "Balance due: 150.00", captured.form["Body"])
}

func TestTwilioProvider_Send_InvalidNumberIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number."}`))
	}))
	defer server.Close()

	factory := messaging.NewHTTPProviderFactory(messaging.Config{TwilioBaseURL: server.URL})
	provider, err := factory.Create(newTwilioSender(t))
	require.NoError(t, err)

	_, err = provider.Send(context.Background(), "not-a-number", "hello")
	require.Error(t, err)
	assert.True(t, ports.IsPermanentSendFailure(err))
}

func TestGupshupProvider_Send(t *testing.T) {
	var captured struct {
		apiKey string
		form   map[string]string
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.apiKey = r.Header.Get("apikey")
		require.NoError(t, r.ParseForm())
		captured.form = map[string]string{
			"channel":     r.PostForm.Get("channel"),
			"source":      r.PostForm.Get("source"),
			"destination": r.PostForm.Get("destination"),
			"message":     r.PostForm.Get("message"),
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"submitted","messageId":"gs-42"}`))
	}))
	defer server.Close()

	factory := messaging.NewHTTPProviderFactory(messaging.Config{GupshupBaseURL: server.URL})
	provider, err := factory.Create(newGupshupSender(t))
	require.NoError(t, err)

	externalID, err := provider.Send(context.Background(), "919876543210", "Ready for pickup")
	require.NoError(t, err)

	assert.Equal(t, "gs-42", externalID)
	assert.Equal(t, "gupshup-key", captured.apiKey)
	assert.Equal(t, "whatsapp", captured.form["channel"])
	assert.Equal(t, "917834811114", captured.form["source"])
	assert.Equal(t, "919876543210", captured.form["destination"])
	assert.JSONEq(t, `{"type":"text","text":"Ready for pickup"}`, captured.form["message"])
}

func TestGupshupProvider_Send_InvalidDestinationIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"Invalid Destination"}`))
	}))
	defer server.Close()

	factory := messaging.NewHTTPProviderFactory(messaging.Config{GupshupBaseURL: server.URL})
	provider, err := factory.Create(newGupshupSender(t))
	require.NoError(t, err)

	_, err = provider.Send(context.Background(), "0", "hello")
	require.Error(t, err)
	assert.True(t, ports.IsPermanentSendFailure(err))
}

func TestProviderTimeoutIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.LATE"}]}`))
	}))
	defer server.Close()

	factory := messaging.NewHTTPProviderFactory(messaging.Config{
		Timeout:     50 * time.Millisecond,
		MetaBaseURL: server.URL,
	})
	provider, err := factory.Create(newMetaSender(t))
	require.NoError(t, err)

	_, err = provider.Send(context.Background(), "+919876543210", "hello")
	require.Error(t, err)
	assert.False(t, ports.IsPermanentSendFailure(err))
}
