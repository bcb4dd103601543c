package notification

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// ProviderKind identifies the third-party messaging back-end a sender
// speaks to. Call sites never branch on the kind; it is only used by the
// provider factory to pick the matching adapter.
type ProviderKind string

const (
	// ProviderMeta is the Meta/WhatsApp Cloud style API
	// (app id + access token + phone number id).
	ProviderMeta ProviderKind = "meta"

	// ProviderTwilio is the Twilio style API
	// (account sid + auth token + from number).
	ProviderTwilio ProviderKind = "twilio"

	// ProviderGupshup is the Gupshup style API (api key + source).
	ProviderGupshup ProviderKind = "gupshup"
)

// credentialKeys lists the credential-bundle keys each provider requires.
func credentialKeys() map[ProviderKind][]string {
	return map[ProviderKind][]string{
		ProviderMeta:    {CredAppID, CredAccessToken, CredPhoneNumberID},
		ProviderTwilio:  {CredAccountSID, CredAuthToken, CredFromNumber},
		ProviderGupshup: {CredAPIKey, CredSource},
	}
}

// Credential bundle keys. The bundle itself is opaque to the domain; only
// the matching provider adapter interprets the values.
const (
	CredAppID         = "app_id"
	CredAccessToken   = "access_token"
	CredPhoneNumberID = "phone_number_id"
	CredAccountSID    = "account_sid"
	CredAuthToken     = "auth_token"
	CredFromNumber    = "from_number"
	CredAPIKey        = "api_key"
	CredSource        = "source"
)

// Credentials is the opaque provider credential bundle stored on a sender.
type Credentials map[string]string

// Get returns the value for key, or "" when absent.
func (c Credentials) Get(key string) string {
	return c[key]
}

// Validate checks the kind is known.
func (k ProviderKind) Validate() error {
	if _, ok := credentialKeys()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("provider kind is invalid",
			fmt.Errorf("%q is not a supported provider", string(k)))
	}
	return nil
}

// ValidateCredentials checks that the bundle carries every key the provider
// kind requires.
func (k ProviderKind) ValidateCredentials(creds Credentials) error {
	keys, ok := credentialKeys()[k]
	if !ok {
		return k.Validate()
	}
	for _, key := range keys {
		if creds.Get(key) == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("credential %q for provider %s", key, k))
		}
	}
	return nil
}

func (k ProviderKind) String() string {
	return string(k)
}
