// Package otp provides the one-time-passcode gateway adapters. Exactly one
// provider is active at a time, selected by the presence of its credential
// set; without credentials the gateway fails every call instead of silently
// mocking.
package otp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/cloud4wi/signup-service/internal/domain"
)

// TwilioGateway delivers and checks codes through Twilio Verify's email
// channel. Twilio owns the whole challenge lifecycle (secret, expiry,
// attempt counting); this adapter only relays outcomes.
type TwilioGateway struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilio(accountSID, authToken, serviceSID string) *TwilioGateway {
	return &TwilioGateway{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		serviceSID: serviceSID,
	}
}

// Send starts an email verification for the address. The ctx parameter is
// kept for the port contract; the Twilio SDK manages its own HTTP timeouts.
func (g *TwilioGateway) Send(ctx context.Context, email string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(email)
	params.SetChannel("email")

	if _, err := g.client.VerifyV2.CreateVerification(g.serviceSID, params); err != nil {
		return domain.ErrOTPProviderFailure(err)
	}
	return nil
}

// Check reports whether the code matches the pending verification.
// (false, nil) means Twilio answered and the code is wrong; an error means
// the provider itself failed.
func (g *TwilioGateway) Check(ctx context.Context, email, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(email)
	params.SetCode(code)

	res, err := g.client.VerifyV2.CreateVerificationCheck(g.serviceSID, params)
	if err != nil {
		return false, domain.ErrOTPProviderFailure(err)
	}
	return res.Status != nil && *res.Status == "approved", nil
}

// FromEnv is the capability-checked factory: it returns the Twilio adapter
// when the full credential set is present and a configuration error
// otherwise. There is no mock fallback.
func FromEnv() (*TwilioGateway, error) {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	serviceSID := os.Getenv("TWILIO_VERIFY_SERVICE_SID")

	var missing []string
	if accountSID == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if authToken == "" {
		missing = append(missing, "TWILIO_AUTH_TOKEN")
	}
	if serviceSID == "" {
		missing = append(missing, "TWILIO_VERIFY_SERVICE_SID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("otp: missing credentials: %v", missing)
	}

	return NewTwilio(accountSID, authToken, serviceSID), nil
}

// Unconfigured is the gateway installed when FromEnv fails: every call
// returns the configuration error so the affected endpoints fail loudly.
type Unconfigured struct {
	Reason error
}

func (u Unconfigured) Send(ctx context.Context, email string) error {
	return domain.ErrNotConfigured("otp_provider", u.reason())
}

func (u Unconfigured) Check(ctx context.Context, email, code string) (bool, error) {
	return false, domain.ErrNotConfigured("otp_provider", u.reason())
}

func (u Unconfigured) reason() error {
	if u.Reason != nil {
		return u.Reason
	}
	return errors.New("otp provider not configured")
}
