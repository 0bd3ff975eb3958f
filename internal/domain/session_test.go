package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Session{}.Validate())
	assert.NoError(t, Session{Authenticated: true, Address: "rAddr"}.Validate())
	assert.ErrorIs(t, Session{Authenticated: true}.Validate(), ErrInvalidSession)
	assert.ErrorIs(t, Session{Authenticated: true, Address: "  "}.Validate(), ErrInvalidSession)
}

func TestSecretIsRedacted(t *testing.T) {
	t.Parallel()

	secret := NewSecret("hunter2")

	assert.Equal(t, "hunter2", secret.Reveal())
	assert.Equal(t, "[redacted]", secret.String())
	assert.Equal(t, "[redacted]", fmt.Sprintf("%v", secret))
	assert.Equal(t, "[redacted]", fmt.Sprintf("%#v", secret))
	assert.NotContains(t, fmt.Sprintf("%+v", Session{Secret: secret}), "hunter2")
	assert.True(t, secret.Equal(NewSecret("hunter2")))
	assert.False(t, secret.Equal(NewSecret("hunter3")))
	assert.True(t, Secret{}.IsZero())
	assert.Empty(t, Secret{}.String())
}

func TestAccountStatusNeedsOnboarding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status InitRiteStatus
		want   bool
	}{
		{status: InitRiteUnstarted, want: true},
		{status: InitRitePendingInitiation, want: true},
		{status: InitRitePending, want: true},
		{status: "pending", want: true},
		{status: "", want: true},
		{status: InitRiteComplete, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, AccountStatus{InitRiteStatus: tt.status}.NeedsOnboarding())
		})
	}
}

func TestPaymentRequestValidate(t *testing.T) {
	t.Parallel()

	valid := PaymentRequest{From: "rFrom", To: "rTo", Amount: 1.5, Currency: CurrencyPFT}
	require.NoError(t, valid.Validate())

	invalid := valid
	invalid.Amount = 0
	assert.EqualError(t, invalid.Validate(), "amount must be positive")

	invalid = valid
	invalid.To = ""
	assert.EqualError(t, invalid.Validate(), "destination address is required")

	currency, err := ParseCurrency("xrp")
	require.NoError(t, err)
	assert.Equal(t, CurrencyXRP, currency)
	_, err = ParseCurrency("btc")
	require.Error(t, err)
}

func TestPaymentDirection(t *testing.T) {
	t.Parallel()

	incoming := Payment{From: "rOther", To: "rMe"}
	outgoing := Payment{From: "rMe", To: "rOther"}

	assert.Equal(t, "From", incoming.Direction("rMe"))
	assert.Equal(t, Address("rOther"), incoming.Counterparty("rMe"))
	assert.Equal(t, "To", outgoing.Direction("rMe"))
	assert.Equal(t, Address("rOther"), outgoing.Counterparty("rMe"))
}

func TestAPIErrorDetail(t *testing.T) {
	t.Parallel()

	err := &APIError{Status: 401, Body: `{"detail":"Invalid password"}`}
	assert.Equal(t, "API error (401): {\"detail\":\"Invalid password\"}", err.Error())
	assert.Equal(t, "Invalid password", err.Detail())

	plain := &APIError{Status: 500, Body: "boom\n"}
	assert.Equal(t, "boom", plain.Detail())

	structured := &APIError{Status: 422, Body: `{"detail":[{"msg":"field required"}]}`}
	assert.Equal(t, `[{"msg":"field required"}]`, structured.Detail())
}

func TestIsSecretRejection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unauthorized", err: &APIError{Status: 401, Body: "nope"}, want: true},
		{name: "password detail", err: &APIError{Status: 400, Body: `{"detail":"Wrong password supplied"}`}, want: true},
		{name: "decrypt detail", err: fmt.Errorf("send: %w", &APIError{Status: 500, Body: `{"detail":"Failed to decrypt seed"}`}), want: true},
		{name: "other api error", err: &APIError{Status: 500, Body: "ledger busy"}, want: false},
		{name: "network", err: ErrNetworkUnreachable, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSecretRejection(tt.err))
		})
	}
}

func TestIsSilent(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSilent(fmt.Errorf("get tasks: %w", ErrStaleAccountResponse)))
	assert.True(t, IsSilent(ErrRequestAborted))
	assert.True(t, IsSilent(context.Canceled))
	assert.False(t, IsSilent(nil))
	assert.False(t, IsSilent(errors.New("boom")))
	assert.False(t, IsSilent(&APIError{Status: 500}))
}

func TestAuthenticationRequiredErrorMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("get: %w", &AuthenticationRequiredError{Endpoint: "/account/rX/summary"})
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
	assert.Contains(t, err.Error(), "/account/rX/summary")
}
