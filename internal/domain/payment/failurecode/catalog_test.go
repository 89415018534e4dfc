package failurecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"correspondent_temporarily_unavailable", "PROVIDER_TEMPORARILY_UNAVAILABLE"},
		{"AMOUNT_TOO_SMALL", "AMOUNT_OUT_OF_BOUNDS"},
		{"AMOUNT_TOO_LARGE", "AMOUNT_OUT_OF_BOUNDS"},
		{" INVALID_PAYER_FORMAT ", "INVALID_PHONE_NUMBER"},
		{"OTHER_ERROR", "UNKNOWN_ERROR"},
		{"PAYER_NOT_FOUND", "PAYER_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestRejection_V1AndV2SpellingsAgree(t *testing.T) {
	v1 := Rejection("CORRESPONDENT_TEMPORARILY_UNAVAILABLE")
	v2 := Rejection("PROVIDER_TEMPORARILY_UNAVAILABLE")

	assert.Equal(t, v2, v1)
	assert.True(t, v1.Known)
	assert.Equal(t, "The provider is temporarily unavailable. Please try again later.", v1.Message)
}

func TestRejection_FallsBackToFailureTable(t *testing.T) {
	c := Rejection("PAYER_NOT_FOUND")
	assert.True(t, c.Known)
	assert.Equal(t, CategoryFailure, c.Category)
}

func TestFailure_FallsBackToRejectionTable(t *testing.T) {
	c := Failure("AUTHENTICATION_ERROR")
	assert.True(t, c.Known)
	assert.Equal(t, CategoryRejection, c.Category)
	assert.Equal(t, "The API token is invalid.", c.Message)
}

func TestFailure_AliasResolvesIntoFailureTable(t *testing.T) {
	assert.Equal(t, "The customer already has a payment pending.", ClassifyFailure("TRANSACTION_ALREADY_IN_PROCESS"))
	assert.Equal(t, "The recipient has reached a wallet limit.", ClassifyFailure("RECIPIENT_NOT_ALLOWED_TO_RECEIVE"))
}

func TestUnknownCodesDegrade(t *testing.T) {
	f := Failure("weird_code")
	assert.False(t, f.Known)
	assert.Equal(t, "WEIRD_CODE", f.Code)
	assert.Equal(t, "An unknown error occurred (Code: WEIRD_CODE). Please contact support.", f.Message)

	r := Rejection("")
	assert.False(t, r.Known)
	assert.Contains(t, r.Message, "Your request was rejected (Code: )")

	s := Status("MYSTERY")
	assert.False(t, s.Known)
	assert.False(t, s.Terminal)
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{"COMPLETED", true},
		{"failed", true},
		{"REJECTED", true},
		{"ACCEPTED", false},
		{"ENQUEUED", false},
		{"SUBMITTED", false},
		{"PROCESSING", false},
		{"IN_RECONCILIATION", false},
		{"FOUND", false},
		{"NOT_FOUND", false},
		{"DUPLICATE_IGNORED", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.terminal, IsTerminal(tt.status))
		})
	}
}

func TestDescribeStatus(t *testing.T) {
	assert.Equal(t, "Being reconciled to determine final status.", DescribeStatus("in_reconciliation"))
}
