package payment

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
)

// Initiation statuses returned in the body of a create call.
const (
	InitiationAccepted         = "ACCEPTED"
	InitiationEnqueued         = "ENQUEUED"
	InitiationRejected         = "REJECTED"
	InitiationDuplicateIgnored = "DUPLICATE_IGNORED"
)

// InitiationResult is the outcome of a deposit, payout, refund or payment
// page call. Raw keeps the undecoded body for logging and classification.
type InitiationResult struct {
	HTTPStatus    int             `json:"httpStatus"`
	TransactionID string          `json:"transactionId,omitempty"`
	Status        string          `json:"status,omitempty"`
	RedirectURL   string          `json:"redirectUrl,omitempty"`
	Raw           json.RawMessage `json:"raw,omitempty"`
}

// Succeeded reports a 200/201 whose body did not itself say REJECTED.
func (r *InitiationResult) Succeeded() bool {
	if r.HTTPStatus != http.StatusOK && r.HTTPStatus != http.StatusCreated {
		return false
	}
	return r.Status != InitiationRejected
}

// StatusResult is the canonical answer to a status lookup on either wire
// version. A lookup that found nothing yet is reported as PROCESSING with
// Found=false, never as an error: freshly created transactions may not be
// indexed on the provider side.
type StatusResult struct {
	HTTPStatus     int                  `json:"httpStatus"`
	Found          bool                 `json:"found"`
	Status         vo.TransactionStatus `json:"status"`
	Final          bool                 `json:"final"`
	FailureCode    string               `json:"failureCode,omitempty"`
	FailureMessage string               `json:"failureMessage,omitempty"`
	Message        string               `json:"message,omitempty"`
	Data           map[string]any       `json:"data,omitempty"`
	Raw            json.RawMessage      `json:"raw,omitempty"`
}

// OperationStatus is the availability of one operation type.
type OperationStatus struct {
	OperationType string `json:"operationType"`
	Status        string `json:"status"`
}

// ProviderAvailability lists operation statuses for one provider. V1
// correspondents and V2 providers both land here.
type ProviderAvailability struct {
	Provider       string            `json:"provider"`
	OperationTypes []OperationStatus `json:"operationTypes"`
}

type CountryAvailability struct {
	Country   string                 `json:"country"`
	Providers []ProviderAvailability `json:"providers"`
}

type AvailabilityResult struct {
	HTTPStatus int                   `json:"httpStatus"`
	Countries  []CountryAvailability `json:"countries"`
	Raw        json.RawMessage       `json:"raw,omitempty"`
}

// NewTransactionID returns a random UUIDv4 suitable as an idempotency key.
func NewTransactionID() string {
	return uuid.NewString()
}
