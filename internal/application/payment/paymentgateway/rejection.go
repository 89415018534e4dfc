package paymentgateway

import (
	"encoding/json"
	"fmt"

	"github.com/orris-inc/momogate/internal/domain/payment/failurecode"
)

// RejectionError is a request the provider refused: a non-2xx response, or
// a 2xx create call whose body reports status REJECTED.
type RejectionError struct {
	Operation      string                     `json:"operation"`
	HTTPStatus     int                        `json:"httpStatus"`
	Code           string                     `json:"code"`
	ProviderReason string                     `json:"providerReason,omitempty"`
	Classification failurecode.Classification `json:"classification"`
	Raw            json.RawMessage            `json:"raw,omitempty"`
}

func (e *RejectionError) Error() string {
	code := e.Code
	if code == "" {
		code = "none"
	}
	return fmt.Sprintf("%s rejected (http %d, code %s): %s", e.Operation, e.HTTPStatus, code, e.Classification.Message)
}

// rejectionBody lists every place either wire version puts a rejection code.
type rejectionBody struct {
	RejectionReason *struct {
		RejectionCode    string `json:"rejectionCode"`
		RejectionMessage string `json:"rejectionMessage"`
	} `json:"rejectionReason"`
	FailureReason *struct {
		FailureCode    string `json:"failureCode"`
		FailureMessage string `json:"failureMessage"`
	} `json:"failureReason"`
	ErrorCode    flexCode `json:"errorCode"`
	ErrorMessage string   `json:"errorMessage"`
}

// flexCode tolerates numeric error codes on generic API error bodies.
type flexCode string

func (f *flexCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	*f = flexCode(n.String())
	return nil
}

// extractRejection pulls the code and provider message out of a body. It
// never fails; unparseable bodies yield empty strings.
func extractRejection(raw json.RawMessage) (code, reason string) {
	if len(raw) == 0 {
		return "", ""
	}
	var body rejectionBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", ""
	}
	switch {
	case body.RejectionReason != nil && body.RejectionReason.RejectionCode != "":
		return body.RejectionReason.RejectionCode, body.RejectionReason.RejectionMessage
	case body.FailureReason != nil && body.FailureReason.FailureCode != "":
		return body.FailureReason.FailureCode, body.FailureReason.FailureMessage
	default:
		return string(body.ErrorCode), body.ErrorMessage
	}
}

func newRejection(op string, httpStatus int, raw json.RawMessage) *RejectionError {
	code, reason := extractRejection(raw)
	lookup := code
	if lookup == "" {
		lookup = "UNKNOWN_ERROR"
	}
	return &RejectionError{
		Operation:      op,
		HTTPStatus:     httpStatus,
		Code:           code,
		ProviderReason: reason,
		Classification: failurecode.Rejection(lookup),
		Raw:            raw,
	}
}
