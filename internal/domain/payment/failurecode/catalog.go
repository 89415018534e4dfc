// Package failurecode maps provider machine codes from either wire version to
// a canonical code and a human readable message. Lookups never fail: unknown
// codes degrade to a generic message that carries the raw code.
package failurecode

import (
	"fmt"
	"strings"
)

// Category tells which table a code was resolved against.
type Category string

const (
	CategoryRejection Category = "rejection"
	CategoryFailure   Category = "failure"
	CategoryStatus    Category = "status"
)

// Classification is the resolved meaning of a machine code.
type Classification struct {
	Code     string   `json:"code"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Terminal bool     `json:"terminal"`
	Known    bool     `json:"known"`
}

// aliases canonicalizes V1 spellings to their V2 equivalents.
var aliases = map[string]string{
	"CORRESPONDENT_TEMPORARILY_UNAVAILABLE": "PROVIDER_TEMPORARILY_UNAVAILABLE",
	"AMOUNT_TOO_SMALL":                      "AMOUNT_OUT_OF_BOUNDS",
	"AMOUNT_TOO_LARGE":                      "AMOUNT_OUT_OF_BOUNDS",
	"INVALID_RECIPIENT_FORMAT":              "INVALID_PHONE_NUMBER",
	"INVALID_PAYER_FORMAT":                  "INVALID_PHONE_NUMBER",
	"BALANCE_INSUFFICIENT":                  "PAWAPAY_WALLET_OUT_OF_FUNDS",
	"TRANSACTION_ALREADY_IN_PROCESS":        "PAYMENT_IN_PROGRESS",
	"RECIPIENT_NOT_ALLOWED_TO_RECEIVE":      "WALLET_LIMIT_REACHED",
	"DEPOSIT_NOT_FOUND":                     "NOT_FOUND",
	"OTHER_ERROR":                           "UNKNOWN_ERROR",
}

const walletOutOfFunds = "Your pawaPay wallet does not have sufficient funds."

// rejectionMessages covers codes returned when a request is refused at initiation.
var rejectionMessages = map[string]string{
	"NO_AUTHENTICATION":                "Authentication header is missing.",
	"AUTHENTICATION_ERROR":             "The API token is invalid.",
	"AUTHORISATION_ERROR":              "The API token is not authorised for this request.",
	"HTTP_SIGNATURE_ERROR":             "The HTTP signature failed verification.",
	"INVALID_INPUT":                    "We could not parse the request payload.",
	"MISSING_PARAMETER":                "A required parameter is missing.",
	"UNSUPPORTED_PARAMETER":            "An unsupported parameter was provided.",
	"INVALID_PARAMETER":                "A parameter contains an invalid value.",
	"DUPLICATE_METADATA_FIELD":         "Duplicate field in metadata.",
	"INVALID_AMOUNT":                   "The amount is not valid for this provider.",
	"AMOUNT_OUT_OF_BOUNDS":             "The amount is outside provider limits.",
	"INVALID_CURRENCY":                 "The currency is not supported by this provider.",
	"INVALID_COUNTRY":                  "The specified country is not supported.",
	"INVALID_PROVIDER":                 "The provider is invalid for this request.",
	"INVALID_PHONE_NUMBER":             "The phone number format is invalid.",
	"DEPOSITS_NOT_ALLOWED":             "Deposits are not enabled for this provider on your account.",
	"PAYOUTS_NOT_ALLOWED":              "Payouts are not enabled for this provider on your account.",
	"REFUNDS_NOT_ALLOWED":              "Refunds are not enabled for this provider on your account.",
	"REMITTANCES_NOT_ALLOWED":          "Remittances are not enabled for this provider on your account.",
	"PROVIDER_TEMPORARILY_UNAVAILABLE": "The provider is temporarily unavailable. Please try again later.",
	"INVALID_CORRESPONDENT":            "The specified correspondent is not supported.",
	"DEPOSIT_NOT_COMPLETED":            "The referenced deposit was not completed.",
	"ALREADY_REFUNDED":                 "The referenced deposit has already been refunded.",
	"IN_PROGRESS":                      "Another refund transaction is already in progress.",
	"NOT_FOUND":                        "The referenced deposit was not found.",
	"INVALID_STATE":                    "The deposit is not in a refundable state (or already refunded).",
	"PAWAPAY_WALLET_OUT_OF_FUNDS":      walletOutOfFunds,
	"UNKNOWN_ERROR":                    "An unknown error occurred while processing the request.",
}

// failureMessages covers codes reported on accepted transactions that failed.
var failureMessages = map[string]string{
	"PAYER_NOT_FOUND":             "The phone number does not belong to the specified provider.",
	"PAYMENT_NOT_APPROVED":        "The customer did not approve the payment.",
	"PAYER_LIMIT_REACHED":         "The customer has reached a wallet transaction limit.",
	"PAYMENT_IN_PROGRESS":         "The customer already has a payment pending.",
	"INSUFFICIENT_BALANCE":        "The customer does not have enough funds.",
	"UNSPECIFIED_FAILURE":         "The provider reported a failure without a reason.",
	"UNKNOWN_ERROR":               "An unknown error occurred.",
	"PAWAPAY_WALLET_OUT_OF_FUNDS": walletOutOfFunds,
	"RECIPIENT_NOT_FOUND":         "The phone number does not belong to the specified provider.",
	"MANUALLY_CANCELLED":          "The payout was cancelled while in queue.",
	"WALLET_LIMIT_REACHED":        "The recipient has reached a wallet limit.",
	"NO CALLBACK":                 "The transaction is pending. Please check the status again shortly.",
}

type statusEntry struct {
	message  string
	terminal bool
}

var statuses = map[string]statusEntry{
	"ACCEPTED":          {message: "Accepted for processing."},
	"ENQUEUED":          {message: "Accepted and queued for later processing."},
	"SUBMITTED":         {message: "Submitted to the provider."},
	"PROCESSING":        {message: "Processing with the provider."},
	"IN_RECONCILIATION": {message: "Being reconciled to determine final status."},
	"COMPLETED":         {message: "Successfully completed.", terminal: true},
	"FAILED":            {message: "Processed but failed.", terminal: true},
	"FOUND":             {message: "Found."},
	"NOT_FOUND":         {message: "Not found."},
	"REJECTED":          {message: "Rejected at initiation.", terminal: true},
	"DUPLICATE_IGNORED": {message: "Duplicate of an already accepted request; ignored."},
}

// Normalize upper-cases the code and resolves V1 aliases.
func Normalize(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := aliases[c]; ok {
		return canonical
	}
	return c
}

// Failure classifies a post-acceptance failure code. The rejection table is
// consulted when the failure table has no entry.
func Failure(code string) Classification {
	c := Normalize(code)
	if msg, ok := failureMessages[c]; ok {
		return Classification{Code: c, Category: CategoryFailure, Message: msg, Terminal: true, Known: true}
	}
	if msg, ok := rejectionMessages[c]; ok {
		return Classification{Code: c, Category: CategoryRejection, Message: msg, Terminal: true, Known: true}
	}
	return Classification{
		Code:     c,
		Category: CategoryFailure,
		Message:  fmt.Sprintf("An unknown error occurred (Code: %s). Please contact support.", c),
		Terminal: true,
	}
}

// Rejection classifies an initiation-time rejection code. The failure table
// is consulted when the rejection table has no entry.
func Rejection(code string) Classification {
	c := Normalize(code)
	if msg, ok := rejectionMessages[c]; ok {
		return Classification{Code: c, Category: CategoryRejection, Message: msg, Terminal: true, Known: true}
	}
	if msg, ok := failureMessages[c]; ok {
		return Classification{Code: c, Category: CategoryFailure, Message: msg, Terminal: true, Known: true}
	}
	return Classification{
		Code:     c,
		Category: CategoryRejection,
		Message:  fmt.Sprintf("Your request was rejected (Code: %s). Please review the parameters or try again later.", c),
		Terminal: true,
	}
}

// Status describes a lifecycle status.
func Status(status string) Classification {
	c := strings.ToUpper(strings.TrimSpace(status))
	if e, ok := statuses[c]; ok {
		return Classification{Code: c, Category: CategoryStatus, Message: e.message, Terminal: e.terminal, Known: true}
	}
	return Classification{
		Code:     c,
		Category: CategoryStatus,
		Message:  fmt.Sprintf("Unknown status (Code: %s).", c),
	}
}

func ClassifyFailure(code string) string {
	return Failure(code).Message
}

func ClassifyRejection(code string) string {
	return Rejection(code).Message
}

func DescribeStatus(status string) string {
	return Status(status).Message
}

// IsTerminal reports whether a status is final. Unknown statuses are not.
func IsTerminal(status string) bool {
	return Status(status).Terminal
}
