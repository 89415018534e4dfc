package valueobjects

import "strings"

// TransactionStatus is the provider lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusAccepted         TransactionStatus = "ACCEPTED"
	TransactionStatusEnqueued         TransactionStatus = "ENQUEUED"
	TransactionStatusSubmitted        TransactionStatus = "SUBMITTED"
	TransactionStatusProcessing       TransactionStatus = "PROCESSING"
	TransactionStatusInReconciliation TransactionStatus = "IN_RECONCILIATION"
	TransactionStatusCompleted        TransactionStatus = "COMPLETED"
	TransactionStatusFailed           TransactionStatus = "FAILED"
	TransactionStatusRejected         TransactionStatus = "REJECTED"
	TransactionStatusUnknown          TransactionStatus = "UNKNOWN"
)

// ParseTransactionStatus never fails; unrecognized values map to
// TransactionStatusUnknown.
func ParseTransactionStatus(s string) TransactionStatus {
	st := TransactionStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case TransactionStatusAccepted, TransactionStatusEnqueued, TransactionStatusSubmitted,
		TransactionStatusProcessing, TransactionStatusInReconciliation, TransactionStatusCompleted,
		TransactionStatusFailed, TransactionStatusRejected:
		return st
	default:
		return TransactionStatusUnknown
	}
}

// IsFinal reports whether no further state change is expected.
func (s TransactionStatus) IsFinal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed || s == TransactionStatusRejected
}

func (s TransactionStatus) String() string {
	return string(s)
}
