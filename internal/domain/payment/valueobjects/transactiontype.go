package valueobjects

import (
	"fmt"
	"strings"
)

// TransactionType is the kind of transaction a status lookup targets.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypePayout     TransactionType = "payout"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeRemittance TransactionType = "remittance"
)

func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %q", s)
	}
	return t, nil
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypePayout, TransactionTypeRefund, TransactionTypeRemittance:
		return true
	default:
		return false
	}
}

// Collection is the URL path segment for the type, e.g. "deposits".
func (t TransactionType) Collection() string {
	return string(t) + "s"
}

func (t TransactionType) String() string {
	return string(t)
}
