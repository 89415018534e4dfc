package payment

import "errors"

var (
	// ErrStatusUndetermined is returned by pollers that ran out of attempts
	// while the provider still had no record of the transaction. It does not
	// imply success or failure.
	ErrStatusUndetermined = errors.New("transaction status undetermined: provider has no record yet")
)
