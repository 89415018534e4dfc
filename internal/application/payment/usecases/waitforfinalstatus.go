package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/momogate/internal/domain/payment"
	apperrors "github.com/orris-inc/momogate/internal/shared/errors"
)

// StatusFetcher is the single façade operation polling needs.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, q payment.StatusQuery) (*payment.StatusResult, error)
}

// WaitForFinalStatus polls until the transaction reaches a final status or
// attempts run out. It never guesses an outcome: if the provider still has
// no record after the last attempt, the last result is returned together
// with payment.ErrStatusUndetermined. A found but unfinished transaction is
// returned with a nil error and Final=false.
func WaitForFinalStatus(ctx context.Context, fetcher StatusFetcher, q payment.StatusQuery, interval time.Duration, attempts int) (*payment.StatusResult, error) {
	if attempts <= 0 {
		return nil, apperrors.NewValidationError("attempts must be positive")
	}

	var last *payment.StatusResult
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return last, ctx.Err()
			case <-timer.C:
			}
		}

		result, err := fetcher.FetchStatus(ctx, q)
		if err != nil {
			return last, err
		}
		last = result
		if result.Final {
			return result, nil
		}
	}

	if !last.Found {
		return last, payment.ErrStatusUndetermined
	}
	return last, nil
}
