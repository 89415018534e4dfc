// Package paymentgateway is the caller-facing façade over the wire
// adapters. It validates canonical requests, dispatches them to the adapter
// for the configured API version and turns non-success responses into
// classified rejections.
package paymentgateway

import (
	"context"

	"github.com/orris-inc/momogate/internal/domain/payment"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
)

// Adapter is one wire version of the provider API. Implementations perform
// exactly one HTTP round trip per call, never retry and hold no mutable
// state. Non-2xx responses are returned as results, not errors.
type Adapter interface {
	Version() vo.APIVersion

	InitiateDeposit(ctx context.Context, req *payment.DepositRequest) (*payment.InitiationResult, error)
	InitiatePayout(ctx context.Context, req *payment.PayoutRequest) (*payment.InitiationResult, error)
	InitiateRefund(ctx context.Context, req *payment.RefundRequest) (*payment.InitiationResult, error)
	CreatePaymentPage(ctx context.Context, req *payment.PaymentPageRequest) (*payment.InitiationResult, error)

	FetchStatus(ctx context.Context, q *payment.StatusQuery) (*payment.StatusResult, error)
	FetchAvailability(ctx context.Context, q *payment.AvailabilityQuery) (*payment.AvailabilityResult, error)
	FetchActiveConfiguration(ctx context.Context, q *payment.AvailabilityQuery) (*payment.ActiveConfiguration, error)
}
