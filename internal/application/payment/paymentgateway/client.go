package paymentgateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/orris-inc/momogate/internal/domain/payment"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	"github.com/orris-inc/momogate/internal/shared/errors"
	"github.com/orris-inc/momogate/internal/shared/logger"
	"github.com/orris-inc/momogate/internal/shared/utils"
	"github.com/orris-inc/momogate/internal/shared/utils/logutil"
	"github.com/orris-inc/momogate/internal/shared/validation"
)

const rawLogLimit = 512

// Client dispatches every operation to the adapter selected at
// construction. It is safe for concurrent use when its adapters are.
type Client struct {
	adapter  Adapter
	adapters map[vo.APIVersion]Adapter
	base     logger.Interface // untagged, so ForVersion does not stack keys
	logger   logger.Interface
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Interface) Option {
	return func(c *Client) {
		if l != nil {
			c.base = l
		}
	}
}

// NewClient selects the adapter for version among adapters. The others stay
// reachable through ForVersion.
func NewClient(version vo.APIVersion, adapters []Adapter, opts ...Option) (*Client, error) {
	c := &Client{
		adapters: make(map[vo.APIVersion]Adapter, len(adapters)),
		base:     logger.NewNop(),
	}
	for _, a := range adapters {
		c.adapters[a.Version()] = a
	}
	selected, ok := c.adapters[version]
	if !ok {
		return nil, errors.NewUnsupportedError(fmt.Sprintf("no adapter registered for API %s", version))
	}
	c.adapter = selected
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.base.With("api_version", version.String())
	return c, nil
}

// Version returns the wire version calls are dispatched to.
func (c *Client) Version() vo.APIVersion {
	return c.adapter.Version()
}

// ForVersion returns a client that dispatches to another registered version.
func (c *Client) ForVersion(version vo.APIVersion) (*Client, error) {
	a, ok := c.adapters[version]
	if !ok {
		return nil, errors.NewUnsupportedError(fmt.Sprintf("no adapter registered for API %s", version))
	}
	if a == c.adapter {
		return c, nil
	}
	return &Client{
		adapter:  a,
		adapters: c.adapters,
		base:     c.base,
		logger:   c.base.With("api_version", version.String()),
	}, nil
}

// InitiateDeposit validates and sends a deposit.
func (c *Client) InitiateDeposit(ctx context.Context, req payment.DepositRequest) (*payment.InitiationResult, error) {
	transfer, err := normalizeTransfer(req.Transfer)
	if err != nil {
		return nil, err
	}
	req.Transfer = transfer
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	c.logger.Debugw("initiating deposit",
		"deposit_id", req.TransactionID,
		"provider", req.Provider,
		"msisdn", utils.MaskMSISDN(req.MSISDN),
	)
	result, err := c.adapter.InitiateDeposit(ctx, &req)
	return c.checkInitiation("deposit", result, err)
}

// InitiatePayout validates and sends a payout.
func (c *Client) InitiatePayout(ctx context.Context, req payment.PayoutRequest) (*payment.InitiationResult, error) {
	transfer, err := normalizeTransfer(req.Transfer)
	if err != nil {
		return nil, err
	}
	req.Transfer = transfer
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	c.logger.Debugw("initiating payout",
		"payout_id", req.TransactionID,
		"provider", req.Provider,
		"msisdn", utils.MaskMSISDN(req.MSISDN),
	)
	result, err := c.adapter.InitiatePayout(ctx, &req)
	return c.checkInitiation("payout", result, err)
}

// InitiateRefund validates and sends a refund of a completed deposit.
func (c *Client) InitiateRefund(ctx context.Context, req payment.RefundRequest) (*payment.InitiationResult, error) {
	if err := validation.ValidateTransactionID(req.RefundID); err != nil {
		return nil, err
	}
	if err := validation.ValidateTransactionID(req.DepositID); err != nil {
		return nil, err
	}
	if _, err := validation.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validation.ValidateMetadata(req.Metadata); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	c.logger.Debugw("initiating refund", "refund_id", req.RefundID, "deposit_id", req.DepositID)
	result, err := c.adapter.InitiateRefund(ctx, &req)
	return c.checkInitiation("refund", result, err)
}

// CreatePaymentPage opens a hosted payment session. The returned redirect
// URL expires after roughly fifteen minutes.
func (c *Client) CreatePaymentPage(ctx context.Context, req payment.PaymentPageRequest) (*payment.InitiationResult, error) {
	if err := validation.ValidateTransactionID(req.DepositID); err != nil {
		return nil, err
	}
	if req.Amount != "" {
		if _, err := validation.ValidateAmount(req.Amount); err != nil {
			return nil, err
		}
	}
	if req.Narration != "" {
		if _, err := validation.ValidateNarration(req.Narration, validation.DefaultNarrationMaxLength); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateMetadata(req.Metadata); err != nil {
		return nil, err
	}
	if req.Language != "" {
		lang, err := validation.NormalizeLanguage(req.Language)
		if err != nil {
			return nil, err
		}
		req.Language = lang
	}
	req.PhoneNumber = validation.NormalizeMSISDN(req.PhoneNumber)
	req.MSISDN = validation.NormalizeMSISDN(req.MSISDN)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	c.logger.Debugw("creating payment page", "deposit_id", req.DepositID)
	result, err := c.adapter.CreatePaymentPage(ctx, &req)
	return c.checkInitiation("payment page", result, err)
}

// FetchStatus looks a transaction up. A transaction the provider has not
// indexed yet comes back as PROCESSING with Found=false.
func (c *Client) FetchStatus(ctx context.Context, q payment.StatusQuery) (*payment.StatusResult, error) {
	if err := validation.ValidateTransactionID(q.TransactionID); err != nil {
		return nil, err
	}
	if !q.Type.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown transaction type %q", q.Type))
	}

	result, err := c.adapter.FetchStatus(ctx, &q)
	if err != nil {
		return nil, err
	}
	if !isSuccess(result.HTTPStatus) {
		return nil, c.reject(q.Type.String()+" status", result.HTTPStatus, result.Raw)
	}

	c.logger.Debugw("fetched status",
		"transaction_id", q.TransactionID,
		"type", q.Type.String(),
		"found", result.Found,
		"status", result.Status.String(),
	)
	return result, nil
}

// FetchAvailability reports provider availability. Filters are ignored on V1.
func (c *Client) FetchAvailability(ctx context.Context, q payment.AvailabilityQuery) (*payment.AvailabilityResult, error) {
	if err := validateAvailabilityQuery(q); err != nil {
		return nil, err
	}
	result, err := c.adapter.FetchAvailability(ctx, &q)
	if err != nil {
		return nil, err
	}
	if !isSuccess(result.HTTPStatus) {
		return nil, c.reject("availability", result.HTTPStatus, result.Raw)
	}
	return result, nil
}

// FetchActiveConfiguration reports the merchant account configuration.
func (c *Client) FetchActiveConfiguration(ctx context.Context, q payment.AvailabilityQuery) (*payment.ActiveConfiguration, error) {
	if err := validateAvailabilityQuery(q); err != nil {
		return nil, err
	}
	result, err := c.adapter.FetchActiveConfiguration(ctx, &q)
	if err != nil {
		return nil, err
	}
	if !isSuccess(result.HTTPStatus) {
		return nil, c.reject("active configuration", result.HTTPStatus, result.Raw)
	}
	return result, nil
}

// AvailabilityReport joins availability with the active configuration,
// keeping only providers the merchant is configured for.
func (c *Client) AvailabilityReport(ctx context.Context, q payment.AvailabilityQuery) ([]payment.ProviderReport, error) {
	availability, err := c.FetchAvailability(ctx, q)
	if err != nil {
		return nil, err
	}
	conf, err := c.FetchActiveConfiguration(ctx, q)
	if err != nil {
		return nil, err
	}
	return payment.MergeAvailability(availability.Countries, conf), nil
}

func normalizeTransfer(t payment.Transfer) (payment.Transfer, error) {
	if err := validation.ValidateTransactionID(t.TransactionID); err != nil {
		return t, err
	}
	if _, err := validation.ValidateAmount(t.Amount); err != nil {
		return t, err
	}
	if t.Narration != "" {
		if _, err := validation.ValidateNarration(t.Narration, validation.DefaultNarrationMaxLength); err != nil {
			return t, err
		}
	}
	if err := validation.ValidateMetadata(t.Metadata); err != nil {
		return t, err
	}
	msisdn, err := validation.ValidateMSISDN(t.MSISDN)
	if err != nil {
		return t, err
	}
	t.MSISDN = msisdn
	return t, nil
}

func validateAvailabilityQuery(q payment.AvailabilityQuery) error {
	if q.Country != "" {
		if err := validation.ValidateCountry(q.Country); err != nil {
			return err
		}
	}
	return validation.Struct(q)
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func (c *Client) checkInitiation(op string, result *payment.InitiationResult, err error) (*payment.InitiationResult, error) {
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		return nil, c.reject(op, result.HTTPStatus, result.Raw)
	}
	c.logger.Debugw(op+" accepted", "transaction_id", result.TransactionID, "status", result.Status)
	return result, nil
}

// reject wraps a RejectionError in an AppError so callers can match either.
func (c *Client) reject(op string, httpStatus int, raw []byte) error {
	rej := newRejection(op, httpStatus, raw)
	c.logger.Warnw("request rejected by provider",
		"operation", op,
		"http_status", httpStatus,
		"code", rej.Classification.Code,
		"body", logutil.TruncateForLog(string(raw), rawLogLimit),
	)
	return errors.NewRejectedError(rej.Classification.Message, rej.Error()).WithCause(rej)
}
