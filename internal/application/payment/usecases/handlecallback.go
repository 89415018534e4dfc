package usecases

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/orris-inc/momogate/internal/domain/payment/failurecode"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	apperrors "github.com/orris-inc/momogate/internal/shared/errors"
	"github.com/orris-inc/momogate/internal/shared/logger"
)

// CallbackPayload is the body the provider posts when a transaction changes
// state. Only Status is required.
type CallbackPayload struct {
	Status        string         `json:"status" binding:"required"`
	DepositID     string         `json:"depositId,omitempty"`
	PayoutID      string         `json:"payoutId,omitempty"`
	RefundID      string         `json:"refundId,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	Amount        json.Number    `json:"amount,omitempty"`
	Currency      string         `json:"currency,omitempty"`
	Provider      string         `json:"provider,omitempty"`
	Correspondent string         `json:"correspondent,omitempty"`
	FailureReason *FailureReason `json:"failureReason,omitempty"`
	Error         string         `json:"error,omitempty"`
}

type FailureReason struct {
	FailureCode    string `json:"failureCode"`
	FailureMessage string `json:"failureMessage"`
}

// ID returns whichever transaction id the payload carries.
func (p *CallbackPayload) ID() string {
	for _, id := range []string{p.DepositID, p.PayoutID, p.RefundID, p.TransactionID} {
		if id != "" {
			return id
		}
	}
	return ""
}

func (p *CallbackPayload) failureCode() string {
	if p.FailureReason != nil && p.FailureReason.FailureCode != "" {
		return p.FailureReason.FailureCode
	}
	return p.Error
}

type CallbackOutcome string

const (
	CallbackCompleted CallbackOutcome = "completed"
	CallbackFailed    CallbackOutcome = "failed"
	CallbackOther     CallbackOutcome = "other"
	CallbackDuplicate CallbackOutcome = "duplicate"
)

type CallbackResult struct {
	TransactionID string          `json:"transactionId"`
	Status        string          `json:"status"`
	Outcome       CallbackOutcome `json:"outcome"`
	FailureCode   string          `json:"failureCode,omitempty"`
	Message       string          `json:"message"`
}

// ReplayGuard reports whether a (transaction, status) delivery is new.
type ReplayGuard interface {
	FirstDelivery(ctx context.Context, transactionID, status string) (bool, error)
}

// HandleCallbackUseCase logs provider callbacks. It trusts the payload: there
// is no signature verification, so it must not drive money movement until
// one is added.
type HandleCallbackUseCase struct {
	replayGuard ReplayGuard // Optional
	logger      logger.Interface
}

func NewHandleCallbackUseCase(logger logger.Interface) *HandleCallbackUseCase {
	return &HandleCallbackUseCase{logger: logger}
}

// SetReplayGuard enables duplicate suppression (optional dependency injection)
func (uc *HandleCallbackUseCase) SetReplayGuard(guard ReplayGuard) {
	uc.replayGuard = guard
}

func (uc *HandleCallbackUseCase) Execute(ctx context.Context, p *CallbackPayload) (*CallbackResult, error) {
	status := strings.ToUpper(strings.TrimSpace(p.Status))
	if status == "" {
		return nil, apperrors.NewBadRequestError("callback status is required")
	}

	result := &CallbackResult{TransactionID: p.ID(), Status: status}

	if uc.replayGuard != nil && result.TransactionID != "" {
		first, err := uc.replayGuard.FirstDelivery(ctx, result.TransactionID, status)
		if err != nil {
			uc.logger.Warnw("replay guard unavailable, processing callback anyway",
				"transaction_id", result.TransactionID,
				"error", err,
			)
		} else if !first {
			uc.logger.Infow("duplicate callback ignored",
				"transaction_id", result.TransactionID,
				"status", status,
			)
			result.Outcome = CallbackDuplicate
			result.Message = failurecode.DescribeStatus("DUPLICATE_IGNORED")
			return result, nil
		}
	}

	switch vo.ParseTransactionStatus(status) {
	case vo.TransactionStatusCompleted:
		result.Outcome = CallbackCompleted
		result.Message = failurecode.DescribeStatus(status)
		uc.logger.Infow("transaction completed",
			"transaction_id", result.TransactionID,
			"amount", p.Amount.String(),
			"currency", p.Currency,
		)
	case vo.TransactionStatusFailed:
		result.Outcome = CallbackFailed
		result.FailureCode = p.failureCode()
		result.Message = failurecode.ClassifyFailure(result.FailureCode)
		uc.logger.Infow("transaction failed",
			"transaction_id", result.TransactionID,
			"amount", p.Amount.String(),
			"failure_code", result.FailureCode,
			"reason", result.Message,
		)
	default:
		result.Outcome = CallbackOther
		result.Message = failurecode.DescribeStatus(status)
		uc.logger.Warnw("unhandled callback status",
			"transaction_id", result.TransactionID,
			"status", status,
		)
	}

	return result, nil
}
