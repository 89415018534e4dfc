package pawapay

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orris-inc/momogate/internal/domain/payment"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
)

type v1Address struct {
	Value string `json:"value"`
}

type v1Party struct {
	Type    string    `json:"type"`
	Address v1Address `json:"address"`
}

func msisdnParty(msisdn string) v1Party {
	return v1Party{Type: "MSISDN", Address: v1Address{Value: msisdn}}
}

type v1DepositPayload struct {
	DepositID            string          `json:"depositId"`
	Amount               string          `json:"amount"`
	Currency             string          `json:"currency,omitempty"`
	Correspondent        string          `json:"correspondent"`
	Payer                v1Party         `json:"payer"`
	CustomerTimestamp    string          `json:"customerTimestamp"`
	StatementDescription string          `json:"statementDescription"`
	Metadata             []vo.V1Metadata `json:"metadata,omitempty"`
}

type v1PayoutPayload struct {
	PayoutID             string          `json:"payoutId"`
	Amount               string          `json:"amount"`
	Currency             string          `json:"currency,omitempty"`
	Correspondent        string          `json:"correspondent"`
	Recipient            v1Party         `json:"recipient"`
	CustomerTimestamp    string          `json:"customerTimestamp"`
	StatementDescription string          `json:"statementDescription"`
	Metadata             []vo.V1Metadata `json:"metadata,omitempty"`
}

type v1RefundPayload struct {
	RefundID  string          `json:"refundId"`
	DepositID string          `json:"depositId"`
	Amount    string          `json:"amount"`
	Metadata  []vo.V1Metadata `json:"metadata,omitempty"`
}

type v1WidgetPayload struct {
	DepositID            string          `json:"depositId"`
	ReturnURL            string          `json:"returnUrl"`
	StatementDescription string          `json:"statementDescription"`
	Amount               string          `json:"amount,omitempty"`
	MSISDN               string          `json:"msisdn,omitempty"`
	Language             string          `json:"language,omitempty"`
	Country              string          `json:"country,omitempty"`
	Reason               string          `json:"reason,omitempty"`
	Metadata             []vo.V1Metadata `json:"metadata,omitempty"`
}

func v1Metadata(items []vo.MetadataItem) []vo.V1Metadata {
	if len(items) == 0 {
		return nil
	}
	out := make([]vo.V1Metadata, 0, len(items))
	for _, item := range items {
		out = append(out, item.V1())
	}
	return out
}

// V1Adapter speaks the unversioned API: flat payloads with correspondent
// codes and MSISDN addresses.
type V1Adapter struct {
	session *Session
}

func NewV1Adapter(s *Session) *V1Adapter {
	return &V1Adapter{session: s}
}

func (a *V1Adapter) Version() vo.APIVersion {
	return vo.APIVersionV1
}

func (a *V1Adapter) InitiateDeposit(ctx context.Context, req *payment.DepositRequest) (*payment.InitiationResult, error) {
	if req.Narration == "" {
		return nil, missingField(vo.APIVersionV1, "deposits", "narration")
	}
	payload := v1DepositPayload{
		DepositID:            req.TransactionID,
		Amount:               req.Amount,
		Currency:             req.Currency,
		Correspondent:        req.Provider,
		Payer:                msisdnParty(req.MSISDN),
		CustomerTimestamp:    a.session.customerTimestamp(),
		StatementDescription: req.Narration,
		Metadata:             v1Metadata(req.Metadata),
	}
	return a.initiate(ctx, "/deposits", payload)
}

func (a *V1Adapter) InitiatePayout(ctx context.Context, req *payment.PayoutRequest) (*payment.InitiationResult, error) {
	if req.Narration == "" {
		return nil, missingField(vo.APIVersionV1, "payouts", "narration")
	}
	payload := v1PayoutPayload{
		PayoutID:             req.TransactionID,
		Amount:               req.Amount,
		Currency:             req.Currency,
		Correspondent:        req.Provider,
		Recipient:            msisdnParty(req.MSISDN),
		CustomerTimestamp:    a.session.customerTimestamp(),
		StatementDescription: req.Narration,
		Metadata:             v1Metadata(req.Metadata),
	}
	return a.initiate(ctx, "/payouts", payload)
}

func (a *V1Adapter) InitiateRefund(ctx context.Context, req *payment.RefundRequest) (*payment.InitiationResult, error) {
	payload := v1RefundPayload{
		RefundID:  req.RefundID,
		DepositID: req.DepositID,
		Amount:    req.Amount,
		Metadata:  v1Metadata(req.Metadata),
	}
	return a.initiate(ctx, "/refunds", payload)
}

// CreatePaymentPage opens a widget session. The caller must send the user to
// the returned redirect URL before it expires.
func (a *V1Adapter) CreatePaymentPage(ctx context.Context, req *payment.PaymentPageRequest) (*payment.InitiationResult, error) {
	if req.Narration == "" {
		return nil, missingField(vo.APIVersionV1, "payment pages", "narration")
	}
	amount := req.Amount
	if amount == "" && req.AmountDetails != nil {
		amount = req.AmountDetails.Amount
	}
	payload := v1WidgetPayload{
		DepositID:            req.DepositID,
		ReturnURL:            req.ReturnURL,
		StatementDescription: req.Narration,
		Amount:               amount,
		MSISDN:               req.Phone(),
		Language:             req.Language,
		Country:              req.Country,
		Reason:               req.Reason,
		Metadata:             v1Metadata(req.Metadata),
	}
	return a.initiate(ctx, widgetSessionPath(a.session.baseURL), payload)
}

func (a *V1Adapter) initiate(ctx context.Context, path string, payload any) (*payment.InitiationResult, error) {
	resp, err := a.session.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	return toInitiationResult(resp), nil
}

// FetchStatus looks a transaction up. V1 answers with a list of at most one
// element; an empty list means the transaction is not indexed yet and is
// reported as PROCESSING rather than missing.
func (a *V1Adapter) FetchStatus(ctx context.Context, q *payment.StatusQuery) (*payment.StatusResult, error) {
	if q.Type == vo.TransactionTypeRemittance {
		return nil, unsupported(vo.APIVersionV1, "remittance status")
	}

	resp, err := a.session.get(ctx, fmt.Sprintf("/%s/%s", q.Type.Collection(), q.TransactionID), nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return &payment.StatusResult{HTTPStatus: resp.StatusCode, Status: vo.TransactionStatusUnknown, Raw: resp.Body}, nil
	}

	var records []json.RawMessage
	if err := resp.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s status: %w", q.Type, err)
	}
	if len(records) == 0 {
		return pendingStatus(resp.StatusCode, resp.Body), nil
	}
	return statusFromRecord(records[0], resp.StatusCode, resp.Body)
}

// FetchAvailability ignores the query: V1 has no filter parameters.
func (a *V1Adapter) FetchAvailability(ctx context.Context, _ *payment.AvailabilityQuery) (*payment.AvailabilityResult, error) {
	resp, err := a.session.get(ctx, "/availability", nil)
	if err != nil {
		return nil, err
	}
	return decodeAvailability(resp)
}

func (a *V1Adapter) FetchActiveConfiguration(ctx context.Context, _ *payment.AvailabilityQuery) (*payment.ActiveConfiguration, error) {
	resp, err := a.session.get(ctx, "/active-conf", nil)
	if err != nil {
		return nil, err
	}
	return decodeActiveConfiguration(resp)
}
