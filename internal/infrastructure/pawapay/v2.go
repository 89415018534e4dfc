package pawapay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/orris-inc/momogate/internal/domain/payment"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	"github.com/orris-inc/momogate/internal/shared/validation"
)

type v2AccountDetails struct {
	PhoneNumber string `json:"phoneNumber"`
	Provider    string `json:"provider"`
}

type v2Party struct {
	Type           string           `json:"type"`
	AccountDetails v2AccountDetails `json:"accountDetails"`
}

func mmoParty(phone, provider string) v2Party {
	return v2Party{Type: "MMO", AccountDetails: v2AccountDetails{PhoneNumber: phone, Provider: provider}}
}

type v2DepositPayload struct {
	DepositID            string          `json:"depositId"`
	Payer                v2Party         `json:"payer"`
	Amount               string          `json:"amount"`
	Currency             string          `json:"currency"`
	CustomerMessage      string          `json:"customerMessage,omitempty"`
	ClientReferenceID    string          `json:"clientReferenceId,omitempty"`
	PreAuthorisationCode string          `json:"preAuthorisationCode,omitempty"`
	Metadata             []vo.V2Metadata `json:"metadata,omitempty"`
}

type v2PayoutPayload struct {
	PayoutID          string          `json:"payoutId"`
	Recipient         v2Party         `json:"recipient"`
	Amount            string          `json:"amount"`
	Currency          string          `json:"currency"`
	CustomerMessage   string          `json:"customerMessage,omitempty"`
	ClientReferenceID string          `json:"clientReferenceId,omitempty"`
	Metadata          []vo.V2Metadata `json:"metadata,omitempty"`
}

type v2RefundPayload struct {
	RefundID  string          `json:"refundId"`
	DepositID string          `json:"depositId"`
	Amount    string          `json:"amount"`
	Currency  string          `json:"currency"`
	Metadata  []vo.V2Metadata `json:"metadata,omitempty"`
}

type v2PaymentPagePayload struct {
	DepositID       string                 `json:"depositId"`
	ReturnURL       string                 `json:"returnUrl"`
	CustomerMessage string                 `json:"customerMessage,omitempty"`
	AmountDetails   *payment.AmountDetails `json:"amountDetails,omitempty"`
	PhoneNumber     string                 `json:"phoneNumber,omitempty"`
	Language        string                 `json:"language,omitempty"`
	Country         string                 `json:"country,omitempty"`
	Reason          string                 `json:"reason,omitempty"`
	Metadata        []vo.V2Metadata        `json:"metadata,omitempty"`
}

// v2Metadata translates every item to the {"<name>": "<value>"} layout.
// Items already in that layout come out unchanged.
func v2Metadata(items []vo.MetadataItem) []vo.V2Metadata {
	if len(items) == 0 {
		return nil
	}
	out := make([]vo.V2Metadata, 0, len(items))
	for _, item := range items {
		out = append(out, item.V2())
	}
	return out
}

// V2Adapter speaks the /v2 API: MMO account details, provider codes and
// wrapped status responses.
type V2Adapter struct {
	session *Session
}

func NewV2Adapter(s *Session) *V2Adapter {
	return &V2Adapter{session: s}
}

func (a *V2Adapter) Version() vo.APIVersion {
	return vo.APIVersionV2
}

func (a *V2Adapter) InitiateDeposit(ctx context.Context, req *payment.DepositRequest) (*payment.InitiationResult, error) {
	if req.Currency == "" {
		return nil, missingField(vo.APIVersionV2, "deposits", "currency")
	}
	payload := v2DepositPayload{
		DepositID:            req.TransactionID,
		Payer:                mmoParty(req.MSISDN, req.Provider),
		Amount:               req.Amount,
		Currency:             req.Currency,
		CustomerMessage:      req.Narration,
		ClientReferenceID:    req.ClientReferenceID,
		PreAuthorisationCode: req.PreAuthCode,
		Metadata:             v2Metadata(req.Metadata),
	}
	return a.initiate(ctx, "/v2/deposits", payload)
}

func (a *V2Adapter) InitiatePayout(ctx context.Context, req *payment.PayoutRequest) (*payment.InitiationResult, error) {
	if req.Currency == "" {
		return nil, missingField(vo.APIVersionV2, "payouts", "currency")
	}
	payload := v2PayoutPayload{
		PayoutID:          req.TransactionID,
		Recipient:         mmoParty(req.MSISDN, req.Provider),
		Amount:            req.Amount,
		Currency:          req.Currency,
		CustomerMessage:   req.Narration,
		ClientReferenceID: req.ClientReferenceID,
		Metadata:          v2Metadata(req.Metadata),
	}
	return a.initiate(ctx, "/v2/payouts", payload)
}

// InitiateRefund requires the currency of the original deposit; a missing
// currency fails before any request is sent.
func (a *V2Adapter) InitiateRefund(ctx context.Context, req *payment.RefundRequest) (*payment.InitiationResult, error) {
	if req.Currency == "" {
		return nil, missingField(vo.APIVersionV2, "refunds", "currency")
	}
	payload := v2RefundPayload{
		RefundID:  req.RefundID,
		DepositID: req.DepositID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Metadata:  v2Metadata(req.Metadata),
	}
	return a.initiate(ctx, "/v2/refunds", payload)
}

// CreatePaymentPage opens a hosted payment page. A preformed AmountDetails
// takes precedence over the Amount/Currency pair.
func (a *V2Adapter) CreatePaymentPage(ctx context.Context, req *payment.PaymentPageRequest) (*payment.InitiationResult, error) {
	details := req.AmountDetails
	if details == nil && req.Amount != "" {
		if req.Currency == "" {
			return nil, missingField(vo.APIVersionV2, "payment pages with an amount", "currency")
		}
		details = &payment.AmountDetails{Amount: req.Amount, Currency: req.Currency}
	}

	payload := v2PaymentPagePayload{
		DepositID:       req.DepositID,
		ReturnURL:       req.ReturnURL,
		CustomerMessage: req.Narration,
		AmountDetails:   details,
		PhoneNumber:     validation.NormalizeMSISDN(req.Phone()),
		Language:        req.Language,
		Country:         req.Country,
		Reason:          req.Reason,
		Metadata:        v2Metadata(req.Metadata),
	}
	return a.initiate(ctx, "/v2/paymentpage", payload)
}

func (a *V2Adapter) initiate(ctx context.Context, path string, payload any) (*payment.InitiationResult, error) {
	resp, err := a.session.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	return toInitiationResult(resp), nil
}

type v2StatusBody struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// FetchStatus looks a transaction up. NOT_FOUND is reported as PROCESSING
// with Found=false: the provider indexes new transactions asynchronously, so
// an unknown id right after initiation is expected and not final.
func (a *V2Adapter) FetchStatus(ctx context.Context, q *payment.StatusQuery) (*payment.StatusResult, error) {
	resp, err := a.session.get(ctx, fmt.Sprintf("/v2/%s/%s", q.Type.Collection(), q.TransactionID), nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return &payment.StatusResult{HTTPStatus: resp.StatusCode, Status: vo.TransactionStatusUnknown, Raw: resp.Body}, nil
	}

	var body v2StatusBody
	if err := resp.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s status: %w", q.Type, err)
	}
	if body.Status != "FOUND" || len(body.Data) == 0 || string(body.Data) == "null" {
		return pendingStatus(resp.StatusCode, resp.Body), nil
	}
	return statusFromRecord(body.Data, resp.StatusCode, resp.Body)
}

func (a *V2Adapter) FetchAvailability(ctx context.Context, q *payment.AvailabilityQuery) (*payment.AvailabilityResult, error) {
	resp, err := a.session.get(ctx, "/v2/availability", filterQuery(q))
	if err != nil {
		return nil, err
	}
	return decodeAvailability(resp)
}

func (a *V2Adapter) FetchActiveConfiguration(ctx context.Context, q *payment.AvailabilityQuery) (*payment.ActiveConfiguration, error) {
	resp, err := a.session.get(ctx, "/v2/active-conf", filterQuery(q))
	if err != nil {
		return nil, err
	}
	return decodeActiveConfiguration(resp)
}

func filterQuery(q *payment.AvailabilityQuery) url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	if q.Country != "" {
		v.Set("country", q.Country)
	}
	if q.OperationType != "" {
		v.Set("operationType", q.OperationType)
	}
	if len(v) == 0 {
		return nil
	}
	return v
}
