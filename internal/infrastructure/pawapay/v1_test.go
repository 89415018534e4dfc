package pawapay

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/momogate/internal/domain/payment"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	"github.com/orris-inc/momogate/internal/shared/errors"
)

const (
	testDepositID = "f4401bd2-1568-4140-bf2d-eb77d2b2b639"
	testRefundID  = "8a1d2c9e-7b7e-4f7e-9d5b-0c3f1e0b7a21"
)

func newV1(t *testing.T, tr *recordingTransport, baseURL string) *V1Adapter {
	t.Helper()
	s, err := NewSession(Config{
		Environment: vo.EnvironmentSandbox,
		BaseURL:     baseURL,
		APIToken:    "tok",
		APIVersion:  vo.APIVersionV1,
	}, WithTransport(tr), WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	return NewV1Adapter(s)
}

func sampleDeposit() *payment.DepositRequest {
	return &payment.DepositRequest{Transfer: payment.Transfer{
		TransactionID: testDepositID,
		Amount:        "100.00",
		Currency:      "UGX",
		MSISDN:        "256783456789",
		Provider:      "MTN_MOMO_UGA",
		Narration:     "Order 123",
	}}
}

func TestV1Adapter_InitiateDeposit(t *testing.T) {
	tr := newRecordingTransport(http.StatusOK, `{"depositId":"`+testDepositID+`","status":"ACCEPTED","created":"2024-03-01T10:30:01Z"}`)
	a := newV1(t, tr, "")

	result, err := a.InitiateDeposit(context.Background(), sampleDeposit())
	require.NoError(t, err)

	req := tr.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://api.sandbox.pawapay.io/deposits", req.URL)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))

	body := payloadOf(t, req)
	assert.Equal(t, "MTN_MOMO_UGA", body["correspondent"])
	assert.Equal(t, map[string]any{"type": "MSISDN", "address": map[string]any{"value": "256783456789"}}, body["payer"])
	assert.Equal(t, "Order 123", body["statementDescription"])
	assert.Equal(t, "100.00", body["amount"])
	assert.Equal(t, "UGX", body["currency"])
	assert.Equal(t, "2024-03-01T10:30:00Z", body["customerTimestamp"])
	_, err = time.Parse(time.RFC3339, body["customerTimestamp"].(string))
	assert.NoError(t, err)
	assert.NotContains(t, body, "metadata")
	assert.NotContains(t, body, "provider")

	assert.Equal(t, http.StatusOK, result.HTTPStatus)
	assert.Equal(t, testDepositID, result.TransactionID)
	assert.Equal(t, "ACCEPTED", result.Status)
	assert.True(t, result.Succeeded())
}

func TestV1Adapter_InitiateDeposit_OmitsAbsentCurrency(t *testing.T) {
	tr := okTransport()
	req := sampleDeposit()
	req.Currency = ""

	_, err := newV1(t, tr, "").InitiateDeposit(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, payloadOf(t, tr.last(t)), "currency")
}

func TestV1Adapter_InitiateDeposit_RequiresNarration(t *testing.T) {
	tr := okTransport()
	req := sampleDeposit()
	req.Narration = ""

	_, err := newV1(t, tr, "").InitiateDeposit(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Zero(t, tr.count())
}

func TestV1Adapter_InitiatePayout(t *testing.T) {
	tr := okTransport()
	req := &payment.PayoutRequest{Transfer: sampleDeposit().Transfer}
	req.Metadata = []vo.MetadataItem{
		vo.NewMetadataItem("orderId", "ORD1").WithPII(false),
		{Name: "customerId", Value: "c-1", Shape: vo.MetadataShapeV2},
	}

	_, err := newV1(t, tr, "").InitiatePayout(context.Background(), req)
	require.NoError(t, err)

	r := tr.last(t)
	assert.Equal(t, "https://api.sandbox.pawapay.io/payouts", r.URL)
	body := payloadOf(t, r)
	assert.Equal(t, testDepositID, body["payoutId"])
	assert.Equal(t, map[string]any{"type": "MSISDN", "address": map[string]any{"value": "256783456789"}}, body["recipient"])
	assert.Equal(t, []any{
		map[string]any{"fieldName": "orderId", "fieldValue": "ORD1", "isPII": false},
		map[string]any{"fieldName": "customerId", "fieldValue": "c-1"},
	}, body["metadata"])
}

func TestV1Adapter_InitiateRefund(t *testing.T) {
	tr := okTransport()
	_, err := newV1(t, tr, "").InitiateRefund(context.Background(), &payment.RefundRequest{
		RefundID:  testRefundID,
		DepositID: testDepositID,
		Amount:    "50",
		Currency:  "UGX",
	})
	require.NoError(t, err)

	r := tr.last(t)
	assert.Equal(t, "https://api.sandbox.pawapay.io/refunds", r.URL)
	assert.Equal(t, map[string]any{"refundId": testRefundID, "depositId": testDepositID, "amount": "50"}, payloadOf(t, r))
}

func TestV1Adapter_CreatePaymentPage(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantURL string
	}{
		{name: "plain host", baseURL: "https://api.sandbox.pawapay.io", wantURL: "https://api.sandbox.pawapay.io/v1/widget/sessions"},
		{name: "host ending in v1", baseURL: "https://api.sandbox.pawapay.io/v1", wantURL: "https://api.sandbox.pawapay.io/v1/widget/sessions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newRecordingTransport(http.StatusOK, `{"redirectUrl":"https://paywith.pawapay.io/?token=abc"}`)
			result, err := newV1(t, tr, tt.baseURL).CreatePaymentPage(context.Background(), &payment.PaymentPageRequest{
				DepositID: testDepositID,
				ReturnURL: "https://merchant.test/done",
				Narration: "Order 123",
				Amount:    "15",
				MSISDN:    "256783456789",
				Language:  "EN",
				Country:   "UGA",
			})
			require.NoError(t, err)

			r := tr.last(t)
			assert.Equal(t, tt.wantURL, r.URL)
			body := payloadOf(t, r)
			assert.Equal(t, "Order 123", body["statementDescription"])
			assert.Equal(t, "256783456789", body["msisdn"])
			assert.Equal(t, "15", body["amount"])
			assert.NotContains(t, body, "reason")
			assert.Equal(t, "https://paywith.pawapay.io/?token=abc", result.RedirectURL)
		})
	}
}

func TestV1Adapter_FetchStatus(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantFound   bool
		wantStatus  vo.TransactionStatus
		wantFinal   bool
		wantFailure string
	}{
		{name: "empty list", body: `[]`, wantStatus: vo.TransactionStatusProcessing},
		{name: "empty body", body: ``, wantStatus: vo.TransactionStatusProcessing},
		{name: "completed", body: `[{"depositId":"x","status":"COMPLETED"}]`, wantFound: true, wantStatus: vo.TransactionStatusCompleted, wantFinal: true},
		{name: "submitted", body: `[{"status":"SUBMITTED"}]`, wantFound: true, wantStatus: vo.TransactionStatusSubmitted},
		{
			name:        "failed",
			body:        `[{"status":"FAILED","failureReason":{"failureCode":"OTHER_ERROR","failureMessage":"boom"}}]`,
			wantFound:   true,
			wantStatus:  vo.TransactionStatusFailed,
			wantFinal:   true,
			wantFailure: "OTHER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newRecordingTransport(http.StatusOK, tt.body)
			result, err := newV1(t, tr, "").FetchStatus(context.Background(), &payment.StatusQuery{
				TransactionID: testDepositID,
				Type:          vo.TransactionTypeDeposit,
			})
			require.NoError(t, err)

			assert.Equal(t, "https://api.sandbox.pawapay.io/deposits/"+testDepositID, tr.last(t).URL)
			assert.Equal(t, tt.wantFound, result.Found)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantFinal, result.Final)
			assert.Equal(t, tt.wantFailure, result.FailureCode)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestV1Adapter_FetchStatus_FailedMessageIsClassified(t *testing.T) {
	tr := newRecordingTransport(http.StatusOK, `[{"status":"FAILED","failureReason":{"failureCode":"INSUFFICIENT_BALANCE"}}]`)
	result, err := newV1(t, tr, "").FetchStatus(context.Background(), &payment.StatusQuery{TransactionID: testDepositID, Type: vo.TransactionTypePayout})
	require.NoError(t, err)
	assert.Equal(t, "The customer does not have enough funds.", result.Message)
	assert.Equal(t, "https://api.sandbox.pawapay.io/payouts/"+testDepositID, tr.last(t).URL)
}

func TestV1Adapter_FetchStatus_RemittanceUnsupported(t *testing.T) {
	tr := okTransport()
	_, err := newV1(t, tr, "").FetchStatus(context.Background(), &payment.StatusQuery{
		TransactionID: testDepositID,
		Type:          vo.TransactionTypeRemittance,
	})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedError(err))
	assert.Zero(t, tr.count(), "must not reach the wire")
}

func TestV1Adapter_FetchStatus_NonSuccessPassesThrough(t *testing.T) {
	tr := newRecordingTransport(http.StatusUnauthorized, `{"errorCode":"AUTHENTICATION_ERROR"}`)
	result, err := newV1(t, tr, "").FetchStatus(context.Background(), &payment.StatusQuery{TransactionID: testDepositID, Type: vo.TransactionTypeRefund})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, result.HTTPStatus)
	assert.False(t, result.Found)
	assert.JSONEq(t, `{"errorCode":"AUTHENTICATION_ERROR"}`, string(result.Raw))
}

func TestV1Adapter_TransportErrorPropagates(t *testing.T) {
	tr := okTransport()
	tr.err = errors.NewTransportError("dial failed")

	_, err := newV1(t, tr, "").InitiateDeposit(context.Background(), sampleDeposit())
	require.Error(t, err)
	assert.True(t, errors.IsTransportError(err))
}

func TestV1Adapter_FetchAvailability(t *testing.T) {
	tr := newRecordingTransport(http.StatusOK, `[
		{"country":"UGA","correspondents":[
			{"correspondent":"MTN_MOMO_UGA","operationTypes":[
				{"operationType":"DEPOSIT","status":"OPERATIONAL"},
				{"operationType":"PAYOUT","status":"DELAYED"}
			]}
		]}
	]`)

	result, err := newV1(t, tr, "").FetchAvailability(context.Background(), &payment.AvailabilityQuery{Country: "UGA"})
	require.NoError(t, err)

	r := tr.last(t)
	assert.Equal(t, "https://api.sandbox.pawapay.io/availability", r.URL)
	assert.Empty(t, r.Query, "v1 has no filter parameters")

	require.Len(t, result.Countries, 1)
	require.Len(t, result.Countries[0].Providers, 1)
	p := result.Countries[0].Providers[0]
	assert.Equal(t, "MTN_MOMO_UGA", p.Provider)
	assert.Equal(t, []payment.OperationStatus{
		{OperationType: "DEPOSIT", Status: "OPERATIONAL"},
		{OperationType: "PAYOUT", Status: "DELAYED"},
	}, p.OperationTypes)
}

func TestV1Adapter_FetchActiveConfiguration(t *testing.T) {
	tr := newRecordingTransport(http.StatusOK, `{
		"merchantId":"1234","merchantName":"Demo Ltd",
		"countries":[{"country":"UGA","correspondents":[{
			"correspondent":"MTN_MOMO_UGA","currency":"UGX","ownerName":"MTN Uganda",
			"operationTypes":[{"operationType":"DEPOSIT","minTransactionLimit":"500","maxTransactionLimit":5000000}]
		}]}]
	}`)

	conf, err := newV1(t, tr, "").FetchActiveConfiguration(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "https://api.sandbox.pawapay.io/active-conf", tr.last(t).URL)
	assert.Equal(t, "1234", conf.MerchantID)
	assert.Equal(t, "Demo Ltd", conf.MerchantName)

	providers := conf.Providers("UGA", "MTN_MOMO_UGA")
	require.Len(t, providers, 1)
	p := providers[0]
	assert.Equal(t, "MTN Uganda", p.OwnerName)
	assert.Equal(t, "UGX", p.Currency)
	assert.Equal(t, []payment.OperationConfiguration{
		{OperationType: "DEPOSIT", MinAmount: "500", MaxAmount: "5000000"},
	}, p.OperationTypes)
}
