package paymentgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/orris-inc/momogate/internal/domain/payment"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
)

// mockAdapter records which operations reached it.
type mockAdapter struct {
	mu      sync.Mutex
	version vo.APIVersion
	calls   []string

	httpStatus int
	body       string
	status     string
	err        error

	lastDeposit *payment.DepositRequest
	lastPage    *payment.PaymentPageRequest
}

func newMockAdapter(v vo.APIVersion) *mockAdapter {
	return &mockAdapter{version: v, httpStatus: http.StatusOK, status: payment.InitiationAccepted}
}

func (m *mockAdapter) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
}

func (m *mockAdapter) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockAdapter) raw() json.RawMessage {
	if m.body == "" {
		return nil
	}
	return json.RawMessage(m.body)
}

func (m *mockAdapter) initiation(id string) (*payment.InitiationResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &payment.InitiationResult{HTTPStatus: m.httpStatus, TransactionID: id, Status: m.status, Raw: m.raw()}, nil
}

func (m *mockAdapter) Version() vo.APIVersion { return m.version }

func (m *mockAdapter) InitiateDeposit(_ context.Context, req *payment.DepositRequest) (*payment.InitiationResult, error) {
	m.record("deposit")
	m.lastDeposit = req
	return m.initiation(req.TransactionID)
}

func (m *mockAdapter) InitiatePayout(_ context.Context, req *payment.PayoutRequest) (*payment.InitiationResult, error) {
	m.record("payout")
	return m.initiation(req.TransactionID)
}

func (m *mockAdapter) InitiateRefund(_ context.Context, req *payment.RefundRequest) (*payment.InitiationResult, error) {
	m.record("refund")
	return m.initiation(req.RefundID)
}

func (m *mockAdapter) CreatePaymentPage(_ context.Context, req *payment.PaymentPageRequest) (*payment.InitiationResult, error) {
	m.record("payment page")
	m.lastPage = req
	return m.initiation(req.DepositID)
}

func (m *mockAdapter) FetchStatus(_ context.Context, q *payment.StatusQuery) (*payment.StatusResult, error) {
	m.record("status")
	if m.err != nil {
		return nil, m.err
	}
	return &payment.StatusResult{HTTPStatus: m.httpStatus, Found: true, Status: vo.TransactionStatusCompleted, Final: true, Raw: m.raw()}, nil
}

func (m *mockAdapter) FetchAvailability(_ context.Context, _ *payment.AvailabilityQuery) (*payment.AvailabilityResult, error) {
	m.record("availability")
	if m.err != nil {
		return nil, m.err
	}
	return &payment.AvailabilityResult{
		HTTPStatus: m.httpStatus,
		Raw:        m.raw(),
		Countries: []payment.CountryAvailability{{
			Country: "UGA",
			Providers: []payment.ProviderAvailability{
				{Provider: "MTN_MOMO_UGA", OperationTypes: []payment.OperationStatus{{OperationType: "DEPOSIT", Status: "OPERATIONAL"}}},
				{Provider: "AIRTEL_OAPI_UGA"},
			},
		}},
	}, nil
}

func (m *mockAdapter) FetchActiveConfiguration(_ context.Context, _ *payment.AvailabilityQuery) (*payment.ActiveConfiguration, error) {
	m.record("active-conf")
	if m.err != nil {
		return nil, m.err
	}
	return &payment.ActiveConfiguration{
		HTTPStatus: m.httpStatus,
		Raw:        m.raw(),
		Countries: []payment.CountryConfiguration{{
			Country: "UGA",
			Providers: []payment.ProviderConfiguration{{
				Provider: "MTN_MOMO_UGA",
				Currency: "UGX",
				OperationTypes: []payment.OperationConfiguration{
					{OperationType: "DEPOSIT", MinAmount: "500", MaxAmount: "1000000"},
				},
			}},
		}},
	}, nil
}
