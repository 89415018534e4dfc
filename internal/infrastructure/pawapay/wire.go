package pawapay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/orris-inc/momogate/internal/domain/payment"
	"github.com/orris-inc/momogate/internal/domain/payment/failurecode"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	"github.com/orris-inc/momogate/internal/infrastructure/transport"
)

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// flexString decodes a JSON string or number into its textual form.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// initiationBody covers the fields any create call may echo back.
type initiationBody struct {
	DepositID   string `json:"depositId"`
	PayoutID    string `json:"payoutId"`
	RefundID    string `json:"refundId"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirectUrl"`
}

func (b initiationBody) id() string {
	switch {
	case b.DepositID != "":
		return b.DepositID
	case b.PayoutID != "":
		return b.PayoutID
	default:
		return b.RefundID
	}
}

func toInitiationResult(resp *transport.Response) *payment.InitiationResult {
	result := &payment.InitiationResult{HTTPStatus: resp.StatusCode, Raw: resp.Body}
	var body initiationBody
	if err := resp.Decode(&body); err == nil {
		result.TransactionID = body.id()
		result.Status = body.Status
		result.RedirectURL = body.RedirectURL
	}
	return result
}

type failureReason struct {
	FailureCode    string `json:"failureCode"`
	FailureMessage string `json:"failureMessage"`
}

// transactionRecord is the part of a transaction body the status normalizer
// reads. Everything else stays in Data.
type transactionRecord struct {
	Status        string         `json:"status"`
	FailureReason *failureReason `json:"failureReason"`
}

func statusFromRecord(raw json.RawMessage, httpStatus int, full json.RawMessage) (*payment.StatusResult, error) {
	var rec transactionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode transaction record: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode transaction record: %w", err)
	}

	st := vo.ParseTransactionStatus(rec.Status)
	result := &payment.StatusResult{
		HTTPStatus: httpStatus,
		Found:      true,
		Status:     st,
		Final:      st.IsFinal(),
		Data:       data,
		Raw:        full,
	}
	if rec.FailureReason != nil {
		result.FailureCode = rec.FailureReason.FailureCode
		result.FailureMessage = rec.FailureReason.FailureMessage
	}
	if st == vo.TransactionStatusFailed {
		result.Message = failurecode.ClassifyFailure(result.FailureCode)
	} else {
		result.Message = failurecode.DescribeStatus(rec.Status)
	}
	return result, nil
}

// pendingStatus is the answer for a transaction the provider has not
// indexed yet. It is not final.
func pendingStatus(httpStatus int, raw json.RawMessage) *payment.StatusResult {
	return &payment.StatusResult{
		HTTPStatus: httpStatus,
		Found:      false,
		Status:     vo.TransactionStatusProcessing,
		Final:      false,
		Message:    failurecode.ClassifyFailure("NO CALLBACK"),
		Raw:        raw,
	}
}

// operationTypes accepts both a list of {operationType, ...} objects and a
// map keyed by operation type whose values are either a status string or
// an object.
type operationTypes []operationEntry

type operationEntry struct {
	OperationType       string     `json:"operationType"`
	Status              string     `json:"status"`
	MinTransactionLimit flexString `json:"minTransactionLimit"`
	MaxTransactionLimit flexString `json:"maxTransactionLimit"`
	MinAmount           flexString `json:"minAmount"`
	MaxAmount           flexString `json:"maxAmount"`
}

func (e operationEntry) limits() (string, string) {
	lo, hi := string(e.MinAmount), string(e.MaxAmount)
	if lo == "" {
		lo = string(e.MinTransactionLimit)
	}
	if hi == "" {
		hi = string(e.MaxTransactionLimit)
	}
	return lo, hi
}

func (o *operationTypes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}

	if data[0] == '[' {
		var list []operationEntry
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("decode operationTypes list: %w", err)
		}
		*o = list
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("operationTypes must be a list or an object: %w", err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]operationEntry, 0, len(m))
	for _, k := range keys {
		entry := operationEntry{}
		var status string
		if err := json.Unmarshal(m[k], &status); err == nil {
			entry.Status = status
		} else if err := json.Unmarshal(m[k], &entry); err != nil {
			return fmt.Errorf("decode operationTypes[%s]: %w", k, err)
		}
		entry.OperationType = k
		list = append(list, entry)
	}
	*o = list
	return nil
}

func (o operationTypes) statuses() []payment.OperationStatus {
	out := make([]payment.OperationStatus, 0, len(o))
	for _, e := range o {
		out = append(out, payment.OperationStatus{OperationType: e.OperationType, Status: e.Status})
	}
	return out
}

func (o operationTypes) configurations() []payment.OperationConfiguration {
	out := make([]payment.OperationConfiguration, 0, len(o))
	for _, e := range o {
		lo, hi := e.limits()
		out = append(out, payment.OperationConfiguration{OperationType: e.OperationType, MinAmount: lo, MaxAmount: hi})
	}
	return out
}

// availabilityProvider matches both V1 correspondents and V2 providers.
type availabilityProvider struct {
	Correspondent  string         `json:"correspondent"`
	Provider       string         `json:"provider"`
	OperationTypes operationTypes `json:"operationTypes"`
}

func (p availabilityProvider) code() string {
	if p.Provider != "" {
		return p.Provider
	}
	return p.Correspondent
}

type availabilityCountry struct {
	Country        string                 `json:"country"`
	Correspondents []availabilityProvider `json:"correspondents"`
	Providers      []availabilityProvider `json:"providers"`
}

func decodeAvailability(resp *transport.Response) (*payment.AvailabilityResult, error) {
	result := &payment.AvailabilityResult{HTTPStatus: resp.StatusCode, Raw: resp.Body}
	if !isSuccess(resp.StatusCode) {
		return result, nil
	}

	var countries []availabilityCountry
	if err := resp.Decode(&countries); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}

	result.Countries = make([]payment.CountryAvailability, 0, len(countries))
	for _, c := range countries {
		ca := payment.CountryAvailability{Country: c.Country}
		for _, p := range append(c.Correspondents, c.Providers...) {
			ca.Providers = append(ca.Providers, payment.ProviderAvailability{
				Provider:       p.code(),
				OperationTypes: p.OperationTypes.statuses(),
			})
		}
		result.Countries = append(result.Countries, ca)
	}
	return result, nil
}

type configCurrency struct {
	Currency       string         `json:"currency"`
	OperationTypes operationTypes `json:"operationTypes"`
}

type configProvider struct {
	Correspondent  string           `json:"correspondent"`
	Provider       string           `json:"provider"`
	OwnerName      string           `json:"ownerName"`
	DisplayName    string           `json:"displayName"`
	Currency       string           `json:"currency"`
	OperationTypes operationTypes   `json:"operationTypes"`
	Currencies     []configCurrency `json:"currencies"`
}

// flatten yields one configuration per currency the provider is set up for.
func (p configProvider) flatten() []payment.ProviderConfiguration {
	code := p.Provider
	if code == "" {
		code = p.Correspondent
	}
	owner := p.OwnerName
	if owner == "" {
		owner = p.DisplayName
	}

	if len(p.Currencies) == 0 {
		return []payment.ProviderConfiguration{{
			Provider:       code,
			OwnerName:      owner,
			Currency:       p.Currency,
			OperationTypes: p.OperationTypes.configurations(),
		}}
	}

	out := make([]payment.ProviderConfiguration, 0, len(p.Currencies))
	for _, c := range p.Currencies {
		out = append(out, payment.ProviderConfiguration{
			Provider:       code,
			OwnerName:      owner,
			Currency:       c.Currency,
			OperationTypes: c.OperationTypes.configurations(),
		})
	}
	return out
}

type configCountry struct {
	Country        string           `json:"country"`
	Correspondents []configProvider `json:"correspondents"`
	Providers      []configProvider `json:"providers"`
}

type activeConfBody struct {
	MerchantID   flexString      `json:"merchantId"`
	MerchantName string          `json:"merchantName"`
	CompanyName  string          `json:"companyName"`
	Countries    []configCountry `json:"countries"`
}

func decodeActiveConfiguration(resp *transport.Response) (*payment.ActiveConfiguration, error) {
	result := &payment.ActiveConfiguration{HTTPStatus: resp.StatusCode, Raw: resp.Body}
	if !isSuccess(resp.StatusCode) {
		return result, nil
	}

	var body activeConfBody
	if err := resp.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode active configuration: %w", err)
	}

	result.MerchantID = string(body.MerchantID)
	result.MerchantName = body.MerchantName
	if result.MerchantName == "" {
		result.MerchantName = body.CompanyName
	}
	for _, c := range body.Countries {
		cc := payment.CountryConfiguration{Country: c.Country}
		for _, p := range append(c.Correspondents, c.Providers...) {
			cc.Providers = append(cc.Providers, p.flatten()...)
		}
		result.Countries = append(result.Countries, cc)
	}
	return result, nil
}
