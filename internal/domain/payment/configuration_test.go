package payment

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfiguration() *ActiveConfiguration {
	return &ActiveConfiguration{
		MerchantID:   "1",
		MerchantName: "Demo",
		Countries: []CountryConfiguration{
			{
				Country: "UGA",
				Providers: []ProviderConfiguration{
					{
						Provider:  "MTN_MOMO_UGA",
						OwnerName: "MTN Uganda",
						Currency:  "UGX",
						OperationTypes: []OperationConfiguration{
							{OperationType: "DEPOSIT", MinAmount: "500", MaxAmount: "5000000"},
						},
					},
				},
			},
			{
				Country: "BEN",
				Providers: []ProviderConfiguration{
					{Provider: "MOOV_BEN", Currency: "XOF"},
				},
			},
		},
	}
}

func TestMergeAvailability(t *testing.T) {
	availability := []CountryAvailability{
		{
			Country: "UGA",
			Providers: []ProviderAvailability{
				{
					Provider: "MTN_MOMO_UGA",
					OperationTypes: []OperationStatus{
						{OperationType: "DEPOSIT", Status: "OPERATIONAL"},
						{OperationType: "PAYOUT", Status: "DELAYED"},
					},
				},
				{Provider: "AIRTEL_OAPI_UGA"},
			},
		},
		{
			Country:   "BEN",
			Providers: []ProviderAvailability{{Provider: "MOOV_BEN"}},
		},
	}

	reports := MergeAvailability(availability, sampleConfiguration())

	require.Len(t, reports, 2, "providers without configuration are skipped")
	assert.Equal(t, "BEN", reports[0].Country)
	assert.Equal(t, "MOOV_BEN", reports[0].Provider)

	mtn := reports[1]
	assert.Equal(t, "MTN Uganda", mtn.OwnerName)
	assert.Equal(t, "UGX", mtn.Currency)
	require.Len(t, mtn.Operations, 2)
	assert.Equal(t, OperationReport{OperationType: "DEPOSIT", Status: "OPERATIONAL", MinAmount: "500", MaxAmount: "5000000"}, mtn.Operations[0])
	assert.Equal(t, OperationReport{OperationType: "PAYOUT", Status: "DELAYED"}, mtn.Operations[1])
}

func TestMergeAvailability_NilConfiguration(t *testing.T) {
	assert.Nil(t, MergeAvailability([]CountryAvailability{{Country: "UGA"}}, nil))
}

func TestActiveConfiguration_Providers(t *testing.T) {
	conf := sampleConfiguration()

	providers := conf.Providers("UGA", "MTN_MOMO_UGA")
	require.Len(t, providers, 1)
	assert.Equal(t, "UGX", providers[0].Currency)

	assert.Empty(t, conf.Providers("BEN", "MTN_MOMO_UGA"))
}

func TestMergeAvailability_MultiCurrencyProvider(t *testing.T) {
	conf := &ActiveConfiguration{
		Countries: []CountryConfiguration{
			{
				Country: "COD",
				Providers: []ProviderConfiguration{
					{
						Provider: "VODACOM_MPESA_COD",
						Currency: "USD",
						OperationTypes: []OperationConfiguration{
							{OperationType: "DEPOSIT", MinAmount: "1", MaxAmount: "2500"},
						},
					},
					{
						Provider: "VODACOM_MPESA_COD",
						Currency: "CDF",
						OperationTypes: []OperationConfiguration{
							{OperationType: "DEPOSIT", MinAmount: "100", MaxAmount: "5000000"},
						},
					},
				},
			},
		},
	}
	availability := []CountryAvailability{
		{
			Country: "COD",
			Providers: []ProviderAvailability{
				{
					Provider:       "VODACOM_MPESA_COD",
					OperationTypes: []OperationStatus{{OperationType: "DEPOSIT", Status: "OPERATIONAL"}},
				},
			},
		},
	}

	require.Len(t, conf.Providers("COD", "VODACOM_MPESA_COD"), 2)

	reports := MergeAvailability(availability, conf)

	tests := []struct {
		currency string
		want     OperationReport
	}{
		{currency: "CDF", want: OperationReport{OperationType: "DEPOSIT", Status: "OPERATIONAL", MinAmount: "100", MaxAmount: "5000000"}},
		{currency: "USD", want: OperationReport{OperationType: "DEPOSIT", Status: "OPERATIONAL", MinAmount: "1", MaxAmount: "2500"}},
	}
	require.Len(t, reports, len(tests))
	for i, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			assert.Equal(t, "VODACOM_MPESA_COD", reports[i].Provider)
			assert.Equal(t, tt.currency, reports[i].Currency)
			assert.Equal(t, []OperationReport{tt.want}, reports[i].Operations)
		})
	}
}

func TestInitiationResult_Succeeded(t *testing.T) {
	tests := []struct {
		name   string
		result InitiationResult
		want   bool
	}{
		{name: "200 accepted", result: InitiationResult{HTTPStatus: http.StatusOK, Status: InitiationAccepted}, want: true},
		{name: "201 no body status", result: InitiationResult{HTTPStatus: http.StatusCreated}, want: true},
		{name: "200 rejected", result: InitiationResult{HTTPStatus: http.StatusOK, Status: InitiationRejected}},
		{name: "400", result: InitiationResult{HTTPStatus: http.StatusBadRequest}},
		{name: "202", result: InitiationResult{HTTPStatus: http.StatusAccepted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Succeeded())
		})
	}
}

func TestNewTransactionID(t *testing.T) {
	id := NewTransactionID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, id, NewTransactionID())
}
