package payment

import (
	"encoding/json"
	"sort"
)

// OperationConfiguration holds the transaction limits for one operation.
// Limits are kept as decimal strings exactly as the provider sent them.
type OperationConfiguration struct {
	OperationType string `json:"operationType"`
	MinAmount     string `json:"minAmount,omitempty"`
	MaxAmount     string `json:"maxAmount,omitempty"`
}

type ProviderConfiguration struct {
	Provider       string                   `json:"provider"`
	OwnerName      string                   `json:"ownerName,omitempty"`
	Currency       string                   `json:"currency,omitempty"`
	OperationTypes []OperationConfiguration `json:"operationTypes"`
}

type CountryConfiguration struct {
	Country   string                  `json:"country"`
	Providers []ProviderConfiguration `json:"providers"`
}

// ActiveConfiguration is the merchant account configuration.
type ActiveConfiguration struct {
	HTTPStatus   int                    `json:"httpStatus"`
	MerchantID   string                 `json:"merchantId,omitempty"`
	MerchantName string                 `json:"merchantName,omitempty"`
	Countries    []CountryConfiguration `json:"countries"`
	Raw          json.RawMessage        `json:"raw,omitempty"`
}

// Providers returns every configuration for a (country, provider) pair. A
// provider that settles in several currencies has one entry per currency.
func (c *ActiveConfiguration) Providers(country, provider string) []ProviderConfiguration {
	var out []ProviderConfiguration
	for _, ctry := range c.Countries {
		if ctry.Country != country {
			continue
		}
		for _, p := range ctry.Providers {
			if p.Provider == provider {
				out = append(out, p)
			}
		}
	}
	return out
}

// OperationReport joins live status with configured limits.
type OperationReport struct {
	OperationType string `json:"operationType"`
	Status        string `json:"status"`
	MinAmount     string `json:"minAmount,omitempty"`
	MaxAmount     string `json:"maxAmount,omitempty"`
}

type ProviderReport struct {
	Country    string            `json:"country"`
	Provider   string            `json:"provider"`
	OwnerName  string            `json:"ownerName,omitempty"`
	Currency   string            `json:"currency,omitempty"`
	Operations []OperationReport `json:"operations"`
}

// MergeAvailability joins availability with active configuration by
// (country, provider), emitting one report per configured currency.
// Providers the merchant has no configuration for are skipped. The result is
// sorted by country, provider and currency.
func MergeAvailability(countries []CountryAvailability, conf *ActiveConfiguration) []ProviderReport {
	if conf == nil {
		return nil
	}

	var reports []ProviderReport
	for _, ctry := range countries {
		for _, p := range ctry.Providers {
			for _, pc := range conf.Providers(ctry.Country, p.Provider) {
				reports = append(reports, providerReport(ctry.Country, p, pc))
			}
		}
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Country != reports[j].Country {
			return reports[i].Country < reports[j].Country
		}
		if reports[i].Provider != reports[j].Provider {
			return reports[i].Provider < reports[j].Provider
		}
		return reports[i].Currency < reports[j].Currency
	})
	return reports
}

func providerReport(country string, p ProviderAvailability, pc ProviderConfiguration) ProviderReport {
	limits := make(map[string]OperationConfiguration, len(pc.OperationTypes))
	for _, op := range pc.OperationTypes {
		limits[op.OperationType] = op
	}

	report := ProviderReport{
		Country:   country,
		Provider:  p.Provider,
		OwnerName: pc.OwnerName,
		Currency:  pc.Currency,
	}
	for _, op := range p.OperationTypes {
		l := limits[op.OperationType]
		report.Operations = append(report.Operations, OperationReport{
			OperationType: op.OperationType,
			Status:        op.Status,
			MinAmount:     l.MinAmount,
			MaxAmount:     l.MaxAmount,
		})
	}
	return report
}
