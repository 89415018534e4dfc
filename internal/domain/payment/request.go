package payment

import (
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
)

// Transfer holds the fields deposits and payouts share. Provider is the
// mobile network operator code, sent as "correspondent" on V1 and
// "provider" on V2. Empty optional fields are never sent.
type Transfer struct {
	TransactionID     string            `json:"transactionId" validate:"required,momo_txid"`
	Amount            string            `json:"amount" validate:"momo_amount"`
	Currency          string            `json:"currency,omitempty" validate:"omitempty,momo_currency"`
	MSISDN            string            `json:"msisdn" validate:"required,momo_msisdn"`
	Provider          string            `json:"provider" validate:"required"`
	Narration         string            `json:"narration,omitempty" validate:"omitempty,momo_narration"`
	ClientReferenceID string            `json:"clientReferenceId,omitempty"`
	Metadata          []vo.MetadataItem `json:"metadata,omitempty" validate:"max=10"`
}

// DepositRequest collects funds from a customer wallet.
type DepositRequest struct {
	Transfer
	// PreAuthCode is only sent on V2.
	PreAuthCode string `json:"preAuthorisationCode,omitempty"`
}

// PayoutRequest disburses funds to a customer wallet.
type PayoutRequest struct {
	Transfer
}

// RefundRequest reverses a completed deposit. Currency is mandatory on V2
// and must match the original deposit.
type RefundRequest struct {
	RefundID  string            `json:"refundId" validate:"required,momo_txid"`
	DepositID string            `json:"depositId" validate:"required,momo_txid"`
	Amount    string            `json:"amount" validate:"momo_amount"`
	Currency  string            `json:"currency,omitempty" validate:"omitempty,momo_currency"`
	Metadata  []vo.MetadataItem `json:"metadata,omitempty" validate:"max=10"`
}

// AmountDetails is the V2 payment page amount block.
type AmountDetails struct {
	Amount   string `json:"amount" validate:"momo_amount"`
	Currency string `json:"currency" validate:"required,momo_currency"`
}

// PaymentPageRequest creates a hosted payment session. Amount and Currency
// are folded into AmountDetails on V2; a preformed AmountDetails wins.
// PhoneNumber and the legacy MSISDN field are interchangeable.
type PaymentPageRequest struct {
	DepositID     string            `json:"depositId" validate:"required,momo_txid"`
	ReturnURL     string            `json:"returnUrl" validate:"required,url"`
	Narration     string            `json:"narration,omitempty" validate:"omitempty,momo_narration"`
	Amount        string            `json:"amount,omitempty" validate:"omitempty,momo_amount"`
	Currency      string            `json:"currency,omitempty" validate:"omitempty,momo_currency"`
	AmountDetails *AmountDetails    `json:"amountDetails,omitempty"`
	PhoneNumber   string            `json:"phoneNumber,omitempty" validate:"omitempty,momo_msisdn"`
	MSISDN        string            `json:"msisdn,omitempty" validate:"omitempty,momo_msisdn"`
	Language      string            `json:"language,omitempty"`
	Country       string            `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha3"`
	Reason        string            `json:"reason,omitempty"`
	Metadata      []vo.MetadataItem `json:"metadata,omitempty" validate:"max=10"`
}

// Phone returns PhoneNumber, falling back to MSISDN.
func (r PaymentPageRequest) Phone() string {
	if r.PhoneNumber != "" {
		return r.PhoneNumber
	}
	return r.MSISDN
}

// StatusQuery identifies a transaction to look up.
type StatusQuery struct {
	TransactionID string             `json:"transactionId" validate:"required,momo_txid"`
	Type          vo.TransactionType `json:"type" validate:"required"`
}

// AvailabilityQuery filters availability and active configuration. The
// filters are only sent on V2.
type AvailabilityQuery struct {
	Country       string `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha3"`
	OperationType string `json:"operationType,omitempty" validate:"omitempty,oneof=DEPOSIT PAYOUT REFUND REMITTANCE"`
}
