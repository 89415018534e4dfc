package gateway

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orris-inc/momogate/internal/domain/payment"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
)

type transferFlags struct {
	id          string
	amount      string
	currency    string
	msisdn      string
	provider    string
	narration   string
	reference   string
	metadata    []string
	piiMetadata []string
}

func (f *transferFlags) bind(cmd *cobra.Command, idFlag string) {
	cmd.Flags().StringVar(&f.id, idFlag, "", "Transaction UUIDv4 (generated when omitted)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "Amount, up to two decimals")
	cmd.Flags().StringVar(&f.currency, "currency", "", "ISO 4217 currency (required on v2)")
	cmd.Flags().StringVar(&f.msisdn, "msisdn", "", "Customer phone number with country code")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Provider code, e.g. MTN_MOMO_UGA")
	cmd.Flags().StringVar(&f.narration, "narration", "", "Statement description (required on v1)")
	cmd.Flags().StringVar(&f.reference, "client-reference", "", "Client reference id (v2)")
	cmd.Flags().StringArrayVar(&f.metadata, "meta", nil, "Metadata name=value, repeatable")
	cmd.Flags().StringArrayVar(&f.piiMetadata, "pii-meta", nil, "Metadata name=value flagged as PII, repeatable")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("msisdn")
	_ = cmd.MarkFlagRequired("provider")
}

func (f *transferFlags) transfer() (payment.Transfer, error) {
	items, err := metadataItems(f.metadata, f.piiMetadata)
	if err != nil {
		return payment.Transfer{}, err
	}
	id := f.id
	if id == "" {
		id = payment.NewTransactionID()
	}
	return payment.Transfer{
		TransactionID:     id,
		Amount:            f.amount,
		Currency:          f.currency,
		MSISDN:            f.msisdn,
		Provider:          f.provider,
		Narration:         f.narration,
		ClientReferenceID: f.reference,
		Metadata:          items,
	}, nil
}

// metadataItems parses name=value pairs; pii entries are flagged isPII.
func metadataItems(plain, pii []string) ([]vo.MetadataItem, error) {
	var items []vo.MetadataItem
	for _, group := range []struct {
		pairs []string
		pii   bool
	}{{plain, false}, {pii, true}} {
		for _, pair := range group.pairs {
			name, value, ok := strings.Cut(pair, "=")
			if !ok || strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("metadata %q must be name=value", pair)
			}
			item := vo.NewMetadataItem(strings.TrimSpace(name), value)
			if group.pii {
				item = item.WithPII(true)
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func newDepositCommand(opts *rootOptions) *cobra.Command {
	var (
		flags       transferFlags
		preAuthCode string
	)
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Collect funds from a customer wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transfer, err := flags.transfer()
			if err != nil {
				return err
			}
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			result, err := client.InitiateDeposit(cmd.Context(), payment.DepositRequest{Transfer: transfer, PreAuthCode: preAuthCode})
			return opts.finish(cmd, result, err)
		},
	}
	flags.bind(cmd, "deposit-id")
	cmd.Flags().StringVar(&preAuthCode, "pre-auth-code", "", "Pre-authorisation code (v2)")
	return cmd
}

func newPayoutCommand(opts *rootOptions) *cobra.Command {
	var flags transferFlags
	cmd := &cobra.Command{
		Use:   "payout",
		Short: "Disburse funds to a customer wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transfer, err := flags.transfer()
			if err != nil {
				return err
			}
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			result, err := client.InitiatePayout(cmd.Context(), payment.PayoutRequest{Transfer: transfer})
			return opts.finish(cmd, result, err)
		},
	}
	flags.bind(cmd, "payout-id")
	return cmd
}

func newRefundCommand(opts *rootOptions) *cobra.Command {
	var (
		refundID, depositID, amount, currency string
		metadata, piiMetadata                 []string
	)
	cmd := &cobra.Command{
		Use:   "refund",
		Short: "Refund a completed deposit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := metadataItems(metadata, piiMetadata)
			if err != nil {
				return err
			}
			if refundID == "" {
				refundID = payment.NewTransactionID()
			}
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			result, err := client.InitiateRefund(cmd.Context(), payment.RefundRequest{
				RefundID:  refundID,
				DepositID: depositID,
				Amount:    amount,
				Currency:  currency,
				Metadata:  items,
			})
			return opts.finish(cmd, result, err)
		},
	}
	cmd.Flags().StringVar(&refundID, "refund-id", "", "Refund UUIDv4 (generated when omitted)")
	cmd.Flags().StringVar(&depositID, "deposit-id", "", "Deposit to refund")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to refund")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency (required on v2)")
	cmd.Flags().StringArrayVar(&metadata, "meta", nil, "Metadata name=value, repeatable")
	cmd.Flags().StringArrayVar(&piiMetadata, "pii-meta", nil, "Metadata name=value flagged as PII, repeatable")
	_ = cmd.MarkFlagRequired("deposit-id")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newPaymentPageCommand(opts *rootOptions) *cobra.Command {
	var (
		req                   payment.PaymentPageRequest
		metadata, piiMetadata []string
	)
	cmd := &cobra.Command{
		Use:   "payment-page",
		Short: "Create a hosted payment page session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := metadataItems(metadata, piiMetadata)
			if err != nil {
				return err
			}
			req.Metadata = items
			if req.DepositID == "" {
				req.DepositID = payment.NewTransactionID()
			}
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			result, err := client.CreatePaymentPage(cmd.Context(), req)
			return opts.finish(cmd, result, err)
		},
	}
	cmd.Flags().StringVar(&req.DepositID, "deposit-id", "", "Deposit UUIDv4 (generated when omitted)")
	cmd.Flags().StringVar(&req.ReturnURL, "return-url", "", "Where the customer lands afterwards")
	cmd.Flags().StringVar(&req.Narration, "narration", "", "Statement description")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "Fixed amount")
	cmd.Flags().StringVar(&req.Currency, "currency", "", "Currency of the fixed amount (v2)")
	cmd.Flags().StringVar(&req.PhoneNumber, "msisdn", "", "Prefilled phone number")
	cmd.Flags().StringVar(&req.Language, "language", "", "Page language (EN, FR)")
	cmd.Flags().StringVar(&req.Country, "country", "", "ISO 3166 alpha-3 country")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "Reason shown to the customer")
	cmd.Flags().StringArrayVar(&metadata, "meta", nil, "Metadata name=value, repeatable")
	cmd.Flags().StringArrayVar(&piiMetadata, "pii-meta", nil, "Metadata name=value flagged as PII, repeatable")
	_ = cmd.MarkFlagRequired("return-url")
	return cmd
}
