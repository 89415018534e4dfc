package gateway

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/momogate/internal/application/payment/usecases"
	"github.com/orris-inc/momogate/internal/domain/payment"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	var (
		txType   string
		wait     bool
		interval time.Duration
		attempts int
	)
	cmd := &cobra.Command{
		Use:   "status <transaction-id>",
		Short: "Look up a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := vo.ParseTransactionType(txType)
			if err != nil {
				return err
			}
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			q := payment.StatusQuery{TransactionID: args[0], Type: t}

			if !wait {
				result, err := client.FetchStatus(cmd.Context(), q)
				return opts.finish(cmd, result, err)
			}

			result, err := usecases.WaitForFinalStatus(cmd.Context(), client, q, interval, attempts)
			if errors.Is(err, payment.ErrStatusUndetermined) {
				// print what we have; the error still sets the exit code
				if printErr := opts.finish(cmd, result, nil); printErr != nil {
					return printErr
				}
				return err
			}
			return opts.finish(cmd, result, err)
		},
	}
	cmd.Flags().StringVarP(&txType, "type", "t", "deposit", "Transaction type (deposit, payout, refund, remittance)")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Poll until the status is final")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Delay between polls")
	cmd.Flags().IntVar(&attempts, "attempts", 12, "Maximum number of polls")
	return cmd
}

func newAvailabilityCommand(opts *rootOptions) *cobra.Command {
	var (
		q      payment.AvailabilityQuery
		report bool
	)
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show provider availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			if report {
				reports, err := client.AvailabilityReport(cmd.Context(), q)
				return opts.finish(cmd, reports, err)
			}
			result, err := client.FetchAvailability(cmd.Context(), q)
			return opts.finish(cmd, result, err)
		},
	}
	cmd.Flags().StringVar(&q.Country, "country", "", "ISO 3166 alpha-3 country filter (v2)")
	cmd.Flags().StringVar(&q.OperationType, "operation-type", "", "DEPOSIT, PAYOUT, REFUND or REMITTANCE (v2)")
	cmd.Flags().BoolVar(&report, "report", false, "Join availability with the merchant's configured limits")
	return cmd
}

func newActiveConfCommand(opts *rootOptions) *cobra.Command {
	var q payment.AvailabilityQuery
	cmd := &cobra.Command{
		Use:   "active-conf",
		Short: "Show the merchant's active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			result, err := client.FetchActiveConfiguration(cmd.Context(), q)
			return opts.finish(cmd, result, err)
		},
	}
	cmd.Flags().StringVar(&q.Country, "country", "", "ISO 3166 alpha-3 country filter (v2)")
	cmd.Flags().StringVar(&q.OperationType, "operation-type", "", "DEPOSIT, PAYOUT, REFUND or REMITTANCE (v2)")
	return cmd
}
