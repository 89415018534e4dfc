package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/orris-inc/momogate/internal/application/payment/paymentgateway"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	"github.com/orris-inc/momogate/internal/infrastructure/config"
	"github.com/orris-inc/momogate/internal/shared/logger"
)

// ClientFactory builds the façade for one command invocation.
type ClientFactory func(cmd *cobra.Command) (*paymentgateway.Client, error)

type rootOptions struct {
	env        string
	apiVersion string
	output     string
	debug      bool
	newClient  ClientFactory
}

// NewCommand returns the gateway command tree backed by the configured
// provider account.
func NewCommand() *cobra.Command {
	opts := &rootOptions{}
	opts.newClient = opts.clientFromConfig
	return newCommand(opts)
}

func newCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Talk to the mobile money provider",
		Long:  `Initiate deposits, payouts and refunds, create payment pages and query status, availability and active configuration.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.env, "env", "e", "", "Provider environment (sandbox, production); overrides config")
	cmd.PersistentFlags().StringVar(&opts.apiVersion, "api-version", "", "Wire version (v1, v2); overrides config")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "Output format (json, yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log requests at debug level")

	cmd.AddCommand(
		newDepositCommand(opts),
		newPayoutCommand(opts),
		newRefundCommand(opts),
		newPaymentPageCommand(opts),
		newStatusCommand(opts),
		newAvailabilityCommand(opts),
		newActiveConfCommand(opts),
	)

	return cmd
}

func (o *rootOptions) clientFromConfig(cmd *cobra.Command) (*paymentgateway.Client, error) {
	cfg, err := config.Load(o.env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.apiVersion != "" {
		cfg.Gateway.APIVersion = o.apiVersion
	}
	if o.debug {
		cfg.Logger.Level = "debug"
	}
	if err := logger.Init(&cfg.Logger, o.debug); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.Gateway.APIToken == "" {
		return nil, fmt.Errorf("no API token: set gateway.api_token or %s", config.TokenEnvVar(cfg.Gateway.Environment))
	}
	return NewClient(&cfg.Gateway, logger.NewLogger())
}

func (o *rootOptions) client(cmd *cobra.Command) (*paymentgateway.Client, error) {
	c, err := o.newClient(cmd)
	if err != nil {
		return nil, err
	}
	if o.apiVersion == "" {
		return c, nil
	}
	v, err := vo.ParseAPIVersion(o.apiVersion)
	if err != nil {
		return nil, err
	}
	return c.ForVersion(v)
}

// finish prints v, or the provider's rejection when err carries one.
func (o *rootOptions) finish(cmd *cobra.Command, v any, err error) error {
	if err != nil {
		var rej *paymentgateway.RejectionError
		if errors.As(err, &rej) {
			if printErr := render(cmd.OutOrStdout(), o.output, rej); printErr != nil {
				return printErr
			}
		}
		return err
	}
	return render(cmd.OutOrStdout(), o.output, v)
}

// render writes v as JSON or YAML. YAML goes through the JSON encoding so
// both formats share field names and raw bodies stay structured.
func render(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "", "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
