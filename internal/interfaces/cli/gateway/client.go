package gateway

import (
	"fmt"

	"github.com/orris-inc/momogate/internal/application/payment/paymentgateway"
	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	"github.com/orris-inc/momogate/internal/infrastructure/pawapay"
	sharedConfig "github.com/orris-inc/momogate/internal/shared/config"
	"github.com/orris-inc/momogate/internal/shared/logger"
)

// NewClient builds a façade with both wire adapters registered and the
// configured version selected.
func NewClient(cfg *sharedConfig.GatewayConfig, log logger.Interface) (*paymentgateway.Client, error) {
	env, err := vo.ParseEnvironment(cfg.Environment)
	if err != nil {
		return nil, err
	}
	version, err := vo.ParseAPIVersion(cfg.APIVersion)
	if err != nil {
		return nil, err
	}

	session, err := pawapay.NewSession(pawapay.Config{
		Environment:    env,
		BaseURL:        cfg.BaseURL,
		APIToken:       cfg.APIToken,
		APIVersion:     version,
		TLSVerify:      cfg.TLSVerify,
		ConnectTimeout: cfg.ConnectTimeout,
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return pawapay.NewGatewayClient(session, paymentgateway.WithLogger(log))
}
