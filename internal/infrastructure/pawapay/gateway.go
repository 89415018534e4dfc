package pawapay

import (
	"github.com/orris-inc/momogate/internal/application/payment/paymentgateway"
)

// NewGatewayClient registers both wire adapters over s and dispatches to the
// version the session was configured with.
func NewGatewayClient(s *Session, opts ...paymentgateway.Option) (*paymentgateway.Client, error) {
	return paymentgateway.NewClient(s.Version(),
		[]paymentgateway.Adapter{NewV1Adapter(s), NewV2Adapter(s)},
		opts...,
	)
}
