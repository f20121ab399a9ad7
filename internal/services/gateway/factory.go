package gateway

import (
	"fmt"

	"amispark/config"
	"amispark/internal/services/gateway/razorpay"
)

// NewFromConfig creates a gateway instance based on the configured provider.
func NewFromConfig(cfg *config.Config) (Interface, error) {
	switch Provider(cfg.GatewayProvider) {
	case ProviderRazorpay:
		return NewRazorpayAdapter(&razorpay.Config{
			BaseURL:   cfg.RazorpayBaseURL,
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
		})

	case ProviderSimulate, "":
		return NewSimulateGateway(), nil

	default:
		return nil, fmt.Errorf("unsupported gateway provider: %s", cfg.GatewayProvider)
	}
}
