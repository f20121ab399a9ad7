package gateway

import (
	"context"
	"fmt"

	"amispark/internal/services/gateway/razorpay"
)

// RazorpayAdapter adapts the Razorpay client to the gateway interface
type RazorpayAdapter struct {
	client *razorpay.Client
}

// NewRazorpayAdapter creates a new Razorpay adapter
func NewRazorpayAdapter(config *razorpay.Config) (*RazorpayAdapter, error) {
	if config.KeyID == "" || config.KeySecret == "" {
		return nil, fmt.Errorf("razorpay credentials not configured")
	}
	return &RazorpayAdapter{client: razorpay.NewClient(config)}, nil
}

func (a *RazorpayAdapter) GetProvider() Provider {
	return ProviderRazorpay
}

func (a *RazorpayAdapter) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	reply, err := a.client.CreateOrder(ctx, Paise(req.Amount), req.Currency, req.Receipt, req.Notes)
	if err != nil {
		return nil, err
	}

	return &Order{
		ID:          reply.ID,
		AmountPaise: reply.Amount,
		Currency:    reply.Currency,
		Receipt:     reply.Receipt,
		Status:      reply.Status,
	}, nil
}

func (a *RazorpayAdapter) VerifySignature(orderID, paymentID, signature string) error {
	if !a.client.VerifyPaymentSignature(orderID, paymentID, signature) {
		return ErrSignatureMismatch
	}
	return nil
}
