package gateway

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Provider represents different payment gateway types
type Provider string

const (
	ProviderRazorpay Provider = "razorpay"
	ProviderSimulate Provider = "simulate"
)

// ErrSignatureMismatch is returned when a payment callback fails signature
// verification.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// OrderRequest represents a generic order creation request. Amount is in
// rupees; gateways that count in paise convert internally.
type OrderRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order represents an order as created on the gateway side.
type Order struct {
	ID          string `json:"id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

// Interface defines the common surface for all payment gateway providers
type Interface interface {
	// GetProvider returns the gateway provider type
	GetProvider() Provider

	// CreateOrder registers an order with the gateway before checkout opens
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)

	// VerifySignature validates the callback signature for a captured payment
	VerifySignature(orderID, paymentID, signature string) error
}

// Paise converts a rupee amount to the smallest currency unit.
func Paise(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
