package gateway

import (
	"context"
	"fmt"

	"amispark/utils"
)

// SimulateGateway issues local order ids and accepts any signature. It backs
// the default checkout flow where no real gateway credentials exist.
type SimulateGateway struct{}

func NewSimulateGateway() *SimulateGateway {
	return &SimulateGateway{}
}

func (g *SimulateGateway) GetProvider() Provider {
	return ProviderSimulate
}

func (g *SimulateGateway) CreateOrder(_ context.Context, req *OrderRequest) (*Order, error) {
	code, err := utils.GenerateCode(6)
	if err != nil {
		return nil, fmt.Errorf("simulate order id: %w", err)
	}

	return &Order{
		ID:          "order_SIM_" + code,
		AmountPaise: Paise(req.Amount),
		Currency:    req.Currency,
		Receipt:     req.Receipt,
		Status:      "created",
	}, nil
}

// VerifySignature always passes: simulated checkouts carry no real signature.
func (g *SimulateGateway) VerifySignature(_, _, _ string) error {
	return nil
}
