package services

import (
	"context"

	"github.com/google/uuid"
)

// PaymentProvider charges the buyer and returns a payment reference. The
// checkout treats this as a network call: entitlements are granted only after
// it confirms success.
type PaymentProvider interface {
	Charge(ctx context.Context, userID uint, amount float64, method string) (string, error)
}

// SimulatedPaymentProvider approves every charge and mints a reference. Stands
// in for a real gateway integration.
type SimulatedPaymentProvider struct{}

// NewSimulatedPaymentProvider creates a new SimulatedPaymentProvider.
func NewSimulatedPaymentProvider() *SimulatedPaymentProvider {
	return &SimulatedPaymentProvider{}
}

func (p *SimulatedPaymentProvider) Charge(_ context.Context, _ uint, _ float64, _ string) (string, error) {
	return "sim_" + uuid.NewString(), nil
}
