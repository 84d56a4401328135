package gateway

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPaymentGateway is a mock implementation of the PaymentGateway port
type MockPaymentGateway struct {
	mock.Mock
}

// CreateOrder registers a payment order at the gateway
func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receiptID string) (string, error) {
	args := m.Called(ctx, amountMinorUnits, currency, receiptID)
	return args.String(0), args.Error(1)
}

// VerifySignature checks a payment callback signature
func (m *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

// GetOrderStatus fetches the gateway's view of an order
func (m *MockPaymentGateway) GetOrderStatus(ctx context.Context, orderID string) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}
