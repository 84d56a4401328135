package gateway

import (
	"context"
)

// PaymentGateway is the narrow contract this engine needs from the external
// payment processor. The gateway is the source of truth for whether money
// actually moved; everything else about it stays outside this codebase.
type PaymentGateway interface {
	// CreateOrder registers a payment order for the given amount and returns
	// the gateway-assigned order id. Amount is in minor currency units.
	//
	// Possible errors:
	// - ErrGatewayUnavailable: If the gateway cannot be reached
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receiptID string) (string, error)

	// VerifySignature checks the signed payment confirmation delivered by the
	// client after checkout. Returns true only for a valid signature.
	VerifySignature(orderID, paymentID, signature string) bool

	// GetOrderStatus fetches the gateway's current status string for an order
	// ("paid", "created", "attempted", "failed", "refunded", ...). Callers map
	// it through entity.StatusFromGateway.
	//
	// Possible errors:
	// - ErrGatewayUnavailable: If the gateway cannot be reached
	GetOrderStatus(ctx context.Context, orderID string) (string, error)
}
