package gateway

import (
	"context"
	"fmt"

	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	gatewayport "github.com/alphaseam/donorbox-backend/internal/domain/port/gateway"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Config holds the Razorpay API credentials
type Config struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
}

// RazorpayGateway implements the PaymentGateway port against the Razorpay API
type RazorpayGateway struct {
	client *razorpay.Client
	secret string
	logger coreport.Logger
}

// NewRazorpayGateway creates a gateway adapter backed by the Razorpay client
func NewRazorpayGateway(cfg Config, logger coreport.Logger) gatewayport.PaymentGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		secret: cfg.KeySecret,
		logger: logger,
	}
}

// CreateOrder registers a payment order at the gateway and returns its id.
// Amounts are sent in minor units, which is what the Razorpay API expects.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receiptID string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinorUnits,
		"currency": currency,
		"receipt":  receiptID,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.logger.Error("Failed to create gateway order", map[string]any{
			"currency": currency,
			"receipt":  receiptID,
			"error":    err.Error(),
		})
		return "", errs.NewGatewayError("create_order", "",
			fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error()))
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", errs.NewGatewayError("create_order", "",
			fmt.Errorf("%w: order id missing in gateway response", errs.ErrGatewayUnavailable))
	}

	g.logger.Info("Gateway order created", map[string]any{
		"order_id": orderID,
		"receipt":  receiptID,
	})
	return orderID, nil
}

// VerifySignature checks the HMAC the gateway attached to a payment callback
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.secret)
}

// GetOrderStatus fetches the gateway's view of an order. The returned value
// is the raw gateway vocabulary ("created", "attempted", "paid"); callers map
// it into the donation status model.
func (g *RazorpayGateway) GetOrderStatus(ctx context.Context, orderID string) (string, error) {
	order, err := g.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return "", errs.NewGatewayError("fetch_order", orderID,
			fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error()))
	}

	status, ok := order["status"].(string)
	if !ok {
		return "", errs.NewGatewayError("fetch_order", orderID,
			fmt.Errorf("%w: status missing in gateway response", errs.ErrGatewayUnavailable))
	}
	return status, nil
}
