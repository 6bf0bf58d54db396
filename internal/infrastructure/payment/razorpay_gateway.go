package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const razorpayOrdersPath = "/v1/orders"

// RazorpayGateway implements order.RazorpayGateway over the Razorpay REST API
type RazorpayGateway struct {
	cfg        config.RazorpayConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRazorpayGateway creates a gateway
func NewRazorpayGateway(cfg config.RazorpayConfig, logger *zap.Logger) *RazorpayGateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com"
	}
	return &RazorpayGateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Enabled reports whether both API keys are configured
func (g *RazorpayGateway) Enabled() bool {
	return g.cfg.Enabled()
}

// WebhookEnabled reports whether webhooks can be verified
func (g *RazorpayGateway) WebhookEnabled() bool {
	return g.cfg.WebhookSecret != ""
}

// KeyID returns the public key id handed to the checkout widget
func (g *RazorpayGateway) KeyID() string {
	return g.cfg.KeyID
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates an order for amountPaise
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*order.RazorpayOrder, error) {
	if !g.Enabled() {
		return nil, order.ErrGatewayNotConfigured
	}

	body, err := json.Marshal(razorpayOrderRequest{
		Amount:   amountPaise,
		Currency: strings.ToUpper(currency),
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to marshal request: %w", err)
	}

	respBody, err := g.doRequest(ctx, http.MethodPost, razorpayOrdersPath, body)
	if err != nil {
		return nil, err
	}

	var out order.RazorpayOrder
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("razorpay: failed to parse response: %w", err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: razorpay order id missing", order.ErrGatewayRequestFailed)
	}

	g.logger.Info("Razorpay order created",
		zap.String("razorpay_order_id", out.ID),
		zap.Int64("amount", out.Amount),
	)
	return &out, nil
}

// VerifyPayment checks the checkout callback signature
func (g *RazorpayGateway) VerifyPayment(orderID, paymentID, signature string) bool {
	if g.cfg.KeySecret == "" {
		return false
	}
	return verifyHex([]byte(g.cfg.KeySecret), []byte(orderID+"|"+paymentID), signature)
}

// VerifyWebhook checks the webhook signature over the raw body
func (g *RazorpayGateway) VerifyWebhook(payload []byte, signature string) bool {
	if !g.WebhookEnabled() {
		return false
	}
	return verifyHex([]byte(g.cfg.WebhookSecret), payload, signature)
}

type razorpayWebhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// ParseWebhook decodes the event name and the affected order id
func (g *RazorpayGateway) ParseWebhook(payload []byte) (*order.RazorpayWebhook, error) {
	var body razorpayWebhookBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrInvalidPayload, err)
	}
	orderID := body.Payload.Payment.Entity.OrderID
	if orderID == "" {
		orderID = body.Payload.Order.Entity.ID
	}
	return &order.RazorpayWebhook{Event: body.Event, OrderID: orderID}, nil
}

func (g *RazorpayGateway) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(g.cfg.BaseURL, "/")+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(g.cfg.KeyID, g.cfg.KeySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrGatewayRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp razorpayError
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return nil, fmt.Errorf("%w: %s - %s", order.ErrGatewayRequestFailed, errResp.Error.Code, errResp.Error.Description)
		}
		return nil, fmt.Errorf("%w: HTTP %d", order.ErrGatewayRequestFailed, resp.StatusCode)
	}
	return respBody, nil
}

var _ order.RazorpayGateway = (*RazorpayGateway)(nil)
