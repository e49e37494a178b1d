// Package payment talks to the PayOS-style checkout gateway used for wallet top-ups.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
)

// Config holds the merchant credentials and redirect targets.
type Config struct {
	BaseURL     string
	ClientID    string
	APIKey      string
	ChecksumKey string
	ReturnURL   string
	CancelURL   string
}

type Gateway struct {
	cfg    Config
	client *http.Client
}

// NewGateway returns a gateway client. A nil client uses a 10s timeout.
func NewGateway(cfg Config, client *http.Client) *Gateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Gateway{cfg: cfg, client: client}
}

var _ portssvc.PaymentGateway = (*Gateway)(nil)

type createPaymentRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	CancelURL   string `json:"cancelUrl"`
	ReturnURL   string `json:"returnUrl"`
	Signature   string `json:"signature"`
}

type createPaymentResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data *struct {
		CheckoutURL string `json:"checkoutUrl"`
	} `json:"data"`
}

// CreateCheckout registers a payment link and returns its checkout URL.
func (g *Gateway) CreateCheckout(ctx context.Context, req portssvc.CheckoutRequest) (string, error) {
	amount := req.Amount.IntPart()
	body := createPaymentRequest{
		OrderCode:   req.OrderCode,
		Amount:      amount,
		Description: req.Description,
		CancelURL:   g.cfg.CancelURL,
		ReturnURL:   g.cfg.ReturnURL,
	}
	body.Signature = g.sign(map[string]string{
		"amount":      strconv.FormatInt(amount, 10),
		"cancelUrl":   body.CancelURL,
		"description": body.Description,
		"orderCode":   strconv.FormatInt(body.OrderCode, 10),
		"returnUrl":   body.ReturnURL,
	})

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode payment request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(g.cfg.BaseURL, "/")+"/v2/payment-requests", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", g.cfg.ClientID)
	httpReq.Header.Set("x-api-key", g.cfg.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment gateway returned HTTP %d", resp.StatusCode)
	}
	var out createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode payment gateway response: %w", err)
	}
	if out.Code != "00" || out.Data == nil || out.Data.CheckoutURL == "" {
		return "", fmt.Errorf("payment gateway rejected order %d: %s %s", req.OrderCode, out.Code, out.Desc)
	}
	return out.Data.CheckoutURL, nil
}

// VerifyCallback recomputes the webhook signature over the data object.
func (g *Gateway) VerifyCallback(data dto.PaymentCallbackData, signature string) bool {
	if g.cfg.ChecksumKey == "" || signature == "" {
		return false
	}
	expected := g.sign(map[string]string{
		"amount":              strconv.FormatInt(data.Amount, 10),
		"code":                data.Code,
		"description":         data.Description,
		"orderCode":           strconv.FormatInt(data.OrderCode, 10),
		"reference":           data.Reference,
		"transactionDateTime": data.TransactionAt,
	})
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// sign is HMAC-SHA256 over key=value pairs sorted by key and joined with '&'.
func (g *Gateway) sign(fields map[string]string) string {
	return Sign(g.cfg.ChecksumKey, fields)
}

// Sign computes the gateway checksum for fields.
func Sign(checksumKey string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + fields[k]
	}
	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(strings.Join(parts, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}
