package gopay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	GoID         string // merchant id
	ClientID     string
	ClientSecret string
	GatewayURL   string // e.g. https://gw.sandbox.gopay.com
	ReturnURL    string // base for per-order callback urls
	NotifyURL    string
}

// Client is a narrow wrapper over the GoPay REST API. Only payment creation
// and status polling are used; everything else the gateway offers is out of
// scope here.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type Contact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	City        string `json:"city"`
	Street      string `json:"street"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

type Item struct {
	Name        string `json:"name"`
	AmountMinor int64  `json:"amount"`
}

type CreatePaymentRequest struct {
	Contact     Contact
	AmountMinor int64
	Currency    string
	OrderNumber string
	Items       []Item
	Lang        string
}

type PaymentSession struct {
	PaymentID  string
	GatewayURL string
}

func (c *Client) token(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "payment-all")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.GatewayURL+"/api/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gopay token request failed: %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.AccessToken, nil
}

// CreatePayment opens a payment session and returns the gateway redirect URL.
func (c *Client) CreatePayment(ctx context.Context, r CreatePaymentRequest) (*PaymentSession, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	lang := r.Lang
	if lang == "" {
		lang = "CS"
	}

	payload := map[string]interface{}{
		"payer": map[string]interface{}{
			"contact": r.Contact,
		},
		"target": map[string]interface{}{
			"type": "ACCOUNT",
			"goid": c.cfg.GoID,
		},
		"amount":       r.AmountMinor,
		"currency":     r.Currency,
		"order_number": r.OrderNumber,
		"items":        r.Items,
		"additional_params": []map[string]string{
			{"name": "invoicenumber", "value": r.OrderNumber},
		},
		"callback": map[string]string{
			"return_url":       fmt.Sprintf("%s/order/%s/callback/", c.cfg.ReturnURL, r.OrderNumber),
			"notification_url": c.cfg.NotifyURL,
		},
		"lang": lang,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.GatewayURL+"/api/payments/payment", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gopay create payment failed: %s: %s", resp.Status, string(body))
	}

	var created struct {
		ID    json.Number `json:"id"`
		GwURL string      `json:"gw_url"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, err
	}
	if created.GwURL == "" {
		return nil, fmt.Errorf("gopay create payment: no gw_url in response")
	}
	return &PaymentSession{PaymentID: created.ID.String(), GatewayURL: created.GwURL}, nil
}

// GetStatus returns the raw payment status payload. Only "state" is
// interpreted by callers; the rest is stored opaque.
func (c *Client) GetStatus(ctx context.Context, paymentID string) (map[string]interface{}, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.GatewayURL+"/api/payments/payment/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gopay get status failed: %s", resp.Status)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
