package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Config struct {
	BaseURL   string `json:"baseUrl" mapstructure:"base_url"`
	KeyID     string `json:"keyId" mapstructure:"key_id"`
	KeySecret string `json:"keySecret" mapstructure:"key_secret"`
}

type Client struct {
	// baseURL is the base url of the Razorpay REST API.
	baseURL string

	// keyID and keySecret are the basic-auth API credentials; keySecret
	// doubles as the HMAC key for callback signatures.
	keyID     string
	keySecret string

	// hc is the http client.
	hc *http.Client
}

// NewClient creates new instance of Razorpay client.
func NewClient(c *Config) *Client {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}

	return &Client{
		baseURL:   baseURL,
		keyID:     c.KeyID,
		keySecret: c.KeySecret,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type orderPayload struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type OrderReply struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with Razorpay. Amount is in paise.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (*OrderReply, error) {
	body, err := json.Marshal(orderPayload{
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("createOrder: json.Marshal: %v", err)
	}

	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), "/v1/orders"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("createOrder: http.NewReq: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("createOrder: http.Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("createOrder: resp.StatusCode: %d, body: %s", resp.StatusCode, data)
	}

	var reply OrderReply
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("createOrder: json.Decode: %v", err)
	}

	return &reply, nil
}

// Hmac256 is a function to generate HMAC256 hash.
func Hmac256(body, key []byte) string {
	hash := hmac.New(sha256.New, key)
	hash.Write(body)
	return hex.EncodeToString(hash.Sum(nil))
}

// VerifyPaymentSignature checks a checkout callback signature, computed as
// HMAC-SHA256 over "order_id|payment_id" with the key secret.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	expected := Hmac256([]byte(orderID+"|"+paymentID), []byte(c.keySecret))
	return hmac.Equal([]byte(signature), []byte(expected))
}
