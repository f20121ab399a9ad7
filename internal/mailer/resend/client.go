package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Config struct {
	BaseURL string `json:"baseUrl" mapstructure:"base_url"`
	APIKey  string `json:"apiKey" mapstructure:"api_key"`
}

type Client struct {
	// baseURL is the base url of the Resend REST API.
	baseURL string

	// apiKey is the bearer token for the Resend API.
	apiKey string

	// hc is the http client.
	hc *http.Client
}

// NewClient creates new instance of Resend client.
func NewClient(c *Config) *Client {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  c.APIKey,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email and returns the provider message id.
func (c *Client) Send(ctx context.Context, from, to, subject, html string) (string, error) {
	body, err := json.Marshal(sendPayload{
		From:    from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return "", fmt.Errorf("sendEmail: json.Marshal: %v", err)
	}

	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), "/emails"), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("sendEmail: http.NewReq: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("sendEmail: http.Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sendEmail: resp.StatusCode: %d, body: %s", resp.StatusCode, data)
	}

	var reply struct {
		ID string `json:"id"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return "", fmt.Errorf("sendEmail: json.Decode: %v", err)
	}

	return reply.ID, nil
}
