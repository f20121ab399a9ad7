package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RelayClient is the booking backend's handle on the mail relay service.
type RelayClient struct {
	baseURL string
	hc      *http.Client
}

func NewRelayClient(baseURL string, timeout time.Duration) *RelayClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RelayClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// SendTicket posts one ticket email job to the relay.
func (c *RelayClient) SendTicket(ctx context.Context, req *SendTicketRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("sendTicket: json.Marshal: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/send-ticket", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sendTicket: http.NewReq: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sendTicket: http.Do: %v", err)
	}
	defer resp.Body.Close()

	var reply struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return fmt.Errorf("sendTicket: json.Decode: %v", err)
	}
	if !reply.Success {
		return fmt.Errorf("sendTicket: relay error: %s", reply.Error)
	}

	return nil
}
