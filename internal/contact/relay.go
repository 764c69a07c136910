package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds one relay round trip
const DefaultTimeout = 15 * time.Second

// Sender delivers a validated message somewhere
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Relay posts messages to a Web3Forms-compatible endpoint
type Relay struct {
	endpoint  string
	accessKey string
	client    *http.Client
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewRelay creates a relay client. A nil client gets DefaultTimeout.
func NewRelay(endpoint, accessKey string, client *http.Client) *Relay {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Relay{endpoint: endpoint, accessKey: accessKey, client: client}
}

// Send posts the message as a form and requires {"success": true} back
func (r *Relay) Send(ctx context.Context, m Message) error {
	if r.accessKey == "" {
		return &RelayError{Message: "relay access key is not configured"}
	}

	form := url.Values{
		"access_key": {r.accessKey},
		"name":       {m.Name},
		"email":      {m.Email},
		"message":    {m.Message},
	}
	if m.Subject != "" {
		form.Set("subject", m.Subject)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &RelayError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return &RelayError{Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &RelayError{Message: "failed to read response body", StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RelayError{
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var out relayResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return &RelayError{Message: "invalid relay response", StatusCode: resp.StatusCode, Cause: err}
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "Form submission failed"
		}
		return &RelayError{Message: msg, StatusCode: resp.StatusCode}
	}
	return nil
}
