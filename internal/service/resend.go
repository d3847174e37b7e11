package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResendClient wraps the Resend transactional email API
type ResendClient struct {
	apiKey  string
	baseURL string
	from    string
	client  *http.Client
}

func NewResendClient(apiKey, baseURL, from string) *ResendClient {
	return &ResendClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		from:    from,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send dispatches a plain-text email to a single recipient
func (c *ResendClient) Send(ctx context.Context, to, subject, text string) error {
	if c.apiKey == "" {
		return fmt.Errorf("Resend API key not configured")
	}

	reqBody := sendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Text:    text,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling Resend API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("Resend API returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
