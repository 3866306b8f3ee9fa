package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const postmarkAPI = "https://api.postmarkapp.com"

// PostmarkClient sends through the Postmark HTTP API.
type PostmarkClient struct {
	serverToken string
	baseURL     string
	httpClient  *http.Client
}

type PostmarkOption func(*PostmarkClient)

func WithHTTPClient(c *http.Client) PostmarkOption {
	return func(cl *PostmarkClient) {
		cl.httpClient = c
	}
}

// WithBaseURL points the client at another API host.
func WithBaseURL(u string) PostmarkOption {
	return func(cl *PostmarkClient) {
		cl.baseURL = strings.TrimRight(u, "/")
	}
}

func NewPostmarkClient(serverToken string, opts ...PostmarkOption) *PostmarkClient {
	c := &PostmarkClient{
		serverToken: serverToken,
		baseURL:     postmarkAPI,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *PostmarkClient) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody"`
}

type postmarkError struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

func (c *PostmarkClient) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return fmt.Errorf("postmark not configured: missing server token")
	}

	body, err := json.Marshal(postmarkEmail{
		From:     msg.From(),
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var perr postmarkError
		if json.NewDecoder(resp.Body).Decode(&perr) == nil && perr.Message != "" {
			return fmt.Errorf("postmark API error: status %d: %s", resp.StatusCode, perr.Message)
		}
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}
	return nil
}
