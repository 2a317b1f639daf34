package pushover

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseSizeBytes = 1 << 20

type Config struct {
	Token    string        `split_words:"true"`
	User     string        `split_words:"true"`
	Endpoint string        `split_words:"true" default:"https://api.pushover.net/1/messages.json"`
	Timeout  time.Duration `split_words:"true" default:"10s"`
}

// Client delivers push notifications through the Pushover messages API.
// Token and user key are optional: a client without credentials is disabled
// and Notify becomes a no-op.
type Client struct {
	endpoint   string
	token      string
	user       string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("pushover endpoint is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid pushover endpoint: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint: endpoint,
		token:    strings.TrimSpace(cfg.Token),
		user:     strings.TrimSpace(cfg.User),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Enabled reports whether both credentials are present.
func (c *Client) Enabled() bool {
	return c != nil && c.token != "" && c.user != ""
}

// Notify sends one message. Disabled clients return nil so callers never have
// to special-case missing credentials.
func (c *Client) Notify(ctx context.Context, title, message string) error {
	if !c.Enabled() {
		return nil
	}
	if strings.TrimSpace(message) == "" {
		return errors.New("pushover message is empty")
	}

	form := url.Values{}
	form.Set("token", c.token)
	form.Set("user", c.user)
	form.Set("message", message)
	if strings.TrimSpace(title) != "" {
		form.Set("title", title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build pushover request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute pushover request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
		return fmt.Errorf("pushover http status=%d body=%s", resp.StatusCode, string(raw))
	}
	return nil
}
