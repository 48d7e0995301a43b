package line

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the LINE Messaging API host
const DefaultBaseURL = "https://api.line.me"

const (
	pushPath  = "/v2/bot/message/push"
	replyPath = "/v2/bot/message/reply"

	// maxMessages is the per-request limit of the Messaging API
	maxMessages = 5
)

// Config holds Messaging API credentials
type Config struct {
	ChannelAccessToken string
	ChannelSecret      string
	BaseURL            string
	Timeout            time.Duration
	RequestsPerSecond  float64 // Outbound rate limit; 0 disables it
	Burst              int
}

// Client implements gateway.MessagingGateway with the LINE Messaging API
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     coreport.Logger
}

var _ gateway.MessagingGateway = (*Client)(nil)

// NewClient creates a Messaging API client
func NewClient(cfg Config, httpClient *http.Client, logger coreport.Logger) (*Client, error) {
	if cfg.ChannelAccessToken == "" {
		return nil, errors.New("line: channel access token is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

type pushRequest struct {
	To       string            `json:"to"`
	Messages []gateway.Message `json:"messages"`
}

type replyRequest struct {
	ReplyToken string            `json:"replyToken"`
	Messages   []gateway.Message `json:"messages"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// PushMessage sends messages to a user at any time
func (c *Client) PushMessage(ctx context.Context, userID string, messages ...gateway.Message) error {
	if err := checkMessages(messages); err != nil {
		return err
	}
	return c.post(ctx, pushPath, pushRequest{To: userID, Messages: messages})
}

// ReplyMessage answers a webhook event using its reply token
func (c *Client) ReplyMessage(ctx context.Context, replyToken string, messages ...gateway.Message) error {
	if err := checkMessages(messages); err != nil {
		return err
	}
	return c.post(ctx, replyPath, replyRequest{ReplyToken: replyToken, Messages: messages})
}

func checkMessages(messages []gateway.Message) error {
	if len(messages) == 0 {
		return errors.New("line: no messages")
	}
	if len(messages) > maxMessages {
		return fmt.Errorf("line: at most %d messages per request, got %d", maxMessages, len(messages))
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("line: rate limit wait: %w", err)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("line: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("line: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.ChannelAccessToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("line: call %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	var apiErr errorResponse
	_ = json.NewDecoder(io.LimitReader(res.Body, 64<<10)).Decode(&apiErr)
	return fmt.Errorf("line: call %s: status %d: %s", path, res.StatusCode, apiErr.Message)
}

// ValidateSignature checks the X-Line-Signature header of a webhook body
func (c *Client) ValidateSignature(body []byte, signature string) bool {
	return ValidateSignature(c.cfg.ChannelSecret, body, signature)
}

// ValidateSignature reports whether signature is base64(HMAC-SHA256(secret, body))
func ValidateSignature(channelSecret string, body []byte, signature string) bool {
	if channelSecret == "" || signature == "" {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
