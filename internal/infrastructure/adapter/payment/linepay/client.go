package linepay

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

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/google/uuid"
)

// API hosts
const (
	SandboxBaseURL    = "https://sandbox-api-pay.line.me"
	ProductionBaseURL = "https://api-pay.line.me"

	requestPath = "/v3/payments/request"
	confirmPath = "/v3/payments/%s/confirm"

	returnCodeSuccess = "0000"
)

// Config holds LINE Pay merchant credentials
type Config struct {
	ChannelID     string
	ChannelSecret string
	Sandbox       bool
	BaseURL       string // Overrides the sandbox/production host when set
	CancelURL     string
	Timeout       time.Duration
}

// Client implements gateway.PaymentGateway against the LINE Pay v3 API
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	newNonce   func() string
	logger     coreport.Logger
}

var _ gateway.PaymentGateway = (*Client)(nil)

// NewClient creates a LINE Pay client
func NewClient(cfg Config, httpClient *http.Client, logger coreport.Logger) (*Client, error) {
	if cfg.ChannelID == "" || cfg.ChannelSecret == "" {
		return nil, errors.New("linepay: channel id and channel secret are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ProductionBaseURL
		if cfg.Sandbox {
			baseURL = SandboxBaseURL
		}
	}

	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		newNonce:   uuid.NewString,
		logger:     logger,
	}, nil
}

type product struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type paymentPackage struct {
	ID       string    `json:"id"`
	Amount   int64     `json:"amount"`
	Name     string    `json:"name"`
	Products []product `json:"products"`
}

type redirectURLs struct {
	ConfirmURL     string `json:"confirmUrl"`
	ConfirmURLType string `json:"confirmUrlType,omitempty"`
	CancelURL      string `json:"cancelUrl"`
}

type requestBody struct {
	Amount       int64            `json:"amount"`
	Currency     string           `json:"currency"`
	OrderID      string           `json:"orderId"`
	Packages     []paymentPackage `json:"packages"`
	RedirectURLs redirectURLs     `json:"redirectUrls"`
}

type confirmBody struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// response is the common envelope. transactionId is a 19 digit number, so it
// is decoded as json.Number to keep every digit.
type response struct {
	ReturnCode    string `json:"returnCode"`
	ReturnMessage string `json:"returnMessage"`
	Info          struct {
		TransactionID json.Number `json:"transactionId"`
		PaymentURL    struct {
			Web string `json:"web"`
			App string `json:"app"`
		} `json:"paymentUrl"`
	} `json:"info"`
}

// Reserve registers a payment request and returns the page the user approves it on
func (c *Client) Reserve(ctx context.Context, req gateway.ReserveRequest) (*gateway.ReserveResult, error) {
	body := requestBody{
		Amount:   req.Amount,
		Currency: req.Currency,
		OrderID:  req.OrderID,
		Packages: []paymentPackage{{
			ID:     req.OrderID,
			Amount: req.Amount,
			Name:   req.ProductName,
			Products: []product{{
				Name:     req.ProductName,
				Quantity: 1,
				Price:    req.Amount,
			}},
		}},
		RedirectURLs: redirectURLs{
			ConfirmURL:     req.ConfirmURL,
			ConfirmURLType: req.ConfirmURLType,
			CancelURL:      c.cfg.CancelURL,
		},
	}

	resp, err := c.post(ctx, requestPath, body)
	if err != nil {
		return nil, errs.NewPaymentError("reserve", "", "", err)
	}
	if resp.ReturnCode != returnCodeSuccess {
		return nil, errs.NewPaymentError("reserve", "", resp.ReturnCode, errors.New(resp.ReturnMessage))
	}
	if resp.Info.TransactionID == "" || resp.Info.PaymentURL.Web == "" {
		return nil, errs.NewPaymentError("reserve", "", resp.ReturnCode, errors.New("incomplete reserve response"))
	}

	c.logger.Debug("LINE Pay reserve accepted", map[string]any{
		"transaction_id": resp.Info.TransactionID.String(),
		"order_id":       req.OrderID,
	})

	return &gateway.ReserveResult{
		TransactionID: resp.Info.TransactionID.String(),
		PaymentURL:    resp.Info.PaymentURL.Web,
	}, nil
}

// Confirm captures a payment the user approved
func (c *Client) Confirm(ctx context.Context, transactionID string, amount int64, currency string) error {
	resp, err := c.post(ctx, fmt.Sprintf(confirmPath, transactionID), confirmBody{Amount: amount, Currency: currency})
	if err != nil {
		return errs.NewPaymentError("confirm", transactionID, "", err)
	}
	if resp.ReturnCode != returnCodeSuccess {
		return errs.NewPaymentError("confirm", transactionID, resp.ReturnCode, errors.New(resp.ReturnMessage))
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	nonce := c.newNonce()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-LINE-ChannelId", c.cfg.ChannelID)
	req.Header.Set("X-LINE-Authorization-Nonce", nonce)
	req.Header.Set("X-LINE-Authorization", Sign(c.cfg.ChannelSecret, path, string(body), nonce))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("call %s: status %d", path, res.StatusCode)
	}

	var out response
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", res.StatusCode, err)
	}
	return &out, nil
}

// Sign computes the X-LINE-Authorization header: base64(HMAC-SHA256(secret, secret + path + body + nonce))
func Sign(channelSecret, path, body, nonce string) string {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write([]byte(channelSecret + path + body + nonce))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
