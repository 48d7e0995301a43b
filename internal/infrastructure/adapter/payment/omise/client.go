package omise

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// Charge statuses reported by Omise
const (
	statusSuccessful = "successful"
	statusFailed     = "failed"
	statusExpired    = "expired"
)

// Config holds Omise credentials and the offsite payment method to use
type Config struct {
	PublicKey  string
	SecretKey  string
	SourceType string // e.g. "paypay" or "promptpay"
}

// Client implements gateway.PaymentGateway with Omise offsite charges.
//
// Reserve creates a source and a charge whose authorize URI is the payment
// page; Confirm verifies the charge and captures it if only authorized.
type Client struct {
	omc    *omise.Client
	cfg    Config
	logger coreport.Logger
}

var _ gateway.PaymentGateway = (*Client)(nil)

// NewClient creates an Omise gateway. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client, logger coreport.Logger) (*Client, error) {
	if cfg.SourceType == "" {
		return nil, errors.New("omise: source type is required")
	}
	omc, err := omise.NewClient(cfg.PublicKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("omise: %w", err)
	}
	if httpClient != nil {
		omc.Client = httpClient
	}
	omc.SetDebug(false)

	return &Client{omc: omc, cfg: cfg, logger: logger}, nil
}

// Reserve creates an uncaptured offsite charge for the order
func (c *Client) Reserve(ctx context.Context, req gateway.ReserveRequest) (*gateway.ReserveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	currency := strings.ToLower(req.Currency)

	src := &omise.Source{}
	if err := c.omc.Do(src, &operations.CreateSource{
		Type:     c.cfg.SourceType,
		Amount:   req.Amount,
		Currency: currency,
	}); err != nil {
		return nil, errs.NewPaymentError("reserve", "", "create_source_error", err)
	}

	ch := &omise.Charge{}
	if err := c.omc.Do(ch, &operations.CreateCharge{
		Amount:      req.Amount,
		Currency:    currency,
		Source:      src.ID,
		ReturnURI:   req.ConfirmURL,
		Description: req.ProductName,
		Metadata:    map[string]any{"order_id": req.OrderID},
	}); err != nil {
		return nil, errs.NewPaymentError("reserve", "", "create_charge_error", err)
	}

	if string(ch.Status) == statusFailed {
		return nil, errs.NewPaymentError("reserve", ch.ID, deref(ch.FailureCode), errors.New(deref(ch.FailureMessage)))
	}
	if ch.AuthorizeURI == "" {
		return nil, errs.NewPaymentError("reserve", ch.ID, "", errors.New("charge has no authorize uri"))
	}

	c.logger.Debug("Omise charge created", map[string]any{
		"transaction_id": ch.ID,
		"order_id":       req.OrderID,
		"status":         string(ch.Status),
	})

	return &gateway.ReserveResult{TransactionID: ch.ID, PaymentURL: ch.AuthorizeURI}, nil
}

// Confirm checks that the charge matches and is paid, capturing it first when needed
func (c *Client) Confirm(ctx context.Context, transactionID string, amount int64, currency string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ch := &omise.Charge{}
	if err := c.omc.Do(ch, &operations.RetrieveCharge{ChargeID: transactionID}); err != nil {
		return errs.NewPaymentError("confirm", transactionID, "retrieve_charge_error", err)
	}

	if ch.Amount != amount || !strings.EqualFold(ch.Currency, currency) {
		return errs.NewPaymentError("confirm", transactionID, "amount_mismatch",
			fmt.Errorf("charge is %d %s, expected %d %s", ch.Amount, ch.Currency, amount, currency))
	}

	switch string(ch.Status) {
	case statusSuccessful:
		return nil
	case statusFailed, statusExpired:
		return errs.NewPaymentError("confirm", transactionID, deref(ch.FailureCode), errors.New(deref(ch.FailureMessage)))
	}

	if !ch.Authorized {
		return errs.NewPaymentError("confirm", transactionID, string(ch.Status), errors.New("charge not authorized"))
	}

	captured := &omise.Charge{}
	if err := c.omc.Do(captured, &operations.CaptureCharge{ChargeID: transactionID}); err != nil {
		return errs.NewPaymentError("confirm", transactionID, "capture_error", err)
	}
	if string(captured.Status) != statusSuccessful {
		return errs.NewPaymentError("confirm", transactionID, string(captured.Status), errors.New("capture did not succeed"))
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
