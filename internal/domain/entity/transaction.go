package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
)

// TransactionType describes why a ledger entry was staged
type TransactionType string

// Transaction types
const (
	TransactionTypeReserve TransactionType = "reserve"
)

// ConfirmURLTypeServer makes the payment gateway call the confirm URL server-to-server
const ConfirmURLTypeServer = "SERVER"

// DefaultTransactionTTL bounds how long an unconfirmed payment stays in the ledger
const DefaultTransactionTTL = 600 * time.Second

// Transaction is a short-lived ledger entry linking a payment-gateway charge
// to a pending reservation request
type Transaction struct {
	ID             string          // Assigned by the payment gateway
	UserID         string          // Opaque user identifier from the chat platform
	Amount         int64           // Charge amount in the currency's minor unit
	Currency       string          // ISO 4217 code
	OrderID        string          // Merchant order identifier sent to the gateway
	ProductName    string          // Human readable name shown on the payment page
	ConfirmURL     string          // Callback the gateway redirects to after approval
	ConfirmURLType string          // How the gateway calls ConfirmURL
	Type           TransactionType // Purpose of the entry
	ProductInfo    ProductInfo     // What is being reserved
}

// NewOrderID builds the merchant order id for a user's charge
func NewOrderID(userID string, now time.Time) string {
	return fmt.Sprintf("%s-%d", userID, now.UnixMilli())
}

// NewProductName returns the product label shown on the payment page and in
// notifications. The client's name wins; otherwise one is built from the slot.
func NewProductName(venue *Venue, info ProductInfo) string {
	if name := strings.TrimSpace(info.Name); name != "" {
		return name
	}
	return fmt.Sprintf("%s %04d/%02d/%02d %s", venue.Name, info.Year, info.Month, info.Day, info.Time)
}

// NewTransaction creates a ledger entry for a charge the gateway has reserved
func NewTransaction(
	id string,
	userID string,
	orderID string,
	venue *Venue,
	info ProductInfo,
	currency string,
	confirmURL string,
) (*Transaction, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty transaction id", errs.ErrInvalidRequest)
	}
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if venue == nil {
		return nil, errs.ErrVenueNotFound
	}

	info.PlaceName = venue.Name

	return &Transaction{
		ID:             id,
		UserID:         userID,
		Amount:         venue.Price,
		Currency:       currency,
		OrderID:        orderID,
		ProductName:    NewProductName(venue, info),
		ConfirmURL:     confirmURL,
		ConfirmURLType: ConfirmURLTypeServer,
		Type:           TransactionTypeReserve,
		ProductInfo:    info,
	}, nil
}

// PlaceID returns the venue the pending reservation is for
func (t *Transaction) PlaceID() string {
	return t.ProductInfo.PlaceID
}
