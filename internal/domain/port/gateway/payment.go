package gateway

import "context"

// ReserveRequest asks the payment gateway to reserve a charge
type ReserveRequest struct {
	Amount         int64
	Currency       string
	OrderID        string
	ProductName    string
	ConfirmURL     string
	ConfirmURLType string
}

// ReserveResult is the gateway's answer to a reserve request
type ReserveResult struct {
	TransactionID string
	PaymentURL    string
}

// PaymentGateway reserves charges and confirms them once the user approved
type PaymentGateway interface {
	// Reserve registers a charge and returns the page the user pays on
	Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error)

	// Confirm captures a reserved charge
	Confirm(ctx context.Context, transactionID string, amount int64, currency string) error
}
