package reservation

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
)

// Initiate reserves a charge with the payment gateway and stages the pending
// reservation. Nothing is persisted unless the gateway accepted the charge.
func (s *Service) Initiate(ctx context.Context, req usecase.InitiateRequest) (result *usecase.InitiateResult, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe(OperationInitiate, start, err) }()

	if err := s.validator.ValidateUserID(req.UserID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateProductInfo(req.ProductInfo); err != nil {
		return nil, err
	}

	venue, err := s.venues.GetByID(ctx, req.ProductInfo.PlaceID)
	if err != nil {
		return nil, err
	}

	info := req.ProductInfo
	info.PlaceName = venue.Name
	orderID := entity.NewOrderID(req.UserID, start)

	reserved, err := s.payment.Reserve(ctx, gateway.ReserveRequest{
		Amount:         venue.Price,
		Currency:       s.cfg.Currency,
		OrderID:        orderID,
		ProductName:    entity.NewProductName(venue, info),
		ConfirmURL:     s.cfg.ConfirmURL,
		ConfirmURLType: entity.ConfirmURLTypeServer,
	})
	if err != nil {
		s.logger.Error("Payment reserve failed", map[string]any{
			"user_id":  req.UserID,
			"place_id": info.PlaceID,
			"order_id": orderID,
			"error":    err.Error(),
		})
		if errs.IsPaymentError(err) {
			return nil, err
		}
		return nil, errs.NewPaymentError("reserve", "", "", err)
	}

	txn, err := entity.NewTransaction(
		reserved.TransactionID,
		req.UserID,
		orderID,
		venue,
		info,
		s.cfg.Currency,
		s.cfg.ConfirmURL,
	)
	if err != nil {
		return nil, errs.NewPaymentError("reserve", reserved.TransactionID, "", err)
	}

	if err := s.ledger.Stage(ctx, txn, s.cfg.TransactionTTL); err != nil {
		s.logger.Error("Failed to stage transaction", map[string]any{
			"transaction_id": txn.ID,
			"user_id":        txn.UserID,
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Reservation payment initiated", map[string]any{
		"transaction_id": txn.ID,
		"user_id":        txn.UserID,
		"place_id":       txn.PlaceID(),
		"amount":         txn.Amount,
		"currency":       txn.Currency,
	})

	return &usecase.InitiateResult{
		TransactionID: txn.ID,
		PaymentURL:    reserved.PaymentURL,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
	}, nil
}
