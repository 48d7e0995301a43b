package repository

import (
	"fmt"
	"strconv"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
)

// Hash field names. ProductInfo travels as an encoded JSON blob because the
// store only holds flat string maps.
const (
	fieldUserID         = "userId"
	fieldAmount         = "amount"
	fieldCurrency       = "currency"
	fieldOrderID        = "orderId"
	fieldProductName    = "productName"
	fieldConfirmURL     = "confirmUrl"
	fieldConfirmURLType = "confirmUrlType"
	fieldType           = "type"
	fieldProductInfo    = "productInfo"
	fieldReservedBy     = "reservedBy"
)

func encodeTransaction(txn *entity.Transaction) (map[string]string, error) {
	info, err := txn.ProductInfo.Encode()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		fieldUserID:         txn.UserID,
		fieldAmount:         strconv.FormatInt(txn.Amount, 10),
		fieldCurrency:       txn.Currency,
		fieldOrderID:        txn.OrderID,
		fieldProductName:    txn.ProductName,
		fieldConfirmURL:     txn.ConfirmURL,
		fieldConfirmURLType: txn.ConfirmURLType,
		fieldType:           string(txn.Type),
		fieldProductInfo:    info,
	}, nil
}

func decodeTransaction(id string, h map[string]string) (*entity.Transaction, error) {
	amount, err := strconv.ParseInt(h[fieldAmount], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction %s has invalid amount %q", errs.ErrPersistence, id, h[fieldAmount])
	}
	info, err := entity.DecodeProductInfo(h[fieldProductInfo])
	if err != nil {
		return nil, err
	}
	return &entity.Transaction{
		ID:             id,
		UserID:         h[fieldUserID],
		Amount:         amount,
		Currency:       h[fieldCurrency],
		OrderID:        h[fieldOrderID],
		ProductName:    h[fieldProductName],
		ConfirmURL:     h[fieldConfirmURL],
		ConfirmURLType: h[fieldConfirmURLType],
		Type:           entity.TransactionType(h[fieldType]),
		ProductInfo:    info,
	}, nil
}

func encodeReservation(r *entity.Reservation) (map[string]string, error) {
	info, err := r.ProductInfo.Encode()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		fieldReservedBy:  r.ReservedBy,
		fieldProductInfo: info,
	}, nil
}

func decodeReservation(id string, h map[string]string) (*entity.Reservation, error) {
	info, err := entity.DecodeProductInfo(h[fieldProductInfo])
	if err != nil {
		return nil, err
	}
	return &entity.Reservation{
		ID:          id,
		ReservedBy:  h[fieldReservedBy],
		ProductInfo: info,
	}, nil
}
