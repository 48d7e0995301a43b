package handler

import (
	"net/http"
	"strings"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ReservationHandler handles the reservation lifecycle endpoints
type ReservationHandler struct {
	reservations usecase.ReservationUseCase
	logger       coreport.Logger
}

// NewReservationHandler creates a new reservation handler instance
func NewReservationHandler(reservations usecase.ReservationUseCase, logger coreport.Logger) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, logger: logger}
}

// Reserve handles POST /reservations
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req dto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if strings.TrimSpace(req.UserID) == "" {
			respondError(c, h.logger, http.StatusBadRequest, errs.ErrInvalidUserID, msgUserIDMissing)
			return
		}
		respondError(c, h.logger, http.StatusBadRequest, errs.ErrInvalidRequest, msgInvalidRequest)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		respondError(c, h.logger, http.StatusBadRequest, errs.ErrInvalidUserID, msgUserIDMissing)
		return
	}

	result, err := h.reservations.Initiate(c.Request.Context(), usecase.InitiateRequest{
		UserID:      req.UserID,
		ProductInfo: req.ProductInfo.ToEntity(),
	})
	if err != nil {
		status := errs.HTTPStatus(err)
		message := msgInternal
		if status < http.StatusInternalServerError {
			status = http.StatusBadRequest
			message = msgReserveFailed
		}
		respondError(c, h.logger, status, err, message)
		return
	}

	c.JSON(http.StatusOK, dto.ReserveResponse{
		Result:        dto.ResultSuccess,
		URI:           result.PaymentURL,
		TransactionID: result.TransactionID,
	})
}

// ConfirmPayment handles GET /pay/confirm, called by the payment gateway
// after the user approved the charge
func (h *ReservationHandler) ConfirmPayment(c *gin.Context) {
	transactionID := strings.TrimSpace(c.Query("transactionId"))
	if transactionID == "" {
		respondError(c, h.logger, http.StatusBadRequest, errs.ErrInvalidRequest, "Transaction ID not found.")
		return
	}

	if _, err := h.reservations.Confirm(c.Request.Context(), transactionID); err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Result: dto.ResultSuccess})
}

// Cancel handles DELETE /users/:userId/reservations/:reservationId
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID := c.Param("userId")
	reservationID := c.Param("reservationId")

	if err := h.reservations.Cancel(c.Request.Context(), userID, reservationID); err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Result: dto.ResultSuccess})
}
