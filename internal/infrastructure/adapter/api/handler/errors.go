package handler

import (
	"net/http"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Client-facing messages. Internal details never leave the process.
const (
	msgInvalidRequest = "Request is invalid."
	msgUserIDMissing  = "User id not found."
	msgReserveFailed  = "Reservation failed."
	msgNotFound       = "Resource not found."
	msgForbidden      = "Operation not permitted."
	msgInternal       = "Internal error occurred."
)

// respondError maps err to a status and a generic message and logs it
func respondError(c *gin.Context, logger coreport.Logger, status int, err error, message string) {
	fields := errs.LogFields(err)
	fields["path"] = c.Request.URL.Path
	fields["method"] = c.Request.Method
	fields["status"] = status

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
	} else {
		logger.Warn("Request rejected", fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.NewErrorResponse(errs.ErrorCode(err), message))
}

// respondDomainError uses the domain taxonomy to pick the status
func respondDomainError(c *gin.Context, logger coreport.Logger, err error) {
	status := errs.HTTPStatus(err)
	respondError(c, logger, status, err, messageFor(status))
}

func messageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return msgInvalidRequest
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusNotFound:
		return msgNotFound
	default:
		return msgInternal
	}
}
