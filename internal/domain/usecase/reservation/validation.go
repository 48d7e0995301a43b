package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/go-playground/validator/v10"
)

// RequestValidator checks reservation requests before any side effect
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a new RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateUserID checks that an opaque user id was supplied
func (v *RequestValidator) ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.ErrInvalidUserID
	}
	return nil
}

// ValidateProductInfo checks required fields, the calendar date and the slot format
func (v *RequestValidator) ValidateProductInfo(info entity.ProductInfo) error {
	if err := v.validate.Struct(info); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed on %s", errs.ErrInvalidProductInfo, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %s", errs.ErrInvalidProductInfo, err.Error())
	}

	// time.Date normalizes Feb 30 into March; a real date round-trips
	d := time.Date(info.Year, time.Month(info.Month), info.Day, 0, 0, 0, 0, time.UTC)
	if d.Year() != info.Year || int(d.Month()) != info.Month || d.Day() != info.Day {
		return fmt.Errorf("%w: %s", errs.ErrInvalidDate, info.FormattedDate())
	}

	slot, err := entity.ParseTimeSlot(info.Time)
	if err != nil {
		return err
	}
	if slot.End.Hour*60+slot.End.Minute <= slot.Start.Hour*60+slot.Start.Minute {
		return fmt.Errorf("%w: slot must end after it starts: %q", errs.ErrInvalidTimeSlot, info.Time)
	}

	return nil
}
