// Package validation centralises request validation that goes beyond field
// tags, notably cross-field checks on booking requests.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(bookingWindowValidation, BookingRequest{})
	return v
}

// BookingRequest is the driver's booking submission.
type BookingRequest struct {
	SpotID   string `json:"spot_id" validate:"required,uuid4"`
	SpotType string `json:"spot_type" validate:"required,oneof=parking_spot commercial_slot private_slot"`

	ScheduledStartTime time.Time `json:"scheduled_start_time" validate:"required"`
	ScheduledEndTime   time.Time `json:"scheduled_end_time" validate:"required"`
}

func bookingWindowValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(BookingRequest)
	if !req.ScheduledStartTime.IsZero() && !req.ScheduledEndTime.IsZero() {
		if !req.ScheduledEndTime.After(req.ScheduledStartTime) {
			sl.ReportError(req.ScheduledEndTime, "ScheduledEndTime", "scheduled_end_time", "gtstart", "")
		}
	}
}

// Struct validates any tagged struct and flattens the errors into one
// readable message.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "gtstart":
		return "scheduled end must be after scheduled start"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
