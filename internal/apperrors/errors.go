package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// Booking and wallet taxonomy. Each of these is recovered at the boundary of
// the atomic unit that raised it; nothing is committed when one is returned.
var (
	ErrSlotUnavailable                = errors.New("requested slot is no longer available")
	ErrInsufficientBalance            = errors.New("insufficient wallet balance")
	ErrInvalidTransition              = errors.New("invalid appointment status transition")
	ErrCancellationWindowViolation    = errors.New("cancellation window has closed")
	ErrDoctorNotAcceptingAppointments = errors.New("doctor is not accepting appointments")
	ErrInvalidPromotionCode           = errors.New("invalid promotion code")
	ErrAlreadyResolved                = errors.New("request already resolved")
)

// AppError wraps an infrastructure failure with an HTTP-ish status code.
// The message is safe to log; it is never sent to clients as-is.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code is the stable machine-readable code reported to API clients.
type Code string

const (
	CodeSlotUnavailable                Code = "SLOT_UNAVAILABLE"
	CodeInsufficientBalance            Code = "INSUFFICIENT_BALANCE"
	CodeInvalidTransition              Code = "INVALID_TRANSITION"
	CodeCancellationWindowViolation    Code = "CANCELLATION_WINDOW_VIOLATION"
	CodeDoctorNotAcceptingAppointments Code = "DOCTOR_NOT_ACCEPTING_APPOINTMENTS"
	CodeInvalidPromotionCode           Code = "INVALID_PROMOTION_CODE"
	CodeAlreadyResolved                Code = "ALREADY_RESOLVED"
	CodeNotFound                       Code = "NOT_FOUND"
	CodeValidation                     Code = "VALIDATION_ERROR"
	CodeForbidden                      Code = "FORBIDDEN"
	CodeDuplicate                      Code = "DUPLICATE"
	CodeInternal                       Code = "INTERNAL_ERROR"
)

// Classification is the client-facing view of an error.
type Classification struct {
	Status     int
	Code       Code
	MessageKey string
	// Message is safe to send to clients; wrapped detail never reaches it.
	Message string
}

var classifications = []struct {
	target error
	class  Classification
}{
	{ErrSlotUnavailable, Classification{409, CodeSlotUnavailable, "booking.slot_unavailable", ""}},
	{ErrInsufficientBalance, Classification{402, CodeInsufficientBalance, "wallet.insufficient_balance", ""}},
	{ErrInvalidTransition, Classification{409, CodeInvalidTransition, "appointment.invalid_transition", ""}},
	{ErrCancellationWindowViolation, Classification{422, CodeCancellationWindowViolation, "appointment.cancellation_window_closed", ""}},
	{ErrDoctorNotAcceptingAppointments, Classification{409, CodeDoctorNotAcceptingAppointments, "booking.doctor_not_accepting", ""}},
	{ErrInvalidPromotionCode, Classification{422, CodeInvalidPromotionCode, "booking.invalid_promotion_code", ""}},
	{ErrAlreadyResolved, Classification{409, CodeAlreadyResolved, "withdrawal.already_resolved", ""}},
	{ErrNotFound, Classification{404, CodeNotFound, "common.not_found", ""}},
	{ErrValidation, Classification{400, CodeValidation, "common.validation_error", ""}},
	{ErrForbidden, Classification{403, CodeForbidden, "common.forbidden", ""}},
	{ErrDuplicate, Classification{409, CodeDuplicate, "common.duplicate", ""}},
}

// Classify maps err onto the stable client-facing taxonomy. Anything not in
// the taxonomy is reported as an internal error.
func Classify(err error) Classification {
	for _, c := range classifications {
		if errors.Is(err, c.target) {
			class := c.class
			class.Message = c.target.Error()
			return class
		}
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == 502 {
		return Classification{502, CodeInternal, "common.upstream_unavailable", "An upstream service is unavailable"}
	}
	return Classification{500, CodeInternal, "common.internal_error", "An internal error occurred"}
}
