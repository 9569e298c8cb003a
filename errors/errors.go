package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định danh loại lỗi trả về cho client
type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// AppError is the error type every service returns to the HTTP layer.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

func Internal(message string, err error) *AppError {
	return NewAppError(ErrCodeInternal, message, err)
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ chuỗi lỗi, nil nếu không có
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// HTTPStatus maps an error code to its response status.
// Conflicts answer 400 like the rest of the booking routes.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeConflict:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrBedUnavailable      = Conflict("Selected bed is not available for booking")
	ErrBedsBelowOccupied   = Validation("Cannot reduce beds below occupied count")
	ErrPropertyHasOccupied = Conflict("Cannot delete property with occupied beds")
	ErrRoomHasOccupied     = Conflict("Cannot delete room with occupied beds")
	ErrDuplicateRoomNumber = Conflict("Room number already exists in this property")
	ErrOnlyPendingCancel   = Forbidden("Only pending bookings can be cancelled")
	ErrInsufficientBalance = Validation("Insufficient balance for this debit")
	ErrPleaseLogin         = Unauthorized("Please login")
)
