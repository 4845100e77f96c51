package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Service error kinds. Handlers map these onto HTTP statuses; everything that
// crosses the HTTP boundary still goes through middleware.JsonResponse.
const (
	ErrKindNotFound           = "NOT_FOUND"
	ErrKindInvalidState       = "INVALID_STATE"
	ErrKindAlreadyExists      = "ALREADY_EXISTS"
	ErrKindValidation         = "VALIDATION_ERROR"
	ErrKindStorageFailure     = "STORAGE_FAILURE"
	ErrKindPersistenceFailure = "PERSISTENCE_FAILURE"
)

// ServiceError is a tagged failure returned by the certificate engine's
// service functions.
type ServiceError struct {
	Kind    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError builds a ServiceError without an underlying cause
func NewServiceError(kind, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message}
}

// WrapServiceError builds a ServiceError around an underlying error
func WrapServiceError(kind, message string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Err: err}
}

// HTTPStatusFor maps an error kind to the HTTP status handlers respond with
func HTTPStatusFor(kind string) int {
	switch kind {
	case ErrKindNotFound:
		return fiber.StatusNotFound
	case ErrKindInvalidState:
		return fiber.StatusBadRequest
	case ErrKindAlreadyExists:
		return fiber.StatusConflict
	case ErrKindValidation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
