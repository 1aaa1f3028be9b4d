package models

import (
	"errors"
	"net/http"
)

// Виды ошибок, которые сервисы возвращают вызывающей стороне.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidState     = errors.New("invalid state")
	ErrAlreadyCompleted = errors.New("already completed")
	ErrValidation       = errors.New("validation failed")
)

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
	Kind       error  `json:"-"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// Unwrap позволяет сравнивать ошибку с видом через errors.Is.
func (e *ErrorResponse) Unwrap() error {
	return e.Kind
}

func newKind(kind error, statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{StatusCode: statusCode, Message: message, Kind: kind}
}

// NotFound - сущность по идентификатору не найдена.
func NotFound(message string) *ErrorResponse {
	return newKind(ErrNotFound, http.StatusNotFound, message)
}

// Unauthorized - у пользователя нет нужной связи с сущностью.
func Unauthorized(message string) *ErrorResponse {
	return newKind(ErrUnauthorized, http.StatusForbidden, message)
}

// InvalidState - операция недопустима в текущем статусе.
func InvalidState(message string) *ErrorResponse {
	return newKind(ErrInvalidState, http.StatusConflict, message)
}

// AlreadyCompleted - контракт уже завершен.
func AlreadyCompleted(message string) *ErrorResponse {
	return newKind(ErrAlreadyCompleted, http.StatusConflict, message)
}

// Validation - некорректные входные данные.
func Validation(message string) *ErrorResponse {
	return newKind(ErrValidation, http.StatusBadRequest, message)
}
