package models

import (
	"fmt"
	"net/http"
)

type ErrorKind string // Категория ошибки

const (
	NotFoundKind     ErrorKind = "NotFound"     // Сущность не найдена
	ConflictKind     ErrorKind = "Conflict"     // Удаление заблокировано ссылками
	NotAssignedKind  ErrorKind = "NotAssigned"  // Участник не назначен на предложение
	InvalidInputKind ErrorKind = "InvalidInput" // Некорректные входные данные
)

// Ошибки-образцы для сравнения через errors.Is.
var (
	ErrNotFound     = &ErrorResponse{Kind: NotFoundKind, StatusCode: http.StatusNotFound}
	ErrConflict     = &ErrorResponse{Kind: ConflictKind, StatusCode: http.StatusConflict}
	ErrNotAssigned  = &ErrorResponse{Kind: NotAssignedKind, StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidInput = &ErrorResponse{Kind: InvalidInputKind, StatusCode: http.StatusBadRequest}
)

// ErrorResponse описывает ошибку с категорией, кодом и сообщением.
type ErrorResponse struct {
	Kind       ErrorKind `json:"-"`
	StatusCode int       `json:"-"`
	Message    string    `json:"reason"`
}

// NewErrorResponse создает новую ошибку заданной категории.
func NewErrorResponse(kind ErrorKind, message string) *ErrorResponse {
	return &ErrorResponse{
		Kind:       kind,
		StatusCode: statusCodeFor(kind),
		Message:    message}
}

// NotFound создает ошибку "не найдено" для сущности с указанным id.
func NotFound(entity, id string) *ErrorResponse {
	return NewErrorResponse(NotFoundKind, fmt.Sprintf("%s %q not found", entity, id))
}

// Conflict создает ошибку конфликта.
func Conflict(format string, args ...any) *ErrorResponse {
	return NewErrorResponse(ConflictKind, fmt.Sprintf(format, args...))
}

// NotAssigned создает ошибку для участника, не назначенного на предложение.
func NotAssigned(memberID, proposalID string) *ErrorResponse {
	return NewErrorResponse(NotAssignedKind, fmt.Sprintf("member %q is not assigned to proposal %q", memberID, proposalID))
}

// InvalidInput создает ошибку некорректного ввода.
func InvalidInput(format string, args ...any) *ErrorResponse {
	return NewErrorResponse(InvalidInputKind, fmt.Sprintf(format, args...))
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is сравнивает ошибки по категории.
func (e *ErrorResponse) Is(target error) bool {
	t, ok := target.(*ErrorResponse)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func statusCodeFor(kind ErrorKind) int {
	switch kind {
	case NotFoundKind:
		return http.StatusNotFound
	case ConflictKind:
		return http.StatusConflict
	case NotAssignedKind:
		return http.StatusUnprocessableEntity
	case InvalidInputKind:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
