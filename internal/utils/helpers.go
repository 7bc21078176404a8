package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/senyabanana/proposal-service/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendJSON отправляет ответ в формате JSON
func SendJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// AsErrorResponse достаёт доменную ошибку из цепочки, если она там есть.
func AsErrorResponse(err error) (*models.ErrorResponse, bool) {
	var errorResponse *models.ErrorResponse
	if errors.As(err, &errorResponse) {
		return errorResponse, true
	}
	return nil, false
}

// ValidateStruct проверяет структуру запроса по тегам validate и возвращает InvalidInput.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return models.InvalidInput("invalid request: %v", err)
	}

	var messages []string
	for _, fe := range validationErrors {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email")
		case "min":
			messages = append(messages, field+" must be at least "+fe.Param()+" characters")
		case "oneof":
			messages = append(messages, field+" must be one of: "+fe.Param())
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return models.InvalidInput("%s", strings.Join(messages, ", "))
}

// ParseHours разбирает количество часов из строки запроса.
func ParseHours(hoursStr string) (int, error) {
	if hoursStr == "" {
		return 0, models.InvalidInput("missing required query parameter: hours")
	}
	hours, err := strconv.Atoi(hoursStr)
	if err != nil {
		return 0, models.InvalidInput("invalid hours parameter, must be an integer")
	}
	return hours, nil
}

// ParseVersion разбирает номер версии документа.
func ParseVersion(versionStr string) (int, error) {
	version, err := strconv.Atoi(versionStr)
	if err != nil || version < 1 {
		return 0, models.InvalidInput("invalid version number")
	}
	return version, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
