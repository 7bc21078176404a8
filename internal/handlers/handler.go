package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/senyabanana/proposal-service/internal/utils"

	"github.com/sirupsen/logrus"
)

// maxBodyBytes ограничивает размер тела запроса, включая загружаемые файлы.
const maxBodyBytes = 32 << 20

// respondError отправляет доменную ошибку с её кодом, остальные ошибки скрываются за fallback.
func respondError(logger *logrus.Logger, w http.ResponseWriter, r *http.Request, err error, fallback string) {
	entry := logger.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"error":  err.Error(),
	})
	if errorResponse, ok := utils.AsErrorResponse(err); ok {
		entry.WithField("kind", errorResponse.Kind).Warn("request rejected")
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	entry.Error(fallback)
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// respond отправляет успешный ответ в JSON.
func respond(logger *logrus.Logger, w http.ResponseWriter, statusCode int, v any) {
	if err := utils.SendJSON(w, statusCode, v); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// decodeJSON читает тело запроса; при ошибке сразу отвечает 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
