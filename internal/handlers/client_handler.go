package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/proposal-service/internal/models"
	"github.com/senyabanana/proposal-service/internal/services"

	"github.com/sirupsen/logrus"
)

// ClientHandler - структура для обработки HTTP-запросов по клиентам.
type ClientHandler struct {
	Service *services.ClientService
	Logger  *logrus.Logger
	Timeout time.Duration
}

// NewClientHandler создаёт новый экземпляр ClientHandler.
func NewClientHandler(service *services.ClientService, logger *logrus.Logger, timeout time.Duration) *ClientHandler {
	return &ClientHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// ListClients обрабатывает запросы для получения списка клиентов.
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	clients, err := h.Service.ListClients(ctx)
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to fetch clients")
		return
	}
	respond(h.Logger, w, http.StatusOK, clients)
}

// CreateClient обрабатывает запросы для создания клиента.
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	client, err := h.Service.CreateClient(ctx, req)
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to create client")
		return
	}
	respond(h.Logger, w, http.StatusOK, client)
}

// UpdateClient обрабатывает запросы для изменения клиента.
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	client, err := h.Service.UpdateClient(ctx, r.PathValue("clientId"), req)
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to update client")
		return
	}
	respond(h.Logger, w, http.StatusOK, client)
}

// DeleteClient обрабатывает запросы для удаления клиента.
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	clientId := r.PathValue("clientId")
	if err := h.Service.DeleteClient(ctx, clientId); err != nil {
		respondError(h.Logger, w, r, err, "failed to delete client")
		return
	}
	h.Logger.WithField("client_id", clientId).Info("client deleted")
	w.WriteHeader(http.StatusNoContent)
}
