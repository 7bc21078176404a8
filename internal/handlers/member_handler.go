package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/senyabanana/proposal-service/internal/models"
	"github.com/senyabanana/proposal-service/internal/services"
	"github.com/senyabanana/proposal-service/internal/utils"

	"github.com/sirupsen/logrus"
)

// TeamMemberHandler - структура для обработки HTTP-запросов по участникам команды.
type TeamMemberHandler struct {
	Service *services.TeamMemberService
	Logger  *logrus.Logger
	Timeout time.Duration
}

// NewTeamMemberHandler создаёт новый экземпляр TeamMemberHandler.
func NewTeamMemberHandler(service *services.TeamMemberService, logger *logrus.Logger, timeout time.Duration) *TeamMemberHandler {
	return &TeamMemberHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// ListTeamMembers обрабатывает запросы для получения списка участников.
func (h *TeamMemberHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	members, err := h.Service.ListTeamMembers(ctx)
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to fetch team members")
		return
	}
	respond(h.Logger, w, http.StatusOK, members)
}

// CreateTeamMember обрабатывает запросы для создания участника.
func (h *TeamMemberHandler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	member, err := h.Service.CreateTeamMember(ctx, req)
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to create team member")
		return
	}
	respond(h.Logger, w, http.StatusOK, member)
}

// UpdateTeamMember обрабатывает запросы для изменения участника.
func (h *TeamMemberHandler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	member, err := h.Service.UpdateTeamMember(ctx, r.PathValue("memberId"), req)
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to update team member")
		return
	}
	respond(h.Logger, w, http.StatusOK, member)
}

// DeleteTeamMember обрабатывает запросы для удаления участника.
func (h *TeamMemberHandler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	memberId := r.PathValue("memberId")
	if err := h.Service.DeleteTeamMember(ctx, memberId); err != nil {
		respondError(h.Logger, w, r, err, "failed to delete team member")
		return
	}
	h.Logger.WithField("member_id", memberId).Info("team member deleted")
	w.WriteHeader(http.StatusNoContent)
}

// ImportTeamMembers обрабатывает загрузку CSV с участниками (тело запроса - текст CSV).
func (h *TeamMemberHandler) ImportTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	imported, err := h.Service.ImportCSV(ctx, string(body))
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to import team members")
		return
	}
	h.Logger.WithField("imported", len(imported)).Info("team members imported")
	respond(h.Logger, w, http.StatusOK, imported)
}
