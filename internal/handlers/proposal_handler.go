package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/senyabanana/proposal-service/internal/models"
	"github.com/senyabanana/proposal-service/internal/services"
	"github.com/senyabanana/proposal-service/internal/utils"

	"github.com/sirupsen/logrus"
)

// ProposalHandler - структура для обработки HTTP-запросов по предложениям.
type ProposalHandler struct {
	Service *services.ProposalService
	Logger  *logrus.Logger
	Timeout time.Duration
}

// NewProposalHandler создаёт новый экземпляр ProposalHandler.
func NewProposalHandler(service *services.ProposalService, logger *logrus.Logger, timeout time.Duration) *ProposalHandler {
	return &ProposalHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// proposalResult отправляет обновлённое предложение или ошибку операции.
func (h *ProposalHandler) proposalResult(w http.ResponseWriter, r *http.Request, proposal *models.Proposal, err error, fallback string) {
	if err != nil {
		respondError(h.Logger, w, r, err, fallback)
		return
	}
	respond(h.Logger, w, http.StatusOK, proposal)
}

func authorID(r *http.Request) string {
	return r.URL.Query().Get("authorId")
}

// ListProposals обрабатывает запросы для получения списка предложений.
func (h *ProposalHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposals, err := h.Service.ListProposals(ctx)
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to fetch proposals")
		return
	}
	respond(h.Logger, w, http.StatusOK, proposals)
}

// GetProposal обрабатывает запросы для получения предложения.
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposal, err := h.Service.GetProposal(ctx, r.PathValue("proposalId"))
	h.proposalResult(w, r, proposal, err, "failed to fetch proposal")
}

// CreateProposal обрабатывает запросы для создания предложения.
func (h *ProposalHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.ProposalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	proposal, err := h.Service.CreateProposal(ctx, req, authorID(r))
	if err == nil {
		h.Logger.WithFields(logrus.Fields{"proposal_id": proposal.ID, "client_id": proposal.ClientID}).Info("proposal created")
	}
	h.proposalResult(w, r, proposal, err, "failed to create proposal")
}

// EditProposal обрабатывает запросы для изменения деталей предложения.
func (h *ProposalHandler) EditProposal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.ProposalDetailsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	proposal, err := h.Service.UpdateProposalDetails(ctx, r.PathValue("proposalId"), req, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to update proposal")
}

// UpdateProposalStatus обрабатывает запросы для изменения статуса предложения.
func (h *ProposalHandler) UpdateProposalStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	status := r.URL.Query().Get("status")
	if status == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: status")
		return
	}

	proposal, err := h.Service.UpdateProposalStatus(ctx, r.PathValue("proposalId"), models.ProposalStatus(status), authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to update proposal status")
}

// ToggleArchiveProposal обрабатывает запросы для архивирования и разархивирования.
func (h *ProposalHandler) ToggleArchiveProposal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposal, err := h.Service.ToggleArchiveProposal(ctx, r.PathValue("proposalId"), authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to toggle archive")
}

// UpdateProposalLeader обрабатывает запросы для смены лидера.
func (h *ProposalHandler) UpdateProposalLeader(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	leaderId := r.URL.Query().Get("leaderId")
	proposal, err := h.Service.UpdateProposalLeader(ctx, r.PathValue("proposalId"), leaderId, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to update proposal leader")
}

// AddDocument обрабатывает загрузку документа или его новой версии.
// Принимает JSON (file в base64) или multipart/form-data с полями name, notes и файлом file.
func (h *ProposalHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.DocumentRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var err error
		req, err = readMultipartDocument(w, r)
		if err != nil {
			utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	documentId := r.URL.Query().Get("documentId")
	proposal, err := h.Service.AddOrUpdateDocument(ctx, r.PathValue("proposalId"), req, documentId, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to add document")
}

func readMultipartDocument(w http.ResponseWriter, r *http.Request) (models.DocumentRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		return models.DocumentRequest{}, fmt.Errorf("invalid multipart body")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return models.DocumentRequest{}, fmt.Errorf("missing file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.DocumentRequest{}, fmt.Errorf("failed to read file")
	}
	return models.DocumentRequest{
		Name:     r.FormValue("name"),
		FileName: header.Filename,
		File:     data,
		Notes:    r.FormValue("notes"),
	}, nil
}

// GetDocumentContent отдаёт содержимое версии документа.
func (h *ProposalHandler) GetDocumentContent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	version, err := utils.ParseVersion(r.PathValue("version"))
	if err != nil {
		respondError(h.Logger, w, r, err, "invalid version")
		return
	}

	data, meta, err := h.Service.GetDocumentContent(ctx, r.PathValue("proposalId"), r.PathValue("documentId"), version)
	if err != nil {
		respondError(h.Logger, w, r, err, "failed to fetch document content")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.WithError(err).Error("failed to write document content")
	}
}

// AssignTeamMember обрабатывает запросы для назначения участника.
func (h *ProposalHandler) AssignTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	hours, err := utils.ParseHours(r.URL.Query().Get("hours"))
	if err != nil {
		respondError(h.Logger, w, r, err, "invalid hours")
		return
	}

	proposal, err := h.Service.AssignTeamMember(ctx, r.PathValue("proposalId"), r.PathValue("memberId"), hours, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to assign team member")
}

// UnassignTeamMember обрабатывает запросы для снятия участника.
func (h *ProposalHandler) UnassignTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposal, err := h.Service.UnassignTeamMember(ctx, r.PathValue("proposalId"), r.PathValue("memberId"), authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to unassign team member")
}

// UpdateAssignedHours обрабатывает запросы для изменения часов участника.
func (h *ProposalHandler) UpdateAssignedHours(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	hours, err := utils.ParseHours(r.URL.Query().Get("hours"))
	if err != nil {
		respondError(h.Logger, w, r, err, "invalid hours")
		return
	}

	proposal, err := h.Service.UpdateAssignedHours(ctx, r.PathValue("proposalId"), r.PathValue("memberId"), hours, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to update assigned hours")
}

// AddComment обрабатывает запросы для добавления комментария к предложению.
func (h *ProposalHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	proposal, err := h.Service.AddComment(ctx, r.PathValue("proposalId"), req.Text, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to add comment")
}

// CreateTask обрабатывает запросы для создания задачи.
func (h *ProposalHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.TaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	proposal, err := h.Service.CreateTask(ctx, r.PathValue("proposalId"), req, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to create task")
}

// UpdateTask обрабатывает запросы для частичного изменения задачи.
func (h *ProposalHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.TaskUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	proposal, err := h.Service.UpdateTask(ctx, r.PathValue("proposalId"), r.PathValue("taskId"), req, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to update task")
}

// DeleteTask обрабатывает запросы для удаления задачи.
func (h *ProposalHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposal, err := h.Service.DeleteTask(ctx, r.PathValue("proposalId"), r.PathValue("taskId"), authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to delete task")
}

// AddTaskComment обрабатывает запросы для добавления комментария к задаче.
func (h *ProposalHandler) AddTaskComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	proposal, err := h.Service.AddCommentToTask(ctx, r.PathValue("proposalId"), r.PathValue("taskId"), req.Text, authorID(r))
	h.proposalResult(w, r, proposal, err, "failed to add task comment")
}
