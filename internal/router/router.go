package router

import (
	"context"
	"net/http"

	"github.com/senyabanana/proposal-service/internal/handlers"
	"github.com/senyabanana/proposal-service/internal/metrics"
)

// Handlers собирает обработчики для регистрации маршрутов.
type Handlers struct {
	Clients   *handlers.ClientHandler
	Members   *handlers.TeamMemberHandler
	Proposals *handlers.ProposalHandler
	// HealthCheck проверяет доступность хранилища, может быть nil.
	HealthCheck func(ctx context.Context) error
}

func InitRoutes(h Handlers, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", handlers.PingHandler(h.HealthCheck))
	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("GET /api/clients", h.Clients.ListClients)
	mux.HandleFunc("POST /api/clients/new", h.Clients.CreateClient)
	mux.HandleFunc("PUT /api/clients/{clientId}", h.Clients.UpdateClient)
	mux.HandleFunc("DELETE /api/clients/{clientId}", h.Clients.DeleteClient)

	mux.HandleFunc("GET /api/members", h.Members.ListTeamMembers)
	mux.HandleFunc("POST /api/members/new", h.Members.CreateTeamMember)
	mux.HandleFunc("POST /api/members/import", h.Members.ImportTeamMembers)
	mux.HandleFunc("PUT /api/members/{memberId}", h.Members.UpdateTeamMember)
	mux.HandleFunc("DELETE /api/members/{memberId}", h.Members.DeleteTeamMember)

	p := h.Proposals
	mux.HandleFunc("GET /api/proposals", p.ListProposals)
	mux.HandleFunc("POST /api/proposals/new", p.CreateProposal)
	mux.HandleFunc("GET /api/proposals/{proposalId}", p.GetProposal)
	mux.HandleFunc("PATCH /api/proposals/{proposalId}/edit", p.EditProposal)
	mux.HandleFunc("PUT /api/proposals/{proposalId}/status", p.UpdateProposalStatus)
	mux.HandleFunc("PUT /api/proposals/{proposalId}/archive", p.ToggleArchiveProposal)
	mux.HandleFunc("PUT /api/proposals/{proposalId}/leader", p.UpdateProposalLeader)
	mux.HandleFunc("POST /api/proposals/{proposalId}/documents", p.AddDocument)
	mux.HandleFunc("GET /api/proposals/{proposalId}/documents/{documentId}/versions/{version}/content", p.GetDocumentContent)
	mux.HandleFunc("PUT /api/proposals/{proposalId}/team/{memberId}", p.AssignTeamMember)
	mux.HandleFunc("DELETE /api/proposals/{proposalId}/team/{memberId}", p.UnassignTeamMember)
	mux.HandleFunc("PATCH /api/proposals/{proposalId}/team/{memberId}/hours", p.UpdateAssignedHours)
	mux.HandleFunc("POST /api/proposals/{proposalId}/comments", p.AddComment)
	mux.HandleFunc("POST /api/proposals/{proposalId}/tasks", p.CreateTask)
	mux.HandleFunc("PATCH /api/proposals/{proposalId}/tasks/{taskId}", p.UpdateTask)
	mux.HandleFunc("DELETE /api/proposals/{proposalId}/tasks/{taskId}", p.DeleteTask)
	mux.HandleFunc("POST /api/proposals/{proposalId}/tasks/{taskId}/comments", p.AddTaskComment)

	return m.Middleware(mux)
}
