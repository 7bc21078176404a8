package repository

import (
	"context"

	"github.com/senyabanana/proposal-service/internal/models"
)

// DemoClients и DemoTeamMembers - начальные данные для локального запуска.
var (
	DemoClients = []models.Client{
		{ID: "client-1", CompanyName: "Innovatech Solutions", ContactName: "Laura Gómez", ContactEmail: "laura.gomez@innovatech.com", ContactPhone: "+34 600 111 222"},
		{ID: "client-2", CompanyName: "Global Logistics", ContactName: "Carlos Pérez", ContactEmail: "carlos.perez@globallogistics.com", ContactPhone: "+34 600 333 444"},
	}
	DemoTeamMembers = []models.TeamMember{
		{ID: "team-1", Name: "Ana Torres", Role: "Directora de Proyectos", Alias: "ana", Email: "ana.torres@example.com", Roles: []models.UserRole{models.AdminRole, models.ProjectManagerRole}},
		{ID: "team-2", Name: "Javier Ruiz", Role: "Desarrollador Senior", Alias: "javi", Email: "javier.ruiz@example.com", Roles: []models.UserRole{models.TeamMemberRole}},
		{ID: "team-3", Name: "Marta Díaz", Role: "Diseñadora UX", Email: "marta.diaz@example.com", Roles: []models.UserRole{models.TeamMemberRole}},
	}
)

// SeedDemoData записывает демонстрационных клиентов и участников.
func SeedDemoData(ctx context.Context, clients ClientRepository, members TeamMemberRepository) error {
	for _, c := range DemoClients {
		if err := clients.SaveClient(ctx, c); err != nil {
			return err
		}
	}
	for _, m := range DemoTeamMembers {
		if err := members.SaveTeamMember(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
