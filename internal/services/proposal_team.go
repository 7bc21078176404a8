package services

import (
	"context"

	"github.com/senyabanana/proposal-service/internal/models"
)

// AssignTeamMember назначает участника на предложение. Повторное назначение ничего не меняет.
func (s *ProposalService) AssignTeamMember(ctx context.Context, proposalId, memberId string, hours int, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "assign_member", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if hours <= 0 {
			return nil, models.InvalidInput("hours must be a positive integer")
		}
		member, err := s.Members.GetTeamMember(ctx, memberId)
		if err != nil {
			return nil, err
		}
		if _, ok := p.AssignedMember(memberId); ok {
			return nil, errNoop
		}

		p.AssignedTeam = append(p.AssignedTeam, models.AssignedMember{MemberID: member.ID, AssignedHours: hours})
		return describeAssignment(*member, hours), nil
	})
}

// UnassignTeamMember снимает участника с предложения. Если он не назначен, ничего не меняется.
func (s *ProposalService) UnassignTeamMember(ctx context.Context, proposalId, memberId, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "unassign_member", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		member, err := s.Members.GetTeamMember(ctx, memberId)
		if err != nil {
			return nil, err
		}

		for i, a := range p.AssignedTeam {
			if a.MemberID == memberId {
				p.AssignedTeam = append(p.AssignedTeam[:i], p.AssignedTeam[i+1:]...)
				return describeUnassignment(*member), nil
			}
		}
		return nil, errNoop
	})
}

// UpdateAssignedHours меняет количество часов назначенного участника.
func (s *ProposalService) UpdateAssignedHours(ctx context.Context, proposalId, memberId string, hours int, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "update_hours", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if hours < 0 {
			return nil, models.InvalidInput("hours must be a non-negative integer")
		}

		index := -1
		for i, a := range p.AssignedTeam {
			if a.MemberID == memberId {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, models.NotAssigned(memberId, p.ID)
		}

		member, err := s.Members.GetTeamMember(ctx, memberId)
		if err != nil {
			return nil, err
		}

		previous := p.AssignedTeam[index].AssignedHours
		p.AssignedTeam[index].AssignedHours = hours
		return describeHoursChange(*member, previous, hours), nil
	})
}
