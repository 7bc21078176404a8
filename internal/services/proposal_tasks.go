package services

import (
	"context"
	"time"

	"github.com/senyabanana/proposal-service/internal/models"
	"github.com/senyabanana/proposal-service/internal/utils"
)

// AddComment добавляет комментарий к предложению. История при этом не меняется.
func (s *ProposalService) AddComment(ctx context.Context, proposalId, text, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "add_comment", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if err := utils.ValidateStruct(models.CommentRequest{Text: text}); err != nil {
			return nil, err
		}
		comment := models.Comment{ID: s.newID(), AuthorID: authorId, Text: text, CreatedAt: s.now()}
		p.Comments = append([]models.Comment{comment}, p.Comments...)
		return nil, nil
	})
}

// CreateTask создает задачу внутри предложения.
func (s *ProposalService) CreateTask(ctx context.Context, proposalId string, req models.TaskRequest, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "create_task", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if err := utils.ValidateStruct(req); err != nil {
			return nil, err
		}
		if req.Status == "" {
			req.Status = models.PendingTask
		}
		if req.Priority == "" {
			req.Priority = models.MediumPriority
		}
		if err := s.validateTask(ctx, p, req.Status, req.Priority, req.AssignedToID, req.DueDate); err != nil {
			return nil, err
		}

		task := models.Task{
			ID:           s.newID(),
			Title:        req.Title,
			Description:  req.Description,
			AssignedToID: req.AssignedToID,
			DueDate:      req.DueDate,
			Status:       req.Status,
			Priority:     req.Priority,
			CreatedAt:    s.now(),
			CreatedBy:    authorId,
			Comments:     []models.Comment{},
		}
		p.Tasks = append(p.Tasks, task)
		return describeTaskCreated(task), nil
	})
}

// UpdateTask применяет частичное изменение к задаче: nil-поля запроса не трогаются.
func (s *ProposalService) UpdateTask(ctx context.Context, proposalId, taskId string, req models.TaskUpdateRequest, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "update_task", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if err := utils.ValidateStruct(req); err != nil {
			return nil, err
		}
		index := findTask(*p, taskId)
		if index < 0 {
			return nil, models.NotFound("task", taskId)
		}

		task := p.Tasks[index]
		previousStatus := task.Status
		if req.Title != nil {
			task.Title = *req.Title
		}
		if req.Description != nil {
			task.Description = *req.Description
		}
		if req.AssignedToID != nil {
			task.AssignedToID = *req.AssignedToID
		}
		if req.DueDate != nil {
			dueDate := *req.DueDate
			task.DueDate = &dueDate
		}
		if req.Status != nil {
			task.Status = *req.Status
		}
		if req.Priority != nil {
			task.Priority = *req.Priority
		}

		// Проверяются только изменённые ссылки, старые значения уже были проверены.
		assignee := ""
		if req.AssignedToID != nil {
			assignee = task.AssignedToID
		}
		if err := s.validateTask(ctx, p, task.Status, task.Priority, assignee, req.DueDate); err != nil {
			return nil, err
		}

		p.Tasks[index] = task
		return describeTaskUpdated(task, task.Status != previousStatus), nil
	})
}

// DeleteTask удаляет задачу.
func (s *ProposalService) DeleteTask(ctx context.Context, proposalId, taskId, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "delete_task", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		index := findTask(*p, taskId)
		if index < 0 {
			return nil, models.NotFound("task", taskId)
		}
		task := p.Tasks[index]
		p.Tasks = append(p.Tasks[:index], p.Tasks[index+1:]...)
		return describeTaskDeleted(task), nil
	})
}

// AddCommentToTask добавляет комментарий к задаче без записи в историю предложения.
func (s *ProposalService) AddCommentToTask(ctx context.Context, proposalId, taskId, text, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "add_task_comment", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if err := utils.ValidateStruct(models.CommentRequest{Text: text}); err != nil {
			return nil, err
		}
		index := findTask(*p, taskId)
		if index < 0 {
			return nil, models.NotFound("task", taskId)
		}
		comment := models.Comment{ID: s.newID(), AuthorID: authorId, Text: text, CreatedAt: s.now()}
		p.Tasks[index].Comments = append([]models.Comment{comment}, p.Tasks[index].Comments...)
		return nil, nil
	})
}

// validateTask проверяет перечисления, исполнителя и срок задачи.
func (s *ProposalService) validateTask(ctx context.Context, p *models.Proposal, status models.TaskStatus, priority models.TaskPriority, assignedToId string, dueDate *time.Time) error {
	if !status.IsValid() {
		return models.InvalidInput("invalid task status: %s", status)
	}
	if !priority.IsValid() {
		return models.InvalidInput("invalid task priority: %s", priority)
	}
	if assignedToId != "" {
		if _, err := s.Members.GetTeamMember(ctx, assignedToId); err != nil {
			return err
		}
		if _, ok := p.AssignedMember(assignedToId); !ok {
			return models.NotAssigned(assignedToId, p.ID)
		}
	}
	if dueDate != nil && dueDate.After(p.Deadline) {
		return models.InvalidInput("task dueDate must not be after proposal deadline")
	}
	return nil
}

func findTask(p models.Proposal, taskId string) int {
	for i, t := range p.Tasks {
		if t.ID == taskId {
			return i
		}
	}
	return -1
}
