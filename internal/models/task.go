package models

import "time"

type (
	TaskStatus   string // Статус задачи
	TaskPriority string // Приоритет задачи
)

const (
	PendingTask    TaskStatus = "Pendiente"   // Задача ожидает
	InProgressTask TaskStatus = "En Progreso" // Задача в работе
	CompletedTask  TaskStatus = "Completada"  // Задача выполнена

	HighPriority   TaskPriority = "Alta"
	MediumPriority TaskPriority = "Media"
	LowPriority    TaskPriority = "Baja"
)

func (s TaskStatus) IsValid() bool {
	return s == PendingTask || s == InProgressTask || s == CompletedTask
}

func (p TaskPriority) IsValid() bool {
	return p == HighPriority || p == MediumPriority || p == LowPriority
}

// Task представляет задачу внутри предложения.
type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	AssignedToID string       `json:"assignedToId,omitempty"`
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	CreatedAt    time.Time    `json:"createdAt"`
	CreatedBy    string       `json:"createdBy"`
	Comments     []Comment    `json:"comments"`
}

// TaskRequest представляет структуру запроса для создания задачи.
type TaskRequest struct {
	Title        string       `json:"title" validate:"required"`
	Description  string       `json:"description"`
	AssignedToID string       `json:"assignedToId"`
	DueDate      *time.Time   `json:"dueDate"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
}

// TaskUpdateRequest содержит только изменяемые поля задачи, nil означает "не менять".
type TaskUpdateRequest struct {
	Title        *string       `json:"title" validate:"omitempty,min=1"`
	Description  *string       `json:"description"`
	AssignedToID *string       `json:"assignedToId"`
	DueDate      *time.Time    `json:"dueDate"`
	Status       *TaskStatus   `json:"status"`
	Priority     *TaskPriority `json:"priority"`
}
