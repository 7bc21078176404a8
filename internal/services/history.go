package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/proposal-service/internal/models"
)

// historyChange описывает изменение, которое нужно записать в историю.
type historyChange struct {
	entryType   models.HistoryEntryType
	description string
}

func change(entryType models.HistoryEntryType, format string, args ...any) *historyChange {
	return &historyChange{entryType: entryType, description: fmt.Sprintf(format, args...)}
}

// newHistoryEntry строит запись истории. Метка времени не может быть раньше последней записи,
// поэтому история остаётся упорядоченной от новых к старым даже при откате часов.
func newHistoryEntry(p models.Proposal, id, authorId string, ch historyChange, now time.Time) models.ProposalHistoryEntry {
	if len(p.History) > 0 && now.Before(p.History[0].Timestamp) {
		now = p.History[0].Timestamp
	}
	return models.ProposalHistoryEntry{
		ID:          id,
		AuthorID:    authorId,
		Type:        ch.entryType,
		Description: ch.description,
		Timestamp:   now,
	}
}

// prependHistory добавляет запись в начало истории.
func prependHistory(p *models.Proposal, entry models.ProposalHistoryEntry) {
	p.History = append([]models.ProposalHistoryEntry{entry}, p.History...)
}

func describeCreation(title string) *historyChange {
	return change(models.CreationEntry, "Propuesta \"%s\" creada", title)
}

// describeDetailsChange перечисляет изменённые поля. Даты сравниваются как моменты времени.
func describeDetailsChange(before models.Proposal, req models.ProposalDetailsRequest) *historyChange {
	var changed []string
	if before.Title != req.Title {
		changed = append(changed, "título")
	}
	if before.Description != req.Description {
		changed = append(changed, "descripción")
	}
	if !before.Deadline.Equal(req.Deadline) {
		changed = append(changed, "fecha límite")
	}
	if !sameInstant(before.AlertDate, req.AlertDate) {
		changed = append(changed, "fecha de alerta")
	}
	if len(changed) == 0 {
		return change(models.GeneralEntry, "Detalles guardados sin cambios")
	}
	return change(models.GeneralEntry, "Detalles actualizados: %s", strings.Join(changed, ", "))
}

func describeStatusChange(from, to models.ProposalStatus) *historyChange {
	return change(models.StatusEntry, "Estado cambiado de %s a %s", from, to)
}

func describeArchive(archived bool) *historyChange {
	if archived {
		return change(models.ArchiveEntry, "Propuesta archivada")
	}
	return change(models.ArchiveEntry, "Propuesta desarchivada, estado restablecido a %s", models.DraftProposal)
}

func describeLeaderChange(previous *models.TeamMember, next models.TeamMember) *historyChange {
	if previous == nil {
		return change(models.TeamEntry, "Líder asignado: %s", next.Name)
	}
	return change(models.TeamEntry, "Líder cambiado de %s a %s", previous.Name, next.Name)
}

func describeDocumentAdded(name string) *historyChange {
	return change(models.DocumentEntry, "Documento \"%s\" añadido (versión 1)", name)
}

func describeDocumentVersion(name string, version int) *historyChange {
	return change(models.DocumentEntry, "Nueva versión %d del documento \"%s\"", version, name)
}

func describeAssignment(member models.TeamMember, hours int) *historyChange {
	return change(models.TeamEntry, "%s asignado al equipo con %d horas", member.Name, hours)
}

func describeUnassignment(member models.TeamMember) *historyChange {
	return change(models.TeamEntry, "%s eliminado del equipo", member.Name)
}

func describeHoursChange(member models.TeamMember, from, to int) *historyChange {
	return change(models.TeamEntry, "Horas de %s actualizadas de %d a %d", member.Name, from, to)
}

func describeTaskCreated(task models.Task) *historyChange {
	return change(models.TaskEntry, "Tarea \"%s\" creada", task.Title)
}

func describeTaskUpdated(task models.Task, statusChanged bool) *historyChange {
	if statusChanged {
		return change(models.TaskEntry, "Tarea \"%s\" actualizada (estado: %s)", task.Title, task.Status)
	}
	return change(models.TaskEntry, "Tarea \"%s\" actualizada", task.Title)
}

func describeTaskDeleted(task models.Task) *historyChange {
	return change(models.TaskEntry, "Tarea \"%s\" eliminada", task.Title)
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
