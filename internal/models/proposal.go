package models

import "time"

type (
	ProposalStatus   string // Статус предложения
	HistoryEntryType string // Тип записи в истории предложения
)

const (
	DraftProposal    ProposalStatus = "Borrador"  // Черновик
	SentProposal     ProposalStatus = "Enviado"   // Отправлено клиенту
	AcceptedProposal ProposalStatus = "Aceptado"  // Принято клиентом
	RejectedProposal ProposalStatus = "Rechazado" // Отклонено клиентом
	// ArchivedProposal только отображается, в хранилище статус не пишется.
	ArchivedProposal ProposalStatus = "Archivado"

	CreationEntry HistoryEntryType = "creation"
	StatusEntry   HistoryEntryType = "status"
	DocumentEntry HistoryEntryType = "document"
	TeamEntry     HistoryEntryType = "team"
	GeneralEntry  HistoryEntryType = "general"
	ArchiveEntry  HistoryEntryType = "archive"
	TaskEntry     HistoryEntryType = "task"
)

// IsValid проверяет, что статус можно сохранить в предложении.
func (s ProposalStatus) IsValid() bool {
	switch s {
	case DraftProposal, SentProposal, AcceptedProposal, RejectedProposal:
		return true
	}
	return false
}

// Proposal представляет модель коммерческого предложения.
type Proposal struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	ClientID     string                 `json:"clientId"`
	LeaderID     string                 `json:"leaderId,omitempty"`
	Description  string                 `json:"description"`
	Deadline     time.Time              `json:"deadline"`
	AlertDate    *time.Time             `json:"alertDate,omitempty"`
	Status       ProposalStatus         `json:"status"`
	IsArchived   bool                   `json:"isArchived"`
	CreatedAt    time.Time              `json:"createdAt"`
	Documents    []Document             `json:"documents"`
	AssignedTeam []AssignedMember       `json:"assignedTeam"`
	History      []ProposalHistoryEntry `json:"history"`
	Comments     []Comment              `json:"comments"`
	Tasks        []Task                 `json:"tasks"`
}

// DisplayStatus возвращает статус для отображения с учётом архива.
func (p Proposal) DisplayStatus() ProposalStatus {
	if p.IsArchived {
		return ArchivedProposal
	}
	return p.Status
}

// AssignedMember возвращает назначение участника, если оно есть.
func (p Proposal) AssignedMember(memberID string) (AssignedMember, bool) {
	for _, a := range p.AssignedTeam {
		if a.MemberID == memberID {
			return a, true
		}
	}
	return AssignedMember{}, false
}

// References проверяет, ссылается ли предложение на участника как на лидера или члена команды.
func (p Proposal) References(memberID string) bool {
	if p.LeaderID == memberID {
		return true
	}
	_, ok := p.AssignedMember(memberID)
	return ok
}

// AssignedMemberIDs возвращает идентификаторы назначенных участников.
func (p Proposal) AssignedMemberIDs() []string {
	ids := make([]string, 0, len(p.AssignedTeam))
	for _, a := range p.AssignedTeam {
		ids = append(ids, a.MemberID)
	}
	return ids
}

// Document представляет документ предложения с версиями.
type Document struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"createdAt"`
	Versions  []DocumentVersion `json:"versions"` // versions[0] всегда последняя
}

// LatestVersionNumber возвращает максимальный номер версии документа.
func (d Document) LatestVersionNumber() int {
	latest := 0
	for _, v := range d.Versions {
		if v.VersionNumber > latest {
			latest = v.VersionNumber
		}
	}
	return latest
}

// DocumentVersion представляет неизменяемую версию документа.
type DocumentVersion struct {
	VersionNumber int       `json:"versionNumber"`
	FileName      string    `json:"fileName"`
	FileContent   []byte    `json:"fileContent,omitempty"`
	FileKey       string    `json:"fileKey,omitempty"`
	FileSize      int64     `json:"fileSize"`
	FileHash      string    `json:"fileHash,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Notes         string    `json:"notes"`
}

// AssignedMember представляет участника, назначенного на предложение.
type AssignedMember struct {
	MemberID      string `json:"memberId"`
	AssignedHours int    `json:"assignedHours"`
}

// ProposalHistoryEntry представляет запись в истории изменений предложения.
type ProposalHistoryEntry struct {
	ID          string           `json:"id"`
	AuthorID    string           `json:"authorId"`
	Type        HistoryEntryType `json:"type"`
	Description string           `json:"description"`
	Timestamp   time.Time        `json:"timestamp"`
}

// Comment представляет комментарий к предложению или задаче.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProposalRequest представляет структуру запроса для создания предложения.
type ProposalRequest struct {
	Title       string     `json:"title" validate:"required"`
	ClientID    string     `json:"clientId" validate:"required"`
	LeaderID    string     `json:"leaderId"`
	Description string     `json:"description" validate:"required"`
	Deadline    time.Time  `json:"deadline" validate:"required"`
	AlertDate   *time.Time `json:"alertDate"`
}

// ProposalDetailsRequest представляет структуру запроса для изменения деталей предложения.
type ProposalDetailsRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Deadline    time.Time  `json:"deadline" validate:"required"`
	AlertDate   *time.Time `json:"alertDate"`
}

// DocumentRequest представляет структуру запроса для добавления документа или его версии.
type DocumentRequest struct {
	Name     string `json:"name"`
	FileName string `json:"fileName" validate:"required"`
	File     []byte `json:"file"`
	Notes    string `json:"notes"`
}

// CommentRequest представляет структуру запроса для добавления комментария.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}
