package models

type UserRole string // Роль пользователя в системе

const (
	AdminRole          UserRole = "Admin"          // Администратор
	ProjectManagerRole UserRole = "ProjectManager" // Руководитель проектов
	TeamMemberRole     UserRole = "TeamMember"     // Участник команды
)

// TeamMember представляет модель участника команды.
type TeamMember struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Role  string     `json:"role"`
	Alias string     `json:"alias,omitempty"`
	Email string     `json:"email,omitempty"`
	Roles []UserRole `json:"roles"`
}

// TeamMemberRequest представляет структуру запроса для создания или обновления участника.
type TeamMemberRequest struct {
	Name  string     `json:"name" validate:"required"`
	Role  string     `json:"role" validate:"required"`
	Alias string     `json:"alias"`
	Email string     `json:"email" validate:"omitempty,email"`
	Roles []UserRole `json:"roles" validate:"omitempty,dive,oneof=Admin ProjectManager TeamMember"`
}

// HasRole проверяет, есть ли у участника указанная роль.
func (m TeamMember) HasRole(role UserRole) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRoles убирает дубликаты и подставляет роль по умолчанию.
func NormalizeRoles(roles []UserRole) []UserRole {
	seen := make(map[UserRole]bool, len(roles))
	out := make([]UserRole, 0, len(roles))
	for _, r := range roles {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	if len(out) == 0 {
		out = append(out, TeamMemberRole)
	}
	return out
}

// Clone возвращает независимую копию участника.
func (m TeamMember) Clone() TeamMember {
	m.Roles = append([]UserRole(nil), m.Roles...)
	return m
}
