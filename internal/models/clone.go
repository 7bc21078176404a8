package models

import "time"

// Clone возвращает глубокую копию предложения: изменения копии не затрагивают оригинал.
func (p Proposal) Clone() Proposal {
	cp := p
	cp.AlertDate = cloneTime(p.AlertDate)

	cp.Documents = make([]Document, len(p.Documents))
	for i, d := range p.Documents {
		cp.Documents[i] = d.Clone()
	}
	cp.AssignedTeam = append(make([]AssignedMember, 0, len(p.AssignedTeam)), p.AssignedTeam...)
	cp.History = append(make([]ProposalHistoryEntry, 0, len(p.History)), p.History...)
	cp.Comments = append(make([]Comment, 0, len(p.Comments)), p.Comments...)

	cp.Tasks = make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		cp.Tasks[i] = t.Clone()
	}
	return cp
}

// Clone возвращает глубокую копию документа.
func (d Document) Clone() Document {
	cp := d
	cp.Versions = make([]DocumentVersion, len(d.Versions))
	for i, v := range d.Versions {
		v.FileContent = append([]byte(nil), v.FileContent...)
		cp.Versions[i] = v
	}
	return cp
}

// Clone возвращает глубокую копию задачи.
func (t Task) Clone() Task {
	cp := t
	cp.DueDate = cloneTime(t.DueDate)
	cp.Comments = append(make([]Comment, 0, len(t.Comments)), t.Comments...)
	return cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
