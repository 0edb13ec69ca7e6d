package postgres

import "github.com/taskdeck/backend/domain"

func nullPriority(p domain.Priority) interface{} {
	if p == "" {
		return nil
	}
	return string(p)
}

func priorityValue(p *domain.Priority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func deadlineValue(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Time
}
