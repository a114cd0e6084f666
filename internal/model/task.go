package model

import (
	"time"
)

// DateLayout is the wire format of Task.DueDate in forms and templates.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities returns every priority in display order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusCompleted}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"not null"`
	DueDate     time.Time `gorm:"type:date;not null"`
	Assignee    string    `gorm:"size:255;not null"`
	Priority    Priority  `gorm:"size:10;not null"`
	Status      Status    `gorm:"size:20;not null"`
}

func (Task) TableName() string {
	return "tasks"
}

// DueDateString formats DueDate with DateLayout.
func (t Task) DueDateString() string {
	if t.DueDate.IsZero() {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}
