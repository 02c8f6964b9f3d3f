package domain

import "time"

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Task belongs to exactly one team and carries an owner and an assignee.
type Task struct {
	ID          string
	TeamID      string
	OwnerID     string
	AssigneeID  string
	Title       string
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskDetail enriches a task with owner, assignee and team details for
// team task listings.
type TaskDetail struct {
	Task
	Owner    UserSummary
	Assignee UserSummary
	Team     Team
}
