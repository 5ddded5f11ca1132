package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"not null;index" json:"project_id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Priority    TaskPriority   `gorm:"type:varchar(16);not null;default:'MEDIUM'" json:"priority"`
	CreatedByID uuid.UUID      `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Assignees []User      `gorm:"many2many:task_assignees" json:"assignees,omitempty"`
	Stages    []TaskStage `gorm:"foreignKey:TaskID" json:"stages,omitempty"`
}

func (Task) TableName() string { return "tasks" }

// TaskStage is a sub-step of a task, ordered by Position.
type TaskStage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TaskStage) TableName() string { return "task_stages" }
