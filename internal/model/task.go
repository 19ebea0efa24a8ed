package model

import (
	"time"
)

type Task struct {
	ID               uint      `gorm:"primaryKey"`
	ProjectID        uint      `gorm:"not null;index"`
	AssignedToUserID *uint     `gorm:"index"`
	Title            string    `gorm:"size:255;not null"`
	Description      string
	Status           string    `gorm:"size:20;not null;default:todo"`
	Priority         string    `gorm:"size:20;not null;default:medium"`
	DueDate          time.Time `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`

	Project        Project `gorm:"foreignKey:ProjectID"`
	AssignedToUser *User   `gorm:"foreignKey:AssignedToUserID;constraint:OnDelete:SET NULL"`
}

// Task statuses
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)
