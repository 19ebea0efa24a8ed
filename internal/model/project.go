package model

import (
	"time"
)

type Project struct {
	ID          uint      `gorm:"primaryKey"`
	CreatorID   *uint     `gorm:"index"`
	Name        string    `gorm:"size:255;not null"`
	DueDate     time.Time `gorm:"not null"`
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Creator *User  `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL"`
	Tasks   []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
