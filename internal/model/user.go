package model

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	FullName  string    `gorm:"size:150"`
	Email     string    `gorm:"size:254;uniqueIndex;not null"`
	Password  string    `gorm:"size:128;not null"`
	RoleID    *uint     `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Role        *Role        `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL"`
	Permissions []Permission `gorm:"many2many:user_permissions"`
}

// HasPermission reports whether name is part of the user's permission set.
// The set is a snapshot taken from the role at creation time, so it is not
// recomputed from the current role here.
func (u *User) HasPermission(name PermissionName) bool {
	for _, p := range u.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}
