package model

// Role groups a default permission set under a unique name.
type Role struct {
	ID          uint         `gorm:"primaryKey"`
	Name        string       `gorm:"size:100;uniqueIndex;not null"`
	Permissions []Permission `gorm:"many2many:role_permissions"`
}

// Predefined roles
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Roles lists the predefined roles in seeding order.
func Roles() []string {
	return []string{RoleAdmin, RoleManager, RoleMember}
}

// RoleDefaultPermissions maps every predefined role to its default permission set.
var RoleDefaultPermissions = map[string][]PermissionName{
	RoleAdmin: AllPermissions,
	RoleManager: {
		PermViewOverview,
		PermViewProjects,
		PermCreateProject,
		PermUpdateProject,
		PermDeleteProject,
		PermViewTasks,
		PermCreateTask,
		PermUpdateTask,
		PermDeleteTask,
		PermUpdateTaskStatus,
		PermViewChat,
		PermViewSettings,
		PermUpdateSettings,
	},
	RoleMember: {
		PermViewOverview,
		PermViewProjects,
		PermViewTasks,
		PermUpdateTaskStatus,
		PermViewChat,
		PermViewSettings,
		PermUpdateSettings,
	},
}
