package model

// PermissionName is a name from the fixed permission catalog.
type PermissionName string

type Permission struct {
	ID   uint           `gorm:"primaryKey"`
	Name PermissionName `gorm:"size:100;uniqueIndex;not null"`
}

const (
	PermViewOverview     PermissionName = "view-overview"
	PermViewProjects     PermissionName = "view-projects"
	PermCreateProject    PermissionName = "create-project"
	PermUpdateProject    PermissionName = "update-project"
	PermDeleteProject    PermissionName = "delete-project"
	PermViewTasks        PermissionName = "view-tasks"
	PermCreateTask       PermissionName = "create-task"
	PermUpdateTask       PermissionName = "update-task"
	PermDeleteTask       PermissionName = "delete-task"
	PermUpdateTaskStatus PermissionName = "update-task-status"
	PermViewUsers        PermissionName = "view-users"
	PermCreateUser       PermissionName = "create-user"
	PermUpdateUser       PermissionName = "update-user"
	PermViewChat         PermissionName = "view-chat"
	PermViewSettings     PermissionName = "view-settings"
	PermUpdateSettings   PermissionName = "update-settings"
)

// AllPermissions is the complete catalog in seeding order.
var AllPermissions = []PermissionName{
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
	PermViewUsers,
	PermCreateUser,
	PermUpdateUser,
	PermViewChat,
	PermViewSettings,
	PermUpdateSettings,
}
