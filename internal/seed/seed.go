// Package seed installs the permission catalog, the predefined roles and the
// admin account. Every step is an upsert keyed by a unique name, so running
// it again converges on the same rows.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"projecthub/internal/auth"
	"projecthub/internal/model"
)

type PermissionStore interface {
	Ensure(ctx context.Context, name model.PermissionName) (*model.Permission, bool, error)
}

type RoleStore interface {
	Ensure(ctx context.Context, name string, perms []model.Permission) (*model.Role, bool, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListByRole(ctx context.Context, roleID uint) ([]model.User, error)
	SetRole(ctx context.Context, user *model.User, role *model.Role) error
	ReplacePermissions(ctx context.Context, user *model.User, perms []model.Permission) error
}

// Admin describes the bootstrap administrator account.
type Admin struct {
	Email    string
	Password string
	FullName string
}

type Seeder struct {
	perms PermissionStore
	roles RoleStore
	users UserStore
	admin Admin
}

// NewSeeder normalises the admin email the same way signup and signin do.
func NewSeeder(perms PermissionStore, roles RoleStore, users UserStore, admin Admin) *Seeder {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	return &Seeder{perms: perms, roles: roles, users: users, admin: admin}
}

// Run seeds permissions, roles and the admin account.
func (s *Seeder) Run(ctx context.Context) error {
	catalog, err := s.seedPermissions(ctx)
	if err != nil {
		return err
	}

	roles, err := s.seedRoles(ctx, catalog)
	if err != nil {
		return err
	}

	return s.seedAdmin(ctx, roles[model.RoleAdmin])
}

func (s *Seeder) seedPermissions(ctx context.Context) (map[model.PermissionName]model.Permission, error) {
	catalog := make(map[model.PermissionName]model.Permission, len(model.AllPermissions))
	for _, name := range model.AllPermissions {
		perm, created, err := s.perms.Ensure(ctx, name)
		if err != nil {
			return nil, err
		}
		if created {
			log.Printf("✅ Permission %q created", name)
		} else {
			log.Printf("Permission %q already exists", name)
		}
		catalog[name] = *perm
	}
	return catalog, nil
}

func (s *Seeder) seedRoles(ctx context.Context, catalog map[model.PermissionName]model.Permission) (map[string]*model.Role, error) {
	roles := make(map[string]*model.Role, len(model.RoleDefaultPermissions))
	for _, name := range model.Roles() {
		defaults := model.RoleDefaultPermissions[name]
		perms := make([]model.Permission, 0, len(defaults))
		for _, p := range defaults {
			perms = append(perms, catalog[p])
		}

		role, created, err := s.roles.Ensure(ctx, name, perms)
		if err != nil {
			return nil, err
		}
		if created {
			log.Printf("✅ Role %q created", name)
		} else {
			log.Printf("Role %q already exists", name)
		}
		roles[name] = role
	}
	return roles, nil
}

// seedAdmin creates the admin account once. An existing account keeps its
// password; its role and permission set are brought back to the admin defaults.
func (s *Seeder) seedAdmin(ctx context.Context, role *model.Role) error {
	user, err := s.users.FindByEmail(ctx, s.admin.Email)
	if err != nil {
		return fmt.Errorf("look up admin %q: %w", s.admin.Email, err)
	}

	if user == nil {
		hash, err := auth.HashPassword(s.admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		user = &model.User{
			FullName:    s.admin.FullName,
			Email:       s.admin.Email,
			Password:    hash,
			RoleID:      &role.ID,
			Permissions: role.Permissions,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("create admin %q: %w", s.admin.Email, err)
		}
		log.Printf("✅ Admin %q created", s.admin.Email)
		return nil
	}

	if user.RoleID == nil || *user.RoleID != role.ID {
		if err := s.users.SetRole(ctx, user, role); err != nil {
			return err
		}
	}
	if err := s.users.ReplacePermissions(ctx, user, role.Permissions); err != nil {
		return err
	}
	log.Printf("Admin %q already exists", s.admin.Email)
	return nil
}

// ResyncRole copies the role's current permission set onto every user that
// holds it and returns how many users were updated. Permission snapshots are
// otherwise only taken when a user is created.
func (s *Seeder) ResyncRole(ctx context.Context, roleName string) (int, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return 0, fmt.Errorf("load role %q: %w", roleName, err)
	}

	users, err := s.users.ListByRole(ctx, role.ID)
	if err != nil {
		return 0, fmt.Errorf("list users of role %q: %w", roleName, err)
	}

	for i := range users {
		if err := s.users.ReplacePermissions(ctx, &users[i], role.Permissions); err != nil {
			return i, err
		}
	}
	log.Printf("✅ Re-synced %d user(s) with role %q", len(users), roleName)
	return len(users), nil
}
