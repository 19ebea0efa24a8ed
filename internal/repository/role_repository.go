package repository

import (
	"context"
	"errors"
	"fmt"

	"projecthub/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

type RoleRepositoryInterface interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
}

var _ RoleRepositoryInterface = (*RoleRepository)(nil)

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// FindByName loads the role and its permissions.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Ensure upserts the role by name and replaces its permission set.
func (r *RoleRepository) Ensure(ctx context.Context, name string, perms []model.Permission) (*model.Role, bool, error) {
	var (
		role    model.Role
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(model.Role{Name: name}).FirstOrCreate(&role)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0

		if len(perms) == 0 {
			return nil
		}
		if err := tx.Model(&role).Association("Permissions").Replace(perms); err != nil {
			return err
		}
		role.Permissions = perms
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("ensure role %q: %w", name, err)
	}
	return &role, created, nil
}
