package repository

import (
	"context"
	"fmt"

	"projecthub/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// Ensure returns the permission named name, inserting it when absent.
// created reports whether a row was inserted.
func (r *PermissionRepository) Ensure(ctx context.Context, name model.PermissionName) (*model.Permission, bool, error) {
	perm := model.Permission{}
	result := r.db.WithContext(ctx).
		Where(model.Permission{Name: name}).
		FirstOrCreate(&perm)
	if result.Error != nil {
		return nil, false, fmt.Errorf("ensure permission %q: %w", name, result.Error)
	}
	return &perm, result.RowsAffected > 0, nil
}
