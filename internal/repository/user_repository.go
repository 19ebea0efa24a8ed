package repository

import (
	"context"
	"errors"
	"fmt"

	"projecthub/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user together with its permission links.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Omit("Role").Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID loads the user with its role and permission set.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Permissions").
		Where("id = ?", id).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListByRole returns every user holding the role.
func (r *UserRepository) ListByRole(ctx context.Context, roleID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("role_id = ?", roleID).Order("id").Find(&users).Error
	return users, err
}

// SetRole points the user at role.
func (r *UserRepository) SetRole(ctx context.Context, user *model.User, role *model.Role) error {
	err := r.db.WithContext(ctx).Model(user).Update("role_id", role.ID).Error
	if err != nil {
		return fmt.Errorf("set role of user %d: %w", user.ID, err)
	}
	user.RoleID = &role.ID
	user.Role = role
	return nil
}

// ReplacePermissions overwrites the user's permission snapshot.
func (r *UserRepository) ReplacePermissions(ctx context.Context, user *model.User, perms []model.Permission) error {
	if err := r.db.WithContext(ctx).Model(user).Association("Permissions").Replace(perms); err != nil {
		return fmt.Errorf("replace permissions of user %d: %w", user.ID, err)
	}
	user.Permissions = perms
	return nil
}
