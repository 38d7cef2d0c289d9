package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/users/workers/model"
	"bhashaflow_backend/internals/helpers/apperror"
)

type WorkerRepository struct {
	DB *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{DB: db}
}

func (r *WorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: worker %s", apperror.ErrNotFound, id)
		}
		return nil, apperror.Store("find worker", err)
	}
	return &user, nil
}

func (r *WorkerRepository) FindByUserName(ctx context.Context, userName string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.DB.WithContext(ctx).Where("user_name = ?", strings.TrimSpace(userName)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: worker %q", apperror.ErrNotFound, userName)
		}
		return nil, apperror.Store("find worker", err)
	}
	return &user, nil
}

// Create: user_name unik; duplikat -> ErrConflict.
func (r *WorkerRepository) Create(ctx context.Context, user *model.UserModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.UserModel{}).Where("user_name = ?", user.UserName).Count(&n).Error; err != nil {
			return apperror.Store("check user_name", err)
		}
		if n > 0 {
			return fmt.Errorf("%w: user_name %q sudah dipakai", apperror.ErrConflict, user.UserName)
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: user_name %q sudah dipakai", apperror.ErrConflict, user.UserName)
			}
			return apperror.Store("create worker", err)
		}
		return nil
	})
}

// List: opsional filter role, urut user_name.
func (r *WorkerRepository) List(ctx context.Context, role string, limit, offset int) ([]model.UserModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.UserModel{})
	if role = strings.ToLower(strings.TrimSpace(role)); role != "" {
		q = q.Where("role = ?", role)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperror.Store("count workers", err)
	}
	var users []model.UserModel
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("user_name ASC").Find(&users).Error; err != nil {
		return nil, 0, apperror.Store("list workers", err)
	}
	return users, total, nil
}
