package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bhashaflow_backend/internals/constants"
	"bhashaflow_backend/internals/features/users/workers/model"
	unitModel "bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/helpers/apperror"
)

type CreateWorkerRequest struct {
	UserName      string   `json:"user_name" validate:"required,min=3,max=50"`
	Password      string   `json:"password" validate:"required,min=8"`
	Role          string   `json:"role" validate:"required,oneof=admin translator editor reviewer assigner uploader"`
	LanguagePairs []string `json:"language_pairs" validate:"max=4,dive,required"`
	IsActive      *bool    `json:"is_active"`
}

// Normalize: trim + lowercase role & pasangan bahasa.
func (r *CreateWorkerRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	for i, p := range r.LanguagePairs {
		r.LanguagePairs[i] = strings.ToLower(strings.TrimSpace(p))
	}
}

// ToModel: passwordHash sudah di-hash oleh pemanggil.
func (r CreateWorkerRequest) ToModel(passwordHash string) (*model.UserModel, error) {
	// seeder tidak lewat validator, jadi role dicek di sini juga
	if !constants.IsValidRole(r.Role) {
		return nil, fmt.Errorf("%w: role %q", apperror.ErrValidation, r.Role)
	}
	pairs, err := ParseLanguagePairs(r.LanguagePairs)
	if err != nil {
		return nil, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.UserModel{
		UserName:      r.UserName,
		Password:      passwordHash,
		Role:          r.Role,
		LanguagePairs: pairs,
		IsActive:      active,
	}, nil
}

// ParseLanguagePairs: "src-dst", keduanya bahasa yang didukung, tanpa duplikat.
func ParseLanguagePairs(raw []string) (model.LanguagePairs, error) {
	if len(raw) > model.MaxLanguagePairs {
		return nil, fmt.Errorf("%w: max %d language pairs", apperror.ErrValidation, model.MaxLanguagePairs)
	}
	out := make(model.LanguagePairs, 0, len(raw))
	seen := map[string]struct{}{}
	for _, p := range raw {
		src, dst, ok := strings.Cut(strings.ToLower(strings.TrimSpace(p)), "-")
		if !ok {
			return nil, fmt.Errorf("%w: language pair %q", apperror.ErrInvalidLanguage, p)
		}
		s, err := unitModel.ParseLanguage(src)
		if err != nil {
			return nil, err
		}
		d, err := unitModel.ParseLanguage(dst)
		if err != nil {
			return nil, err
		}
		if s == d {
			return nil, fmt.Errorf("%w: language pair %q", apperror.ErrInvalidLanguage, p)
		}
		key := string(s) + "-" + string(d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

type WorkerResponse struct {
	ID            uuid.UUID `json:"id"`
	UserName      string    `json:"user_name"`
	Role          string    `json:"role"`
	LanguagePairs []string  `json:"language_pairs"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromModel(u *model.UserModel) WorkerResponse {
	pairs := []string(u.LanguagePairs)
	if pairs == nil {
		pairs = []string{}
	}
	return WorkerResponse{
		ID:            u.ID,
		UserName:      u.UserName,
		Role:          u.Role,
		LanguagePairs: pairs,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

func FromModels(list []model.UserModel) []WorkerResponse {
	out := make([]WorkerResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
