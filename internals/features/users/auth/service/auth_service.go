package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	workerModel "bhashaflow_backend/internals/features/users/workers/model"
	"bhashaflow_backend/internals/helpers/apperror"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

type WorkerFinder interface {
	FindByUserName(ctx context.Context, userName string) (*workerModel.UserModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*workerModel.UserModel, error)
}

type AuthService struct {
	Workers   WorkerFinder
	JWTSecret string
	AccessTTL time.Duration
	Now       func() time.Time
}

func NewAuthService(workers WorkerFinder, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Workers: workers, JWTSecret: secret, AccessTTL: ttl, Now: time.Now}
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Worker      *workerModel.UserModel
}

var errBadCredentials = fmt.Errorf("%w: user_name atau password salah", apperror.ErrUnauthorized)

// Login: user_name + password -> access token HS256.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || password == "" {
		return nil, fmt.Errorf("%w: user_name dan password wajib diisi", apperror.ErrValidation)
	}

	user, err := s.Workers.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !helpersAuth.CheckPassword(user.Password, password) {
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: akun dinonaktifkan", apperror.ErrUnauthorized)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	token, exp, err := helpersAuth.IssueAccessToken(s.JWTSecret, user.ID, user.UserName, user.Role, s.AccessTTL, now().UTC())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp, Worker: user}, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*workerModel.UserModel, error) {
	return s.Workers.FindByID(ctx, id)
}
