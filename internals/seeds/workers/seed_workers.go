package workers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/users/workers/dto"
	"bhashaflow_backend/internals/features/users/workers/repository"
	"bhashaflow_backend/internals/helpers/apperror"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

// SeedWorkersFromJSON: worker yang user_name-nya sudah ada dilewati.
func SeedWorkersFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	logrus.Info("📥 Membaca file: ", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("baca %s: %w", filePath, err)
	}
	var seeds []dto.CreateWorkerRequest
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	repo := repository.NewWorkerRepository(db)
	created := 0
	for _, s := range seeds {
		s.Normalize()
		if _, err := repo.FindByUserName(ctx, s.UserName); err == nil {
			logrus.Infof("ℹ️ Worker '%s' sudah ada, dilewati.", s.UserName)
			continue
		} else if !errors.Is(err, apperror.ErrNotFound) {
			return created, err
		}

		hash, err := helpersAuth.HashPassword(s.Password)
		if err != nil {
			return created, err
		}
		user, err := s.ToModel(hash)
		if err != nil {
			return created, fmt.Errorf("worker %q: %w", s.UserName, err)
		}
		if err := repo.Create(ctx, user); err != nil {
			return created, err
		}
		created++
	}
	logrus.Infof("✅ Seed worker selesai: %d baru", created)
	return created, nil
}
