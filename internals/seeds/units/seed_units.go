package units

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/workflow/units/dto"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/helpers/apperror"
)

type unitSeed struct {
	Kind string `json:"kind"`
	dto.CreateUnitRequest
}

// SeedUnitsFromJSON: unit dengan id yang sudah ada dilewati.
func SeedUnitsFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	logrus.Info("📥 Membaca file: ", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("baca %s: %w", filePath, err)
	}
	var seeds []unitSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	store := repository.NewUnitStore(db)
	created := 0
	for i, s := range seeds {
		kind, err := model.ParseKind(s.Kind)
		if err != nil {
			return created, fmt.Errorf("seed #%d: %w", i, err)
		}
		if s.ID != 0 {
			if _, err := store.Find(ctx, kind, s.ID); err == nil {
				continue
			} else if !errors.Is(err, apperror.ErrNotFound) {
				return created, err
			}
		}
		in, err := s.ToNewUnit(kind, "seeder")
		if err != nil {
			return created, fmt.Errorf("seed #%d: %w", i, err)
		}
		if _, err := store.Create(ctx, in); err != nil {
			return created, fmt.Errorf("seed #%d: %w", i, err)
		}
		created++
	}
	logrus.Infof("✅ Seed unit selesai: %d baru", created)
	return created, nil
}
