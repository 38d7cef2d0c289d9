package seeds

import (
	"context"
	"path/filepath"

	"gorm.io/gorm"

	"bhashaflow_backend/internals/seeds/units"
	"bhashaflow_backend/internals/seeds/workers"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB, dir string) error {
	//* Worker
	if _, err := workers.SeedWorkersFromJSON(ctx, db, filepath.Join(dir, "data_workers.json")); err != nil {
		return err
	}

	//* Content units
	if _, err := units.SeedUnitsFromJSON(ctx, db, filepath.Join(dir, "data_units.json")); err != nil {
		return err
	}
	return nil
}
