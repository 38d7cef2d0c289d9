package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"bhashaflow_backend/internals/configs"
	database "bhashaflow_backend/internals/databases"
	unitRepo "bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/metrics"
	routes "bhashaflow_backend/internals/route"
	"bhashaflow_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("❌ Config tidak valid: %v", err)
	}
	configs.InitLogger(cfg.Log)

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	database.TunePool(db, cfg.Database)
	database.WarmUpQueries(db)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logrus.Fatal(err)
		}
		logrus.Info("✅ Auto migrate selesai")
	}

	if cfg.App.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := seeds.RunAllSeeds(ctx, db, cfg.App.SeedDir); err != nil {
			cancel()
			logrus.Fatalf("❌ Seed gagal: %v", err)
		}
		cancel()
	}

	// ⏱ refresher backlog setelah DB siap
	if cfg.Metrics.Enabled {
		c, err := metrics.StartBacklogRefresher(unitRepo.NewUnitStore(db), cfg.Metrics.BacklogSchedule)
		if err != nil {
			logrus.Fatalf("❌ Jadwal backlog tidak valid: %v", err)
		}
		defer c.Stop()
	}

	// ✅ App + routes
	app := routes.NewApp(db, cfg)

	// Start server non-blocking
	go func() {
		logrus.Infof("✅ Listening on :%s", cfg.App.Port)
		if err := app.Listen("0.0.0.0:" + cfg.App.Port); err != nil {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(db)
}
