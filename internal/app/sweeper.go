package app

import (
	"context"
	"time"

	"hrms/internal/attendance"
	"hrms/internal/config"
	"hrms/internal/shared/connection"
	"hrms/internal/user"

	"go.uber.org/zap"
)

// RunSweep force-closes today's open check-ins and exits. Meant to be run
// from cron shortly after the configured sweep hour.
func RunSweep(cfg *config.Config) error {
	logger := zap.L().Named("app.sweeper")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	attendanceRepo := attendance.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	attendanceService := attendance.NewService(sqlDB, attendanceRepo, userRepo, attendance.Rules{
		LateCutoffHour:   cfg.Attendance.LateCutoffHour,
		LateCutoffMinute: cfg.Attendance.LateCutoffMinute,
		SweepHour:        cfg.Attendance.SweepHour,
		MinFullDayHours:  cfg.Attendance.MinFullDayHours,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := attendanceService.Sweep(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	logger.Info("attendance sweep completed",
		zap.String("date", result.Date),
		zap.Int("closed", result.Closed),
	)
	return nil
}
