package app

import (
	"database/sql"

	"hrms/internal/attendance"
	"hrms/internal/auth"
	"hrms/internal/config"
	"hrms/internal/holiday"
	"hrms/internal/leave"
	"hrms/internal/messaging/kafka"
	"hrms/internal/middleware"
	"hrms/internal/notification"
	"hrms/internal/rating"
	"hrms/internal/rbac"
	"hrms/internal/remuneration"
	"hrms/internal/shared/counter"
	"hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// Repositories
	userRepo := user.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	ratingRepo := rating.NewRepository(gormDB)
	remunerationRepo := remuneration.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// Services
	userService := user.NewService(db, userRepo, counterRepo, outboxRepo, cfg.Leave.CasualLeavePerYear)
	authService := auth.NewService(userRepo, cfg.Auth)
	attendanceService := attendance.NewService(db, attendanceRepo, userRepo, attendance.Rules{
		LateCutoffHour:   cfg.Attendance.LateCutoffHour,
		LateCutoffMinute: cfg.Attendance.LateCutoffMinute,
		SweepHour:        cfg.Attendance.SweepHour,
		MinFullDayHours:  cfg.Attendance.MinFullDayHours,
	})
	leaveService := leave.NewService(db, leaveRepo, userRepo, attendanceRepo, outboxRepo)
	holidayService := holiday.NewService(db, holidayRepo)
	ratingService := rating.NewService(db, ratingRepo, userRepo)
	remunerationService := remuneration.NewService(remunerationRepo, userRepo, holidayRepo, rdb)
	notificationService := notification.NewService(notificationRepo)

	// Handlers
	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	holidayHandler := holiday.NewHandler(holidayService)
	ratingHandler := rating.NewHandler(ratingService)
	remunerationHandler := remuneration.NewHandler(remunerationService)
	notificationHandler := notification.NewHandler(notificationService)

	// Token verification must use the same secret the auth service signs with.
	authn := middleware.AuthMiddleware(cfg.Auth.JWTSecret)

	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, authHandler, authn)
	user.RegisterRoutes(api, userHandler, authn, rbacService)
	attendance.RegisterRoutes(api, attendanceHandler, authn, rbacService)
	leave.RegisterRoutes(api, leaveHandler, authn, rbacService, rdb)
	holiday.RegisterRoutes(api, holidayHandler, authn, rbacService)
	rating.RegisterRoutes(api, ratingHandler, authn, rbacService)
	remuneration.RegisterRoutes(api, remunerationHandler, authn, rbacService)
	notification.RegisterRoutes(api, notificationHandler, authn, rbacService)

	return nil
}
