package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/config"
	appHTTP "github.com/attendly-hq/tna-backend-go/internal/handler/http"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/clock"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/cron"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/database"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/jwt"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/lock"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/sse"
	"github.com/attendly-hq/tna-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly-hq/tna-backend-go/internal/service/attendance"
	authService "github.com/attendly-hq/tna-backend-go/internal/service/auth"
	notificationService "github.com/attendly-hq/tna-backend-go/internal/service/notification"
	regularisationService "github.com/attendly-hq/tna-backend-go/internal/service/regularisation"
	reportService "github.com/attendly-hq/tna-backend-go/internal/service/report"
	shiftService "github.com/attendly-hq/tna-backend-go/internal/service/shift"
	timelogService "github.com/attendly-hq/tna-backend-go/internal/service/timelog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "tna-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	timeLogRepo := postgresql.NewTimeLogRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	regularisationRepo := postgresql.NewRegularisationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	resolver := shiftService.NewResolver(scheduleRepo, shiftRepo)
	syncer := attendanceService.NewSyncer(attendanceRepo)
	notifier := notificationService.NewNotificationService(notificationRepo, sse.NewHub(), logger)
	timeLogSvc := timelogService.NewTimeLogService(
		db,
		timeLogRepo,
		employeeRepo,
		resolver,
		syncer,
		lock.NewKeyedMutex(),
		clock.System(),
		logger,
	)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	regularisationSvc := regularisationService.NewRegularisationService(
		regularisationRepo,
		employeeRepo,
		timeLogRepo,
		userRepo,
		timeLogSvc,
		notifier,
	)
	reportSvc := reportService.NewReportService(attendanceRepo, holidayRepo, leaveRepo, employeeRepo)
	authSvc := authService.NewAuthService(userRepo, jwtService)

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Auth:           appHTTP.NewAuthHandler(authSvc),
		TimeLog:        appHTTP.NewTimeLogHandler(timeLogSvc),
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Regularisation: appHTTP.NewRegularisationHandler(regularisationSvc),
		Report:         appHTTP.NewReportHandler(reportSvc),
		Notification:   appHTTP.NewNotificationHandler(notificationRepo, notifier),
	})

	scheduler := cron.NewScheduler()
	cron.NewTimeLogJobs(timeLogSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}
