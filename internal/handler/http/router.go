package http

import (
	"log/slog"
	"os"

	"github.com/attendly-hq/tna-backend-go/internal/handler/http/middleware"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth           AuthHandler
	TimeLog        TimeLogHandler
	Attendance     AttendanceHandler
	Regularisation RegularisationHandler
	Report         ReportHandler
	Notification   NotificationHandler
}

func NewRouter(jwtService jwt.Service, handlers Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tna-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", handlers.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/time-logs", func(r chi.Router) {
				r.Get("/", handlers.TimeLog.List)
				r.Post("/check-in", handlers.TimeLog.CheckIn)
				r.Post("/check-out", handlers.TimeLog.CheckOut)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/my", handlers.Attendance.ListMy)
				r.Get("/{id}", handlers.Attendance.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", handlers.Attendance.List)
					r.Put("/{id}", handlers.Attendance.Update)
				})
			})

			r.Route("/regularisations", func(r chi.Router) {
				r.Post("/", handlers.Regularisation.Submit)
				r.Get("/", handlers.Regularisation.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/{id}", handlers.Regularisation.Decide)
				})
			})

			r.Get("/reports/monthly-summary", handlers.Report.MonthlySummary)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", handlers.Notification.ListMy)
				r.Get("/stream", handlers.Notification.Stream)
			})
		})
	})
	return r
}
