package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the values the router needs from configuration.
type RouterConfig struct {
	AppName        string
	AppVersion     string
	Environment    string
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, attendanceHandler AttendanceHandler, leaveHandler LeaveHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.AppVersion),
		slog.String("env", cfg.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequireManager).Get("/", attendanceHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/check-in", attendanceHandler.CheckIn)
					r.Post("/check-out", attendanceHandler.CheckOut)
				})

				r.Route("/my", func(r chi.Router) {
					// Managers without an employee profile may still read
					// someone else's timesheet.
					r.Get("/timesheet", attendanceHandler.GetTimesheet)
					r.Get("/weeks", attendanceHandler.ListWeeks)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireEmployee)
						r.Get("/", attendanceHandler.GetMyAttendance)
						r.Get("/status", attendanceHandler.GetStatus)
						r.Get("/export", attendanceHandler.ExportMyAttendance)
					})
				})
			})

			r.Route("/leave/requests", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/", leaveHandler.Apply)
					r.Get("/my", leaveHandler.GetMyRequests)
					r.Post("/{id}/cancel", leaveHandler.Cancel)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", leaveHandler.List)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/reject", leaveHandler.Reject)
				})
			})
		})
	})

	return r
}
