package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/rest"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/hris-attendance-go/internal/service/leave"
)

type recordStore struct {
	attendance attendance.AttendanceRepository
	leaves     leave.LeaveRequestRepository
	close      func()
}

func openRecordStore(ctx context.Context, cfg *config.Config) (recordStore, error) {
	switch cfg.Store.Type {
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns:       cfg.Database.MaxConns,
			ConnectTimeout: 5 * time.Second,
		})
		if err != nil {
			return recordStore{}, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgresql.Migrate(ctx, db); err != nil {
				db.Close()
				return recordStore{}, err
			}
			slog.Info("Database schema applied")
		}
		return recordStore{
			attendance: postgresql.NewAttendanceRepository(db),
			leaves:     postgresql.NewLeaveRequestRepository(db),
			close:      db.Close,
		}, nil

	case config.StoreREST:
		client := rest.NewClient(cfg.Store.URL, rest.ClientOptions{
			Timeout:        cfg.Store.Timeout,
			BreakerTimeout: cfg.Store.BreakerTimeout,
			TripAfter:      cfg.Store.TripAfter,
		})
		return recordStore{
			attendance: rest.NewAttendanceRepository(client),
			leaves:     rest.NewLeaveRequestRepository(client),
			close:      func() {},
		}, nil

	case config.StoreMemory:
		slog.Warn("Using in-memory record store, data is lost on restart")
		return recordStore{
			attendance: memory.NewAttendanceRepository(),
			leaves:     memory.NewLeaveRequestRepository(),
			close:      func() {},
		}, nil
	}
	return recordStore{}, fmt.Errorf("unknown record store %q", cfg.Store.Type)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Env)))

	calendar, err := clock.NewCalendar(cfg.Reporting.Timezone, nil)
	if err != nil {
		slog.Error("Failed to initialize calendar", "error", err)
		os.Exit(1)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openRecordStore(startupCtx, cfg)
	cancelStartup()
	if err != nil {
		slog.Error("Failed to open record store", "store", cfg.Store.Type, "error", err)
		os.Exit(1)
	}
	defer store.close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(store.attendance, store.leaves, calendar, cfg.Reporting.WeeksBack)
	leaveSvc := leaveService.NewLeaveService(store.leaves, nil)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			AppVersion:     cfg.App.Version,
			Environment:    cfg.App.Env,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		attendanceHandler,
		leaveHandler,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting",
			"addr", srv.Addr,
			"record_store", cfg.Store.Type,
			"reporting_timezone", calendar.Location().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}
