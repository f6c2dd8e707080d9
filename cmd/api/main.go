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

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/config"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	appHTTP "github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/middleware"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/cron"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/jwt"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/repository/postgresql"
	serviceAuth "github.com/dezGusty/mgmt-sim-25-sub002/internal/service/auth"
	calendarService "github.com/dezGusty/mgmt-sim-25-sub002/internal/service/calendar"
	delegationService "github.com/dezGusty/mgmt-sim-25-sub002/internal/service/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/service/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/service/organisation"
	userService "github.com/dezGusty/mgmt-sim-25-sub002/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", cfg.App.Name)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	jobTitleRepo := postgresql.NewJobTitleRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	weekendRepo := postgresql.NewWeekendRepository(db)
	secondManagerRepo := postgresql.NewSecondManagerRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.SecureCookie)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	weekend := calendar.NewWeekend(cfg.Weekend.Configuration)
	calendarSvc := calendarService.NewCalendarService(holidayRepo, weekendRepo, weekend)
	calendarSvc.LoadWeekend(ctx, cfg.Weekend.Configuration.Names(), cfg.Weekend.Configuration.Count)

	delegationSvc := delegationService.NewDelegationService(secondManagerRepo, userRepo)
	leaveSvc := leave.NewLeaveService(transactor, leaveTypeRepo, leaveRequestRepo, userRepo, delegationSvc, calendarSvc)
	organisationSvc := organisation.NewOrganisationService(departmentRepo, jobTitleRepo)
	userSvc := userService.NewUserService(userRepo)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService, delegationSvc)

	debouncer := middleware.NewSearchDebouncer(cfg.Debounce.SearchWindow)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AppName:     cfg.App.Name,
		Version:     cfg.App.Version,
		Env:         cfg.App.Env,
		FrontendURL: cfg.App.FrontendURL,
		LogLevel:    cfg.SlogLevel(),
	}, JWTService, debouncer, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Calendar:     appHTTP.NewCalendarHandler(calendarSvc),
		Delegation:   appHTTP.NewDelegationHandler(delegationSvc),
		Organisation: appHTTP.NewOrganisationHandler(organisationSvc),
		User:         appHTTP.NewUserHandler(userSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(debouncer, JWTService, delegationSvc, cfg.Debounce.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server exited gracefully")
	return nil
}
