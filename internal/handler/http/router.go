package http

import (
	"log/slog"
	"os"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/middleware"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppName     string
	Version     string
	Env         string
	FrontendURL string
	LogLevel    slog.Level
}

type Handlers struct {
	Auth         AuthHandler
	Leave        LeaveHandler
	Calendar     CalendarHandler
	Delegation   DelegationHandler
	Organisation OrganisationHandler
	User         UserHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, debouncer *middleware.SearchDebouncer, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	search := debouncer.Handler

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Post("/logout", h.Auth.Logout)

				r.With(middleware.AuthRequired(JWTService)).Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/LeaveRequests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll), search).Get("/", h.Leave.ListRequests)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.With(search).Get("/my", h.Leave.GetMyRequests)
				r.With(middleware.RequirePermission(user.PermissionLeaveReview), search).Get("/manager", h.Leave.GetManagerRequests)

				r.With(middleware.RequirePermission(user.PermissionLeaveReview)).Patch("/review/{id}", h.Leave.ReviewRequest)
				r.Patch("/cancel/{id}", h.Leave.CancelRequest)

				r.Get("/remaining-days/{userId}/{typeId}", h.Leave.GetRemainingDays)
				r.Get("/remaining-days-for-period/{userId}/{typeId}", h.Leave.GetRemainingDaysForPeriod)

				r.Get("/{id}", h.Leave.GetRequest)
				r.Put("/{id}", h.Leave.UpdateRequest)
			})

			r.Route("/LeaveRequestTypes", func(r chi.Router) {
				r.Get("/", h.Leave.ListTypes)
				r.Get("/{id}", h.Leave.GetType)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveManageTypes))
					r.Post("/", h.Leave.CreateType)
					r.Put("/{id}", h.Leave.UpdateType)
					r.Delete("/{id}", h.Leave.DeleteType)
				})
			})

			r.Route("/hr", func(r chi.Router) {
				r.Get("/weekend-configuration", h.Calendar.GetWeekend)
				r.Get("/public-holidays", h.Calendar.ListHolidays)
				r.Get("/public-holidays/{id}", h.Calendar.GetHoliday)
				r.Get("/balances/{userId}", h.Leave.GetBalances)

				// HR and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCalendarManage))
					r.Put("/weekend-configuration", h.Calendar.UpdateWeekend)
					r.Post("/public-holidays", h.Calendar.CreateHoliday)
					r.Put("/public-holidays/{id}", h.Calendar.UpdateHoliday)
					r.Delete("/public-holidays/{id}", h.Calendar.DeleteHoliday)
				})
			})

			r.Route("/SecondManagers", func(r chi.Router) {
				r.Get("/view-only/{managerId}", h.Delegation.ViewOnly)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDelegationManage))
					r.Get("/", h.Delegation.List)
					r.Post("/", h.Delegation.Create)
					r.Put("/{secondManagerId}/{replacedManagerId}", h.Delegation.UpdateEndDate)
					r.Delete("/{secondManagerId}/{replacedManagerId}", h.Delegation.Delete)
				})
			})

			r.Route("/Departments", func(r chi.Router) {
				r.With(search).Get("/", h.Organisation.ListDepartments)
				r.Get("/{id}", h.Organisation.GetDepartment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOrganisationManage))
					r.Post("/", h.Organisation.CreateDepartment)
					r.Put("/{id}", h.Organisation.UpdateDepartment)
					r.Delete("/{id}", h.Organisation.DeleteDepartment)
				})
			})

			r.Route("/JobTitles", func(r chi.Router) {
				r.With(search).Get("/", h.Organisation.ListJobTitles)
				r.Get("/{id}", h.Organisation.GetJobTitle)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOrganisationManage))
					r.Post("/", h.Organisation.CreateJobTitle)
					r.Put("/{id}", h.Organisation.UpdateJobTitle)
					r.Delete("/{id}", h.Organisation.DeleteJobTitle)
				})
			})

			r.Route("/Users", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserViewAll))
					r.With(search).Get("/", h.User.List)
					r.Get("/{id}", h.User.Get)
					r.Get("/{id}/subordinates", h.User.Subordinates)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Post("/", h.User.Create)
					r.Put("/{id}", h.User.Update)
					r.Patch("/{id}/deactivate", h.User.Deactivate)
					r.Put("/{id}/manager", h.User.AssignManager)
					r.Patch("/{id}/password", h.User.ResetPassword)
				})
			})
		})
	})

	return r
}
