package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/peopledesk/hr-backend-go/internal/handler/http/middleware"
	"github.com/peopledesk/hr-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	transferHandler TransferHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", employeeHandler.Get)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHRAdmin)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Deactivate)
				})
			})

			r.Route("/leave", func(r chi.Router) {

				r.Route("/types", func(r chi.Router) {
					r.Get("/", leaveHandler.ListTypes)
					r.Get("/{id}", leaveHandler.GetType)

					// HR admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHRAdmin)
						r.Post("/", leaveHandler.CreateType)
						r.Put("/{id}", leaveHandler.UpdateType)
						r.Delete("/{id}", leaveHandler.DeleteType)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.Get("/my", leaveHandler.GetMyBalances)

					// HR admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHRAdmin)
						r.Get("/", leaveHandler.ListBalances)
						r.Post("/", leaveHandler.Allocate)
						r.Post("/bulk", leaveHandler.BulkAllocate)
						r.Post("/rollover", leaveHandler.Rollover)
					})
				})

				r.Route("/applications", func(r chi.Router) {
					r.Post("/", leaveHandler.Submit)
					r.Get("/my", leaveHandler.GetMyApplications)
					r.Get("/{id}", leaveHandler.GetApplication)
					r.Post("/{id}/cancel", leaveHandler.Cancel)

					// Approvers only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireApprover)
						r.Get("/", leaveHandler.ListApplications)
						r.Post("/{id}/approve", leaveHandler.Approve)
						r.Post("/{id}/reject", leaveHandler.Reject)
						r.Get("/{id}/approvals", leaveHandler.ApprovalHistory)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/my", attendanceHandler.GetMyMonth)

				r.With(middleware.RequireApprover).Get("/day", attendanceHandler.ListDay)
			})

			r.Route("/transfers", func(r chi.Router) {
				r.Post("/", transferHandler.Submit)
				r.Get("/{id}", transferHandler.Get)
				r.Post("/{id}/cancel", transferHandler.Cancel)

				// Approvers only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/", transferHandler.List)
					r.Post("/{id}/approve", transferHandler.Approve)
					r.Post("/{id}/reject", transferHandler.Reject)
					r.Post("/{id}/complete", transferHandler.Complete)
				})
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", masterHandler.ListBranches)
				r.Get("/{id}", masterHandler.GetBranch)

				r.With(middleware.RequireHRAdmin).Post("/", masterHandler.CreateBranch)
			})
		})
	})

	return r
}
