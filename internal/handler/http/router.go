package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	shiftHandler ShiftHandler,
	scanHandler ScanHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftwise"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.RequireOrganization)

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)
				r.Post("/assign", shiftHandler.Assign)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", shiftHandler.Get)
					r.Put("/", shiftHandler.Update)
					r.Post("/deactivate", shiftHandler.Deactivate)
				})
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Get("/timeline", shiftHandler.Timeline)
				r.Post("/priority-assign", shiftHandler.PriorityAssign)
			})

			r.Route("/scans", func(r chi.Router) {
				r.Post("/", scanHandler.Record)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/computations/run", attendanceHandler.RunComputation)
				r.Get("/{id}", attendanceHandler.Get)
			})
		})
	})
	return r
}
