package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

const appVersion = "v1.0.0"

func NewRouter(
	cfg *config.Config,
	m *metrics.Metrics,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	analyticsHandler AnalyticsHandler,
	activityHandler ActivityHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-dashboard"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.UserHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.Actor)

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)
			r.Get("/departments", employeeHandler.ListDepartments)
			r.Get("/export", employeeHandler.ExportEmployees)
			r.Post("/bulk-delete", employeeHandler.BulkDeleteEmployees)
			r.Delete("/{employeeID}", employeeHandler.DeleteEmployee)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.GetTimeline)
			r.Post("/", attendanceHandler.RecordAttendance)
			r.Get("/export", attendanceHandler.ExportTimeline)
			r.Get("/{employeeID}", attendanceHandler.GetEmployeeAttendance)
		})

		r.Get("/analytics", analyticsHandler.GetGlobalAnalytics)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/monthly", analyticsHandler.GetMonthlyReport)
			r.Get("/monthly/export", analyticsHandler.ExportMonthlyReport)
		})

		r.Route("/activity", func(r chi.Router) {
			r.Get("/", activityHandler.ListActivity)
			r.Delete("/", activityHandler.ClearActivity)
		})
	})
	return r
}
