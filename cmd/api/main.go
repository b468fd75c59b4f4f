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

	"github.com/cmlabs-hris/hris-dashboard-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/activitylog"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/hrapi"
	analyticsService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/analytics"
	attendanceService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/employee"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	appMetrics := metrics.New()
	activityLog := activitylog.New(cfg.ActivityLog.Capacity)

	hrClient := hrapi.NewClient(cfg.HRAPI, cfg.Breaker, appMetrics)
	employeeRepo := hrapi.NewEmployeeRepository(hrClient)
	attendanceRepo := hrapi.NewAttendanceRepository(hrClient)

	fetcher := attendanceService.NewFetcher(attendanceRepo, cfg.Fetch.Concurrency, cfg.Fetch.RequestTimeout, appMetrics)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, activityLog)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, activityLog)
	analyticsSvc := analyticsService.NewAnalyticsService(employeeRepo, fetcher)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, analyticsSvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)
	activityHandler := appHTTP.NewActivityHandler(activityLog)

	router := appHTTP.NewRouter(
		cfg,
		appMetrics,
		employeeHandler,
		attendanceHandler,
		analyticsHandler,
		activityHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	scheduler.AddJob(cron.Job{
		Name:     "hr_api_warmup",
		Interval: cfg.HRAPI.WarmupInterval,
		Timeout:  cfg.HRAPI.Timeout,
		Fn:       hrClient.Warmup,
	})
	scheduler.Start(ctx)

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "hr_api", cfg.HRAPI.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
