package main

import (
	"fmt"
	"net/http"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/config"
	appHTTP "github.com/shiftwise-hr/shiftwise-backend-go/internal/handler/http"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/cron"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/geofence"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/jwt"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftwise-hr/shiftwise-backend-go/internal/service/attendance"
	scanService "github.com/shiftwise-hr/shiftwise-backend-go/internal/service/scan"
	shiftService "github.com/shiftwise-hr/shiftwise-backend-go/internal/service/shift"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/service/shiftwindow"
	timelineService "github.com/shiftwise-hr/shiftwise-backend-go/internal/service/timeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	shiftRepo := postgresql.NewShiftRepository(db)
	scheduleLogRepo := postgresql.NewScheduleLogRepository(db)
	scanRepo := postgresql.NewScanRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	historyRepo := postgresql.NewHistoryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	geoResolver := geofence.NewResolver()

	windowSvc := shiftwindow.NewService(shiftRepo, scheduleLogRepo)
	timelineSvc := timelineService.NewTimelineService(db, shiftRepo, scheduleLogRepo, employeeRepo, organizationRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, scheduleLogRepo, historyRepo)
	scanSvc := scanService.NewScanService(scanRepo, employeeRepo, organizationRepo, windowSvc, geoResolver, nil)
	computationSvc := attendanceService.NewComputationService(
		db,
		shiftRepo,
		scheduleLogRepo,
		scanRepo,
		attendanceRepo,
		historyRepo,
		employeeRepo,
		organizationRepo,
		holidayRepo,
	)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc, timelineSvc)
	scanHandler := appHTTP.NewScanHandler(scanSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(computationSvc)

	router := appHTTP.NewRouter(
		jwtService,
		shiftHandler,
		scanHandler,
		attendanceHandler,
	)

	if cfg.App.CronEnabled {
		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(organizationRepo, computationSvc).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
