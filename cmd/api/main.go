package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/presensia/presensia-backend-go/internal/config"
	appHTTP "github.com/presensia/presensia-backend-go/internal/handler/http"
	"github.com/presensia/presensia-backend-go/internal/pkg/database"
	"github.com/presensia/presensia-backend-go/internal/pkg/geo"
	"github.com/presensia/presensia-backend-go/internal/pkg/jwt"
	"github.com/presensia/presensia-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presensia/presensia-backend-go/internal/service/attendance"
	payrollService "github.com/presensia/presensia-backend-go/internal/service/payroll"
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

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		loc = time.UTC
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	site := geo.Site{
		Center: geo.Coordinate{
			Latitude:  cfg.Site.Latitude,
			Longitude: cfg.Site.Longitude,
		},
		RadiusMeters: cfg.Site.RadiusMeters,
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		site,
		cfg.Attendance.ClockOutCutoffHour,
		loc,
	)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, employeeRepo, loc)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
