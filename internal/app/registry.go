package app

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/audit"
	"github.com/eliezerb2/presence/internal/automation"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/claim"
	"github.com/eliezerb2/presence/internal/messaging/kafka"
	"github.com/eliezerb2/presence/internal/middleware"
	"github.com/eliezerb2/presence/internal/notification"
	"github.com/eliezerb2/presence/internal/permanentabsence"
	"github.com/eliezerb2/presence/internal/settings"
	"github.com/eliezerb2/presence/internal/student"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Modules holds the services shared by the API, the worker and the CLI.
type Modules struct {
	Audit            audit.Service
	Students         student.Service
	Calendar         calendar.Service
	Settings         settings.Service
	Attendance       attendance.Service
	PermanentAbsence permanentabsence.Service
	Claims           claim.Service
	Sweeper          *automation.DailySweeper
	Metrics          *automation.Metrics
	Outbox           kafka.OutboxRepository
}

func buildModules(cfg Config, db *sql.DB, gormDB *gorm.DB, rdb *redis.Client) *Modules {
	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	studentRepo := student.NewRepository(gormDB)
	calendarRepo := calendar.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	permanentAbsenceRepo := permanentabsence.NewRepository(gormDB)
	claimRepo := claim.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Notifications ---
	var dispatcher notification.Dispatcher = notification.NewNoopDispatcher()
	if cfg.NotifyEnabled {
		dispatcher = notification.NewOutboxDispatcher(outboxRepo)
	}

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	studentService := student.NewService(db, studentRepo)
	calendarService := calendar.NewService(db, calendarRepo, rdb, cfg.Weekend)
	settingsService := settings.NewService(db, settingsRepo, studentService, auditService, rdb)
	attendanceService := attendance.NewService(db, attendanceRepo, studentService, auditService, cfg.Schedule())
	permanentAbsenceService := permanentabsence.NewService(
		db, permanentAbsenceRepo, attendanceRepo, calendarService, studentService, auditService, cfg.Weekend,
	)
	claimService := claim.NewService(
		db, claimRepo, attendanceRepo, settingsService, studentService, auditService, dispatcher,
	)

	metrics := automation.NewMetrics(nil)
	sweeper := automation.NewSweeper(
		db,
		attendanceRepo,
		calendarService,
		permanentAbsenceService,
		studentService,
		auditService,
		dispatcher,
		cfg.Schedule(),
	).WithMetrics(metrics)
	if rdb != nil {
		sweeper.WithRunLock(automation.NewRedisRunLock(rdb, processOwner())).
			WithReminderLedger(automation.NewRedisReminderLedger(rdb))
	}

	return &Modules{
		Audit:            auditService,
		Students:         studentService,
		Calendar:         calendarService,
		Settings:         settingsService,
		Attendance:       attendanceService,
		PermanentAbsence: permanentAbsenceService,
		Claims:           claimService,
		Sweeper:          sweeper,
		Metrics:          metrics,
		Outbox:           outboxRepo,
	}
}

func registerModules(router *gin.Engine, cfg Config, m *Modules, rdb *redis.Client) {
	loc := cfg.Location

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(m.Attendance, loc)
	auditHandler := audit.NewHandler(m.Audit)
	automationHandler := automation.NewHandler(m.Sweeper, cfg.Schedule())
	calendarHandler := calendar.NewHandler(m.Calendar)
	claimHandler := claim.NewHandler(m.Claims, loc)
	permanentAbsenceHandler := permanentabsence.NewHandler(m.PermanentAbsence, loc)
	settingsHandler := settings.NewHandler(m.Settings)
	studentHandler := student.NewHandler(m.Students)

	router.Use(middleware.RequestID())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Routes Registration ---
	kiosk := router.Group("/kiosk",
		middleware.Actor(audit.ActorStudent),
		middleware.ContextLogger(zap.L()),
	)
	{
		attendance.RegisterKioskRoutes(kiosk, attendanceHandler)
	}

	api := router.Group("/api/v1",
		middleware.Actor(audit.ActorManager),
		middleware.ContextLogger(zap.L()),
		middleware.Idempotency(rdb),
	)
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		audit.RegisterRoutes(api, auditHandler)
		automation.RegisterRoutes(api, automationHandler)
		calendar.RegisterRoutes(api, calendarHandler)
		claim.RegisterRoutes(api, claimHandler)
		permanentabsence.RegisterRoutes(api, permanentAbsenceHandler)
		settings.RegisterRoutes(api, settingsHandler)
		student.RegisterRoutes(api, studentHandler)
	}
}

// processOwner identifies this process as a run-lock holder.
func processOwner() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
