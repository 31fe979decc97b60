package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/config"
	apptControllers "github.com/bitecare/clinic-backend/internal/appointment/controllers"
	apptModels "github.com/bitecare/clinic-backend/internal/appointment/models"
	apptRoutes "github.com/bitecare/clinic-backend/internal/appointment/routes"
	apptServices "github.com/bitecare/clinic-backend/internal/appointment/services"
	authControllers "github.com/bitecare/clinic-backend/internal/auth/controllers"
	authModels "github.com/bitecare/clinic-backend/internal/auth/models"
	authRoutes "github.com/bitecare/clinic-backend/internal/auth/routes"
	authServices "github.com/bitecare/clinic-backend/internal/auth/services"
	"github.com/bitecare/clinic-backend/internal/common/feed"
	patientControllers "github.com/bitecare/clinic-backend/internal/patient/controllers"
	patientRoutes "github.com/bitecare/clinic-backend/internal/patient/routes"
	patientServices "github.com/bitecare/clinic-backend/internal/patient/services"
	staffControllers "github.com/bitecare/clinic-backend/internal/staff/controllers"
	staffRoutes "github.com/bitecare/clinic-backend/internal/staff/routes"
	staffServices "github.com/bitecare/clinic-backend/internal/staff/services"
	"github.com/bitecare/clinic-backend/internal/wizard"
	"github.com/bitecare/clinic-backend/pkg/blobstore"
	"github.com/bitecare/clinic-backend/pkg/botcheck"
	"github.com/bitecare/clinic-backend/pkg/mailer"
	"github.com/bitecare/clinic-backend/ws"
)

// Init wires every service and controller and registers all routes.
// It returns the reminder service so main can start its cron.
func Init(e *echo.Echo, db *sql.DB, cfg *config.Config) *apptServices.ReminderService {
	var mail mailer.Mailer
	if cfg.MailAPIURL != "" {
		mail = mailer.NewHTTPMailer(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	} else {
		mail = mailer.LogMailer{}
	}

	var bot botcheck.Verifier
	if cfg.CaptchaVerifyURL != "" {
		bot = botcheck.NewHTTPVerifier(cfg.CaptchaVerifyURL, cfg.CaptchaSecret)
	} else {
		bot = botcheck.StaticVerifier{}
	}

	blobs := blobstore.NewFSStore(cfg.BlobDir, cfg.BaseURL)
	drafts := wizard.NewSQLDraftStore(db)

	userFeed := feed.New[[]authModels.User]()
	apptFeed := feed.New[[]apptModels.Appointment]()

	authService := authServices.NewAuthService(db, mail, cfg.BaseURL, userFeed)
	appointmentService := apptServices.NewAppointmentService(db, mail, apptFeed)
	patientService := patientServices.NewPatientService(db, authService, appointmentService, blobs, mail)
	dashboardService := staffServices.NewDashboardService(apptFeed, userFeed, ws.HubInstance)
	adminService := staffServices.NewAdminService(db, authService)
	exportService := staffServices.NewExportService(appointmentService)
	reminderService := apptServices.NewReminderService(db, mail, drafts)

	dashboardService.Subscribe()

	authController := authControllers.NewAuthController(authService, drafts, bot)
	appointmentController := apptControllers.NewAppointmentController(appointmentService, authService, drafts)
	patientController := patientControllers.NewPatientController(patientService, authService, drafts)
	staffController := staffControllers.NewStaffController(dashboardService, adminService, exportService)

	api := e.Group("/api")
	authRoutes.RegisterAuthRoutes(api, authController)
	apptRoutes.RegisterAppointmentRoutes(api, appointmentController)
	patientRoutes.RegisterPatientRoutes(api, patientController)
	staffRoutes.RegisterStaffRoutes(api, staffController)

	// Live dashboard updates for staff clients.
	api.GET("/ws/dashboard", ws.ServeWS(ws.HubInstance))

	// Uploaded profile photos.
	e.Static("/files", cfg.BlobDir)

	return reminderService
}
