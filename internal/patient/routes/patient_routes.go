package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/common/middlewares"
	"github.com/bitecare/clinic-backend/internal/common/models"
	"github.com/bitecare/clinic-backend/internal/patient/controllers"
)

func RegisterPatientRoutes(api *echo.Group, pc *controllers.PatientController) {
	profile := api.Group("/profile", middlewares.JWTMiddleware(), middlewares.RequireRole(models.RolePatient))
	profile.GET("", pc.Profile)
	profile.PUT("", pc.UpdateProfile)
	profile.POST("/photo", pc.UploadPhoto)

	patients := api.Group("/patients", middlewares.JWTMiddleware(), middlewares.RequireRole(models.RoleStaff))
	patients.GET("", pc.List)

	// Walk-in intake wizard: staff only.
	flow := pc.WalkInFlow()
	walkin := api.Group("/patients/walkin", middlewares.JWTMiddleware(), middlewares.RequireRole(models.RoleStaff))
	walkin.GET("", flow.State)
	walkin.POST("/advance", flow.Advance)
	walkin.POST("/retreat", flow.Retreat)
	walkin.POST("/reset", flow.Reset)
	walkin.POST("/submit", flow.Submit)
}
