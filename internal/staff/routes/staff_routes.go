package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/common/middlewares"
	"github.com/bitecare/clinic-backend/internal/common/models"
	"github.com/bitecare/clinic-backend/internal/staff/controllers"
)

func RegisterStaffRoutes(api *echo.Group, sc *controllers.StaffController) {
	staff := api.Group("/staff", middlewares.JWTMiddleware(), middlewares.RequireRole(models.RoleStaff))
	staff.GET("/dashboard", sc.GetDashboard)
	staff.POST("/dashboard/resubscribe", sc.ResubscribeDashboard)
	staff.POST("/accounts/delete", sc.DeleteAccount)
	staff.GET("/reports/appointments.xlsx", sc.ExportAppointments)
}
