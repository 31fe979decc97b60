package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/appointment/controllers"
	"github.com/bitecare/clinic-backend/internal/common/middlewares"
	"github.com/bitecare/clinic-backend/internal/common/models"
)

func RegisterAppointmentRoutes(api *echo.Group, ac *controllers.AppointmentController) {
	appointments := api.Group("/appointments", middlewares.JWTMiddleware())
	appointments.GET("", ac.List, middlewares.RequireRole(models.RolePatient))
	appointments.PUT("/:id/cancel", ac.Cancel, middlewares.RequireRole(models.RolePatient))
	appointments.PUT("/:id/status", ac.UpdateStatus, middlewares.RequireRole(models.RoleStaff))

	// Booking wizard: verified patients only.
	flow := ac.BookingFlow()
	booking := api.Group("/appointments/booking",
		middlewares.JWTMiddleware(),
		middlewares.RequireRole(models.RolePatient),
		middlewares.RequireVerified())
	booking.GET("", flow.State)
	booking.POST("/advance", flow.Advance)
	booking.POST("/retreat", flow.Retreat)
	booking.POST("/reset", flow.Reset)
	booking.POST("/submit", flow.Submit)
}
