package controllers

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/common/apperr"
	"github.com/bitecare/clinic-backend/internal/common/middlewares"
	"github.com/bitecare/clinic-backend/internal/staff/services"
)

type StaffController struct {
	Dashboard *services.DashboardService
	Admin     *services.AdminService
	Export    *services.ExportService
}

func NewStaffController(dashboard *services.DashboardService, admin *services.AdminService, export *services.ExportService) *StaffController {
	return &StaffController{Dashboard: dashboard, Admin: admin, Export: export}
}

func respondErr(c echo.Context, err error) error {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		sentry.CaptureException(err)
	}
	return c.JSON(apperr.HTTPStatus(code), map[string]interface{}{
		"status":  apperr.HTTPStatus(code),
		"message": apperr.Message(err),
		"data":    map[string]interface{}{"code": string(code)},
	})
}

// GetDashboard returns the latest reduced summaries for the widgets.
func (sc *StaffController) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Dashboard retrieved",
		"data":    sc.Dashboard.Summary(),
	})
}

// ResubscribeDashboard re-attaches the aggregators after a feed error.
func (sc *StaffController) ResubscribeDashboard(c echo.Context) error {
	sc.Dashboard.Subscribe()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Dashboard resubscribed",
		"data":    sc.Dashboard.Summary(),
	})
}

// DeleteAccount is the staff-only deletion callable.
func (sc *StaffController) DeleteAccount(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	callerUID := ""
	if claims != nil {
		callerUID = claims.UID
	}
	var req struct {
		UID string `json:"uid"`
	}
	if err := c.Bind(&req); err != nil {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	res, err := sc.Admin.DeleteUserAccount(c.Request().Context(), callerUID, req.UID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": res.Message,
		"data":    res,
	})
}

// ExportAppointments streams the appointment report spreadsheet.
func (sc *StaffController) ExportAppointments(c echo.Context) error {
	report, err := sc.Export.AppointmentReport()
	if err != nil {
		return respondErr(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="appointments.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}
