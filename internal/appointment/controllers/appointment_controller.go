package controllers

import (
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/appointment/models"
	"github.com/bitecare/clinic-backend/internal/appointment/services"
	authservices "github.com/bitecare/clinic-backend/internal/auth/services"
	"github.com/bitecare/clinic-backend/internal/common/apperr"
	"github.com/bitecare/clinic-backend/internal/common/middlewares"
	"github.com/bitecare/clinic-backend/internal/wizard"
	"github.com/bitecare/clinic-backend/pkg/utils"
)

type AppointmentController struct {
	Service *services.AppointmentService
	Users   *authservices.AuthService
	Drafts  wizard.DraftStore
}

func NewAppointmentController(service *services.AppointmentService, users *authservices.AuthService, drafts wizard.DraftStore) *AppointmentController {
	return &AppointmentController{Service: service, Users: users, Drafts: drafts}
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

// BookingFlow drives the appointment wizard for the signed-in patient. The
// draft key is derived from the session, so an in-progress booking follows
// the patient across reloads.
func (ac *AppointmentController) BookingFlow() *wizard.FlowController {
	return wizard.NewFlowController(func(c echo.Context) (wizard.Config, error) {
		claims := middlewares.ClaimsFrom(c)
		if claims == nil {
			return wizard.Config{}, apperr.New(apperr.CodeUnauthenticated)
		}
		u, err := ac.Users.GetUser(claims.UID)
		if err != nil {
			return wizard.Config{}, err
		}
		name := utils.JoinName(u.FirstName, u.MiddleName, u.LastName)
		return wizard.Config{
			Key:    "appointment:" + claims.UID,
			Steps:  services.BookingSteps(),
			Store:  ac.Drafts,
			Submit: ac.Service.BookFor(u.UID, name, u.Email, models.ChannelOnline),
		}, nil
	})
}

// List returns the signed-in patient's own appointments.
func (ac *AppointmentController) List(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	appointments, err := ac.Service.ListByUser(claims.UID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Appointments retrieved",
		"data":    appointments,
	})
}

// Cancel lets a patient cancel their own upcoming appointment.
func (ac *AppointmentController) Cancel(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	if err := ac.Service.Cancel(c.Request().Context(), claims.UID, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Appointment cancelled",
		"data":    nil,
	})
}

// UpdateStatus is the staff-side transition endpoint.
func (ac *AppointmentController) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	status, err := ac.Service.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Appointment status updated",
		"data":    map[string]interface{}{"id": id, "status": status},
	})
}
