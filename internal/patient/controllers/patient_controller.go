package controllers

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	authservices "github.com/bitecare/clinic-backend/internal/auth/services"
	"github.com/bitecare/clinic-backend/internal/common/apperr"
	"github.com/bitecare/clinic-backend/internal/common/middlewares"
	"github.com/bitecare/clinic-backend/internal/patient/services"
	"github.com/bitecare/clinic-backend/internal/wizard"
)

type PatientController struct {
	Service *services.PatientService
	Users   *authservices.AuthService
	Drafts  wizard.DraftStore
}

func NewPatientController(service *services.PatientService, users *authservices.AuthService, drafts wizard.DraftStore) *PatientController {
	return &PatientController{Service: service, Users: users, Drafts: drafts}
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

// Profile returns the signed-in patient's own record.
func (pc *PatientController) Profile(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	u, err := pc.Users.GetUser(claims.UID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Profile retrieved",
		"data":    u,
	})
}

// UpdateProfile merges the submitted fields into the record after running
// the same field validators the registration form uses.
func (pc *PatientController) UpdateProfile(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	var req struct {
		Fields map[string]string `json:"fields"`
	}
	if err := c.Bind(&req); err != nil || len(req.Fields) == 0 {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}

	if errs := services.ValidateProfileFields(req.Fields); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"status":  http.StatusUnprocessableEntity,
			"message": "Please fix the highlighted fields",
			"data":    map[string]interface{}{"errors": errs},
		})
	}

	if err := pc.Service.UpdateProfile(c.Request().Context(), claims.UID, req.Fields); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Profile updated",
		"data":    nil,
	})
}

// UploadPhoto stores a new profile image and returns its download URL.
func (pc *PatientController) UploadPhoto(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	file, err := c.FormFile("photo")
	if err != nil {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	src, err := file.Open()
	if err != nil {
		return respondErr(c, apperr.Wrap(apperr.CodeInternal, err))
	}
	defer src.Close()

	url, err := pc.Service.UploadPhoto(c.Request().Context(), claims.UID, file.Filename, src, file.Size, nil)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Photo uploaded",
		"data":    map[string]interface{}{"url": url},
	})
}

// List returns all patient records for staff views.
func (pc *PatientController) List(c echo.Context) error {
	patients, err := pc.Service.List()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Patients retrieved",
		"data":    patients,
	})
}

// WalkInFlow drives the staff intake wizard. The draft key is per staff
// member so two desks never clobber each other's intake.
func (pc *PatientController) WalkInFlow() *wizard.FlowController {
	return wizard.NewFlowController(func(c echo.Context) (wizard.Config, error) {
		claims := middlewares.ClaimsFrom(c)
		if claims == nil {
			return wizard.Config{}, apperr.New(apperr.CodeUnauthenticated)
		}
		return wizard.Config{
			Key:    "walkin:" + claims.UID,
			Steps:  services.WalkInSteps(),
			Store:  pc.Drafts,
			Submit: pc.Service.RegisterWalkIn,
		}, nil
	})
}
