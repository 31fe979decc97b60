package controllers

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/auth/services"
	"github.com/bitecare/clinic-backend/internal/common/apperr"
	"github.com/bitecare/clinic-backend/internal/common/middlewares"
	"github.com/bitecare/clinic-backend/internal/wizard"
	"github.com/bitecare/clinic-backend/pkg/botcheck"
	"github.com/bitecare/clinic-backend/pkg/utils"
)

const sessionTTL = 24 * time.Hour

type AuthController struct {
	Service *services.AuthService
	Drafts  wizard.DraftStore
	Bot     botcheck.Verifier
}

func NewAuthController(service *services.AuthService, drafts wizard.DraftStore, bot botcheck.Verifier) *AuthController {
	return &AuthController{Service: service, Drafts: drafts, Bot: bot}
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

// RegistrationFlow drives the sign-up wizard. Pre-auth, so the draft key is
// a client-generated identifier passed on every request.
func (ac *AuthController) RegistrationFlow() *wizard.FlowController {
	return wizard.NewFlowController(func(c echo.Context) (wizard.Config, error) {
		draftKey := c.QueryParam("draft_key")
		if draftKey == "" {
			return wizard.Config{}, apperr.New(apperr.CodeInvalidArgument)
		}
		return wizard.Config{
			Key:          "register:" + draftKey,
			Steps:        services.RegistrationSteps(),
			Store:        ac.Drafts,
			EmailField:   "email",
			EmailExists:  ac.Service.EmailExists,
			CaptchaField: "captchaToken",
			VerifyBot:    ac.Bot.Verify,
			Submit:       ac.Service.Register,
		}, nil
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "email and password are required",
			"data":    nil,
		})
	}

	u, err := ac.Service.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondErr(c, err)
	}

	token, err := utils.GenerateJWTToken(u.UID, u.Role, u.Email, u.EmailVerified, u.PatientID, time.Now().Add(sessionTTL))
	if err != nil {
		return respondErr(c, apperr.Wrap(apperr.CodeInternal, err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Login successful",
		"data": map[string]interface{}{
			"token": token,
			"user":  u,
		},
	})
}

// Session reloads the caller's account record: the explicit "reload
// session" operation the client calls instead of caching role state.
func (ac *AuthController) Session(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	u, err := ac.Service.GetUser(claims.UID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Session retrieved",
		"data":    map[string]interface{}{"user": u},
	})
}

func (ac *AuthController) VerifyEmail(c echo.Context) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		req.Token = c.QueryParam("token")
	}
	if req.Token == "" {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	if err := ac.Service.VerifyEmail(c.Request().Context(), req.Token); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Email verified. You can now sign in.",
		"data":    nil,
	})
}

func (ac *AuthController) ResendVerification(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	if err := ac.Service.ResendVerification(c.Request().Context(), claims.UID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Verification email sent",
		"data":    nil,
	})
}

func (ac *AuthController) ForgotPassword(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	if err := ac.Service.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Password reset email sent",
		"data":    nil,
	})
}

func (ac *AuthController) ResetPassword(c echo.Context) error {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" || req.Password == "" {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	if err := ac.Service.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Password updated. Please sign in again.",
		"data":    nil,
	})
}

func (ac *AuthController) UpdatePassword(c echo.Context) error {
	claims := middlewares.ClaimsFrom(c)
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		return respondErr(c, apperr.New(apperr.CodeInvalidArgument))
	}
	if err := ac.Service.UpdatePassword(c.Request().Context(), claims.UID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Password updated",
		"data":    nil,
	})
}
