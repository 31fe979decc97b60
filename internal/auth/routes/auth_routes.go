package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/auth/controllers"
	"github.com/bitecare/clinic-backend/internal/common/middlewares"
)

func RegisterAuthRoutes(api *echo.Group, ac *controllers.AuthController) {
	auth := api.Group("/auth")
	auth.POST("/login", ac.Login)
	auth.GET("/session", ac.Session, middlewares.JWTMiddleware())
	auth.POST("/verify-email", ac.VerifyEmail)
	auth.POST("/verify-email/resend", ac.ResendVerification, middlewares.JWTMiddleware())
	auth.POST("/password/forgot", ac.ForgotPassword)
	auth.POST("/password/reset", ac.ResetPassword)
	auth.PUT("/password", ac.UpdatePassword, middlewares.JWTMiddleware())

	// Registration wizard (pre-auth; draft key comes from the client).
	flow := ac.RegistrationFlow()
	register := api.Group("/register")
	register.GET("", flow.State)
	register.POST("/advance", flow.Advance)
	register.POST("/retreat", flow.Retreat)
	register.POST("/reset", flow.Reset)
	register.POST("/submit", flow.Submit)
}
