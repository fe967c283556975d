// Package controllers handles user authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/services"
)

// AuthController drives login, registration and logout.
type AuthController struct {
	Sessions services.SessionServiceInterface
}

// NewAuthController constructs the controller with its session service.
func NewAuthController(sessions services.SessionServiceInterface) *AuthController {
	return &AuthController{Sessions: sessions}
}

// ------------------ login ------------------

// ShowLoginPage renders the login form. A user who already has a valid
// session goes straight to the dashboard.
func (ac *AuthController) ShowLoginPage(c *gin.Context) {
	if ac.Sessions.Current(c).Valid() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// PerformLogin exchanges the posted username for a token and stores it.
// On any failure the prior session is left untouched and the form is
// re-rendered with an error.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	username := c.PostForm("username")

	token, err := ac.Sessions.Login(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrValidationFailed) {
			c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Please enter a username."})
			return
		}
		logger.Warn.Printf("PerformLogin: login failed for %q: %v", username, err)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Login failed!"})
		return
	}

	if err := ac.Sessions.StoreToken(c, token); err != nil {
		logger.Error.Printf("PerformLogin: failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	logger.Info.Printf("PerformLogin: user %q logged in", username)
	c.Redirect(http.StatusFound, "/")
}

// ------------------ registration ------------------

// ShowRegisterPage renders the new-user form.
func (ac *AuthController) ShowRegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// PerformRegister creates a new upstream user and logs them straight in.
func (ac *AuthController) PerformRegister(c *gin.Context) {
	username := c.PostForm("username")

	token, err := ac.Sessions.Register(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrValidationFailed) {
			c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "Please enter a username."})
			return
		}
		logger.Warn.Printf("PerformRegister: registration failed for %q: %v", username, err)
		c.HTML(http.StatusUnauthorized, "register.html", gin.H{"Error": "Registration failed!"})
		return
	}

	if err := ac.Sessions.StoreToken(c, token); err != nil {
		logger.Error.Printf("PerformRegister: failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ------------------ logout ------------------

// Logout notifies upstream and clears the local session. The clear
// happens whatever upstream says; logout is idempotent from the
// browser's point of view.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.Sessions.Logout(c.Request.Context())
	ac.Sessions.ClearToken(c)
	logger.Info.Println("Logout: session cleared")
	c.Redirect(http.StatusFound, "/login")
}
