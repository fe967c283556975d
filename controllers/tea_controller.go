// Package controllers file: controllers/tea_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/models"
	"github.com/tanzeelak/tea-rater-frontend/services"
	"github.com/tanzeelak/tea-rater-frontend/websocket"
)

// TeaController handles registering new teas. It never refreshes the
// dashboard itself; success redirects back to the listing, which reloads.
type TeaController struct {
	Flights services.FlightServiceInterface
	API     services.TeaAPIInterface
}

// NewTeaController wires the controller to its services.
func NewTeaController(flights services.FlightServiceInterface, api services.TeaAPIInterface) *TeaController {
	return &TeaController{Flights: flights, API: api}
}

// ShowRegisterTea renders the tea registration form.
func (tc *TeaController) ShowRegisterTea(c *gin.Context) {
	c.HTML(http.StatusOK, "register_tea.html", gin.H{
		"SubmitToken": issueSubmitToken(c),
	})
}

// RegisterTea validates and posts a new tea. Name and provider must be
// non-empty after trimming; source is optional. A duplicate tea reports
// as a conflict, distinct from other failures.
func (tc *TeaController) RegisterTea(c *gin.Context) {
	userID := currentUserID(c)

	if !consumeSubmitToken(c) {
		setFlash(c, "error", "That tea was already submitted.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form models.TeaRegistration
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register_tea.html", gin.H{
			"Error":       "Please fill in Tea Name and Provider (Source is optional)",
			"SubmitToken": issueSubmitToken(c),
		})
		return
	}

	// binding catches absent fields; whitespace-only values still need
	// the trim check
	teaName := strings.TrimSpace(form.TeaName)
	provider := strings.TrimSpace(form.Provider)
	if teaName == "" || provider == "" {
		c.HTML(http.StatusBadRequest, "register_tea.html", gin.H{
			"Error":       "Please fill in Tea Name and Provider (Source is optional)",
			"SubmitToken": issueSubmitToken(c),
		})
		return
	}

	tea, err := tc.API.RegisterTea(c.Request.Context(), teaName, provider, strings.TrimSpace(form.Source))
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			logger.Warn.Printf("RegisterTea: duplicate tea %q / %q", teaName, provider)
			c.HTML(http.StatusConflict, "register_tea.html", gin.H{
				"Error":       "Tea already exists with this name and provider",
				"SubmitToken": issueSubmitToken(c),
			})
			return
		}
		logger.Error.Printf("RegisterTea: upstream registration failed: %v", err)
		c.HTML(http.StatusBadGateway, "register_tea.html", gin.H{
			"Error":       "Failed to register tea. Please try again.",
			"SubmitToken": issueSubmitToken(c),
		})
		return
	}

	logger.Info.Printf("RegisterTea: registered tea %d (%q) for user %d", tea.ID, tea.TeaName, userID)

	seq := tc.Flights.BumpRefresh(userID)
	go websocket.BroadcastRefresh(userID, seq)

	setFlash(c, "success", "Tea registered successfully!")
	c.Redirect(http.StatusFound, "/")
}
