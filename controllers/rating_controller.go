// Package controllers file: controllers/rating_controller.go
// The rating controller drives the multi-step rating flow: rating one tea
// within a flight, editing an existing rating, and the create-a-flight
// sequence that steps through a selected set of teas.
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/models"
	"github.com/tanzeelak/tea-rater-frontend/services"
	"github.com/tanzeelak/tea-rater-frontend/websocket"
)

// session keys for the create-flight rating sequence
const (
	flowFlightKey = "flowFlightID"
	flowTeasKey   = "flowTeaIDs"
	flowIndexKey  = "flowIndex"
)

// RatingController handles rating submission, editing, and flight creation.
type RatingController struct {
	Flights services.FlightServiceInterface
	API     services.TeaAPIInterface
}

// NewRatingController wires the controller to its services.
func NewRatingController(flights services.FlightServiceInterface, api services.TeaAPIInterface) *RatingController {
	return &RatingController{Flights: flights, API: api}
}

// ------------------ rating a tea ------------------

// ShowRatingForm renders the rating form for one tea. Every dimension
// starts at mid-scale. The flight id comes from the route; the quick-rate
// route has none, which becomes tasting 0 on submit.
func (rc *RatingController) ShowRatingForm(c *gin.Context) {
	userID := currentUserID(c)
	teaID, err := strconv.Atoi(c.Param("teaID"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	flightID := optionalFlightID(c)

	tea, ok := rc.findTea(c, teaID)
	if !ok {
		setFlash(c, "error", "That tea does not exist.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	flashKind, flashMsg := takeFlash(c)
	c.HTML(http.StatusOK, "rating_form.html", gin.H{
		"Mode":        "create",
		"Tea":         tea,
		"FlightID":    flightID,
		"Rating":      models.NewDraftRating(userID, teaID, flightID),
		"SubmitToken": issueSubmitToken(c),
		"FlowStep":    rc.flowStepLabel(c),
		"FlashKind":   flashKind,
		"FlashMsg":    flashMsg,
	})
}

// SubmitRating posts a new rating. With no flight context the rating is
// sent with tasting_id 0 and the server files it under its default
// tasting. Inside a creation flow, a successful submit advances to the
// next selected tea.
func (rc *RatingController) SubmitRating(c *gin.Context) {
	userID := currentUserID(c)
	teaID, err := strconv.Atoi(c.Param("teaID"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	flightID := optionalFlightID(c)

	if !consumeSubmitToken(c) {
		setFlash(c, "error", "That rating was already submitted.")
		c.Redirect(http.StatusFound, flightPath(flightID))
		return
	}

	var form models.RatingForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn.Printf("SubmitRating: invalid form from user %d: %v", userID, err)
		setFlash(c, "error", "Please score every dimension between 1 and 10.")
		c.Redirect(http.StatusFound, ratePath(flightID, teaID))
		return
	}

	rating := form.Apply(models.Rating{UserID: userID, TeaID: teaID, TastingID: flightID})
	if _, err := rc.API.SubmitRating(c.Request.Context(), rating); err != nil {
		logger.Error.Printf("SubmitRating: upstream submit failed for user %d tea %d: %v", userID, teaID, err)
		setFlash(c, "error", "Error submitting rating. Please try again.")
		c.Redirect(http.StatusFound, ratePath(flightID, teaID))
		return
	}

	rc.signalRefresh(userID)

	// inside a creation flow, move on to the next selected tea
	if next, done, active := rc.advanceFlow(c, flightID); active {
		if done {
			setFlash(c, "success", "Flight complete!")
			c.Redirect(http.StatusFound, flightPath(flightID))
			return
		}
		c.Redirect(http.StatusFound, ratePath(flightID, next))
		return
	}

	setFlash(c, "success", "Rating submitted successfully!")
	c.Redirect(http.StatusFound, flightPath(flightID))
}

// ------------------ editing a rating ------------------

// ShowEditForm renders the rating form pre-filled from the stored rating.
// Dimensions the original never scored default to mid-scale.
func (rc *RatingController) ShowEditForm(c *gin.Context) {
	userID := currentUserID(c)
	ratingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	original, ok := rc.findRating(c, userID, ratingID)
	if !ok {
		setFlash(c, "error", "That rating does not exist.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "rating_form.html", gin.H{
		"Mode":        "edit",
		"TeaName":     original.TeaName,
		"RatingID":    original.ID,
		"FlightID":    original.TastingID,
		"Rating":      original.Rating.WithDefaults(),
		"SubmitToken": issueSubmitToken(c),
	})
}

// SubmitEdit posts the updated scores. The rating keeps its original
// tasting_id; only the scores change.
func (rc *RatingController) SubmitEdit(c *gin.Context) {
	userID := currentUserID(c)
	ratingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if !consumeSubmitToken(c) {
		setFlash(c, "error", "That edit was already submitted.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	original, ok := rc.findRating(c, userID, ratingID)
	if !ok {
		setFlash(c, "error", "That rating does not exist.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form models.RatingForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn.Printf("SubmitEdit: invalid form from user %d: %v", userID, err)
		setFlash(c, "error", "Please score every dimension between 1 and 10.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/ratings/%d/edit", ratingID))
		return
	}

	updated := form.Apply(original.Rating)
	if _, err := rc.API.EditRating(c.Request.Context(), ratingID, updated); err != nil {
		logger.Error.Printf("SubmitEdit: upstream edit failed for rating %d: %v", ratingID, err)
		setFlash(c, "error", "Error updating rating. Please try again.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/ratings/%d/edit", ratingID))
		return
	}

	rc.signalRefresh(userID)
	setFlash(c, "success", "Rating updated successfully!")
	c.Redirect(http.StatusFound, flightPath(original.TastingID))
}

// ------------------ creating a flight ------------------

// ShowCreateFlight renders the new-flight form with the available teas
// offered for sequential rating.
func (rc *RatingController) ShowCreateFlight(c *gin.Context) {
	userID := currentUserID(c)

	dash, err := rc.Flights.LoadDashboard(c.Request.Context(), userID)
	if err != nil {
		logger.Error.Printf("ShowCreateFlight: dashboard load failed for user %d: %v", userID, err)
		setFlash(c, "error", "Failed to load your teas. Please try again.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	flashKind, flashMsg := takeFlash(c)
	c.HTML(http.StatusOK, "create_flight.html", gin.H{
		"AvailableTeas": dash.AvailableTeas,
		"SubmitToken":   issueSubmitToken(c),
		"FlashKind":     flashKind,
		"FlashMsg":      flashMsg,
	})
}

// CreateFlight names a new flight and optionally starts the sequential
// rating of the selected teas. With nothing selected, the flight is
// created empty and the user returns to the listing. A duplicate name is
// reported as a name collision, not a generic failure.
func (rc *RatingController) CreateFlight(c *gin.Context) {
	userID := currentUserID(c)

	if !consumeSubmitToken(c) {
		setFlash(c, "error", "That flight was already submitted.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		setFlash(c, "error", "Please name your flight.")
		c.Redirect(http.StatusFound, "/create-flight")
		return
	}

	teaIDs := make([]int, 0)
	for _, raw := range c.PostFormArray("teas") {
		if id, err := strconv.Atoi(raw); err == nil {
			teaIDs = append(teaIDs, id)
		}
	}

	tasting, err := rc.API.CreateTasting(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			logger.Warn.Printf("CreateFlight: duplicate flight name %q for user %d", name, userID)
			setFlash(c, "error", fmt.Sprintf("A flight named %q already exists.", name))
		} else {
			logger.Error.Printf("CreateFlight: upstream create failed for user %d: %v", userID, err)
			setFlash(c, "error", "Failed to create flight. Please try again.")
		}
		c.Redirect(http.StatusFound, "/create-flight")
		return
	}

	rc.signalRefresh(userID)

	if len(teaIDs) == 0 {
		setFlash(c, "success", fmt.Sprintf("Flight %q created.", name))
		c.Redirect(http.StatusFound, "/")
		return
	}

	rc.startFlow(c, tasting.ID, teaIDs)
	c.Redirect(http.StatusFound, ratePath(tasting.ID, teaIDs[0]))
}

// CancelFlow abandons a creation flow without further mutation. Teas
// already rated keep their ratings.
func (rc *RatingController) CancelFlow(c *gin.Context) {
	rc.clearFlow(c)
	c.Redirect(http.StatusFound, "/")
}

// ------------------ flow cursor ------------------

// startFlow records the selected teas and a zero-based cursor in the
// session.
func (rc *RatingController) startFlow(c *gin.Context, flightID int, teaIDs []int) {
	session := sessions.Default(c)
	session.Set(flowFlightKey, flightID)
	session.Set(flowTeasKey, teaIDs)
	session.Set(flowIndexKey, 0)
	if err := session.Save(); err != nil {
		logger.Error.Printf("startFlow: error saving session: %v", err)
	}
}

// advanceFlow moves the cursor past the tea just rated. It reports the
// next tea to rate, whether the selection is exhausted, and whether a
// flow for this flight was active at all.
func (rc *RatingController) advanceFlow(c *gin.Context, flightID int) (next int, done, active bool) {
	session := sessions.Default(c)
	storedFlight, _ := session.Get(flowFlightKey).(int)
	teaIDs, _ := session.Get(flowTeasKey).([]int)
	index, _ := session.Get(flowIndexKey).(int)

	if storedFlight == 0 || storedFlight != flightID || len(teaIDs) == 0 {
		return 0, false, false
	}

	index++
	if index >= len(teaIDs) {
		rc.clearFlow(c)
		return 0, true, true
	}

	session.Set(flowIndexKey, index)
	if err := session.Save(); err != nil {
		logger.Error.Printf("advanceFlow: error saving session: %v", err)
	}
	return teaIDs[index], false, true
}

// flowStepLabel describes the cursor position for the rating form, e.g.
// "Tea 2 of 5". Empty when no flow is active.
func (rc *RatingController) flowStepLabel(c *gin.Context) string {
	session := sessions.Default(c)
	teaIDs, _ := session.Get(flowTeasKey).([]int)
	index, _ := session.Get(flowIndexKey).(int)
	if len(teaIDs) == 0 {
		return ""
	}
	return fmt.Sprintf("Tea %d of %d", index+1, len(teaIDs))
}

func (rc *RatingController) clearFlow(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(flowFlightKey)
	session.Delete(flowTeasKey)
	session.Delete(flowIndexKey)
	if err := session.Save(); err != nil {
		logger.Error.Printf("clearFlow: error saving session: %v", err)
	}
}

// ------------------ shared lookups ------------------

// findTea resolves a tea id against the full tea set.
func (rc *RatingController) findTea(c *gin.Context, teaID int) (models.Tea, bool) {
	teas, err := rc.API.GetAllTeas(c.Request.Context())
	if err != nil {
		logger.Error.Printf("findTea: tea list load failed: %v", err)
		return models.Tea{}, false
	}
	for _, tea := range teas {
		if tea.ID == teaID {
			return tea, true
		}
	}
	return models.Tea{}, false
}

// findRating resolves a rating id against the user's ratings.
func (rc *RatingController) findRating(c *gin.Context, userID, ratingID int) (models.RatingWithTeaName, bool) {
	ratings, err := rc.API.GetUserRatings(c.Request.Context(), userID)
	if err != nil {
		logger.Error.Printf("findRating: ratings load failed for user %d: %v", userID, err)
		return models.RatingWithTeaName{}, false
	}
	for _, r := range ratings {
		if r.ID == ratingID {
			return r, true
		}
	}
	return models.RatingWithTeaName{}, false
}

// signalRefresh bumps the user's refresh counter and pushes it to open
// dashboards.
func (rc *RatingController) signalRefresh(userID int) {
	seq := rc.Flights.BumpRefresh(userID)
	go websocket.BroadcastRefresh(userID, seq)
}

// ------------------ path helpers ------------------

func flightPath(flightID int) string {
	if flightID == 0 {
		return "/"
	}
	return fmt.Sprintf("/flights/%d", flightID)
}

func ratePath(flightID, teaID int) string {
	if flightID == 0 {
		return fmt.Sprintf("/rate/%d", teaID)
	}
	return fmt.Sprintf("/flights/%d/rate/%d", flightID, teaID)
}

// optionalFlightID parses the flight id from the route; the quick-rate
// routes have none, which maps to 0.
func optionalFlightID(c *gin.Context) int {
	raw := c.Param("id")
	if raw == "" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return id
}
