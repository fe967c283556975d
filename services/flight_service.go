// Package services: services/flight_service.go
// Derives the flight dashboard: tastings joined with the user's ratings
// and the two tea lists, all fetched in one joined operation.
package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/models"
)

// Dashboard is everything the flight views need for one render.
type Dashboard struct {
	Flights       []models.TeaFlight
	AvailableTeas []models.Tea
	AllTeas       []models.Tea
}

// FlightServiceInterface loads and rebuilds the derived dashboard. Any
// mutation elsewhere invalidates it wholesale; there is deliberately no
// incremental patching, the four source collections are refetched
// together so they can never disagree.
type FlightServiceInterface interface {
	LoadDashboard(ctx context.Context, userID int) (Dashboard, error)
	BumpRefresh(userID int) uint64
	RefreshSeq(userID int) uint64
}

// FlightService is the production implementation.
type FlightService struct {
	api TeaAPIInterface

	mu      sync.Mutex
	loadSeq map[int]uint64 // newest load issued per user
	refresh map[int]uint64 // refresh signal per user
	cache   map[int]Dashboard
}

// NewFlightService wires the flight service to an API client.
func NewFlightService(api TeaAPIInterface) *FlightService {
	return &FlightService{
		api:     api,
		loadSeq: make(map[int]uint64),
		refresh: make(map[int]uint64),
		cache:   make(map[int]Dashboard),
	}
}

// ------------------ dashboard load ------------------

// LoadDashboard issues the four reads concurrently and joins them: user
// ratings, teas available to the user, all teas, and all tastings. If any
// one of them fails, the whole load fails; no partial dashboard is ever
// returned. Flights preserve the order tastings came back in.
//
// Each load is tagged with a sequence number so a slow response that was
// superseded by a newer load is never committed to the cache.
func (f *FlightService) LoadDashboard(ctx context.Context, userID int) (Dashboard, error) {
	seq := f.nextLoadSeq(userID)

	var (
		wg        sync.WaitGroup
		ratings   []models.RatingWithTeaName
		available []models.Tea
		all       []models.Tea
		tastings  []models.Tasting

		ratingsErr, availableErr, allErr, tastingsErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		ratings, ratingsErr = f.api.GetUserRatings(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		available, availableErr = f.api.GetTeas(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		all, allErr = f.api.GetAllTeas(ctx)
	}()
	go func() {
		defer wg.Done()
		tastings, tastingsErr = f.api.GetTastings(ctx)
	}()
	wg.Wait()

	if err := multierr.Combine(ratingsErr, availableErr, allErr, tastingsErr); err != nil {
		logger.Error.Printf("LoadDashboard: aggregate load failed for user %d: %v", userID, err)
		return Dashboard{}, err
	}

	dash := Dashboard{
		Flights:       BuildTeaFlights(tastings, ratings),
		AvailableTeas: available,
		AllTeas:       all,
	}
	f.commit(userID, seq, dash)
	return dash, nil
}

// BuildTeaFlights groups ratings by tasting and attaches them to their
// tasting in upstream order, computing each flight's average. The date is
// display-only: the local date at build time.
func BuildTeaFlights(tastings []models.Tasting, ratings []models.RatingWithTeaName) []models.TeaFlight {
	byTasting := make(map[int][]models.RatingWithTeaName)
	for _, r := range ratings {
		byTasting[r.TastingID] = append(byTasting[r.TastingID], r)
	}

	date := time.Now().Format("Jan 2, 2006")
	flights := make([]models.TeaFlight, 0, len(tastings))
	for _, t := range tastings {
		group := byTasting[t.ID]
		flights = append(flights, models.TeaFlight{
			ID:        t.ID,
			Name:      t.Name,
			Date:      date,
			Ratings:   group,
			AvgRating: models.AverageRating(group),
		})
	}
	return flights
}

// ------------------ refresh signal ------------------

// BumpRefresh increments the user's refresh counter. Every completed
// mutation calls this; dependents re-fetch when the counter changes.
func (f *FlightService) BumpRefresh(userID int) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh[userID]++
	return f.refresh[userID]
}

// RefreshSeq returns the user's current refresh counter.
func (f *FlightService) RefreshSeq(userID int) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh[userID]
}

// ------------------ load sequencing ------------------

func (f *FlightService) nextLoadSeq(userID int) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadSeq[userID]++
	return f.loadSeq[userID]
}

// commit stores the result only if no newer load has been issued for the
// user since this one started.
func (f *FlightService) commit(userID int, seq uint64, dash Dashboard) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadSeq[userID] != seq {
		logger.Debug.Printf("commit: discarding stale dashboard load %d for user %d (newest is %d)",
			seq, userID, f.loadSeq[userID])
		return
	}
	f.cache[userID] = dash
}

// CachedDashboard returns the last committed dashboard for a user, if
// one exists. Views never render from this directly; it backs tests and
// the stale-load guard.
func (f *FlightService) CachedDashboard(userID int) (Dashboard, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dash, ok := f.cache[userID]
	return dash, ok
}
