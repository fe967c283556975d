// file: services/flight_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tanzeelak/tea-rater-frontend/models"
)

func flightRating(id, teaID, tastingID, overall int) models.RatingWithTeaName {
	return models.RatingWithTeaName{
		Rating: models.Rating{ID: id, UserID: 1, TeaID: teaID, TastingID: tastingID, Rating: overall},
	}
}

func TestBuildTeaFlights_GroupsAndAverages(t *testing.T) {
	tastings := []models.Tasting{
		{ID: 1, Name: "Morning Flight"},
		{ID: 2, Name: "Evening Flight"},
		{ID: 3, Name: "Empty Flight"},
	}
	ratings := []models.RatingWithTeaName{
		flightRating(10, 100, 1, 7),
		flightRating(11, 101, 1, 8),
		flightRating(12, 102, 2, 10),
	}

	flights := BuildTeaFlights(tastings, ratings)

	assert.Len(t, flights, 3)
	assert.Equal(t, "Morning Flight", flights[0].Name)
	assert.Equal(t, 7.5, flights[0].AvgRating)
	assert.Len(t, flights[0].Ratings, 2)

	assert.Equal(t, 10.0, flights[1].AvgRating)

	assert.Equal(t, "Empty Flight", flights[2].Name)
	assert.Empty(t, flights[2].Ratings)
	assert.Equal(t, 0.0, flights[2].AvgRating, "empty flight averages to 0")

	assert.NotEmpty(t, flights[0].Date, "display-only date is populated")
}

// Flights come back in upstream tasting order, never re-sorted
func TestBuildTeaFlights_PreservesTastingOrder(t *testing.T) {
	tastings := []models.Tasting{{ID: 9, Name: "Z"}, {ID: 1, Name: "A"}, {ID: 5, Name: "M"}}

	flights := BuildTeaFlights(tastings, nil)

	assert.Equal(t, []int{9, 1, 5}, []int{flights[0].ID, flights[1].ID, flights[2].ID})
}

func TestLoadDashboard_Success(t *testing.T) {
	api := new(MockTeaAPI)
	api.On("GetUserRatings", mock.Anything, 1).Return([]models.RatingWithTeaName{flightRating(1, 10, 1, 6)}, nil)
	api.On("GetTeas", mock.Anything, 1).Return([]models.Tea{{ID: 10, TeaName: "Sencha"}}, nil)
	api.On("GetAllTeas", mock.Anything).Return([]models.Tea{{ID: 10}, {ID: 11}}, nil)
	api.On("GetTastings", mock.Anything).Return([]models.Tasting{{ID: 1, Name: "First"}}, nil)

	svc := NewFlightService(api)
	dash, err := svc.LoadDashboard(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, dash.Flights, 1)
	assert.Equal(t, 6.0, dash.Flights[0].AvgRating)
	assert.Len(t, dash.AvailableTeas, 1)
	assert.Len(t, dash.AllTeas, 2)
	api.AssertExpectations(t)

	cached, ok := svc.CachedDashboard(1)
	assert.True(t, ok)
	assert.Len(t, cached.Flights, 1)
}

// One failing read fails the whole load; no partial dashboard
func TestLoadDashboard_FailTogether(t *testing.T) {
	api := new(MockTeaAPI)
	api.On("GetUserRatings", mock.Anything, 1).Return([]models.RatingWithTeaName{}, nil)
	api.On("GetTeas", mock.Anything, 1).Return([]models.Tea{}, nil)
	api.On("GetAllTeas", mock.Anything).Return([]models.Tea{}, nil)
	api.On("GetTastings", mock.Anything).Return([]models.Tasting{}, errors.New("tastings unavailable"))

	svc := NewFlightService(api)
	dash, err := svc.LoadDashboard(context.Background(), 1)

	assert.Error(t, err)
	assert.Empty(t, dash.Flights)
	assert.Empty(t, dash.AllTeas)

	_, ok := svc.CachedDashboard(1)
	assert.False(t, ok, "failed loads commit nothing")
}

// A load superseded by a newer one must not overwrite the newer result
func TestCommit_DiscardsStaleLoad(t *testing.T) {
	svc := NewFlightService(new(MockTeaAPI))

	older := svc.nextLoadSeq(1)
	newer := svc.nextLoadSeq(1)

	svc.commit(1, newer, Dashboard{AllTeas: []models.Tea{{ID: 2}}})
	svc.commit(1, older, Dashboard{AllTeas: []models.Tea{{ID: 1}}})

	dash, ok := svc.CachedDashboard(1)
	assert.True(t, ok)
	assert.Equal(t, 2, dash.AllTeas[0].ID, "stale result was discarded")
}

func TestBumpRefresh_MonotonicPerUser(t *testing.T) {
	svc := NewFlightService(new(MockTeaAPI))

	assert.Equal(t, uint64(0), svc.RefreshSeq(1))
	assert.Equal(t, uint64(1), svc.BumpRefresh(1))
	assert.Equal(t, uint64(2), svc.BumpRefresh(1))
	assert.Equal(t, uint64(2), svc.RefreshSeq(1))

	assert.Equal(t, uint64(1), svc.BumpRefresh(2), "counters are per user")
}
