// services/mock_api_client.go
package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tanzeelak/tea-rater-frontend/models"
)

// Ensure MockTeaAPI implements TeaAPIInterface
var _ TeaAPIInterface = (*MockTeaAPI)(nil)

// MockTeaAPI is a mock upstream API for testing, extending `mock.Mock`.
type MockTeaAPI struct {
	mock.Mock
}

// Login (Mocked)
func (m *MockTeaAPI) Login(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

// RegisterUser (Mocked)
func (m *MockTeaAPI) RegisterUser(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

// Logout (Mocked)
func (m *MockTeaAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// RegisterTea (Mocked)
func (m *MockTeaAPI) RegisterTea(ctx context.Context, teaName, provider, source string) (models.Tea, error) {
	args := m.Called(ctx, teaName, provider, source)
	return args.Get(0).(models.Tea), args.Error(1)
}

// GetTeas (Mocked)
func (m *MockTeaAPI) GetTeas(ctx context.Context, userID int) ([]models.Tea, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Tea), args.Error(1)
}

// GetAllTeas (Mocked)
func (m *MockTeaAPI) GetAllTeas(ctx context.Context) ([]models.Tea, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tea), args.Error(1)
}

// GetUserRatings (Mocked)
func (m *MockTeaAPI) GetUserRatings(ctx context.Context, userID int) ([]models.RatingWithTeaName, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.RatingWithTeaName), args.Error(1)
}

// SubmitRating (Mocked)
func (m *MockTeaAPI) SubmitRating(ctx context.Context, rating models.Rating) (models.Rating, error) {
	args := m.Called(ctx, rating)
	return args.Get(0).(models.Rating), args.Error(1)
}

// EditRating (Mocked)
func (m *MockTeaAPI) EditRating(ctx context.Context, ratingID int, rating models.Rating) (models.Rating, error) {
	args := m.Called(ctx, ratingID, rating)
	return args.Get(0).(models.Rating), args.Error(1)
}

// CreateTasting (Mocked)
func (m *MockTeaAPI) CreateTasting(ctx context.Context, name string) (models.Tasting, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Tasting), args.Error(1)
}

// GetTastings (Mocked)
func (m *MockTeaAPI) GetTastings(ctx context.Context) ([]models.Tasting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tasting), args.Error(1)
}

// GetUser (Mocked)
func (m *MockTeaAPI) GetUser(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

// GetSummary (Mocked)
func (m *MockTeaAPI) GetSummary(ctx context.Context) ([]models.TeaSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.TeaSummary), args.Error(1)
}
