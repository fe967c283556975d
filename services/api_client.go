// Package services: services/api_client.go
// Typed façade over the upstream tea-rater REST API. Everything the rest
// of the app knows about the wire lives here; callers get models and the
// error taxonomy, never raw responses.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/models"
)

// TeaAPIInterface is the full surface of the upstream service as this
// client uses it. Controllers and services depend on the interface so
// tests can swap in MockTeaAPI.
type TeaAPIInterface interface {
	Login(ctx context.Context, username string) (string, error)
	RegisterUser(ctx context.Context, username string) (string, error)
	Logout(ctx context.Context) error
	RegisterTea(ctx context.Context, teaName, provider, source string) (models.Tea, error)
	GetTeas(ctx context.Context, userID int) ([]models.Tea, error)
	GetAllTeas(ctx context.Context) ([]models.Tea, error)
	GetUserRatings(ctx context.Context, userID int) ([]models.RatingWithTeaName, error)
	SubmitRating(ctx context.Context, rating models.Rating) (models.Rating, error)
	EditRating(ctx context.Context, ratingID int, rating models.Rating) (models.Rating, error)
	CreateTasting(ctx context.Context, name string) (models.Tasting, error)
	GetTastings(ctx context.Context) ([]models.Tasting, error)
	GetUser(ctx context.Context, userID int) (models.User, error)
	GetSummary(ctx context.Context) ([]models.TeaSummary, error)
}

// TeaAPIClient talks to the real upstream service.
type TeaAPIClient struct {
	rest *resty.Client
}

// NewTeaAPIClient builds a client for the given base URL, e.g.
// "http://localhost:8080".
func NewTeaAPIClient(baseURL string) *TeaAPIClient {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	return &TeaAPIClient{rest: rest}
}

// tokenResponse is the login / register-user success shape.
type tokenResponse struct {
	Token string `json:"token"`
}

// ------------------ auth endpoints ------------------

// Login exchanges a username for a session token. A 2xx response without
// a token is still an authentication failure.
func (a *TeaAPIClient) Login(ctx context.Context, username string) (string, error) {
	var body tokenResponse
	resp, err := a.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username}).
		SetResult(&body).
		Post("/login")
	if err := a.check("POST /login", resp, err); err != nil {
		return "", err
	}
	if body.Token == "" {
		logger.Warn.Printf("Login: upstream returned no token for user %q", username)
		return "", fmt.Errorf("login response missing token: %w", ErrAuthenticationFailed)
	}
	return body.Token, nil
}

// RegisterUser creates a new user and returns its session token. Same
// contract as Login, distinct endpoint.
func (a *TeaAPIClient) RegisterUser(ctx context.Context, username string) (string, error) {
	var body tokenResponse
	resp, err := a.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": username}).
		SetResult(&body).
		Post("/register-user")
	if err := a.check("POST /register-user", resp, err); err != nil {
		return "", err
	}
	if body.Token == "" {
		return "", fmt.Errorf("registration response missing token: %w", ErrAuthenticationFailed)
	}
	return body.Token, nil
}

// Logout tells the upstream service the user is gone. Callers are
// expected to clear local state no matter what this returns.
func (a *TeaAPIClient) Logout(ctx context.Context) error {
	resp, err := a.rest.R().SetContext(ctx).Post("/logout")
	return a.check("POST /logout", resp, err)
}

// ------------------ tea endpoints ------------------

// RegisterTea registers a new tea upstream. A 409 means a tea with the
// same name and provider already exists and surfaces as ErrConflict.
func (a *TeaAPIClient) RegisterTea(ctx context.Context, teaName, provider, source string) (models.Tea, error) {
	var tea models.Tea
	resp, err := a.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"tea_name": teaName, "provider": provider, "source": source}).
		SetResult(&tea).
		Post("/register-tea")
	if err := a.check("POST /register-tea", resp, err); err != nil {
		return models.Tea{}, err
	}
	return tea, nil
}

// GetTeas lists the teas available to one user.
func (a *TeaAPIClient) GetTeas(ctx context.Context, userID int) ([]models.Tea, error) {
	resp, err := a.rest.R().
		SetContext(ctx).
		SetQueryParam("user_id", fmt.Sprintf("%d", userID)).
		Get("/teas")
	if err := a.check("GET /teas", resp, err); err != nil {
		return nil, err
	}
	return decodeList[models.Tea]("GET /teas", resp.Body()), nil
}

// GetAllTeas lists every registered tea.
func (a *TeaAPIClient) GetAllTeas(ctx context.Context) ([]models.Tea, error) {
	resp, err := a.rest.R().SetContext(ctx).Get("/all-teas")
	if err := a.check("GET /all-teas", resp, err); err != nil {
		return nil, err
	}
	return decodeList[models.Tea]("GET /all-teas", resp.Body()), nil
}

// ------------------ rating endpoints ------------------

// GetUserRatings lists one user's ratings joined with tea names.
func (a *TeaAPIClient) GetUserRatings(ctx context.Context, userID int) ([]models.RatingWithTeaName, error) {
	resp, err := a.rest.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/user-ratings/%d", userID))
	if err := a.check("GET /user-ratings", resp, err); err != nil {
		return nil, err
	}
	return decodeList[models.RatingWithTeaName]("GET /user-ratings", resp.Body()), nil
}

// SubmitRating creates a rating. The id field is omitted by sending it as
// zero; the server assigns the real one.
func (a *TeaAPIClient) SubmitRating(ctx context.Context, rating models.Rating) (models.Rating, error) {
	var created models.Rating
	resp, err := a.rest.R().
		SetContext(ctx).
		SetBody(rating).
		SetResult(&created).
		Post("/submit")
	if err := a.check("POST /submit", resp, err); err != nil {
		return models.Rating{}, err
	}
	return created, nil
}

// EditRating updates an existing rating in place.
func (a *TeaAPIClient) EditRating(ctx context.Context, ratingID int, rating models.Rating) (models.Rating, error) {
	var updated models.Rating
	resp, err := a.rest.R().
		SetContext(ctx).
		SetBody(rating).
		SetResult(&updated).
		Put(fmt.Sprintf("/ratings/%d", ratingID))
	if err := a.check("PUT /ratings", resp, err); err != nil {
		return models.Rating{}, err
	}
	return updated, nil
}

// ------------------ tasting endpoints ------------------

// CreateTasting creates a named flight. Duplicate names come back as 409
// and surface as ErrConflict so callers can show a name-collision message.
func (a *TeaAPIClient) CreateTasting(ctx context.Context, name string) (models.Tasting, error) {
	var tasting models.Tasting
	resp, err := a.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name}).
		SetResult(&tasting).
		Post("/tastings")
	if err := a.check("POST /tastings", resp, err); err != nil {
		return models.Tasting{}, err
	}
	return tasting, nil
}

// GetTastings lists every tasting in upstream insertion order.
func (a *TeaAPIClient) GetTastings(ctx context.Context) ([]models.Tasting, error) {
	resp, err := a.rest.R().SetContext(ctx).Get("/tastings")
	if err := a.check("GET /tastings", resp, err); err != nil {
		return nil, err
	}
	return decodeList[models.Tasting]("GET /tastings", resp.Body()), nil
}

// ------------------ misc endpoints ------------------

// GetUser fetches one user record (used for the navbar greeting).
func (a *TeaAPIClient) GetUser(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	resp, err := a.rest.R().
		SetContext(ctx).
		SetResult(&user).
		Get(fmt.Sprintf("/user/%d", userID))
	if err := a.check("GET /user", resp, err); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetSummary fetches the community-wide per-tea averages.
func (a *TeaAPIClient) GetSummary(ctx context.Context) ([]models.TeaSummary, error) {
	resp, err := a.rest.R().SetContext(ctx).Get("/summary")
	if err := a.check("GET /summary", resp, err); err != nil {
		return nil, err
	}
	return decodeList[models.TeaSummary]("GET /summary", resp.Body()), nil
}

// ------------------ shared plumbing ------------------

// check folds transport errors and upstream status codes into the error
// taxonomy. Conflict keeps the upstream message so the UI can show it.
func (a *TeaAPIClient) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		logger.Error.Printf("%s: transport error: %v", op, err)
		return fmt.Errorf("%s: %v: %w", op, err, ErrNetworkFailure)
	}
	switch {
	case resp.StatusCode() == http.StatusConflict:
		logger.Warn.Printf("%s: conflict: %s", op, resp.String())
		return fmt.Errorf("%s: %s: %w", op, resp.String(), ErrConflict)
	case resp.StatusCode() == http.StatusUnauthorized:
		logger.Warn.Printf("%s: unauthorized", op)
		return fmt.Errorf("%s: %w", op, ErrAuthenticationFailed)
	case resp.IsError():
		logger.Error.Printf("%s: upstream status %d: %s", op, resp.StatusCode(), resp.String())
		return fmt.Errorf("%s: status %d: %w", op, resp.StatusCode(), ErrNetworkFailure)
	}
	return nil
}

// decodeList parses a JSON array body. The upstream service sometimes
// answers list endpoints with null or an object; those decode as an empty
// list rather than an error.
func decodeList[T any](op string, body []byte) []T {
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		logger.Warn.Printf("%s: non-array response, treating as empty list", op)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
