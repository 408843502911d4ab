package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/deppfellow/showtracker/internal/config"
	"github.com/deppfellow/showtracker/internal/errs"
	"github.com/deppfellow/showtracker/internal/handler"
	"github.com/deppfellow/showtracker/internal/model"
	"github.com/deppfellow/showtracker/internal/server"
	"github.com/deppfellow/showtracker/internal/service"
	"github.com/deppfellow/showtracker/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	store  *testutil.Store
	router *echo.Echo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          10000,
			},
		},
		Logger:  &logger,
		Metrics: prometheus.NewRegistry(),
	}

	store := testutil.NewStore()
	services, err := service.NewServices(s, store.Repositories())
	require.NoError(t, err)

	return &testApp{
		store:  store,
		router: NewRouter(s, handler.NewHandlers(s, services)),
	}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func showBody(title, genre, rating, status string) string {
	return fmt.Sprintf(`{"title":%q,"genre":%q,"rating":%s,"status":%q}`, title, genre, rating, status)
}

func TestShows_CreateAndGet(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/shows", showBody("Severance", "Drama", "9", "Watching"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	created := decode[model.Show](t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Severance", created.Title)
	assert.Equal(t, 9.0, created.Rating)

	rec = app.do(http.MethodGet, fmt.Sprintf("/shows/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[model.Show](t, rec).ID)
}

func TestShows_CreateAcceptsNumericStringRating(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/shows", showBody("Dark", "Mystery", `"8.5"`, "Finished"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 8.5, decode[model.Show](t, rec).Rating)
}

func TestShows_CreateAcceptsExponentRating(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/shows", showBody("Dark", "Mystery", "1e1", "Finished"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 10.0, decode[model.Show](t, rec).Rating)
}

func TestShows_CreateTitleLength(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/shows", showBody(strings.Repeat("a", 25), "Drama", "7", "Watching"))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	calls := app.store.Calls()
	rec = app.do(http.MethodPost, "/shows", showBody(strings.Repeat("a", 26), "Drama", "7", "Watching"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, calls, app.store.Calls())

	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "title", body.Errors[0].Field)
	assert.Equal(t, "max", body.Errors[0].Rule)
}

func TestShows_CreateReportsEveryViolation(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/shows", `{"title":"","genre":"Sci-Fi","rating":"It was very good","status":"ok"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, app.store.Calls())

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Validation failed", body.Message)

	rules := map[string]string{}
	for _, fe := range body.Errors {
		rules[fe.Field] = fe.Rule
		assert.Equal(t, errs.LocationBody, fe.Location)
	}
	assert.Equal(t, map[string]string{
		"title":  "required",
		"genre":  "alpha",
		"rating": "numeric",
		"status": "min",
	}, rules)
}

func TestShows_MalformedBody(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/shows", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, app.store.Calls())
}

func TestShows_NonNumericIDsNeverReachTheStore(t *testing.T) {
	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/shows/abc", ""},
		{http.MethodDelete, "/shows/abc", ""},
		{http.MethodPut, "/shows/abc/rating", `{"rating":5}`},
		{http.MethodPut, "/shows/abc/update", `{"status":"Watching"}`},
		{http.MethodGet, "/users/abc", ""},
		{http.MethodGet, "/users/abc/shows", ""},
		{http.MethodPut, "/users/abc/shows/1", ""},
		{http.MethodPatch, "/users/1/shows/abc", ""},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			app := newTestApp(t)

			rec := app.do(tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Zero(t, app.store.Calls())

			body := decode[errs.HTTPError](t, rec)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, errs.LocationPath, body.Errors[0].Location)
			assert.Equal(t, "numeric", body.Errors[0].Rule)
		})
	}
}

func TestShows_UnrepresentableIDsAreNotFound(t *testing.T) {
	for _, id := range []string{"1.5", "-3", "0", strings.Repeat("9", 30)} {
		t.Run(id, func(t *testing.T) {
			app := newTestApp(t)

			rec := app.do(http.MethodGet, "/shows/"+id, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = app.do(http.MethodGet, "/users/"+id, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = app.do(http.MethodDelete, "/shows/"+id, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `0`, rec.Body.String())

			// The lookup still runs so an outage surfaces as 500.
			assert.Equal(t, 3, app.store.Calls())
		})
	}
}

func TestShows_MissingIsNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/shows/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SHOW_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	rec = app.do(http.MethodPut, "/shows/42/rating", `{"rating":5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPut, "/shows/42/update", `{"status":"Watching"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShows_ListByGenreExactMatch(t *testing.T) {
	app := newTestApp(t)
	app.store.SeedShow("The Office", "Comedy", 9, "Finished")
	app.store.SeedShow("Community", "comedy", 8, "Finished")
	app.store.SeedShow("Dark", "Mystery", 9.5, "Finished")

	rec := app.do(http.MethodGet, "/shows/genre/Comedy", "")
	require.Equal(t, http.StatusOK, rec.Code)

	shows := decode[[]model.Show](t, rec)
	require.Len(t, shows, 1)
	assert.Equal(t, "The Office", shows[0].Title)

	rec = app.do(http.MethodGet, "/shows/genre/Western", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestShows_ListByGenreValidation(t *testing.T) {
	app := newTestApp(t)

	for _, genre := range []string{"ab", "Comedy1", strings.Repeat("a", 26)} {
		rec := app.do(http.MethodGet, "/shows/genre/"+genre, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, genre)
	}
	assert.Zero(t, app.store.Calls())
}

func TestShows_List(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/shows", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	first := app.store.SeedShow("Dark", "Mystery", 9.5, "Finished")
	second := app.store.SeedShow("Fleabag", "Comedy", 9, "Finished")

	rec = app.do(http.MethodGet, "/shows", "")
	shows := decode[[]model.Show](t, rec)
	require.Len(t, shows, 2)
	assert.Equal(t, first.ID, shows[0].ID)
	assert.Equal(t, second.ID, shows[1].ID)
}

func TestShows_UpdateRatingThenRead(t *testing.T) {
	app := newTestApp(t)
	show := app.store.SeedShow("Dark", "Mystery", 7, "Watching")
	path := fmt.Sprintf("/shows/%d", show.ID)

	rec := app.do(http.MethodPut, path+"/rating", `{"rating":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 10.0, decode[model.Show](t, rec).Rating)

	rec = app.do(http.MethodGet, path, "")
	updated := decode[model.Show](t, rec)
	assert.Equal(t, 10.0, updated.Rating)
	assert.Equal(t, "Watching", updated.Status)
}

func TestShows_UpdateRatingRequiresRating(t *testing.T) {
	app := newTestApp(t)
	show := app.store.SeedShow("Dark", "Mystery", 7, "Watching")

	rec := app.do(http.MethodPut, fmt.Sprintf("/shows/%d/rating", show.ID), `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "rating", body.Errors[0].Field)
	assert.Equal(t, "required", body.Errors[0].Rule)
}

func TestShows_UpdateStatus(t *testing.T) {
	app := newTestApp(t)
	show := app.store.SeedShow("Dark", "Mystery", 7, "Watching")
	path := fmt.Sprintf("/shows/%d/update", show.ID)

	rec := app.do(http.MethodPut, path, `{"status":"Done"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPut, path, `{"status":"Finished"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[model.Show](t, rec)
	assert.Equal(t, "Finished", updated.Status)
	assert.Equal(t, 7.0, updated.Rating)
}

func TestShows_DeleteTwice(t *testing.T) {
	app := newTestApp(t)
	show := app.store.SeedShow("Dark", "Mystery", 7, "Watching")
	path := fmt.Sprintf("/shows/%d", show.ID)

	rec := app.do(http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `1`, rec.Body.String())

	rec = app.do(http.MethodDelete, path, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `0`, rec.Body.String())
}

func TestUsers_CreatePasswordAndUsernameRules(t *testing.T) {
	app := newTestApp(t)
	username := gofakeit.Email()

	rec := app.do(http.MethodPost, "/users", fmt.Sprintf(`{"username":%q,"password":"12345"}`, username))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password", decode[errs.HTTPError](t, rec).Errors[0].Field)

	rec = app.do(http.MethodPost, "/users", `{"username":"not-an-email","password":"123456"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decode[errs.HTTPError](t, rec).Errors[0].Rule)
	assert.Zero(t, app.store.Calls())

	rec = app.do(http.MethodPost, "/users", fmt.Sprintf(`{"username":%q,"password":"123456"}`, username))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.NotContains(t, rec.Body.String(), "password")
	user := decode[model.User](t, rec)
	assert.Equal(t, username, user.Username)

	rec = app.do(http.MethodGet, fmt.Sprintf("/users/%d", user.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, username, decode[model.User](t, rec).Username)
}

func TestUsers_GetMissingIsNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/users/7", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	rec = app.do(http.MethodGet, "/users/7/shows", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsers_Memberships(t *testing.T) {
	app := newTestApp(t)
	u1 := app.store.SeedUser(gofakeit.Email(), "hash")
	u2 := app.store.SeedUser(gofakeit.Email(), "hash")
	show := app.store.SeedShow("Dark", "Mystery", 9, "Watching")

	add := func(userID int64) *httptest.ResponseRecorder {
		return app.do(http.MethodPut, fmt.Sprintf("/users/%d/shows/%d", userID, show.ID), "")
	}

	rec := add(u1.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	require.Equal(t, http.StatusOK, add(u1.ID).Code)
	require.Equal(t, http.StatusOK, add(u2.ID).Code)

	rec = app.do(http.MethodGet, fmt.Sprintf("/users/%d/shows", u1.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	shows := decode[[]model.Show](t, rec)
	require.Len(t, shows, 1)
	assert.Equal(t, show.ID, shows[0].ID)

	rec = app.do(http.MethodPatch, fmt.Sprintf("/users/%d/shows/%d", u1.ID, show.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, app.store.HasMembership(u1.ID, show.ID))
	assert.True(t, app.store.HasMembership(u2.ID, show.ID))

	rec = app.do(http.MethodPatch, fmt.Sprintf("/users/%d/shows/%d", u1.ID, show.ID), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SHOW_USER_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
}

func TestUsers_MembershipRequiresBothEntities(t *testing.T) {
	app := newTestApp(t)
	user := app.store.SeedUser(gofakeit.Email(), "hash")
	show := app.store.SeedShow("Dark", "Mystery", 9, "Watching")

	rec := app.do(http.MethodPut, fmt.Sprintf("/users/%d/shows/%d", user.ID, show.ID+1), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SHOW_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	rec = app.do(http.MethodPut, fmt.Sprintf("/users/%d/shows/%d", user.ID+1, show.ID), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	assert.False(t, app.store.HasMembership(user.ID, show.ID+1))
}

func TestStoreUnavailable_EveryOperationIs500(t *testing.T) {
	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/shows", ""},
		{http.MethodGet, "/shows/1", ""},
		{http.MethodGet, "/shows/genre/Comedy", ""},
		{http.MethodPut, "/shows/1/rating", `{"rating":10}`},
		{http.MethodPut, "/shows/1/update", `{"status":"Finished"}`},
		{http.MethodDelete, "/shows/1", ""},
		{http.MethodPost, "/shows", showBody("Dark", "Mystery", "9", "Watching")},
		{http.MethodGet, "/users", ""},
		{http.MethodGet, "/users/1", ""},
		{http.MethodGet, "/users/1/shows", ""},
		{http.MethodPut, "/users/1/shows/1", ""},
		{http.MethodPatch, "/users/1/shows/1", ""},
		{http.MethodPost, "/users", `{"username":"a@b.co","password":"123456"}`},
		{http.MethodGet, "/shows/1.5", ""},
		{http.MethodDelete, "/shows/1.5", ""},
		{http.MethodPut, "/shows/0/rating", `{"rating":10}`},
		{http.MethodGet, "/users/-3", ""},
		{http.MethodGet, "/users/0/shows", ""},
		{http.MethodPut, "/users/-3/shows/1", ""},
		{http.MethodPatch, "/users/1/shows/1.5", ""},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			app := newTestApp(t)
			app.store.SeedShow("Dark", "Mystery", 9, "Watching")
			app.store.SeedUser("a@b.co", "hash")
			app.store.SetFail(true)

			rec := app.do(tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
			assert.Equal(t, "INTERNAL_SERVER_ERROR", decode[errs.HTTPError](t, rec).Code)
			assert.NotContains(t, rec.Body.String(), "store unavailable")
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/movies", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)

	app.do(http.MethodGet, "/shows", "")

	rec := app.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `showtracker_http_requests_total{method="GET",route="/shows",status="200"} 1`)
}
