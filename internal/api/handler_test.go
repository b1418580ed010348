package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yakoovad/mergington-activities/internal/model"
	"github.com/yakoovad/mergington-activities/internal/repository"
	"github.com/yakoovad/mergington-activities/internal/service"
	"go.uber.org/zap"
)

func newTestServer() *echo.Echo {
	repo := repository.NewMemoryActivityRepository(repository.DefaultActivities())
	activities := service.NewActivityService().WithActivityRepo(repo)

	e := echo.New()
	NewHandler(zap.NewNop()).WithActivityService(activities).RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func decodeDirectory(t *testing.T, rec *httptest.ResponseRecorder) model.Directory {
	t.Helper()
	var directory model.Directory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &directory))
	return directory
}

func TestListActivities(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	directory := decodeDirectory(t, rec)
	assert.Contains(t, directory, "Chess Club")
	assert.Contains(t, directory, "Basketball Team")
	assert.Contains(t, directory, "Soccer Club")

	for name, activity := range directory {
		assert.NotEmpty(t, activity.Description, name)
		assert.NotEmpty(t, activity.Schedule, name)
		assert.Positive(t, activity.MaxParticipants, name)
		assert.NotNil(t, activity.Participants, name)
	}

	chess := directory["Chess Club"]
	require.Len(t, chess.Participants, 2)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)
}

func TestSignupSuccess(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodPost,
		"/activities/Basketball%20Team/signup?email=student@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Signed up student@mergington.edu for Basketball Team", decodeMessage(t, rec))

	rec = doRequest(e, http.MethodGet, "/activities")
	directory := decodeDirectory(t, rec)
	assert.Contains(t, directory["Basketball Team"].Participants, "student@mergington.edu")
}

func TestSignupUnknownActivity(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodPost,
		"/activities/Nonexistent%20Club/signup?email=x@mergington.edu")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found", decodeDetail(t, rec))
}

func TestSignupDuplicate(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodPost,
		"/activities/Chess%20Club/signup?email=michael@mergington.edu")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "already signed up")

	rec = doRequest(e, http.MethodGet, "/activities")
	directory := decodeDirectory(t, rec)
	assert.Len(t, directory["Chess Club"].Participants, 2, "failed signup must not mutate the roster")
}

func TestSignupMissingEmail(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/activities/Chess%20Club/signup")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeDetail(t, rec))
}

func TestUnregisterSuccess(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodPost,
		"/activities/Chess%20Club/unregister?email=michael@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", decodeMessage(t, rec))

	rec = doRequest(e, http.MethodGet, "/activities")
	directory := decodeDirectory(t, rec)
	assert.Equal(t, []string{"daniel@mergington.edu"}, directory["Chess Club"].Participants)
}

func TestUnregisterNotRegistered(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodPost,
		"/activities/Basketball%20Team/unregister?email=notregistered@mergington.edu")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "not registered")
}

func TestUnregisterUnknownActivity(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodPost,
		"/activities/Fake%20Club/unregister?email=student@mergington.edu")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found", decodeDetail(t, rec))
}

func TestSignupUnregisterCycle(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodPost,
		"/activities/Drama%20Club/signup?email=integration@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/activities")
	assert.Contains(t, decodeDirectory(t, rec)["Drama Club"].Participants, "integration@mergington.edu")

	rec = doRequest(e, http.MethodPost,
		"/activities/Drama%20Club/unregister?email=integration@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/activities")
	assert.NotContains(t, decodeDirectory(t, rec)["Drama Club"].Participants, "integration@mergington.edu")
}

func TestUnregisterMiddleParticipant(t *testing.T) {
	e := newTestServer()

	students := []string{
		"debater1@mergington.edu",
		"debater2@mergington.edu",
		"debater3@mergington.edu",
	}
	for _, email := range students {
		rec := doRequest(e, http.MethodPost, "/activities/Debate%20Team/signup?email="+email)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(e, http.MethodPost,
		"/activities/Debate%20Team/unregister?email=debater2@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/activities")
	participants := decodeDirectory(t, rec)["Debate Team"].Participants
	assert.Equal(t, []string{"debater1@mergington.edu", "debater3@mergington.edu"}, participants)
}

func TestListIsReadOnly(t *testing.T) {
	e := newTestServer()

	before := decodeDirectory(t, doRequest(e, http.MethodGet, "/activities"))

	// A failed signup and a failed unregister must leave the directory as-is.
	doRequest(e, http.MethodPost, "/activities/Chess%20Club/signup?email=michael@mergington.edu")
	doRequest(e, http.MethodPost, "/activities/Soccer%20Club/unregister?email=ghost@mergington.edu")

	after := decodeDirectory(t, doRequest(e, http.MethodGet, "/activities"))
	assert.Equal(t, before, after)
}
