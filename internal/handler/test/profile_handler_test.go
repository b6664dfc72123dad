package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "redsocial/internal/handler"
	"redsocial/internal/models"
	"redsocial/internal/repository"
)

func withUsername(req *http.Request, username string) *http.Request {
	return mux.SetURLVars(req, map[string]string{"username": username})
}

func TestGetProfileHandler_Success(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.Profile.On("GetProfile", mock.Anything, "ana").Return(&models.Profile{
		Username: "ana",
		Bio:      "hi there",
		Language: "es",
		Posts:    3,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/ana", nil)
	rr := httptest.NewRecorder()

	handler.GetProfile(rr, withUsername(req, "ana"))

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "ana", response["username"])
	assert.Equal(t, "hi there", response["bio"])
	assert.Equal(t, float64(3), response["posts"])
}

func TestGetProfileHandler_NotFound(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.Profile.On("GetProfile", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/ghost", nil)
	rr := httptest.NewRecorder()

	handler.GetProfile(rr, withUsername(req, "ghost"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateProfileHandler_PartialUpdate(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.Profile.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(req repository.UpdateProfileRequest) bool {
		return req.Username == "ana" && req.Bio != nil && *req.Bio == "new bio" && req.Language == nil
	}), mock.Anything).Return(nil)

	req := postJSON(t, "/api/profile/ana", map[string]string{"bio": "new bio"})
	req.Method = http.MethodPut
	rr := httptest.NewRecorder()

	handler.UpdateProfile(rr, withUsername(req, "ana"))

	assertJSONMessage(t, rr, http.StatusOK, "profile updated")
	mocks.Profile.AssertExpectations(t)
}

func TestUpdateProfileHandler_NotFound(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.Profile.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrNotFound)

	req := postJSON(t, "/api/profile/ghost", map[string]string{"bio": "x"})
	req.Method = http.MethodPut
	rr := httptest.NewRecorder()

	handler.UpdateProfile(rr, withUsername(req, "ghost"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateProfileHandler_TokenMismatch(t *testing.T) {
	handler, mocks := createTestHandler()

	req := postJSON(t, "/api/profile/ana", map[string]string{"bio": "x"})
	req.Method = http.MethodPut
	req = req.WithContext(context.WithValue(req.Context(), handlers.ContextUsername, "bob"))
	rr := httptest.NewRecorder()

	handler.UpdateProfile(rr, withUsername(req, "ana"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	mocks.Profile.AssertNotCalled(t, "UpdateProfile")
}
