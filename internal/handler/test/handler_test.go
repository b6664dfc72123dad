package test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"redsocial/internal/config"
	handlers "redsocial/internal/handler"
)

type testMocks struct {
	Auth    *MockAuthService
	Post    *MockPostService
	Profile *MockProfileService
}

func createTestHandler() (*handlers.Handlers, *testMocks) {
	mocks := &testMocks{
		Auth:    new(MockAuthService),
		Post:    new(MockPostService),
		Profile: new(MockProfileService),
	}

	cfg := &config.Config{
		JWTSecretKey:  "test-secret-key",
		ServerPort:    8080,
		MaxUploadSize: 10 * 1024 * 1024,
	}

	return &handlers.Handlers{
		AuthService:    mocks.Auth,
		PostService:    mocks.Post,
		ProfileService: mocks.Profile,
		Cfg:            cfg,
		Validate:       validator.New(),
	}, mocks
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["message"], expectedMessage)
}

// assertJSONMessage checks a successful message response
func assertJSONMessage(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	assert.Equal(t, expectedStatus, rr.Code)

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, expectedMessage, response["message"])
}
