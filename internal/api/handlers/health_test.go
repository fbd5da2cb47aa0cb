//go:build integration
// +build integration

package handlers_test

import (
	"net/http"
	"testing"

	"contacthub-backend/internal/api/handlers"
	"contacthub-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// HealthHandlerTestSuite tests the health endpoints against a real database
type HealthHandlerTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	httpSuite     *testutils.HTTPTestSuite
}

// SetupSuite runs before all tests in the suite
func (suite *HealthHandlerTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	handler := handlers.NewHealthHandler(suite.baseTestSuite.DB)
	suite.httpSuite = testutils.SetupHTTPTest()
	suite.httpSuite.Router.GET("/health", handler.Health)
	suite.httpSuite.Router.GET("/health/ready", handler.Ready)
	suite.httpSuite.Router.GET("/health/live", handler.Live)
}

// TearDownSuite runs after all tests in the suite
func (suite *HealthHandlerTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// TestHealth tests the overall health endpoint
func (suite *HealthHandlerTestSuite) TestHealth() {
	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/health", nil)

	var response handlers.HealthResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)

	assert.Equal(suite.T(), "healthy", response.Status)
	assert.Equal(suite.T(), "healthy", response.Services["database"])
}

// TestReady tests the readiness endpoint
func (suite *HealthHandlerTestSuite) TestReady() {
	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/health/ready", nil)

	var response map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)

	assert.Equal(suite.T(), true, response["ready"])
}

// TestLive tests the liveness endpoint
func (suite *HealthHandlerTestSuite) TestLive() {
	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/health/live", nil)

	var response map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)

	assert.Equal(suite.T(), true, response["alive"])
}

// TestHealthHandlerTestSuite runs the test suite
func TestHealthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HealthHandlerTestSuite))
}
