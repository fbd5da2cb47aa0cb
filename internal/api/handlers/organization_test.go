package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"contacthub-backend/internal/api/handlers"
	"contacthub-backend/internal/api/middleware"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/mocks"
	"contacthub-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// OrganizationHandlerTestSuite defines the test suite for OrganizationHandler
type OrganizationHandlerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockOrgSv *mocks.MockOrganizationServiceInterface
	handler   *handlers.OrganizationHandler
	router    *gin.Engine

	userID uuid.UUID
}

func (suite *OrganizationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockOrgSv = mocks.NewMockOrganizationServiceInterface(suite.ctrl)
	suite.handler = handlers.NewOrganizationHandler(suite.mockOrgSv)

	suite.userID = uuid.New()

	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set("user_id", suite.userID)
		c.Next()
	})
	suite.router.GET("/organizations", suite.handler.ListOrganizations)
	suite.router.POST("/organizations", suite.handler.CreateOrganization)
	suite.router.GET("/organizations/:id", suite.handler.GetOrganization)
	suite.router.POST("/organizations/:id/switch", suite.handler.SwitchOrganization)
}

func (suite *OrganizationHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *OrganizationHandlerTestSuite) doJSON(method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrganizationHandlerTestSuite) TestCreateOrganization_Success() {
	orgID := uuid.New()
	suite.mockOrgSv.EXPECT().
		Create(gomock.Any(), middleware.SessionKey(suite.userID), suite.userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, userID uuid.UUID, req *service.CreateOrganizationRequest) (*service.OrganizationResponse, error) {
			assert.Equal(suite.T(), "Acme Inc", req.Name)
			return &service.OrganizationResponse{
				ID:          orgID,
				Name:        req.Name,
				Slug:        "acme-inc",
				OwnerUserID: userID,
			}, nil
		})

	w := suite.doJSON(http.MethodPost, "/organizations", map[string]string{"name": "Acme Inc"})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var got service.OrganizationResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), orgID, got.ID)
	assert.Equal(suite.T(), "acme-inc", got.Slug)
}

func (suite *OrganizationHandlerTestSuite) TestCreateOrganization_EmptyNameRejected() {
	suite.mockOrgSv.EXPECT().
		Create(gomock.Any(), middleware.SessionKey(suite.userID), suite.userID, gomock.Any()).
		Return(nil, apperrors.NewValidationError("name", "is required"))

	w := suite.doJSON(http.MethodPost, "/organizations", map[string]string{"name": ""})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *OrganizationHandlerTestSuite) TestListOrganizations_Success() {
	suite.mockOrgSv.EXPECT().
		ListForUser(suite.userID).
		Return([]service.OrganizationResponse{
			{ID: uuid.New(), Name: "Acme Inc", Slug: "acme-inc"},
			{ID: uuid.New(), Name: "Globex", Slug: "globex"},
		}, nil)

	w := suite.doJSON(http.MethodGet, "/organizations", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got []service.OrganizationResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(suite.T(), got, 2)
}

func (suite *OrganizationHandlerTestSuite) TestGetOrganization_NonMemberSeesNotFound() {
	orgID := uuid.New()
	suite.mockOrgSv.EXPECT().
		GetByID(orgID, suite.userID).
		Return(nil, apperrors.ErrOrganizationNotFound)

	w := suite.doJSON(http.MethodGet, "/organizations/"+orgID.String(), nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *OrganizationHandlerTestSuite) TestGetOrganization_InvalidID() {
	w := suite.doJSON(http.MethodGet, "/organizations/not-a-uuid", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *OrganizationHandlerTestSuite) TestSwitchOrganization_Success() {
	orgID := uuid.New()
	suite.mockOrgSv.EXPECT().
		Switch(gomock.Any(), middleware.SessionKey(suite.userID), suite.userID, orgID).
		Return(&service.OrganizationResponse{ID: orgID, Name: "Globex", Slug: "globex"}, nil)

	w := suite.doJSON(http.MethodPost, "/organizations/"+orgID.String()+"/switch", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got service.OrganizationResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), orgID, got.ID)
}

func (suite *OrganizationHandlerTestSuite) TestSwitchOrganization_NonMemberForbidden() {
	orgID := uuid.New()
	suite.mockOrgSv.EXPECT().
		Switch(gomock.Any(), middleware.SessionKey(suite.userID), suite.userID, orgID).
		Return(nil, apperrors.ErrNotOrganizationMember)

	w := suite.doJSON(http.MethodPost, "/organizations/"+orgID.String()+"/switch", nil)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *OrganizationHandlerTestSuite) TestCreateOrganization_Unauthenticated() {
	router := gin.New()
	router.POST("/organizations", suite.handler.CreateOrganization)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/organizations", bytes.NewBufferString(`{"name":"Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestOrganizationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationHandlerTestSuite))
}
