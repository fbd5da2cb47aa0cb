package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"contacthub-backend/internal/api/handlers"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/mocks"
	"contacthub-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockUserSv *mocks.MockUserServiceInterface
	handler    *handlers.UserHandler
	router     *gin.Engine

	userID uuid.UUID
}

func (suite *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserSv = mocks.NewMockUserServiceInterface(suite.ctrl)
	suite.handler = handlers.NewUserHandler(suite.mockUserSv)

	suite.userID = uuid.New()

	suite.router = gin.New()
	suite.router.POST("/auth/register", suite.handler.Register)
	suite.router.POST("/auth/login", suite.handler.Login)
	suite.router.GET("/me", func(c *gin.Context) {
		c.Set("user_id", suite.userID)
		suite.handler.Me(c)
	})
}

func (suite *UserHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UserHandlerTestSuite) doJSON(method, url string, body interface{}) *httptest.ResponseRecorder {
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

func (suite *UserHandlerTestSuite) TestRegister_Success() {
	suite.mockUserSv.EXPECT().
		Register(gomock.Any()).
		DoAndReturn(func(req *service.RegisterUserRequest) (*service.AuthResponse, error) {
			assert.Equal(suite.T(), "jane@example.com", req.Email)
			return &service.AuthResponse{
				AccessToken: "token-abc",
				TokenType:   "Bearer",
				User: service.UserResponse{
					ID:       suite.userID,
					Email:    req.Email,
					FullName: req.FullName,
				},
			}, nil
		})

	w := suite.doJSON(http.MethodPost, "/auth/register", map[string]string{
		"email":     "jane@example.com",
		"full_name": "Jane Smith",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var got service.AuthResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), "token-abc", got.AccessToken)
	assert.Equal(suite.T(), "Bearer", got.TokenType)
}

func (suite *UserHandlerTestSuite) TestRegister_EmailTaken() {
	suite.mockUserSv.EXPECT().
		Register(gomock.Any()).
		Return(nil, apperrors.ErrUserExists)

	w := suite.doJSON(http.MethodPost, "/auth/register", map[string]string{
		"email":     "taken@example.com",
		"full_name": "Jane Smith",
	})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *UserHandlerTestSuite) TestRegister_InvalidEmail() {
	suite.mockUserSv.EXPECT().
		Register(gomock.Any()).
		Return(nil, apperrors.NewValidationError("email", "must be a valid email address"))

	w := suite.doJSON(http.MethodPost, "/auth/register", map[string]string{
		"email":     "not-an-email",
		"full_name": "Jane Smith",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *UserHandlerTestSuite) TestLogin_Success() {
	suite.mockUserSv.EXPECT().
		Login(gomock.Any()).
		Return(&service.AuthResponse{
			AccessToken: "token-abc",
			TokenType:   "Bearer",
			User:        service.UserResponse{ID: suite.userID, Email: "jane@example.com"},
		}, nil)

	w := suite.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email": "jane@example.com",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *UserHandlerTestSuite) TestLogin_UnknownEmail() {
	suite.mockUserSv.EXPECT().
		Login(gomock.Any()).
		Return(nil, apperrors.ErrUserNotFound)

	w := suite.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email": "nobody@example.com",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *UserHandlerTestSuite) TestLogin_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *UserHandlerTestSuite) TestMe_Success() {
	suite.mockUserSv.EXPECT().
		GetByID(suite.userID).
		Return(&service.UserResponse{
			ID:       suite.userID,
			Email:    "jane@example.com",
			FullName: "Jane Smith",
		}, nil)

	w := suite.doJSON(http.MethodGet, "/me", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got service.UserResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), suite.userID, got.ID)
}

func (suite *UserHandlerTestSuite) TestMe_Unauthenticated() {
	router := gin.New()
	router.GET("/me", suite.handler.Me)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
