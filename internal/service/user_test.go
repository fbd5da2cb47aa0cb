package service_test

import (
	"testing"

	"contacthub-backend/internal/auth"
	"contacthub-backend/internal/database/models"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/mocks"
	"contacthub-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockRepo    *mocks.MockUserRepositoryInterface
	authService *auth.Service
	userService *service.UserService
	validator   *validator.Validate
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.authService = auth.NewService("test-secret")
	suite.validator = validator.New()
	suite.userService = service.NewUserService(suite.mockRepo, suite.authService, suite.validator)
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UserServiceTestSuite) TestRegister_Success() {
	suite.mockRepo.EXPECT().
		GetByEmail("jane@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	suite.mockRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(user *models.User) error {
			user.ID = uuid.New()
			return nil
		})

	resp, err := suite.userService.Register(&service.RegisterUserRequest{
		Email:    "jane@example.com",
		FullName: "Jane Smith",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)
	assert.NotEmpty(suite.T(), resp.AccessToken)
	assert.Equal(suite.T(), "jane@example.com", resp.User.Email)

	// The token round-trips through the validator
	claims, err := suite.authService.ValidateToken(resp.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), resp.User.ID, claims.UserID)
	assert.Equal(suite.T(), "jane@example.com", claims.Email)
}

func (suite *UserServiceTestSuite) TestRegister_EmailTaken() {
	suite.mockRepo.EXPECT().
		GetByEmail("taken@example.com").
		Return(&models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "taken@example.com"}, nil)

	resp, err := suite.userService.Register(&service.RegisterUserRequest{
		Email:    "taken@example.com",
		FullName: "Jane Smith",
	})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

func (suite *UserServiceTestSuite) TestRegister_InvalidEmail() {
	resp, err := suite.userService.Register(&service.RegisterUserRequest{
		Email:    "not-an-email",
		FullName: "Jane Smith",
	})

	assert.Nil(suite.T(), resp)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	userID := uuid.New()
	suite.mockRepo.EXPECT().
		GetByEmail("jane@example.com").
		Return(&models.User{
			BaseModel: models.BaseModel{ID: userID},
			Email:     "jane@example.com",
			FullName:  "Jane Smith",
		}, nil)

	resp, err := suite.userService.Login(&service.LoginRequest{Email: "jane@example.com"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), userID, resp.User.ID)
	assert.NotEmpty(suite.T(), resp.AccessToken)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmail() {
	suite.mockRepo.EXPECT().
		GetByEmail("missing@example.com").
		Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.userService.Login(&service.LoginRequest{Email: "missing@example.com"})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserNotFound)
}

func (suite *UserServiceTestSuite) TestGetByID_Success() {
	userID := uuid.New()
	suite.mockRepo.EXPECT().
		GetByID(userID).
		Return(&models.User{
			BaseModel: models.BaseModel{ID: userID},
			Email:     "jane@example.com",
			FullName:  "Jane Smith",
		}, nil)

	resp, err := suite.userService.GetByID(userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Jane Smith", resp.FullName)
}

func (suite *UserServiceTestSuite) TestGetByID_NotFound() {
	userID := uuid.New()
	suite.mockRepo.EXPECT().GetByID(userID).Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.userService.GetByID(userID)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
