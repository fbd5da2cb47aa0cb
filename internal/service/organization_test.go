package service_test

import (
	"context"
	"testing"

	"contacthub-backend/internal/database/models"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/mocks"
	"contacthub-backend/internal/service"
	"contacthub-backend/internal/tenant"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type OrganizationServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockRepo       *mocks.MockOrganizationRepositoryInterface
	mockMembership *mocks.MockMembershipRepositoryInterface
	sessions       *tenant.MemoryStore
	orgService     *service.OrganizationService
	validator      *validator.Validate

	userID     uuid.UUID
	sessionKey string
}

func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockMembership = mocks.NewMockMembershipRepositoryInterface(suite.ctrl)
	suite.sessions = tenant.NewMemoryStore()
	suite.validator = validator.New()

	resolver := tenant.NewResolver(suite.sessions, suite.mockMembership)
	suite.orgService = service.NewOrganizationService(
		suite.mockRepo, suite.mockMembership, resolver, suite.validator,
	)

	suite.userID = uuid.New()
	suite.sessionKey = suite.userID.String()
}

func (suite *OrganizationServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *OrganizationServiceTestSuite) TestCreate_Success() {
	orgID := uuid.New()

	suite.mockRepo.EXPECT().GetBySlug("acme-inc").Return(nil, gorm.ErrRecordNotFound)
	suite.mockRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(org *models.Organization) error {
			org.ID = orgID
			return nil
		})
	suite.mockMembership.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(m *models.Membership) error {
			assert.Equal(suite.T(), orgID, m.OrganizationID)
			assert.Equal(suite.T(), suite.userID, m.UserID)
			assert.Equal(suite.T(), models.MembershipRoleAdmin, m.Role)
			return nil
		})

	resp, err := suite.orgService.Create(context.Background(), suite.sessionKey, suite.userID, &service.CreateOrganizationRequest{
		Name: "Acme Inc",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme Inc", resp.Name)
	assert.Equal(suite.T(), "acme-inc", resp.Slug)
	assert.Equal(suite.T(), suite.userID, resp.OwnerUserID)

	// Creating switches the session's current organization
	current, ok, err := suite.sessions.Get(context.Background(), suite.sessionKey)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), orgID, current)
}

func (suite *OrganizationServiceTestSuite) TestCreate_SlugCollisionGetsSuffix() {
	taken := &models.Organization{BaseModel: models.BaseModel{ID: uuid.New()}, Slug: "acme"}

	suite.mockRepo.EXPECT().GetBySlug("acme").Return(taken, nil)
	suite.mockRepo.EXPECT().GetBySlug("acme-2").Return(nil, gorm.ErrRecordNotFound)
	suite.mockRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockMembership.EXPECT().Create(gomock.Any()).Return(nil)

	resp, err := suite.orgService.Create(context.Background(), suite.sessionKey, suite.userID, &service.CreateOrganizationRequest{
		Name: "Acme",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "acme-2", resp.Slug)
}

func (suite *OrganizationServiceTestSuite) TestCreate_EmptyNameRejected() {
	resp, err := suite.orgService.Create(context.Background(), suite.sessionKey, suite.userID, &service.CreateOrganizationRequest{
		Name: "",
	})

	assert.Nil(suite.T(), resp)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *OrganizationServiceTestSuite) TestGetByID_Success() {
	orgID := uuid.New()

	suite.mockMembership.EXPECT().Exists(orgID, suite.userID).Return(true, nil)
	suite.mockRepo.EXPECT().GetByID(orgID).Return(&models.Organization{
		BaseModel: models.BaseModel{ID: orgID},
		Name:      "Acme",
		Slug:      "acme",
	}, nil)

	resp, err := suite.orgService.GetByID(orgID, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme", resp.Name)
}

func (suite *OrganizationServiceTestSuite) TestGetByID_NonMemberSeesNotFound() {
	orgID := uuid.New()

	suite.mockMembership.EXPECT().Exists(orgID, suite.userID).Return(false, nil)

	resp, err := suite.orgService.GetByID(orgID, suite.userID)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOrganizationNotFound)
}

func (suite *OrganizationServiceTestSuite) TestListForUser_Success() {
	suite.mockMembership.EXPECT().
		ListOrganizationsForUser(suite.userID).
		Return([]models.Organization{
			{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "First", Slug: "first"},
			{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Second", Slug: "second"},
		}, nil)

	resp, err := suite.orgService.ListForUser(suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp, 2)
	assert.Equal(suite.T(), "First", resp[0].Name)
}

func (suite *OrganizationServiceTestSuite) TestSwitch_Success() {
	orgID := uuid.New()

	suite.mockMembership.EXPECT().Exists(orgID, suite.userID).Return(true, nil)
	suite.mockRepo.EXPECT().GetByID(orgID).Return(&models.Organization{
		BaseModel: models.BaseModel{ID: orgID},
		Name:      "Target",
		Slug:      "target",
	}, nil)

	resp, err := suite.orgService.Switch(context.Background(), suite.sessionKey, suite.userID, orgID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), orgID, resp.ID)

	current, ok, err := suite.sessions.Get(context.Background(), suite.sessionKey)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), orgID, current)
}

func (suite *OrganizationServiceTestSuite) TestSwitch_NonMemberRejected() {
	orgID := uuid.New()

	suite.mockMembership.EXPECT().Exists(orgID, suite.userID).Return(false, nil)

	resp, err := suite.orgService.Switch(context.Background(), suite.sessionKey, suite.userID, orgID)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotOrganizationMember)

	// The session is left untouched
	_, ok, err := suite.sessions.Get(context.Background(), suite.sessionKey)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
