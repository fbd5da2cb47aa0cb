package tenant_test

import (
	"context"
	"testing"

	"contacthub-backend/internal/database/models"
	"contacthub-backend/internal/mocks"
	"contacthub-backend/internal/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type ResolverTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockMembership *mocks.MockMembershipRepositoryInterface
	sessions       *tenant.MemoryStore
	resolver       *tenant.Resolver

	userID     uuid.UUID
	sessionKey string
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockMembership = mocks.NewMockMembershipRepositoryInterface(suite.ctrl)
	suite.sessions = tenant.NewMemoryStore()
	suite.resolver = tenant.NewResolver(suite.sessions, suite.mockMembership)

	suite.userID = uuid.New()
	suite.sessionKey = suite.userID.String()
}

func (suite *ResolverTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ResolverTestSuite) TestResolve_SessionHitSkipsMembershipLookup() {
	orgID := uuid.New()
	suite.NoError(suite.sessions.Set(context.Background(), suite.sessionKey, orgID))

	// No EXPECT on the membership mock: a warm session must not hit the table
	resolved, ok, err := suite.resolver.Resolve(context.Background(), suite.sessionKey, suite.userID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), orgID, resolved)
}

func (suite *ResolverTestSuite) TestResolve_ColdSessionDerivesFromEarliestMembership() {
	orgID := uuid.New()
	suite.mockMembership.EXPECT().
		GetFirstForUser(suite.userID).
		Return(&models.Membership{
			OrganizationID: orgID,
			UserID:         suite.userID,
			Role:           models.MembershipRoleAdmin,
		}, nil).
		Times(1)

	// First call derives and caches
	resolved, ok, err := suite.resolver.Resolve(context.Background(), suite.sessionKey, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), orgID, resolved)

	// Second call is served from the session without another lookup
	resolved, ok, err = suite.resolver.Resolve(context.Background(), suite.sessionKey, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), orgID, resolved)
}

func (suite *ResolverTestSuite) TestResolve_NoMembershipsMeansNoOrganization() {
	suite.mockMembership.EXPECT().
		GetFirstForUser(suite.userID).
		Return(nil, gorm.ErrRecordNotFound)

	resolved, ok, err := suite.resolver.Resolve(context.Background(), suite.sessionKey, suite.userID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), uuid.Nil, resolved)
}

func (suite *ResolverTestSuite) TestResolve_NilUserWithColdSession() {
	resolved, ok, err := suite.resolver.Resolve(context.Background(), "anonymous", uuid.Nil)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), uuid.Nil, resolved)
}

func (suite *ResolverTestSuite) TestSet_OverwritesCurrentOrganization() {
	first := uuid.New()
	second := uuid.New()

	suite.NoError(suite.resolver.Set(context.Background(), suite.sessionKey, first))
	suite.NoError(suite.resolver.Set(context.Background(), suite.sessionKey, second))

	resolved, ok, err := suite.resolver.Resolve(context.Background(), suite.sessionKey, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), second, resolved)
}

func (suite *ResolverTestSuite) TestClear_ForcesRederivation() {
	cached := uuid.New()
	derived := uuid.New()

	suite.NoError(suite.resolver.Set(context.Background(), suite.sessionKey, cached))
	suite.NoError(suite.resolver.Clear(context.Background(), suite.sessionKey))

	suite.mockMembership.EXPECT().
		GetFirstForUser(suite.userID).
		Return(&models.Membership{OrganizationID: derived, UserID: suite.userID}, nil)

	resolved, ok, err := suite.resolver.Resolve(context.Background(), suite.sessionKey, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), derived, resolved)
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
