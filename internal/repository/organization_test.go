//go:build integration
// +build integration

package repository

import (
	"testing"

	"contacthub-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OrganizationRepositoryTestSuite tests the OrganizationRepository
type OrganizationRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *OrganizationRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *OrganizationRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewOrganizationRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *OrganizationRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *OrganizationRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *OrganizationRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new organization
func (suite *OrganizationRepositoryTestSuite) TestCreate() {
	org := suite.factories.Organization.Create()
	err := suite.repo.Create(org)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, org.ID)
	suite.NotZero(org.CreatedAt)
}

// TestCreateDuplicateSlug tests the unique slug constraint
func (suite *OrganizationRepositoryTestSuite) TestCreateDuplicateSlug() {
	first := suite.factories.Organization.Create()
	first.Slug = "acme"
	suite.NoError(suite.repo.Create(first))

	second := suite.factories.Organization.Create()
	second.Slug = "acme"
	err := suite.repo.Create(second)

	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestGetByID tests retrieving an organization by ID
func (suite *OrganizationRepositoryTestSuite) TestGetByID() {
	org := suite.factories.Organization.Create()
	suite.NoError(suite.repo.Create(org))

	retrieved, err := suite.repo.GetByID(org.ID)

	suite.NoError(err)
	suite.Equal(org.Name, retrieved.Name)
	suite.Equal(org.Slug, retrieved.Slug)
	suite.Equal(org.OwnerUserID, retrieved.OwnerUserID)
}

// TestGetByIDNotFound tests retrieving a non-existent organization
func (suite *OrganizationRepositoryTestSuite) TestGetByIDNotFound() {
	retrieved, err := suite.repo.GetByID(uuid.New())

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(retrieved)
}

// TestGetBySlug tests the slug lookup used for uniqueness probing
func (suite *OrganizationRepositoryTestSuite) TestGetBySlug() {
	org := suite.factories.Organization.Create()
	org.Slug = "unique-slug"
	suite.NoError(suite.repo.Create(org))

	retrieved, err := suite.repo.GetBySlug("unique-slug")
	suite.NoError(err)
	suite.Equal(org.ID, retrieved.ID)

	_, err = suite.repo.GetBySlug("missing-slug")
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestUpdate tests renaming an organization
func (suite *OrganizationRepositoryTestSuite) TestUpdate() {
	org := suite.factories.Organization.Create()
	suite.NoError(suite.repo.Create(org))

	org.Name = "Renamed Org"
	suite.NoError(suite.repo.Update(org))

	retrieved, err := suite.repo.GetByID(org.ID)
	suite.NoError(err)
	suite.Equal("Renamed Org", retrieved.Name)
}

// TestDelete tests removing an organization
func (suite *OrganizationRepositoryTestSuite) TestDelete() {
	org := suite.factories.Organization.Create()
	suite.NoError(suite.repo.Create(org))

	suite.NoError(suite.repo.Delete(org.ID))

	_, err := suite.repo.GetByID(org.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestOrganizationRepositoryTestSuite runs the test suite
func TestOrganizationRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationRepositoryTestSuite))
}
