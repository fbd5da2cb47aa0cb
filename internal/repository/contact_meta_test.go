//go:build integration
// +build integration

package repository

import (
	"testing"

	"contacthub-backend/internal/database/models"
	"contacthub-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ContactMetaRepositoryTestSuite tests the ContactMetaRepository
type ContactMetaRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ContactMetaRepository
	factories     *testutils.FactorySet

	org     *models.Organization
	contact *models.Contact
}

// SetupSuite runs before all tests in the suite
func (suite *ContactMetaRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewContactMetaRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *ContactMetaRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest seeds a fresh organization and contact before each test
func (suite *ContactMetaRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	user := suite.factories.User.Create()
	suite.NoError(NewUserRepository(suite.baseTestSuite.DB).Create(user))

	suite.org = suite.factories.Organization.WithOwner(user.ID)
	suite.NoError(NewOrganizationRepository(suite.baseTestSuite.DB).Create(suite.org))

	suite.contact = suite.factories.Contact.WithOrganization(suite.org.ID)
	suite.NoError(NewContactRepository(suite.baseTestSuite.DB).Create(suite.contact))
}

// TearDownTest runs after each test
func (suite *ContactMetaRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a meta entry
func (suite *ContactMetaRepositoryTestSuite) TestCreate() {
	meta := suite.factories.ContactMeta.ForContact(suite.contact.ID)
	err := suite.repo.Create(meta)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, meta.ID)
}

// TestListByContactOrderedByKey tests key ordering
func (suite *ContactMetaRepositoryTestSuite) TestListByContactOrderedByKey() {
	for _, key := range []string{"website", "company", "role"} {
		meta := suite.factories.ContactMeta.ForContact(suite.contact.ID)
		meta.Key = key
		suite.NoError(suite.repo.Create(meta))
	}

	entries, err := suite.repo.ListByContact(suite.contact.ID)

	suite.NoError(err)
	suite.Len(entries, 3)
	suite.Equal("company", entries[0].Key)
	suite.Equal("role", entries[1].Key)
	suite.Equal("website", entries[2].Key)
}

// TestCountByContact tests the per-contact count used for the meta cap
func (suite *ContactMetaRepositoryTestSuite) TestCountByContact() {
	count, err := suite.repo.CountByContact(suite.contact.ID)
	suite.NoError(err)
	suite.Equal(int64(0), count)

	suite.NoError(suite.repo.Create(suite.factories.ContactMeta.ForContact(suite.contact.ID)))
	second := suite.factories.ContactMeta.ForContact(suite.contact.ID)
	second.Key = "github"
	suite.NoError(suite.repo.Create(second))

	count, err = suite.repo.CountByContact(suite.contact.ID)
	suite.NoError(err)
	suite.Equal(int64(2), count)
}

// TestReplaceForContact tests swapping the full meta set atomically
func (suite *ContactMetaRepositoryTestSuite) TestReplaceForContact() {
	old := suite.factories.ContactMeta.ForContact(suite.contact.ID)
	old.Key = "old"
	suite.NoError(suite.repo.Create(old))

	err := suite.repo.ReplaceForContact(suite.contact.ID, []models.ContactMeta{
		{Key: "alpha", Value: "1"},
		{Key: "beta", Value: "2"},
	})
	suite.NoError(err)

	entries, err := suite.repo.ListByContact(suite.contact.ID)
	suite.NoError(err)
	suite.Len(entries, 2)
	suite.Equal("alpha", entries[0].Key)
	suite.Equal("beta", entries[1].Key)
}

// TestUpdate tests changing a value
func (suite *ContactMetaRepositoryTestSuite) TestUpdate() {
	meta := suite.factories.ContactMeta.ForContact(suite.contact.ID)
	suite.NoError(suite.repo.Create(meta))

	meta.Value = "changed"
	suite.NoError(suite.repo.Update(meta))

	retrieved, err := suite.repo.GetByID(suite.contact.ID, meta.ID)
	suite.NoError(err)
	suite.Equal("changed", retrieved.Value)
}

// TestDelete tests removing a meta entry
func (suite *ContactMetaRepositoryTestSuite) TestDelete() {
	meta := suite.factories.ContactMeta.ForContact(suite.contact.ID)
	suite.NoError(suite.repo.Create(meta))

	suite.NoError(suite.repo.Delete(suite.contact.ID, meta.ID))

	_, err := suite.repo.GetByID(suite.contact.ID, meta.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestContactMetaRepositoryTestSuite runs the test suite
func TestContactMetaRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ContactMetaRepositoryTestSuite))
}
