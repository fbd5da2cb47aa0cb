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

// ContactNoteHandlerTestSuite defines the test suite for ContactNoteHandler
type ContactNoteHandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockNoteSv *mocks.MockContactNoteServiceInterface
	handler    *handlers.ContactNoteHandler
	router     *gin.Engine

	orgID     uuid.UUID
	userID    uuid.UUID
	contactID uuid.UUID
}

func (suite *ContactNoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockNoteSv = mocks.NewMockContactNoteServiceInterface(suite.ctrl)
	suite.handler = handlers.NewContactNoteHandler(suite.mockNoteSv)

	suite.orgID = uuid.New()
	suite.userID = uuid.New()
	suite.contactID = uuid.New()

	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set("user_id", suite.userID)
		c.Set("organization_id", suite.orgID)
		c.Next()
	})
	suite.router.GET("/contacts/:id/notes", suite.handler.ListNotes)
	suite.router.POST("/contacts/:id/notes", suite.handler.CreateNote)
	suite.router.PUT("/contacts/:id/notes/:noteId", suite.handler.UpdateNote)
	suite.router.DELETE("/contacts/:id/notes/:noteId", suite.handler.DeleteNote)
}

func (suite *ContactNoteHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ContactNoteHandlerTestSuite) doJSON(method, url string, body interface{}) *httptest.ResponseRecorder {
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

func (suite *ContactNoteHandlerTestSuite) TestListNotes_Success() {
	suite.mockNoteSv.EXPECT().
		List(suite.orgID, suite.userID, suite.contactID).
		Return([]service.ContactNoteResponse{
			{ID: uuid.New(), ContactID: suite.contactID, UserID: suite.userID, AuthorName: "Jane Smith", Body: "hello"},
		}, nil)

	w := suite.doJSON(http.MethodGet, "/contacts/"+suite.contactID.String()+"/notes", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got []service.ContactNoteResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(suite.T(), got, 1)
	assert.Equal(suite.T(), "Jane Smith", got[0].AuthorName)
}

func (suite *ContactNoteHandlerTestSuite) TestCreateNote_Success() {
	suite.mockNoteSv.EXPECT().
		Create(suite.orgID, suite.userID, suite.contactID, gomock.Any()).
		Return(&service.ContactNoteResponse{
			ID:        uuid.New(),
			ContactID: suite.contactID,
			UserID:    suite.userID,
			Body:      "first call went well",
		}, nil)

	w := suite.doJSON(http.MethodPost, "/contacts/"+suite.contactID.String()+"/notes", map[string]string{
		"body": "first call went well",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

func (suite *ContactNoteHandlerTestSuite) TestCreateNote_ContactNotFound() {
	suite.mockNoteSv.EXPECT().
		Create(suite.orgID, suite.userID, suite.contactID, gomock.Any()).
		Return(nil, apperrors.ErrContactNotFound)

	w := suite.doJSON(http.MethodPost, "/contacts/"+suite.contactID.String()+"/notes", map[string]string{
		"body": "orphan",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ContactNoteHandlerTestSuite) TestUpdateNote_NonAuthorForbidden() {
	noteID := uuid.New()
	suite.mockNoteSv.EXPECT().
		Update(suite.orgID, suite.userID, suite.contactID, noteID, gomock.Any()).
		Return(nil, apperrors.ErrNotNoteAuthor)

	w := suite.doJSON(http.MethodPut, "/contacts/"+suite.contactID.String()+"/notes/"+noteID.String(), map[string]string{
		"body": "hijack attempt",
	})

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ContactNoteHandlerTestSuite) TestDeleteNote_Success() {
	noteID := uuid.New()
	suite.mockNoteSv.EXPECT().
		Delete(suite.orgID, suite.userID, suite.contactID, noteID).
		Return(nil)

	w := suite.doJSON(http.MethodDelete, "/contacts/"+suite.contactID.String()+"/notes/"+noteID.String(), nil)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
}

func (suite *ContactNoteHandlerTestSuite) TestDeleteNote_InvalidNoteID() {
	w := suite.doJSON(http.MethodDelete, "/contacts/"+suite.contactID.String()+"/notes/bad-id", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestContactNoteHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ContactNoteHandlerTestSuite))
}
