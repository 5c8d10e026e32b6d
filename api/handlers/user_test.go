package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/jansuraksha/jan-suraksha-api/api/handlers"
	"github.com/jansuraksha/jan-suraksha-api/databases/mocks"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

func userCreateRequest(t *testing.T, details models.UserDetails) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"name":     details.Name,
		"mobile":   details.Mobile,
		"email":    details.Email,
		"password": details.Password,
	})
	require.NoError(t, err)
	return httptest.NewRequest("POST", "/api/v1/user/create-user", bytes.NewBuffer(body))
}

func TestUserCreateHandler_BadBody(t *testing.T) {
	u := handlers.User{DB: mocks.NewUserDatabase(t)}

	req := httptest.NewRequest("POST", "/api/v1/user/create-user", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUserCreateHandler_MissingCredentials(t *testing.T) {
	u := handlers.User{DB: mocks.NewUserDatabase(t)}

	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, userCreateRequest(t, models.UserDetails{Email: "a@b.com"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "email and password are required")
}

func TestUserCreateHandler_BadMobile(t *testing.T) {
	u := handlers.User{DB: mocks.NewUserDatabase(t)}

	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, userCreateRequest(t, models.UserDetails{
		Email:    "a@b.com",
		Password: "secret",
		Mobile:   "12345",
	}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "mobile must be 10 digits")
}

func TestUserCreateHandler_DuplicateEmail(t *testing.T) {
	single := &mocks.SingleResultHelper{}
	single.On("Decode", mock.Anything).Return(nil)

	db := mocks.NewUserDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(single)

	u := handlers.User{DB: db}

	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, userCreateRequest(t, models.UserDetails{
		Email:    "taken@example.com",
		Password: "secret",
	}))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "email already exists")
}

func TestUserCreateHandler_LookupError(t *testing.T) {
	single := &mocks.SingleResultHelper{}
	single.On("Decode", mock.Anything).Return(errors.New("mocked-error"))

	db := mocks.NewUserDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(single)

	u := handlers.User{DB: db}

	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, userCreateRequest(t, models.UserDetails{
		Email:    "a@b.com",
		Password: "secret",
	}))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "something went wrong, please try again later")
}

func TestUserCreateHandler_Created(t *testing.T) {
	single := &mocks.SingleResultHelper{}
	single.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)

	db := mocks.NewUserDatabase(t)
	db.On("FindOne", mock.Anything, mock.Anything).Return(single)

	var inserted models.UserDetails
	db.On("InsertOne", mock.Anything, mock.AnythingOfType("models.UserDetails")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(models.UserDetails) }).
		Return(nil, nil)

	u := handlers.User{DB: db}

	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, userCreateRequest(t, models.UserDetails{
		Name:     "Asha Verma",
		Mobile:   "9876543210",
		Email:    "asha@example.com",
		Password: "plaintext-secret",
	}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "asha@example.com", inserted.Email)
	// the stored password must be a bcrypt hash of the submitted one
	assert.NotEqual(t, "plaintext-secret", inserted.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.Password), []byte("plaintext-secret")))
	assert.NotZero(t, inserted.CreatedAt)
}
