package api_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/jansuraksha/jan-suraksha-api/api"
	"github.com/jansuraksha/jan-suraksha-api/databases/mocks"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

func TestMiddlewareStoresCitizenID(t *testing.T) {
	userID := primitive.NewObjectID()
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	cursor := &mocks.CursorHelper{}
	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		users := args.Get(0).(*[]models.User)
		*users = []models.User{{
			ID: userID,
			Details: models.UserDetails{
				Email:    "asha@example.com",
				Password: string(hash),
			},
		}}
	})

	db := mocks.NewUserDatabase(t)
	db.On("Find", mock.Anything, mock.Anything).Return(cursor, nil)

	m := api.MiddlewareDB{DB: db}
	m.SetupGoGuardian()

	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value(api.CitizenIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})
	guarded := api.Middleware(next)

	req := httptest.NewRequest("POST", "/api/v1/complaint", nil)
	req.SetBasicAuth("asha@example.com", "open-sesame")
	rr := httptest.NewRecorder()
	guarded.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	// handlers read identity from the context, never from the form
	assert.Equal(t, userID.Hex(), gotID)
}

func signedAdminToken(t *testing.T, secret, scope string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "64f000000000000000000001",
		"scope": scope,
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAdminMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(api.AdminClaimsKey).(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, "admin", claims["scope"])
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})
	guarded := api.AdminMiddleware(next)

	t.Run("missing token", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "ADMIN_AUTH_REQUIRED")
		assert.False(t, nextCalled)
	})

	t.Run("garbage token", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.False(t, nextCalled)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+signedAdminToken(t, "other-secret", "admin"))
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.False(t, nextCalled)
	})

	t.Run("citizen scope rejected", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+signedAdminToken(t, "test-secret", "citizen"))
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.False(t, nextCalled)
	})

	t.Run("valid admin token", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+signedAdminToken(t, "test-secret", "admin"))
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, nextCalled)
	})
}
