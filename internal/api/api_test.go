package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"catalog_system/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// testRouter builds a router over a fresh in-memory sqlite database, with
// caching disabled, exactly as RegisterRoutes wires it in production.
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	r := gin.New()
	RegisterRoutes(r, conn, nil)
	return r
}

// perform runs one request through the router and returns the recorder.
func perform(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a response body into T.
func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// validationBody is the shape of every 422 response.
type validationBody struct {
	Errors []fieldError `json:"errors"`
}

// failingFields collects which fields a 422 body reports.
func failingFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	body := decodeBody[validationBody](t, w)
	fields := make([]string, len(body.Errors))
	for i, fe := range body.Errors {
		require.NotEmpty(t, fe.Message)
		fields[i] = fe.Field
	}
	return fields
}

func TestCreateAndReadUser(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodPost, "/users/", gin.H{"username": "intuser", "email": "int@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[UserView](t, w)
	require.NotZero(t, created.ID)
	require.Equal(t, "intuser", created.Username)

	w = perform(t, r, http.MethodGet, fmt.Sprintf("/users/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[UserView](t, w)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "intuser", got.Username)
	require.Equal(t, "int@example.com", got.Email)
}

func TestListUsers(t *testing.T) {
	r := testRouter(t)

	perform(t, r, http.MethodPost, "/users/", gin.H{"username": "user1", "email": "u1@example.com"})
	perform(t, r, http.MethodPost, "/users/", gin.H{"username": "user2", "email": "u2@example.com"})

	w := perform(t, r, http.MethodGet, "/users/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody[[]UserView](t, w)
	require.GreaterOrEqual(t, len(users), 2)
}

func TestListUsersSkipLimit(t *testing.T) {
	r := testRouter(t)

	for i := 0; i < 3; i++ {
		w := perform(t, r, http.MethodPost, "/users/", gin.H{
			"username": fmt.Sprintf("pager%d", i),
			"email":    fmt.Sprintf("pager%d@example.com", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := perform(t, r, http.MethodGet, "/users/?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody[[]UserView](t, w)
	require.Len(t, users, 1)
	require.Equal(t, "pager1", users[0].Username)
}

func TestListUsersBadLimit(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodGet, "/users/?limit=abc", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, failingFields(t, w), "limit")
}

func TestCreateUserMissingEmail(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodPost, "/users/", gin.H{"username": "bad"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, failingFields(t, w), "email")
}

func TestUpdateUser(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodPost, "/users/", gin.H{"username": "old", "email": "old@example.com"})
	created := decodeBody[UserView](t, w)

	w = perform(t, r, http.MethodPatch, fmt.Sprintf("/users/%d", created.ID), gin.H{
		"username": "newname",
		"email":    "new@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[UserView](t, w)
	require.Equal(t, "newname", updated.Username)
	require.Equal(t, "new@example.com", updated.Email)
}

func TestUpdateUserOverwritesOmittedFields(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodPost, "/users/", gin.H{"username": "whole", "email": "whole@example.com"})
	created := decodeBody[UserView](t, w)

	// User PATCH is full-overwrite: the omitted email is replaced by its zero value
	w = perform(t, r, http.MethodPatch, fmt.Sprintf("/users/%d", created.ID), gin.H{"username": "justname"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[UserView](t, w)
	require.Equal(t, "justname", updated.Username)
	require.Empty(t, updated.Email)
}

func TestUpdateUserNotFound(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodPatch, "/users/99999", gin.H{"username": "x", "email": "x@example.com"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodPost, "/users/", gin.H{"username": "todel", "email": "del@example.com"})
	created := decodeBody[UserView](t, w)

	w = perform(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())

	w = perform(t, r, http.MethodGet, fmt.Sprintf("/users/%d", created.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUserNotFound(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodDelete, "/users/99999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedIDIsValidationFailure(t *testing.T) {
	r := testRouter(t)

	// A non-numeric id is a 422, distinct from a well-formed but absent id
	w := perform(t, r, http.MethodGet, "/users/abc", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, failingFields(t, w), "id")

	w = perform(t, r, http.MethodGet, "/users/99999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateUserWrongType(t *testing.T) {
	r := testRouter(t)

	w := perform(t, r, http.MethodPost, "/users/", gin.H{"username": 42, "email": "t@example.com"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, failingFields(t, w), "username")
}
