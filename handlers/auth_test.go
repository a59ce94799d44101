package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func httpError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	return he
}

func TestSignupRejectsMissingFields(t *testing.T) {
	c, _ := postJSON(t, "/api/auth/sign-up", `{"email":"a@x.com","password":"pw1234"}`)

	he := httpError(t, Signup(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "All fields are required", he.Message)
}

func TestSignupRejectsMismatchedPasswords(t *testing.T) {
	c, _ := postJSON(t, "/api/auth/sign-up",
		`{"name":"A","email":"a@x.com","password":"pw1234","confirmPassword":"pw5678"}`)

	he := httpError(t, Signup(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Passwords do not match", he.Message)
}

func TestSigninRejectsMissingFields(t *testing.T) {
	c, _ := postJSON(t, "/api/auth/sign-in", `{"email":"a@x.com"}`)

	he := httpError(t, Signin(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "All fields are required", he.Message)
}

func TestSignoutClearsCookie(t *testing.T) {
	c, rec := postJSON(t, "/api/auth/sign-out", "")

	require.NoError(t, Signout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	c, _ := postJSON(t, "/api/tasks/create", `{"description":"no title"}`)

	he := httpError(t, CreateTask(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUploadImageRequiresFile(t *testing.T) {
	c, _ := postJSON(t, "/api/auth/upload-image", "")

	he := httpError(t, UploadImage(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
