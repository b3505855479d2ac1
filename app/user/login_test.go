package user

import (
	"net/http"
	"testing"

	"hirehub/job-portal-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_UnknownEmailAndWrongPasswordShareMessage(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	seedUser(t, d, "jane@example.com", "Secret123!", model.RoleStudent, true)

	// Unknown email
	w := doJSON(r, http.MethodPost, "/login", `{"email":"nobody@example.com","password":"Secret123!","role":"student"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	unknownMsg := parseBody(t, w)["message"]

	// Wrong password
	w = doJSON(r, http.MethodPost, "/login", `{"email":"jane@example.com","password":"WrongPass1!","role":"student"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	wrongPassMsg := parseBody(t, w)["message"]

	assert.Equal(t, unknownMsg, wrongPassMsg)
	assert.Equal(t, "Incorrect email or password", unknownMsg)
}

func TestLogin_UnverifiedUserRejected(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	seedUser(t, d, "jane@example.com", "Secret123!", model.RoleStudent, false)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"jane@example.com","password":"Secret123!","role":"student"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLogin_RoleMismatch(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	seedUser(t, d, "jane@example.com", "Secret123!", model.RoleStudent, true)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"jane@example.com","password":"Secret123!","role":"recruiter"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Account doesn't exist with current role", parseBody(t, w)["message"])
}

func TestLogin_Success(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	seedUser(t, d, "jane@example.com", "Secret123!", model.RoleStudent, true)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"jane@example.com","password":"Secret123!","role":"student"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	body := parseBody(t, w)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, "student", user["role"])
}

func TestLogin_NeverLeaksPasswordHash(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	u := seedUser(t, d, "jane@example.com", "Secret123!", model.RoleStudent, true)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"jane@example.com","password":"Secret123!","role":"student"}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), u.PasswordHash)
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestLogin_MissingFields(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"jane@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_CaseInsensitiveEmail(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	seedUser(t, d, "jane@example.com", "Secret123!", model.RoleStudent, true)

	w := doJSON(r, http.MethodPost, "/login", `{"email":"Jane@Example.com","password":"Secret123!","role":"student"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	u := seedUser(t, d, "jane@example.com", "Secret123!", model.RoleStudent, true)

	token, err := d.Tokens.Session(u.ID)
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/logout", "", &http.Cookie{Name: "token", Value: token})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
