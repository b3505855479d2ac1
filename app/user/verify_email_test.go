package user

import (
	"net/http"
	"net/url"
	"testing"

	"hirehub/job-portal-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyPath(token string) string {
	return "/verify-email?token=" + url.QueryEscape(token)
}

func TestVerifyEmail_FullFlow(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doForm(r, "/register", registerForm("a@x.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	var u model.User
	require.NoError(t, d.DB.Where("email = ?", "a@x.com").First(&u).Error)
	require.NotNil(t, u.VerificationToken)

	w = doJSON(r, http.MethodGet, verifyPath(*u.VerificationToken), "")
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, d.DB.Where("email = ?", "a@x.com").First(&u).Error)
	assert.True(t, u.IsVerified)
	assert.Nil(t, u.VerificationToken)

	// Verified user can now log in and gets a session cookie back
	w = doJSON(r, http.MethodPost, "/login", `{"email":"a@x.com","password":"Secret123!","role":"student"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sessionCookie(w))

	body := parseBody(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "a@x.com", user["email"])
}

func TestVerifyEmail_ReplayFails(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doForm(r, "/register", registerForm("a@x.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	var u model.User
	require.NoError(t, d.DB.Where("email = ?", "a@x.com").First(&u).Error)
	token := *u.VerificationToken

	w = doJSON(r, http.MethodGet, verifyPath(token), "")
	require.Equal(t, http.StatusOK, w.Code)

	// The token still verifies cryptographically but no longer matches
	// the stored value
	w = doJSON(r, http.MethodGet, verifyPath(token), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired verification token", parseBody(t, w)["message"])
}

func TestVerifyEmail_SupersededTokenFails(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doForm(r, "/register", registerForm("a@x.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	var u model.User
	require.NoError(t, d.DB.Where("email = ?", "a@x.com").First(&u).Error)
	oldToken := *u.VerificationToken

	w = doJSON(r, http.MethodPost, "/resend-verification", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, verifyPath(oldToken), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The fresh token works
	require.NoError(t, d.DB.Where("email = ?", "a@x.com").First(&u).Error)
	w = doJSON(r, http.MethodGet, verifyPath(*u.VerificationToken), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyEmail_GarbageToken(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, http.MethodGet, verifyPath("not-a-token"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/verify-email", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResendVerification_Failures(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, http.MethodPost, "/resend-verification", `{"email":"nobody@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User not found", parseBody(t, w)["message"])

	seedUser(t, d, "done@example.com", "Secret123!", model.RoleStudent, true)

	w = doJSON(r, http.MethodPost, "/resend-verification", `{"email":"done@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is already verified", parseBody(t, w)["message"])
}

func TestResendVerification_OverwritesToken(t *testing.T) {
	d, m := newTestDeps(t)
	r := newTestRouter(d)

	w := doForm(r, "/register", registerForm("a@x.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	var before model.User
	require.NoError(t, d.DB.Where("email = ?", "a@x.com").First(&before).Error)

	w = doJSON(r, http.MethodPost, "/resend-verification", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var after model.User
	require.NoError(t, d.DB.Where("email = ?", "a@x.com").First(&after).Error)

	require.NotNil(t, after.VerificationToken)
	assert.NotEqual(t, *before.VerificationToken, *after.VerificationToken)
	require.Len(t, m.Sent, 2)
	assert.Contains(t, m.Sent[1].HTML, *after.VerificationToken)
}
