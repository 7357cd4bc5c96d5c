package sessiontoken_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostable/credkit/pkg/sessiontoken"
)

func TestCookieTransport_SetToken(t *testing.T) {
	t.Parallel()

	tr := sessiontoken.NewCookieTransport("", true)

	rec := httptest.NewRecorder()
	tr.SetToken(rec, "tok123", 7*24*time.Hour)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, sessiontoken.DefaultCookieName, c.Name)
	assert.Equal(t, "tok123", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestCookieTransport_GetToken(t *testing.T) {
	t.Parallel()

	tr := sessiontoken.NewCookieTransport("session", false)

	t.Run("returns cookie value", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "tok123"})

		tok, err := tr.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "tok123", tok)
	})

	t.Run("fails without cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := tr.GetToken(r)
		assert.ErrorIs(t, err, sessiontoken.ErrNoToken)
	})
}

func TestCookieTransport_ClearToken(t *testing.T) {
	t.Parallel()

	tr := sessiontoken.NewCookieTransport("session", false)

	rec := httptest.NewRecorder()
	tr.ClearToken(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
