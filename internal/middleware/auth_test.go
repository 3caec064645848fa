package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecret = []byte("middleware-test-secret")

func signToken(t *testing.T, secret []byte, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func newRouter(auth *Auth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/admin", auth.RequireRole("admin"), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func TestRequireRole(t *testing.T) {
	auth := NewAuth(testSecret, time.Hour, false)
	r := newRouter(auth)
	future := time.Now().Add(time.Hour)

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"bad scheme", "Token abc", "", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signToken(t, []byte("other"), "admin", future), "", http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, "admin", time.Now().Add(-time.Minute)), "", http.StatusUnauthorized},
		{"wrong role", "Bearer " + signToken(t, testSecret, "staff", future), "", http.StatusForbidden},
		{"bearer ok", "Bearer " + signToken(t, testSecret, "admin", future), "", http.StatusOK},
		{"cookie ok", "", signToken(t, testSecret, "admin", future), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Equal(t, "user-1", w.Body.String())
			}
		})
	}
}

func TestParseToken(t *testing.T) {
	auth := NewAuth(testSecret, time.Hour, false)

	_, err := auth.ParseToken("")
	require.ErrorIs(t, err, ErrTokenMissing)

	claims, err := auth.ParseToken(signToken(t, testSecret, "manager", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "user-1", Role: "manager"}, claims)
}

func TestTokenCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewAuth(testSecret, 2*time.Hour, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	auth.SetTokenCookie(c, "tok")

	cookie := w.Result().Cookies()[0]
	assert.Equal(t, AccessTokenCookie, cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, 7200, cookie.MaxAge)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
