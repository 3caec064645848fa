package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fuelprice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenCookie = "access_token"

	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

var (
	ErrTokenMissing = errors.New("authorization is missing")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims are the fields the API reads from an access token.
type Claims struct {
	UserID string
	Role   string
}

// Auth validates access tokens issued at login and manages the token cookie.
type Auth struct {
	secret        []byte
	tokenTTL      time.Duration
	secureCookies bool
}

// NewAuth builds the auth middleware. secureCookies switches the cookie to
// SameSite=None and Secure for cross-origin deployments.
func NewAuth(secret []byte, tokenTTL time.Duration, secureCookies bool) *Auth {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Auth{secret: secret, tokenTTL: tokenTTL, secureCookies: secureCookies}
}

// ParseToken checks the signature and expiry of tokenString.
func (a *Auth) ParseToken(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrTokenMissing
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	sub, _ := mapClaims["sub"].(string)
	role, _ := mapClaims["role"].(string)
	return Claims{UserID: sub, Role: role}, nil
}

// SetTokenCookie stores the access token as an HttpOnly cookie
func (a *Auth) SetTokenCookie(c *gin.Context, token string) {
	a.applySameSite(c)
	c.SetCookie(AccessTokenCookie, token, int(a.tokenTTL.Seconds()), "/", "", a.secureCookies, true)
}

// ClearTokenCookie removes the access token cookie
func (a *Auth) ClearTokenCookie(c *gin.Context) {
	a.applySameSite(c)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", a.secureCookies, true)
}

func (a *Auth) applySameSite(c *gin.Context) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	if a.secureCookies {
		c.SetSameSite(http.SameSiteNoneMode)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
}

// RequireRole validates the JWT token and checks if the user's role exists in the allowedRoles list
func (a *Auth) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try cookie first, fallback to Authorization header
		tokenString, cookieErr := c.Cookie(AccessTokenCookie)
		if cookieErr != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
				return
			}
			tokenString = parts[1]
		}

		claims, err := a.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}
		if claims.Role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}

		roleAllowed := false
		for _, role := range allowedRoles {
			if claims.Role == role {
				roleAllowed = true
				break
			}
		}
		if !roleAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// UserID returns the authenticated user's id, or "" on public routes.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
