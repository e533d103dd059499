package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"cashtrackr/internal/config"
	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/models"
	"cashtrackr/internal/services"
)

// UserKey is the Gin context key holding the authenticated user.
const UserKey = "authUser"

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the session JWT. The user ID is the
// only domain claim.
type JWTClaims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed session token for the given user ID.
func GenerateToken(userID uint) (string, error) {
	claims := &JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "cashtrackr-api",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseToken validates a session token and returns its claims.
func ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// Authenticate verifies the bearer token and attaches the resolved user
// (id, name, email only) to the request context. A token whose user no
// longer exists is rejected rather than carried forward as a stale identity.
func Authenticate(userService services.UserServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithAppError(c, apperrors.ErrNotAuthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortWithAppError(c, apperrors.ErrNotAuthorized)
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			abortWithAppError(c, apperrors.ErrTokenVerification)
			return
		}

		user, err := userService.GetAuthUserByID(claims.UserID)
		if err != nil {
			abortWithAppError(c, apperrors.ErrNotAuthorized)
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, error) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, apperrors.ErrNotAuthorized
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil, apperrors.ErrNotAuthorized
	}
	return user, nil
}

// abortWithAppError writes the error body and stops the middleware chain.
func abortWithAppError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.StatusCode, gin.H{"message": err.Message})
}
