package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/astromaster/internal/domain/auth"
	apperrors "github.com/yanqian/astromaster/pkg/errors"
)

const claimsKey = "astromaster.claims"

var (
	errMissingAuthorization   = errors.New("missing authorization header")
	errMalformedAuthorization = errors.New("invalid authorization header")
)

// authMiddleware requires a valid bearer access token and stores its claims
// on the request context.
func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, unauthorized(err.Error()))
			return
		}
		claims, err := svc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeInvalidToken) {
				abortWithError(c, newHTTPError(http.StatusUnauthorized, apperrors.CodeInvalidToken, errMessage(err), err))
				return
			}
			abortWithError(c, fromDomain(err, "auth_failed"))
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingAuthorization
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errMalformedAuthorization
	}
	return token, nil
}

// callerID returns the authenticated user. It aborts with 401 when the route
// is not behind authMiddleware.
func callerID(c *gin.Context) (string, bool) {
	value, _ := c.Get(claimsKey)
	claims, ok := value.(auth.Claims)
	if !ok || claims.UserID == "" {
		abortWithError(c, unauthorized("missing token"))
		return "", false
	}
	return claims.UserID, true
}
