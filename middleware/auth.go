package middleware

import (
	"context"
	"strings"

	"taskhive/models"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

const (
	IdentityKey = "identity"
	TokenKey    = "authToken"
)

// Authenticator resolves a bearer token to the identity it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// JWTAuthMiddleware requires a valid bearer token. With optional set, requests
// without a usable token continue anonymously.
func JWTAuthMiddleware(auth Authenticator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if optional {
				c.Next()
				return
			}
			utils.RespondError(c, utils.ErrUnauthorized("Missing or invalid Authorization header"))
			return
		}

		id, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if optional && !utils.IsKind(err, utils.KindServer) {
				c.Next()
				return
			}
			utils.RespondError(c, err)
			return
		}

		c.Set(IdentityKey, *id)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, if any.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// CurrentToken returns the bearer token the request was authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
