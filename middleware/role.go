package middleware

import (
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles admits authenticated callers holding one of roles. It must run
// after JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			utils.RespondError(c, utils.ErrUnauthorized("Authentication required"))
			return
		}
		if !allowed[id.Role] {
			utils.RespondError(c, utils.ErrForbidden("You do not have permission to access this resource"))
			return
		}
		c.Next()
	}
}
