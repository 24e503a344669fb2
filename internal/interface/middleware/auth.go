package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	repo "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/repository"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/helpers"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/response"
)

// CtxActorKey is the gin context key holding the authenticated user.
const CtxActorKey = "actor"

// Auth validates the bearer token from the Authorization header,
// resolves the user it identifies and injects it into the context.
// Malformed, forged and expired tokens all produce the same
// access-denied response so validation internals are not leaked.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "access denied, check token validity", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "access denied, check token validity", nil)
			c.Abort()
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "access denied, check token validity", nil)
			c.Abort()
			return
		}
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access", nil)
			c.Abort()
			return
		}
		c.Set(CtxActorKey, u)
		c.Next()
	}
}

// ActorFrom returns the authenticated user stored by Auth, or nil.
func ActorFrom(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxActorKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
