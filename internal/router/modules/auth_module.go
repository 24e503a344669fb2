package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	repo "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/repository"
	handlers "github.com/victorbrunner12/fast-api-pizzaria/internal/interface/http"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/interface/middleware"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/helpers"
)

// AuthModule wires the authentication routes under /autenticacao.
// Login routes are public; account creation and refresh require a valid
// bearer token.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath())

	grp := rg.Group("/autenticacao")
	grp.GET("/", m.Handler.Index)
	grp.POST("/login", loginLimiter, m.Handler.Login)
	grp.POST("/login-form", loginLimiter, m.Handler.LoginForm)

	auth := grp.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByActor()))
	{
		auth.POST("/criar_conta", m.Handler.Register)
		auth.GET("/refresh", m.Handler.Refresh)
	}
}
