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

// OrdersModule wires the order lifecycle routes under /pedidos. All of
// them require a valid bearer token; per-operation authorization is
// decided by the policy inside the service.
type OrdersModule struct {
	Handler *handlers.OrderHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewOrdersModule(h *handlers.OrderHandler, users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client) *OrdersModule {
	return &OrdersModule{Handler: h, Users: users, JWT: jwt, Redis: rdb}
}

func (m *OrdersModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/pedidos")
	grp.Use(middleware.Auth(m.Users, m.JWT))
	grp.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByActor()))
	{
		grp.GET("/", m.Handler.Index)
		grp.GET("/listar-pedidos", m.Handler.ListAll)
		grp.GET("/listar-html", m.Handler.ListHTML)
		grp.GET("/buscar", m.Handler.Search)

		grp.POST("/pedido", m.Handler.Create)
		grp.POST("/pedido/cancelar/:id", m.Handler.Cancel)
		grp.POST("/pedido/adicionar-item/:id", m.Handler.AddItem)
		grp.POST("/pedido/remover-item/:id", m.Handler.RemoveItem)
		grp.POST("/pedido/finalizar/:id", m.Handler.Finalize)

		grp.GET("/pedido/:id", m.Handler.Get)
		grp.GET("/pedido/listar-pedidos-usuario/:id", m.Handler.ListForUser)
	}
}
