package router

import (
	"github.com/victorbrunner12/fast-api-pizzaria/internal/application"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/container"
	pginfra "github.com/victorbrunner12/fast-api-pizzaria/internal/infrastructure/postgres"
	handlers "github.com/victorbrunner12/fast-api-pizzaria/internal/interface/http"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/router/modules"
)

// InitModules builds the repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	orders := pginfra.NewOrderRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), logger)
	orderSvc := application.NewOrderService(
		orders,
		users,
		logger,
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESOrdersIndex,
	)

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	orderHandler := handlers.NewOrderHandler(orderSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, users, container.GetJWT(), container.GetRedis()))
	r.Add(modules.NewOrdersModule(orderHandler, users, container.GetJWT(), container.GetRedis()))
	r.Add(modules.NewDebugModule(container.GetRedis()))
}
