package router

import (
	"gomarket/internal/application"
	"gomarket/internal/container"
	pginfra "gomarket/internal/infrastructure/postgres"
	handlers "gomarket/internal/interface/http"
	"gomarket/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once at startup after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)
	orderRepo := pginfra.NewOrderRepository(pool)
	txManager := pginfra.NewTxManager(pool)

	authService := application.NewAuthService(userRepo, container.GetJWT(), logger)
	catalogService := application.NewCatalogService(
		productRepo,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESProductsIndex,
		cfg.ProductCacheTTL,
	)

	var pub application.EventPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	orderService := application.NewOrderService(productRepo, orderRepo, txManager, catalogService, pub, logger)

	r.Add(modules.NewRootModule(cfg.AppName, pool))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authService, logger)))
	r.Add(modules.NewCatalogModule(handlers.NewProductHandler(catalogService, logger), container.GetJWT()))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderService, logger), container.GetJWT()))
}
