package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/nattapong/restaurant-order-api/internal/auth"
	"github.com/nattapong/restaurant-order-api/internal/config"
	"github.com/nattapong/restaurant-order-api/internal/database"
	"github.com/nattapong/restaurant-order-api/internal/handler"
	"github.com/nattapong/restaurant-order-api/internal/middleware"
	"github.com/nattapong/restaurant-order-api/internal/queue"
	"github.com/nattapong/restaurant-order-api/internal/repository"
	"github.com/nattapong/restaurant-order-api/internal/router"
	"github.com/nattapong/restaurant-order-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(database.Config{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("init schema: %v", err)
	}
	cancel()

	// Redis is optional; a nil client disables the cache and limiter.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	limiter := middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	customers := repository.NewCustomerRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	menus := repository.NewMenuRepo(db)
	orders := repository.NewOrderRepo(db)

	verifier := auth.NewVerifier(cfg.BcryptCost)

	orderSvc := service.NewOrderService(menus, orders)
	orderSvc.Publish = service.PublishOrderPlaced

	authH := handler.NewAuthHandler(cfg, users, verifier)
	customerAuthH := handler.NewCustomerAuthHandler(cfg, customers, verifier)
	userH := handler.NewUserHandler(users, verifier)
	publicH := handler.NewPublicHandler(restaurants, menus)
	orderH := handler.NewOrderHandler(orderSvc, orders)
	healthH := handler.NewHealthHandler(db)

	e := echo.New()
	router.RegisterHealth(e, healthH)
	router.RegisterStaff(e, cfg, authH, userH, limiter)
	router.RegisterCustomer(e, cfg, customerAuthH, orderH, limiter)
	router.RegisterPublic(e, publicH, cache)

	go queue.StartOrderConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
