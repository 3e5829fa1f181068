package main

import (
	"log"
	"net/http"

	"meridian-be/internal/cache"
	"meridian-be/internal/config"
	"meridian-be/internal/db"
	"meridian-be/internal/logger"
	"meridian-be/internal/metrics"
	"meridian-be/internal/middleware"
	"meridian-be/internal/notify"
	"meridian-be/internal/order"
	"meridian-be/internal/product"
	"meridian-be/internal/transport"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	invalidator := cache.FromURL(cfg.RedisURL)
	dispatcher := notify.NewMailGateway(cfg.MailAPIKey, cfg.MailAPIURL, cfg.MailFrom, cfg.OperatorEmail)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database, productRepo)
	orderSvc := order.NewService(orderRepo, productRepo, invalidator, dispatcher, metrics.NewFulfillment())

	srv := setupRouter(orderSvc, productSvc)

	log.Printf("🚀 Fulfillment server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, srv))
}

func setupRouter(orderSvc order.Service, productSvc product.Service) http.Handler {
	handler := transport.NewHandler(orderSvc, productSvc)

	return middleware.RequestID(
		middleware.Logging(
			middleware.StrictLimit(handler.Routes()),
		),
	)
}
