package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"mealdrop/config"
	httpapi "mealdrop/internal/api/http"
	"mealdrop/internal/service"
	"mealdrop/internal/storage"
)

func main() {
	config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	if err := storage.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	repo := storage.NewPostgresRepository(db)

	var cache service.CatalogCache
	if os.Getenv("REDIS_HOST") != "" {
		cache = storage.NewCatalogCache(config.MustInitRedis(), 5*time.Minute)
	}

	var publisher service.EventPublisher
	if os.Getenv("KAFKA_BROKER") != "" {
		publisher = storage.NewKafkaPublisher(config.NewKafkaWriter("order-events"))
	}

	qr := service.TrackingQRGenerator{
		BaseURL: config.GetEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	catalogSvc := service.NewCatalogService(repo, cache)
	pricingSvc := service.NewPricingService(repo)
	orderSvc := service.NewOrderService(repo, repo, publisher, qr)

	handler := httpapi.NewHandler(catalogSvc, pricingSvc, orderSvc)
	router := httpapi.NewRouter(handler)

	addr := ":" + config.GetEnv("PORT", "8080")
	log.Println("mealdrop API starting on", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
