package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-allocation/config"
	"hotel-allocation/controllers"
	"hotel-allocation/events"
	"hotel-allocation/routes"
	"hotel-allocation/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("database connection established, migrations applied")

	// Event publisher: AMQP when a broker is configured, log fallback
	// otherwise.
	var publisher events.Publisher = events.LogPublisher{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventExchange)
		if err != nil {
			log.Fatalf("event publisher connect failed: %v", err)
		}
		publisher = amqpPub
		log.Printf("publishing events to exchange %q", cfg.EventExchange)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("warning: event publisher close: %v", err)
		}
	}()

	allocationService := services.NewAllocationService(db, publisher)
	allocationService.TxTimeout = cfg.TxTimeout
	allocationService.AllowPastCheckIn = cfg.AllowPastCheckIn

	allocationController := controllers.NewAllocationController(allocationService)

	router := routes.SetupRouter(allocationController)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
