package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"amispark/config"
	"amispark/internal/handlers"
	"amispark/internal/mailer"
	"amispark/internal/services"
	"amispark/internal/services/gateway"
	"amispark/monitoring"
	"amispark/utils"

	_ "amispark/migrations"
)

// Start runs the booking backend.
func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw, err := gateway.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	log.Printf("Payment gateway: %s", gw.GetProvider())

	monitor := monitoring.NewMonitor(redisClient)
	relayClient := mailer.NewRelayClient(cfg.RelayURL, cfg.MailTimeout)

	// Initialize services
	pricingService := services.NewPricingService(app, redisClient)
	wizardService := services.NewWizardService(redisClient, pricingService, cfg)
	ticketService := services.NewTicketService(app)
	bookingService := services.NewBookingService(
		app, cfg, wizardService, pricingService, gw, relayClient, pn, monitor, redisClient,
	)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(wizardService, bookingService)
	zoneHandler := handlers.NewZoneHandler(pricingService)
	ticketHandler := handlers.NewTicketHandler(ticketService, monitor)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Setup graceful shutdown
	go handleShutdown(cancel)

	// Expose Prometheus metrics on a side port, away from the public API
	if cfg.EnableMetrics {
		go serveMetrics(cfg.MetricsPort)
	}

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		bookingHandler.RegisterRoutes(e)
		zoneHandler.RegisterRoutes(e)
		ticketHandler.RegisterRoutes(e)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("Metrics server stopped: %v", err)
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
