package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"amispark/config"
	"amispark/internal/mailer"
	"amispark/internal/mailer/resend"
	"amispark/security"
	"amispark/utils"
)

// StartMailer runs the standalone mail relay service.
func StartMailer() error {
	cfg := config.LoadConfig()

	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	sender := resend.NewClient(&resend.Config{
		APIKey: cfg.ResendAPIKey,
	})
	relay := mailer.NewRelay(sender, cfg.MailFrom)

	e := echo.New()
	e.Use(middleware.Recover())

	rateLimiter := security.NewRateLimiter(redisClient)
	e.Use(rateLimiter.AntiBotMiddleware())
	e.Use(rateLimiter.RelayRateLimit())

	relay.RegisterRoutes(e)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.MailerPort),
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutdown signal received, draining mail relay...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Relay shutdown: %v", err)
		}
	}()

	log.Printf("Mail relay listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
