package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/freevisa/visa-api/internal/auth"
	"github.com/freevisa/visa-api/internal/config"
	"github.com/freevisa/visa-api/internal/database"
	"github.com/freevisa/visa-api/internal/handlers"
	"github.com/freevisa/visa-api/internal/models"
	"github.com/freevisa/visa-api/internal/notifier"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Notifier
	var discordSession *discordgo.Session
	var applicationNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			discordSession = session
			applicationNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
		}
	}

	// Initialize Handlers. The identity listener is registered here, once, and
	// torn down with the process.
	authHandler := auth.NewAuthHandler(cfg, db, func(user models.User) {
		log.Printf("Identity resolved for %s", user.Email)
	})
	visaHandler := handlers.NewVisaHandler(db)
	applicationHandler := handlers.NewApplicationHandler(db, applicationNotifier)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, authHandler, visaHandler, applicationHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start Server
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Printf("Got signal: %s", s)
	case err := <-errCh:
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if discordSession != nil {
		discordSession.Close()
	}
}
