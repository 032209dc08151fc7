package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wingman/config"
	"wingman/database"
	reservationRepo "wingman/database/repository/reservation"
	"wingman/handlers"
	"wingman/middleware"
	"wingman/routes"
	"wingman/services/dialogue"
	ai "wingman/services/intelligence"
	"wingman/services/travel"
	"wingman/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Collaborators.
	gemini := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	resolver := ai.NewDefaultResolver(gemini)

	amadeus := travel.NewClient(
		config.AppConfig.AmadeusBaseURL,
		config.AppConfig.AmadeusClientID,
		config.AppConfig.AmadeusClientSecret,
	)

	ledger := reservationRepo.NewMongoLedger()

	// Session store.
	var sessions dialogue.SessionStore
	if config.AppConfig.SessionBackend == "redis" {
		ttl := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
		sessions = dialogue.NewRedisSessionStore(utils.GetSessionCacheClient(), ttl)
	} else {
		sessions = dialogue.NewMemorySessionStore()
	}

	// Dialogue controller.
	chatService := &dialogue.DefaultChatService{
		Resolver:   resolver,
		Advisor:    resolver,
		Normalizer: &dialogue.Normalizer{Extractor: resolver},
		Flights:    amadeus,
		Hotels:     amadeus,
		Ledger:     ledger,
		Sessions:   sessions,
	}

	chatHandler := handlers.NewChatHandler(chatService)
	reservationHandler := handlers.NewReservationHandler(ledger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ChatHandler:             chatHandler.HandleChat,
		ListReservationsHandler: reservationHandler.ListReservationsHandler,
		GetReservationHandler:   reservationHandler.GetReservationHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
