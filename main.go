package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"poppi/config"
	"poppi/handlers"
	"poppi/middleware"
	"poppi/models"
	"poppi/routes"
	"poppi/services/availability"
	"poppi/services/chat"
	"poppi/services/payment"
	"poppi/utils"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var redisClients []*redis.Client
	if err := utils.InitCache(); err != nil {
		logger.Warn("main: availability cache disabled", zap.Error(err))
	} else {
		redisClients = append(redisClients, utils.CacheClient)
	}
	defer utils.CloseCaches()

	// Availability.
	var calendarClient availability.CalendarClient
	gcal, err := availability.NewGoogleCalendarClient(ctx, cfg.GoogleServiceAccountEmail, cfg.GooglePrivateKey, cfg.GoogleCalendarID)
	switch {
	case errors.Is(err, availability.ErrCalendarNotConfigured):
		logger.Warn("main: Google Calendar credentials missing, availability lookups will report the calendar as unavailable")
	case err != nil:
		logger.Error("main: failed to initialize calendar client", zap.Error(err))
	case utils.CacheClient != nil && cfg.AvailabilityCacheTTL > 0:
		calendarClient = availability.NewCachedCalendarClient(gcal, utils.CacheClient, cfg.AvailabilityCacheTTL, logger)
	default:
		calendarClient = gcal
	}
	hours := models.WorkingHours{StartHour: cfg.WorkStartHour, EndHour: cfg.WorkEndHour}
	availabilityService := availability.NewService(calendarClient, hours, cfg.SlotMinutes, logger)

	// Payments.
	checkoutService := payment.NewStripeCheckoutService(payment.Options{
		SecretKey:   cfg.StripeKey,
		Currency:    cfg.StripeCurrency,
		AmountCents: cfg.ConsultationFeeCents,
		BaseURL:     cfg.BaseURL,
	}, logger)
	if cfg.StripeKey == "" {
		logger.Warn("main: STRIPE_SECRET_KEY missing, checkout requests will fail")
	}

	// Chat.
	var classifier chat.Classifier = chat.NewPatternClassifier(nil)
	if cfg.GeminiAPIKey != "" {
		gemini, err := chat.NewGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, classifier, logger)
		if err != nil {
			logger.Warn("main: Gemini intent classification disabled", zap.Error(err))
		} else {
			classifier = gemini
			defer func() { _ = gemini.Close() }()
		}
	}

	var sessionStore chat.SessionStore = chat.NewMemoryStore(cfg.ChatSessionTTL)
	if cfg.SessionStore == "redis" {
		if err := utils.InitSessionCache(); err != nil {
			logger.Fatal("main: chat session store unavailable", zap.Error(err))
		}
		sessionStore = chat.NewRedisStore(utils.SessionClient, cfg.ChatSessionTTL)
		redisClients = append(redisClients, utils.SessionClient)
	}

	profile := chat.ProfileFromConfig(cfg)
	profile.FeeCents = checkoutService.AmountCents()
	sessions := chat.NewSessions(sessionStore, func(opts ...chat.Option) *chat.Controller {
		base := []chat.Option{chat.WithClassifier(classifier), chat.WithLogger(logger)}
		return chat.NewController(profile, availabilityService, checkoutService, append(base, opts...)...)
	}, logger)

	utils.StartHealthMonitor(ctx, time.Minute, redisClients, availabilityService.Configured(), cfg.StripeKey != "")

	// Handlers.
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	chatHandler := handlers.NewChatHandler(sessions)

	handlerBundle := &handlers.HandlerBundle{
		GetAvailability: availabilityHandler.GetAvailability,

		CreateCheckoutSession: checkoutHandler.CreateCheckoutSession,
		GetCheckoutSession:    checkoutHandler.GetCheckoutSession,

		StartChatSession: chatHandler.StartSession,
		SendChatMessage:  chatHandler.SendMessage,
		EndChatSession:   chatHandler.EndSession,

		Health: handlers.Health,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
