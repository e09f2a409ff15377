package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agoraun/config"
	_ "agoraun/docs"
	"agoraun/internal/adapters/auth"
	"agoraun/internal/adapters/cache"
	"agoraun/internal/adapters/email"
	httpdelivery "agoraun/internal/delivery/http"
	"agoraun/internal/delivery/http/controllers"
	"agoraun/internal/delivery/http/middleware"
	"agoraun/internal/repository/postgres"
	"agoraun/internal/services"
)

// @title AgoraUN API
// @version 1.0
// @description Backend for university student groups: group lifecycle, events, and seat-capped event registration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath, logger); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.SESSender,
		FromName:    cfg.MailerFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("mailer init failed", "err", err)
		os.Exit(1)
	}

	groupCache, err := cache.NewGroupCache(cache.Config{
		Provider: cfg.CacheProvider,
		Addr:     cfg.RedisAddr,
	}, logger)
	if err != nil {
		logger.Error("cache init failed", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	participationRepo := postgres.NewParticipationRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// cost 0 falls back to bcrypt's default cost
	hasher := auth.NewBcryptHasher(0)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry, cfg.EmailDomain, emailService, logger)
	groupService := services.NewGroupService(groupRepo, membershipRepo, groupCache, cfg.EmailDomain)
	membershipService := services.NewMembershipService(membershipRepo, groupRepo, userRepo, cfg.MaxGroupsPerUser)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	eventService := services.NewEventService(eventRepo, groupRepo, participationRepo, userRepo, notificationService, emailService, logger)
	participationService := services.NewParticipationService(participationRepo, eventRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, userRepo)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:           controllers.NewAuthController(logger, userService),
		Users:          controllers.NewUserController(logger, userService),
		Groups:         controllers.NewGroupController(logger, groupService, membershipService),
		Events:         controllers.NewEventController(logger, eventService, participationService),
		Participations: controllers.NewParticipationController(logger, participationService),
		Comments:       controllers.NewCommentController(logger, commentService),
		Notifications:  controllers.NewNotificationController(logger, notificationService),
	}, tokenVerifier, logger)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
