package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimitrije/flowdesk-api/internal/config"
	"github.com/dimitrije/flowdesk-api/internal/database"
	"github.com/dimitrije/flowdesk-api/internal/handlers"
	"github.com/dimitrije/flowdesk-api/internal/logger"
	authmw "github.com/dimitrije/flowdesk-api/internal/middleware"
	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("", "").Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	mailer, err := services.NewMailer(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to configure email transport: %v", err)
	}

	sealer, err := services.NewSealer(cfg.ConnectionEncryptionKey)
	if err != nil {
		log.Fatalf("Failed to configure connection sealing: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	emailService := services.NewEmailService(mailer)
	userService := services.NewUserService(db)
	platformService := services.NewPlatformService(db)
	featureGate := services.NewFeatureGate(platformService)
	memberService := services.NewProjectMemberService(db, userService, emailService, cfg.FrontendURL, cfg.InvitationTTL)
	connectionService := services.NewAppConnectionService(db, sealer)

	memberHandler := handlers.NewProjectMemberHandler(memberService, userService, featureGate, log)
	connectionHandler := handlers.NewAppConnectionHandler(connectionService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	// the invitation token is the only credential
	api.Post("/project-members/accept", memberHandler.Accept)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/project-members", memberHandler.List)
	protected.Post("/project-members", memberHandler.Add)
	protected.Delete("/project-members/:id", memberHandler.Delete)
	protected.Delete("/project-members", memberHandler.DeleteByUserExternalID)

	protected.Get("/app-connections", connectionHandler.List)
	protected.Post("/app-connections", connectionHandler.Upsert)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	sweeper := services.NewInvitationSweeper(memberService, log)
	if err := sweeper.Start(cfg.InvitationSweepSchedule); err != nil {
		log.Fatalf("Failed to start invitation sweeper: %v", err)
	}

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.WithField("addr", addr).Info("Server starting")
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	sweeper.Stop()
}
