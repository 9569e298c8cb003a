package main

import (
	"context"
	"log"

	"stayhub/config"
	"stayhub/jobs"
	"stayhub/middleware"
	"stayhub/routes"
	"stayhub/services"
	"stayhub/services/notification"
)

// @title        StayHub API
// @version      1.0
// @description  Hostel and PG marketplace: properties, rooms, beds, bookings and wallets.
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app, err := config.InitApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	var mailer services.Mailer = services.LogMailer{Logger: app.Logger}
	if cfg.SMTPHost != "" {
		mailer = services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}

	tokens := services.NewTokenService(cfg.JWTSecret)
	svc := routes.NewServices(routes.Dependencies{
		Store:            app.Store,
		Redis:            app.Redis,
		Cloudinary:       app.Cloudinary,
		Notifier:         notification.NewMelodyService(app.Melody),
		Mailer:           mailer,
		Tokens:           tokens,
		Logger:           app.Logger,
		GoogleClientID:   cfg.GoogleClientID,
		PropertyIDPrefix: cfg.PropertyIDPrefix,
		PropertyIDOffset: cfg.PropertyIDOffset,
	})

	if err := svc.Auth.SeedAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if err := jobs.InitCronJobs(app.Cron, cfg.HoldReportCron, svc.Properties, cfg.HoldStaleAfter, app.Logger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer app.Cron.Stop()

	config.InitWebSocket(app.Router, app.Melody, app.Logger)

	guard := middleware.NewGuard(tokens, cfg.AdminAuth, cfg.VendorAuth)
	routes.SetupRoutes(app.Router, svc, guard, cfg.IsProduction(), app.Logger)

	app.Logger.Info("Server starting on port %s...", cfg.Port)
	if err := app.Router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
