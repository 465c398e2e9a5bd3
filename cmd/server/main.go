package main

import (
	"context"
	"log"
	"net/http"

	webAdapter "ibms-backend/internal/adapters/web"
	"ibms-backend/internal/ai"
	"ibms-backend/internal/config"
	"ibms-backend/internal/core"
	"ibms-backend/internal/db"
	"ibms-backend/internal/notify"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	settingsService := core.NewSettingsService(pool)

	var mailer notify.Mailer
	if cfg.SMTPServer != "" {
		mailer = notify.NewSMTPMailer(cfg)
	} else {
		log.Println("Warning: SMTP_SERVER is not set, email delivery disabled")
	}

	var sms notify.SMSSender
	if cfg.TwilioAccountSID != "" {
		sms = notify.NewTwilioSender(cfg)
	} else {
		log.Println("Warning: TWILIO_ACCOUNT_SID is not set, SMS delivery disabled")
	}
	dispatcher := notify.NewDispatcher(settingsService, mailer, sms)

	inventoryService := core.NewInventoryService(pool, dispatcher)
	customerService := core.NewCustomerService(pool)
	billingService := core.NewBillingService(pool, dispatcher)
	reportingService := core.NewReportingService(pool)

	var recognizer ai.Recognizer
	if cfg.OpenAIAPIKey != "" {
		recognizer = ai.NewRecognizer(cfg.OpenAIAPIKey)
	} else {
		log.Println("Warning: OPENAI_API_KEY is not set, image recognition disabled")
	}

	handler := webAdapter.NewHandler(
		inventoryService,
		customerService,
		billingService,
		reportingService,
		settingsService,
		recognizer,
		mailer,
		cfg.AllowedOrigins,
	)

	log.Printf("server starting on %s", cfg.Address())
	if err := http.ListenAndServe(cfg.Address(), handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
