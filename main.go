package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/echologistics/carrier-intake/internal/config"
	"github.com/echologistics/carrier-intake/internal/db"
	"github.com/echologistics/carrier-intake/internal/gelf"
	"github.com/echologistics/carrier-intake/internal/handler"
	"github.com/echologistics/carrier-intake/internal/mailer"
	"github.com/echologistics/carrier-intake/internal/repository"
	"github.com/echologistics/carrier-intake/internal/router"
	"github.com/echologistics/carrier-intake/internal/service"
	"github.com/echologistics/carrier-intake/internal/validate"
	"github.com/echologistics/carrier-intake/internal/wizard"
)

func main() {
	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Connect to the document store
	pool, err := db.NewPool(cfg.StoreHost, cfg.StorePort, cfg.PoolSize)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer pool.Close()
	log.Printf("Connected to document store at %s:%d (pool size: %d)", cfg.StoreHost, cfg.StorePort, cfg.PoolSize)

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	agreementRepo := repository.NewAgreementRepo(pool)

	// Services
	validator := validate.New(cfg.DispatchCompanies)
	notifier := mailer.New(mailer.Config{
		Host:          cfg.SMTPHost,
		Port:          cfg.SMTPPort,
		Username:      cfg.SMTPUser,
		Password:      cfg.SMTPPass,
		From:          cfg.FromAddress,
		OperatorEmail: cfg.OperatorEmail,
	})
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	agreementSvc := service.NewAgreementService(agreementRepo, validator, notifier)

	// Wizard sessions
	sessions := wizard.NewSessions(30 * time.Minute)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	agreementH := handler.NewAgreementHandler(agreementSvc)
	wizardH := handler.NewWizardHandler(sessions, validator, agreementSvc)
	adminH := handler.NewAdminHandler(agreementSvc)
	dashH := handler.NewDashboardHandler(agreementRepo)

	// Router
	r := router.New(cfg.JWTSecret, authH, agreementH, wizardH, adminH, dashH)

	// Index creation and admin seeding run in background so a slow or
	// briefly unreachable store does not block startup.
	go func() {
		log.Printf("Background init: creating user indexes...")
		if err := userRepo.EnsureIndexes(); err != nil {
			log.Printf("Warning: user index creation failed: %v", err)
		}
		log.Printf("Background init: creating agreement indexes...")
		if err := agreementRepo.EnsureIndexes(); err != nil {
			log.Printf("Warning: agreement index creation failed: %v", err)
		}
		log.Printf("Background init: seeding admin user...")
		if err := authSvc.SeedAdmin(cfg.AdminEmail, cfg.AdminPass); err != nil {
			log.Printf("Warning: failed to seed admin: %v", err)
		}
		log.Printf("Background init: done")
	}()

	log.Printf("Carrier intake server starting on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
