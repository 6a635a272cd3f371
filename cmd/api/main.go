package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/veenakrishnan01/menu-analyser/internal/analyses"
	"github.com/veenakrishnan01/menu-analyser/internal/analysis"
	"github.com/veenakrishnan01/menu-analyser/internal/auth"
	"github.com/veenakrishnan01/menu-analyser/internal/config"
	"github.com/veenakrishnan01/menu-analyser/internal/db"
	"github.com/veenakrishnan01/menu-analyser/internal/extract"
	"github.com/veenakrishnan01/menu-analyser/internal/llm"
	"github.com/veenakrishnan01/menu-analyser/internal/menu"
	"github.com/veenakrishnan01/menu-analyser/internal/notify"
	"github.com/veenakrishnan01/menu-analyser/internal/quota"
	"github.com/veenakrishnan01/menu-analyser/internal/router"
	"github.com/veenakrishnan01/menu-analyser/internal/validate"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	pool := db.ConnectPostgres(cfg.Database.URL)
	defer pool.Close()

	model := llm.NewGeminiClient(llm.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	})

	fanout := notify.Fanout{}
	if cfg.CRM.APIKey != "" && cfg.CRM.LocationID != "" {
		fanout.CRM = notify.NewCRMNotifier(notify.CRMConfig{
			APIKey:     cfg.CRM.APIKey,
			LocationID: cfg.CRM.LocationID,
			BaseURL:    cfg.CRM.BaseURL,
		}, log)
	} else {
		log.Warn("CRM credentials not configured, lead capture disabled")
	}
	if cfg.Mail.APIKey != "" && cfg.Mail.FromEmail != "" {
		fanout.Mail = notify.NewMailer(notify.MailConfig{
			APIKey:    cfg.Mail.APIKey,
			BaseURL:   cfg.Mail.BaseURL,
			FromEmail: cfg.Mail.FromEmail,
			FromName:  cfg.Mail.FromName,
		}, log)
	} else {
		log.Warn("mail credentials not configured, welcome emails disabled")
	}
	var notifier notify.Notifier = fanout

	userRepo := auth.NewPostgresUserRepository(pool)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService, notifier)

	resolver := extract.NewResolver(model, extract.Config{
		MaxFileBytes: cfg.Intake.MaxFileBytes,
		URLMinChars:  cfg.Intake.URLMinChars,
		FetchTimeout: time.Duration(cfg.Intake.FetchTimeoutSec) * time.Second,
	}, log)

	validator := validate.NewValidator(validate.Thresholds{
		ImageMinChars:    cfg.Validator.ImageMinChars,
		StrictMinChars:   cfg.Validator.StrictMinChars,
		NoDigitsMaxChars: cfg.Validator.NoDigitsMaxChars,
		NoVocabMaxChars:  cfg.Validator.NoVocabMaxChars,
		RepetitionTokens: cfg.Validator.RepetitionTokens,
		MinDistinctRatio: cfg.Validator.MinDistinctRatio,
	})

	engine := analysis.NewEngine(model, log)
	quotaManager := quota.NewManager(quota.NewPostgresRepository(pool), cfg.Quota.DailyLimit)
	recordRepo := analyses.NewPostgresRepository(pool)

	menuService := menu.NewService(resolver, validator, engine, quotaManager, recordRepo, notifier, log)
	menuHandler := menu.NewHandler(menuService)

	analysesHandler := analyses.NewHandler(analyses.NewService(recordRepo, log))
	quotaHandler := quota.NewHandler(quotaManager)

	r := router.NewRouter(router.Handlers{
		Auth:     authHandler,
		Menu:     menuHandler,
		Analyses: analysesHandler,
		Quota:    quotaHandler,
	}, cfg.Server.CORS.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.WithField("addr", addr).Info("starting menu analyser API")
	if err := r.Run(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
