// Package app wires configuration, storage, services and HTTP routes.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"launchquote/internal/config"
	"launchquote/internal/database"
	"launchquote/internal/domain/lead"
	"launchquote/internal/domain/mail"
	"launchquote/internal/domain/pricing"
	"launchquote/internal/domain/submission"
	"launchquote/internal/domain/wizard"
	"launchquote/internal/middleware"
	"launchquote/internal/pkg/logger"
)

// App holds the long-lived dependencies shared by the binaries.
type App struct {
	Config     *config.Config
	DB         *gorm.DB
	Calculator *pricing.Calculator
	Leads      *lead.Service
	Mail       *mail.Service
	Gateway    *submission.Gateway
	Sessions   *wizard.Store

	lggr logger.Logger
}

// New connects to the database and builds every service.
func New(cfg *config.Config, lggr logger.Logger) (*App, error) {
	catalog, err := LoadCatalog(cfg.PricingCatalogPath)
	if err != nil {
		return nil, err
	}
	calc := pricing.NewCalculator(catalog)

	db, err := database.Connect(cfg.DatabaseURL, lggr.Named("database"))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	leads := lead.NewService(lead.NewRepository(db, lggr), calc, lggr)
	mailSvc := mail.NewService(NewMailer(cfg, lggr), calc, mail.Settings{
		From:       cfg.MailFrom,
		AdminEmail: cfg.AdminEmail,
		AdminName:  cfg.AdminName,
		SiteURL:    cfg.SiteURL,
	}, lggr)

	return &App{
		Config:     cfg,
		DB:         db,
		Calculator: calc,
		Leads:      leads,
		Mail:       mailSvc,
		Gateway:    submission.NewGateway(leads, mailSvc, lggr),
		Sessions:   wizard.NewStore(calc, cfg.WizardSessionTTL),
		lggr:       lggr,
	}, nil
}

// LoadCatalog reads the catalog at path, or the embedded default when path
// is empty.
func LoadCatalog(path string) (*pricing.Catalog, error) {
	catalog, err := pricing.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("load pricing catalog: %w", err)
	}
	return catalog, nil
}

// NewMailer sends through Resend when an API key is configured and logs
// messages otherwise.
func NewMailer(cfg *config.Config, lggr logger.Logger) mail.Mailer {
	if cfg.EmailEnabled() {
		return mail.NewResendMailer(cfg.ResendAPIKey)
	}
	lggr.Warnw("RESEND_API_KEY not set, emails are logged instead of sent")
	return mail.NewConsoleMailer(lggr)
}

// Migrate creates or updates the schema.
func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(&lead.Lead{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Router builds the HTTP API.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(a.lggr),
		middleware.CORS(a.Config.CORSAllowedOrigins),
	)

	r.GET("/health", a.health)

	leadHandler := lead.NewHandler(a.Leads)

	api := r.Group("/api")
	{
		pricing.RegisterRoutes(api, pricing.NewHandler(a.Calculator))
		lead.RegisterPublicRoutes(api, leadHandler)
		mail.RegisterRoutes(api, mail.NewHandler(a.Mail))
		wizard.RegisterRoutes(api, wizard.NewHandler(a.Sessions, a.Gateway, a.lggr))

		admin := api.Group("/admin")
		admin.Use(middleware.AdminTokenAuth(a.Config.AdminToken, a.lggr))
		lead.RegisterAdminRoutes(admin, leadHandler)
	}

	return r
}

func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		a.lggr.Errorw("Health check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Close releases the database connection.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
