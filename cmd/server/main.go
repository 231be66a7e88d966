package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "haccp/docs"
	"haccp/internal/config"
	"haccp/internal/email/noop"
	"haccp/internal/email/ses"
	"haccp/internal/handler"
	"haccp/internal/logging"
	"haccp/internal/port"
	"haccp/internal/repository/postgres"
	"haccp/internal/router"
	"haccp/internal/service"
	s3storage "haccp/internal/storage/s3"
)

// @title HACCP Documentation API
// @version 1.0
// @description Multi-tenant HACCP check documentation: staff sign recurring checks with initials and PIN, admins manage forms and staff.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flush, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer flush()
	logger := zap.L().Named("server")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	marketRepo := postgres.NewMarketRepo(db)
	staffRepo := postgres.NewStaffRepo(db)
	rbacRepo := postgres.NewRbacRepo(db)
	myMarketRepo := postgres.NewMyMarketRepo(db)
	sectionRepo := postgres.NewDokuSectionRepo(db)
	formRepo := postgres.NewFormDefinitionRepo(db)
	instanceRepo := postgres.NewFormInstanceRepo(db)
	entryRepo := postgres.NewFormEntryRepo(db)
	attachmentRepo := postgres.NewAttachmentRepo(db)
	reminderRepo := postgres.NewReminderRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	sender, err := newEmailSender(cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	loc := cfg.App.Location()

	// Initialize services
	rbacSvc := service.NewRbacService(rbacRepo, staffRepo, marketRepo)
	tenantSvc := service.NewTenantService(tenantRepo, cfg.App.Timezone)
	marketSvc := service.NewMarketService(marketRepo, staffRepo, rbacSvc)
	staffSvc := service.NewStaffService(staffRepo, marketRepo, rbacSvc)
	authSvc := service.NewAuthService(tenantRepo, staffRepo, myMarketRepo, marketSvc, rbacSvc, cfg.JWT)
	sectionSvc := service.NewDokuSectionService(sectionRepo, marketRepo, rbacSvc)
	formSvc := service.NewFormDefinitionService(formRepo, sectionRepo, marketRepo, rbacSvc)
	entrySvc := service.NewEntryService(formRepo, instanceRepo, entryRepo, tenantRepo, staffSvc, cfg.Entries, loc)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, entryRepo, s3Client, &cfg.S3)
	dokuSvc := service.NewDokuService(sectionRepo, formRepo, instanceRepo, entryRepo, tenantRepo, loc)
	periodSvc := service.NewPeriodService(tenantRepo, loc)

	// Setup router
	r := router.Setup(
		router.Services{Auth: authSvc, Rbac: rbacSvc, Markets: marketSvc},
		router.Handlers{
			Auth:       handler.NewAuthHandler(authSvc, marketSvc),
			Tenant:     handler.NewTenantHandler(tenantSvc),
			Market:     handler.NewMarketHandler(marketSvc),
			Staff:      handler.NewStaffHandler(staffSvc),
			Rbac:       handler.NewRbacHandler(rbacSvc),
			Section:    handler.NewSectionHandler(sectionSvc),
			Form:       handler.NewFormHandler(formSvc),
			Entry:      handler.NewEntryHandler(entrySvc),
			Attachment: handler.NewAttachmentHandler(attachmentSvc),
			Doku:       handler.NewDokuHandler(dokuSvc, marketSvc),
			Period:     handler.NewPeriodHandler(periodSvc),
			Health:     handler.NewHealthHandler(db, s3Client, cfg.S3.Bucket),
		},
		cfg.CORS.AllowedOrigins,
		cfg.Server.Environment != "production",
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if cfg.Reminders.Enabled {
		worker := service.NewReminderWorker(
			tenantRepo, marketRepo, formRepo, instanceRepo, staffRepo, reminderRepo, sender,
			service.ReminderConfig{
				PollInterval: cfg.Reminders.PollInterval,
				Concurrency:  cfg.Reminders.Concurrency,
			},
			loc,
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Start(ctx)
		}()
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		stop()
		wg.Wait()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	wg.Wait()
	logger.Info("server stopped")
	return nil
}

func newEmailSender(cfg config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	case "", "noop":
		return noop.NewNoopSender(cfg.FrontendURL), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
