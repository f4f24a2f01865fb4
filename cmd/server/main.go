package main

import (
	"fmt"
	"log"

	"tradebook/internal/config"
	emailnoop "tradebook/internal/email/noop"
	emailses "tradebook/internal/email/ses"
	"tradebook/internal/handler"
	"tradebook/internal/port"
	"tradebook/internal/repository/postgres"
	"tradebook/internal/router"
	"tradebook/internal/service"
	s3storage "tradebook/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	accountRepo := postgres.NewAccountRepo(db)
	userRepo := postgres.NewUserRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	jobRepo := postgres.NewJobRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	milestoneRepo := postgres.NewMilestoneRepo(db)
	expenseRepo := postgres.NewExpenseRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = emailnoop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, accountRepo, cfg.JWT)
	registrationSvc := service.NewRegistrationService(accountRepo, userRepo, settingsRepo, authSvc, cfg.Billing)
	settingsSvc := service.NewSettingsService(settingsRepo, cfg.Billing)
	customerSvc := service.NewCustomerService(customerRepo)
	jobSvc := service.NewJobService(jobRepo, customerRepo)
	documentSvc := service.NewDocumentService(docRepo, customerRepo, settingsSvc, emailSender, cfg.Email.ShareBaseURL)
	creditNoteSvc := service.NewCreditNoteService(docRepo, settingsSvc)
	paymentSvc := service.NewPaymentService(paymentRepo, docRepo, customerRepo, settingsSvc, emailSender)
	milestoneSvc := service.NewMilestoneService(milestoneRepo, docRepo, settingsSvc)
	expenseSvc := service.NewExpenseService(expenseRepo, jobRepo)
	reportSvc := service.NewReportService(docRepo, expenseRepo, settingsSvc)
	exportSvc := service.NewExportService(docRepo, customerRepo, accountRepo, settingsSvc, s3Client, cfg.S3.Bucket, cfg.S3.PresignExpiry)
	userSvc := service.NewUserService(userRepo)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, registrationSvc),
		Customer:   handler.NewCustomerHandler(customerSvc),
		Job:        handler.NewJobHandler(jobSvc),
		Document:   handler.NewDocumentHandler(documentSvc, exportSvc),
		CreditNote: handler.NewCreditNoteHandler(creditNoteSvc),
		Payment:    handler.NewPaymentHandler(paymentSvc),
		Milestone:  handler.NewMilestoneHandler(milestoneSvc),
		Expense:    handler.NewExpenseHandler(expenseSvc),
		Report:     handler.NewReportHandler(reportSvc),
		Settings:   handler.NewSettingsHandler(settingsSvc),
		User:       handler.NewUserHandler(userSvc),
		Health:     handler.NewHealthHandler(db),
	}

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, handlers)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
