package main

import (
	"fmt"
	"log"
	"time"

	"choubo/internal/config"
	"choubo/internal/email/noop"
	"choubo/internal/email/ses"
	"choubo/internal/handler"
	"choubo/internal/interpreter"
	"choubo/internal/llm"
	"choubo/internal/llm/local"
	"choubo/internal/llm/remote"
	"choubo/internal/port"
	"choubo/internal/repository/postgres"
	"choubo/internal/router"
	"choubo/internal/service"
	s3storage "choubo/internal/storage/s3"
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
	docRepo := postgres.NewDocumentRepo(db)
	captureRepo := postgres.NewOCRCaptureRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize the completion gateway and interpreter
	localClient := local.NewClient(&cfg.LLM.Local)
	remoteClient := remote.NewClient(&cfg.LLM.Remote)
	gateway := llm.NewGateway(
		localClient,
		remoteClient,
		cfg.LLM.MaxAttempts,
		time.Duration(cfg.LLM.RetryDelaySecs)*time.Second,
	)
	interp := interpreter.New(gateway, cfg.Interpreter.DefaultVendorName)

	// Initialize services
	documentSvc := service.NewDocumentService(
		docRepo,
		captureRepo,
		interp,
		s3Client,
		emailSender,
		cfg.S3.Bucket,
		cfg.S3.PresignExpiry,
		cfg.Email.ReviewAddress,
	)

	// Initialize handlers
	interpretH := handler.NewInterpretHandler(documentSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, interpretH, documentH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
