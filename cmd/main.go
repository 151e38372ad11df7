package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/config"
	firestoredb "github.com/webdroid21/fin-beacon-pro-sub001/internal/database/firestore"
	miniodb "github.com/webdroid21/fin-beacon-pro-sub001/internal/database/minio"
	redisdb "github.com/webdroid21/fin-beacon-pro-sub001/internal/database/redis"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/event"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/handlers"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/mail"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/repository"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/services"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/storage"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/fin-beacon", "log", "invoicing_service")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()
	ctx := context.Background()

	fsClient, err := firestoredb.NewClient(ctx, cfg.FirebaseCfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer fsClient.Close()

	minioClient, err := miniodb.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}
	defer minioClient.Close()

	redisClient, err := redisdb.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		log.Printf("Redis unavailable, dashboard summaries are uncached: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	amqpURL := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQCfg.Username,
		cfg.RabbitMQCfg.Password,
		cfg.RabbitMQCfg.Host,
		cfg.RabbitMQCfg.Port)

	var publisher *event.Publisher
	publisher, err = event.NewPublisher(amqpURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, invoice notifications disabled: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	repos := repository.New(fsClient)
	objects := storage.NewObjectStore(minioClient)

	// A typed nil publisher must not reach the interface field.
	invoiceService := services.NewInvoiceService(repos, nil)
	if publisher != nil {
		invoiceService = services.NewInvoiceService(repos, publisher)
	}
	pdfService := services.NewPDFService(repos, objects)
	dashboardService := services.NewDashboardService(repos, redisClient)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Invoicing service is healthy")
	})

	handlers.NewInvoiceHandler(invoiceService, pdfService, repos, objects).Register(app)
	handlers.NewClientHandler(repos).Register(app)
	handlers.NewFinanceHandler(repos, dashboardService, objects).Register(app)
	handlers.NewSupportHandler(repos).Register(app)
	handlers.NewProfileHandler(repos, objects).Register(app)

	if publisher != nil && cfg.SMTPCfg.Username != "" {
		mailer := mail.NewMailer(cfg.SMTPCfg.Username, cfg.SMTPCfg.Password)
		consumer, err := event.NewConsumer(&event.ConsumerConfig{
			RabbitMQURL:   amqpURL,
			PrefetchCount: 10,
		}, mailer)
		if err != nil {
			log.Printf("Failed to setup queue consumer: %v", err)
		} else {
			defer consumer.Close()
			go func() {
				if err := consumer.StartConsuming(context.Background()); err != nil {
					log.Printf("Consumer error: %v", err)
				}
			}()
		}
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutting down server...")
}
