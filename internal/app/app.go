package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/joho/godotenv"

	"github.com/rudovey/workpay/internal/cache"
	"github.com/rudovey/workpay/internal/config"
	"github.com/rudovey/workpay/internal/domain"
	"github.com/rudovey/workpay/internal/draft"
	"github.com/rudovey/workpay/internal/env"
	"github.com/rudovey/workpay/internal/errHandler"
	"github.com/rudovey/workpay/internal/file"
	"github.com/rudovey/workpay/internal/helper"
	"github.com/rudovey/workpay/internal/notifier"
	"github.com/rudovey/workpay/internal/repository"
	seeders "github.com/rudovey/workpay/internal/seeder"
	"github.com/rudovey/workpay/internal/smtp"
	"github.com/rudovey/workpay/internal/stream"
)

// Essential services and resources are exposed to the application
// this makes it possible for methods to have access to these items when they need them
type Application struct {
	Config       config.Config
	DB           repository.Database
	Logger       *slog.Logger
	Mailer       *smtp.Mailer
	WG           sync.WaitGroup
	ErrorHandler *errHandler.ErrorRepository
	Helper       *helper.HelperRepository
	Kafka        *stream.KafkaStream
	Cache        *cache.Cache
	FileUploader *file.FileUploader
	Notifier     *notifier.TelegramNotifier

	Claims      *domain.ClaimService
	Mentors     *domain.MentorService
	Wallets     *domain.WalletService
	Leaderboard *domain.LeaderboardService
	Drafts      *draft.Store
}

func NewApplication(logger *slog.Logger) (*Application, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", "error", err)
	}

	var cfg config.Config

	// config values are loaded from the .env file
	// Default values are provided for these items and these should strictly be values for development mode only
	// make sure no production-level value is exposed as default value here
	cfg.BaseURL = env.GetString("BASE_URL", "http://localhost:4444")
	cfg.HttpPort = env.GetInt("HTTP_PORT", 4444)

	cfg.Db.Dsn = env.GetString("DB_DSN", "user:pass@localhost:5432/workpay")
	cfg.Db.Automigrate = env.GetBool("DB_AUTOMIGRATE", true)

	cfg.Jwt.SecretKey = env.GetString("JWT_SECRET_KEY", "hnm4eyqXvaVpBtLbeOslGBYkUAPMGIk4")

	// server errors won't be sent via email if the NOTIFICATIONS_EMAIL wasn't set in the .env file
	cfg.Notifications.Email = env.GetString("NOTIFICATIONS_EMAIL", "")

	cfg.Smtp.Host = env.GetString("SMTP_HOST", "example.smtp.host")
	cfg.Smtp.Port = env.GetInt("SMTP_PORT", 25)
	cfg.Smtp.Username = env.GetString("SMTP_USERNAME", "example_username")
	cfg.Smtp.Password = env.GetString("SMTP_PASSWORD", "pa55word")
	cfg.Smtp.From = env.GetString("SMTP_FROM", "Workpay <no_reply@example.org>")

	cfg.KafkaServers = env.GetString("KAFKA_SERVERS", "localhost:9092")
	cfg.RedisServer = env.GetString("REDIS_SERVER", "localhost:6379")

	cfg.FileUploader.ApiKey = env.GetString("CLOUDINARY_API_KEY", "")
	cfg.FileUploader.CloudName = env.GetString("CLOUDINARY_CLOUD_NAME", "")
	cfg.FileUploader.ApiSecret = env.GetString("CLOUDINARY_API_SECRET", "")

	cfg.Telegram.BotToken = env.GetString("TELEGRAM_BOT_TOKEN", "")

	cfg.RootAdmin.WorkerID = env.GetInt64("ROOT_ADMIN_WORKER_ID", 0)
	cfg.RootAdmin.Email = env.GetString("ROOT_ADMIN_EMAIL", "root@example.org")

	db, err := repository.New(cfg.Db.Dsn, cfg.Db.Automigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mailer, err := smtp.NewMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.From)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	errorHandler := errHandler.New(cfg.BaseURL, cfg.Notifications.Email, mailer, logger)

	app := &Application{
		Config:       cfg,
		DB:           db,
		Logger:       logger,
		Mailer:       mailer,
		ErrorHandler: errorHandler,
	}

	app.Helper = helper.New(cfg.BaseURL, &app.WG, errorHandler)

	app.Kafka = stream.New(cfg.KafkaServers)
	app.Cache = cache.New(cfg.RedisServer, 0)
	app.FileUploader = file.New(cfg.FileUploader.CloudName, cfg.FileUploader.ApiKey, cfg.FileUploader.ApiSecret)

	if cfg.Telegram.BotToken != "" {
		app.Notifier, err = notifier.New(cfg.Telegram.BotToken)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
	}

	var events domain.EventPublisher = stream.NewPublisher(app.Kafka, logger)

	app.Claims = domain.NewClaimService(db, events)
	app.Mentors = domain.NewMentorService(db, events)
	app.Wallets = domain.NewWalletService(db)
	app.Leaderboard = domain.NewLeaderboardService(db, app.Cache, logger)
	app.Drafts = draft.NewStore(app.Cache)

	seeders.New(db, cfg.RootAdmin.WorkerID, cfg.RootAdmin.Email).Run()

	return app, nil
}
