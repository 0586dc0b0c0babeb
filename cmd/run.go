package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"lottobot/application"
	"lottobot/bot"
	"lottobot/config"
	"lottobot/database"
	"lottobot/domain/interfaces"
	"lottobot/infrastructure"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	setupLogging(cfg.Environment)

	log.Info("Starting lottobot...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Initialize event publishing
	var eventPublisher interfaces.EventPublisher
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		log.Infof("Connecting to NATS at %s...", cfg.NATSServers)
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			db.Close()
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		eventPublisher = infrastructure.NewNATSEventPublisher(natsClient)
		log.Info("NATS connection established successfully")
	} else {
		log.Warn("NATS_SERVERS not set, events will not be published")
		eventPublisher = infrastructure.NewNoopEventPublisher()
	}

	// Initialize unit of work factory and the ledger executor
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventPublisher)
	executor := application.NewLedgerExecutor(uowFactory)

	translator := infrastructure.NewTranslator()

	// Initialize Telegram bot
	log.Info("Initializing Telegram bot...")
	botConfig := bot.Config{
		Token:          cfg.TelegramToken,
		AdminIDs:       cfg.AdminIDs,
		AnnounceChatID: cfg.AnnounceChatID,
	}
	telegramBot, err := bot.New(botConfig, executor, translator, cfg.StartingBalance)
	if err != nil {
		if natsClient != nil {
			natsClient.Close()
		}
		db.Close()
		return fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Telegram bot initialized successfully")

	// Start the daily settlement worker
	settlementWorker := application.NewSettlementWorker(
		executor, telegramBot, translator, telegramBot, cfg.SettlementHour)
	stopSettlementWorker := settlementWorker.Start(ctx)

	// Poll for updates until the context is cancelled
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	telegramBot.Start(ctx)

	// Cleanup resources
	log.Info("Shutting down bot...")
	stopSettlementWorker()

	if err := telegramBot.Close(); err != nil {
		log.Errorf("Error closing Telegram bot: %v", err)
	}

	if natsClient != nil {
		natsClient.Close()
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

func setupLogging(environment string) {
	if environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetLevel(log.DebugLevel)
}
