package common

import (
	"context"
	"log"
	"strings"

	"lumina-ledger/internal/api"
	"lumina-ledger/internal/bonus"
	"lumina-ledger/internal/database"
	"lumina-ledger/internal/models"
	"lumina-ledger/internal/trading"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads a local .env file when present. Values already exported in
// the environment win.
func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded (%v), using process environment\n", err)
		return
	}
	log.Println("Loaded environment variables from .env file")
}

type Services struct {
	DbService     *database.Service
	Generator     *trading.Generator
	BonusEngine   *bonus.Engine
	LedgerService *api.LedgerService
}

func InitializeLogger(cfg models.LogConfig) (*zap.Logger, func()) {
	var logger *zap.Logger
	var err error
	if cfg.Development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	generator := trading.NewGenerator(nil)
	engine := bonus.NewEngine(dbService, bonus.WithRegistrationAmount(cfg.Bonus.RegistrationAmount))

	zap.L().Info("Ledger services initialized",
		zap.String("database", cfg.Database.Path),
		zap.String("registration_bonus", cfg.Bonus.RegistrationAmount.String()))

	return &Services{
		DbService:     dbService,
		Generator:     generator,
		BonusEngine:   engine,
		LedgerService: api.NewLedgerService(dbService, generator, engine),
	}, nil
}

// InitializeDatabaseOnly initializes just the database service
// Useful for read-only operations like balance reports
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

func (cs *Services) Close() {
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
