package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rfp-desk/internal/models"
	"rfp-desk/internal/repository"
	"rfp-desk/internal/service"
	"rfp-desk/pkg/config"
	"rfp-desk/pkg/logger"
	"rfp-desk/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Development); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.ApplyMigrations(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	gateway, closeGateway := service.NewGateway(&cfg.GigaChat, appLogger)
	defer closeGateway()

	rfpService := service.NewRFPService(
		service.NewProcurementService(gateway, &cfg.Extraction, appLogger),
		repository.NewRFPRepository(db, appLogger),
		repository.NewProposalRepository(db, appLogger),
		repository.NewVendorRepository(db, appLogger),
		appLogger,
	)

	appLogger.Info("Starting database seeding...")

	seedDir := filepath.Join("cmd", "seed")
	cacheFile := filepath.Join(seedDir, ".seed_cache.json")
	if err := seedFixtures(ctx, filepath.Join(seedDir, "fixtures"), cacheFile, rfpService, appLogger); err != nil {
		appLogger.Fatal("Failed to seed demo data", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// ProcessedFile represents a seeded fixture in cache
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	RFPID       string    `json:"rfp_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about seeded fixtures
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

// Fixture is one demo RFP with the vendors invited to it and their replies.
type Fixture struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Vendors     []FixtureVendor `json:"vendors"`
}

type FixtureVendor struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactPerson string `json:"contactPerson"`
	Reply         string `json:"reply"`
}

// loadCache loads the cache of seeded fixtures
func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		return cache, nil
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}

	return cache, nil
}

// saveCache saves the cache of seeded fixtures
func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

func loadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if strings.TrimSpace(f.Description) == "" {
		return nil, fmt.Errorf("fixture %s has no description", filepath.Base(path))
	}
	return &f, nil
}

// seedFixtures creates an RFP per fixture file, registers its vendors and
// files their replies. Unchanged fixtures are skipped on later runs.
func seedFixtures(
	ctx context.Context,
	fixtureDir string,
	cacheFile string,
	rfps *service.RFPService,
	logger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will seed all fixtures", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	paths, err := filepath.Glob(filepath.Join(fixtureDir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list fixtures: %w", err)
	}
	if len(paths) == 0 {
		logger.Warn("No fixtures found", zap.String("dir", fixtureDir))
		return nil
	}

	for _, path := range paths {
		fileHash, err := calculateFileHash(path)
		if err != nil {
			logger.Warn("Failed to calculate file hash, will seed anyway", zap.String("path", path), zap.Error(err))
		}

		if cached, exists := cache.ProcessedFiles[path]; exists && cached.FileHash == fileHash {
			logger.Info("Fixture already seeded, skipping",
				zap.String("path", path),
				zap.String("rfp_id", cached.RFPID),
			)
			continue
		}

		fixture, err := loadFixture(path)
		if err != nil {
			logger.Error("Skipping fixture", zap.String("path", path), zap.Error(err))
			continue
		}

		rfpID, err := seedFixture(ctx, fixture, rfps, logger)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", path, err)
		}

		cache.ProcessedFiles[path] = ProcessedFile{
			FilePath:    path,
			FileHash:    fileHash,
			RFPID:       rfpID,
			ProcessedAt: time.Now(),
		}
	}

	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		logger.Info("Cache saved", zap.Int("processed_files", len(cache.ProcessedFiles)))
	}

	return nil
}

func seedFixture(ctx context.Context, f *Fixture, rfps *service.RFPService, logger *zap.Logger) (string, error) {
	rfp, source, err := rfps.CreateRFP(ctx, f.Title, f.Description)
	if err != nil {
		return "", err
	}
	subject := "Re: " + rfps.OutgoingSubject(rfp)

	for _, v := range f.Vendors {
		vendor, err := rfps.CreateVendor(ctx, v.Name, v.Email, v.ContactPerson)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(v.Reply) == "" {
			continue
		}
		if _, err := rfps.RecordReply(ctx, vendor.ID, models.VendorEmail{Subject: subject, Body: v.Reply}); err != nil {
			return "", err
		}
	}

	logger.Info("Seeded RFP",
		zap.String("rfp_id", rfp.ID.String()),
		zap.String("title", rfp.Title),
		zap.String("source", string(source)),
		zap.Int("vendors", len(f.Vendors)),
	)
	return rfp.ID.String(), nil
}
