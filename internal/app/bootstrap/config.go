// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for LexHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, storage_local_path, etc.
//   - Environment variables: LEXHUB_MONGO_URI, LEXHUB_STORAGE_LOCAL_PATH, etc.
//   - Command-line flags: --mongo_uri, --storage_local_path, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "lexhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage root for uploaded files"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving stored files"},

	// S3 configuration (only used if storage_type is 's3')
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "documentos/", Desc: "S3 key prefix"},
	{Name: "storage_s3_url", Default: "", Desc: "Public base URL for files stored in S3"},

	// Audit logging settings
	{Name: "audit_log_mode", Default: "all", Desc: "Document event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Background indexer settings
	{Name: "indexer_concurrency", Default: 2, Desc: "Worker goroutines for text extraction"},
	{Name: "indexer_queue_size", Default: 64, Desc: "Extraction queue capacity before jobs are dropped"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, LEXHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LEXHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		StorageS3Region: appValues.String("storage_s3_region"),
		StorageS3Bucket: appValues.String("storage_s3_bucket"),
		StorageS3Prefix: appValues.String("storage_s3_prefix"),
		StorageS3URL:    appValues.String("storage_s3_url"),

		AuditLogMode: appValues.String("audit_log_mode"),

		IndexerConcurrency: appValues.Int("indexer_concurrency"),
		IndexerQueueSize:   appValues.Int("indexer_queue_size"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// LexHub validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and rejects nonsensical indexer
// settings.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.StorageType {
	case "local":
		if appCfg.StorageLocalPath == "" {
			return fmt.Errorf("storage_local_path must not be empty")
		}
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3Region == "" {
			return fmt.Errorf("storage_s3_bucket and storage_s3_region must be set when storage_type is 's3'")
		}
		if appCfg.StorageS3URL == "" {
			return fmt.Errorf("storage_s3_url must be set when storage_type is 's3'")
		}
	default:
		return fmt.Errorf("storage_type must be 'local' or 's3' (got %q)", appCfg.StorageType)
	}
	if appCfg.IndexerConcurrency < 1 {
		return fmt.Errorf("indexer_concurrency must be at least 1 (got %d)", appCfg.IndexerConcurrency)
	}
	if appCfg.IndexerQueueSize < 1 {
		return fmt.Errorf("indexer_queue_size must be at least 1 (got %d)", appCfg.IndexerQueueSize)
	}

	switch appCfg.AuditLogMode {
	case "all", "db", "log", "off":
	default:
		return fmt.Errorf("audit_log_mode must be 'all', 'db', 'log' or 'off' (got %q)", appCfg.AuditLogMode)
	}

	return nil
}
