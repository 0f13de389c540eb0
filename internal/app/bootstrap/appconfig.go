// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, body limits). AppConfig is everything specific to
// the document service: the MongoDB connection, file storage, audit
// logging and the background indexer.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage root for uploaded files (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving stored files (e.g., "/uploads")

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region string // AWS region
	StorageS3Bucket string // S3 bucket name
	StorageS3Prefix string // Key prefix (e.g., "documentos/")
	StorageS3URL    string // Public base URL for files stored in S3

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLogMode string

	// Background text extraction
	IndexerConcurrency int // Worker goroutines extracting text
	IndexerQueueSize   int // Pending extraction jobs before new ones are dropped
}
