// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, request limits). AppConfig is everything specific to
// AssetDesk itself; fields are loaded in LoadConfig from config files,
// ASSETDESK_* environment variables, or command-line flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// WarrantyAlertWindowDays is how many days before a warranty expiry a
	// newly created asset raises a warning alert (inclusive).
	WarrantyAlertWindowDays int

	// ActivityLogMode controls activity feed logging:
	// "all" (db+log), "db", "log", or "off".
	ActivityLogMode string

	// AlertCleanupInterval is how often the background worker purges
	// expired alerts.
	AlertCleanupInterval time.Duration

	// API rate limiting (requests per client IP per minute; 0 disables).
	RateLimitPerMinute int
}
