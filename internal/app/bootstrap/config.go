// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for AssetDesk.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, mongo_database, etc.
//   - Environment variables: ASSETDESK_MONGO_URI, ASSETDESK_MONGO_DATABASE, etc.
//   - Command-line flags: --mongo_uri, --mongo_database, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "asset_desk", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Warranty alerts
	{Name: "warranty_alert_window_days", Default: 30, Desc: "Days ahead of warranty expiry that a new asset raises a warning alert"},

	// Activity feed
	{Name: "activity_log_mode", Default: "all", Desc: "Activity logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Background cleanup
	{Name: "alert_cleanup_interval", Default: "1h", Desc: "How often expired alerts are purged (e.g., 15m, 1h)"},

	// API rate limiting
	{Name: "rate_limit_per_minute", Default: 300, Desc: "Max API requests per client IP per minute (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ASSETDESK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		WarrantyAlertWindowDays: appValues.Int("warranty_alert_window_days"),
		ActivityLogMode:         appValues.String("activity_log_mode"),
		AlertCleanupInterval:    appValues.Duration("alert_cleanup_interval", time.Hour),
		RateLimitPerMinute:      appValues.Int("rate_limit_per_minute"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// AssetDesk validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and rejects settings the rest of the
// app would silently misbehave on.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.WarrantyAlertWindowDays < 0 {
		return fmt.Errorf("warranty_alert_window_days cannot be negative")
	}

	switch appCfg.ActivityLogMode {
	case "all", "db", "log", "off":
	default:
		return fmt.Errorf("activity_log_mode must be 'all', 'db', 'log', or 'off' (got %q)", appCfg.ActivityLogMode)
	}

	if appCfg.AlertCleanupInterval < time.Minute {
		return fmt.Errorf("alert_cleanup_interval must be at least 1m")
	}

	return nil
}
