// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	alertstore "github.com/dalemusser/assetdesk/internal/app/store/alerts"
	"github.com/dalemusser/assetdesk/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// alertCleanup is started in Startup and stopped in Shutdown.
var alertCleanup *workers.AlertCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. AssetDesk
// uses it to start the background worker that purges expired alerts.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	alertCleanup = workers.NewAlertCleanup(
		alertstore.New(deps.MongoDatabase),
		logger,
		appCfg.AlertCleanupInterval,
	)
	alertCleanup.Start()
	return nil
}
