// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	activityfeature "github.com/dalemusser/assetdesk/internal/app/features/activity"
	alertsfeature "github.com/dalemusser/assetdesk/internal/app/features/alerts"
	assetsfeature "github.com/dalemusser/assetdesk/internal/app/features/assets"
	assignmentsfeature "github.com/dalemusser/assetdesk/internal/app/features/assignments"
	healthfeature "github.com/dalemusser/assetdesk/internal/app/features/health"
	maintenancefeature "github.com/dalemusser/assetdesk/internal/app/features/maintenance"
	reportsfeature "github.com/dalemusser/assetdesk/internal/app/features/reports"
	vendorsfeature "github.com/dalemusser/assetdesk/internal/app/features/vendors"
	"github.com/dalemusser/assetdesk/internal/app/lifecycle"
	activitystore "github.com/dalemusser/assetdesk/internal/app/store/activity"
	alertstore "github.com/dalemusser/assetdesk/internal/app/store/alerts"
	assetstore "github.com/dalemusser/assetdesk/internal/app/store/assets"
	assignmentstore "github.com/dalemusser/assetdesk/internal/app/store/assignments"
	maintenancestore "github.com/dalemusser/assetdesk/internal/app/store/maintenance"
	"github.com/dalemusser/assetdesk/internal/app/store/queries/reportqueries"
	vendorstore "github.com/dalemusser/assetdesk/internal/app/store/vendors"
	"github.com/dalemusser/assetdesk/internal/app/system/activitylog"
	"github.com/dalemusser/assetdesk/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. AssetDesk builds one store per
// collection, the assignment lifecycle service on top of the asset and
// assignment stores, and mounts the JSON API under /api with per-IP rate
// limiting. /health stays outside the limiter so orchestrator probes are
// never throttled.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	assets := assetstore.New(db)
	assignments := assignmentstore.New(db)
	vendors := vendorstore.New(db)
	maintenance := maintenancestore.New(db)
	alerts := alertstore.New(db)
	activities := activitystore.New(db)
	queries := reportqueries.New(db)

	activity := activitylog.New(activities, logger, appCfg.ActivityLogMode)
	svc := lifecycle.New(assets, assignments, activity, db, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		if appCfg.RateLimitPerMinute > 0 {
			limiter := ratelimit.New(appCfg.RateLimitPerMinute, time.Minute)
			api.Use(ratelimit.Middleware(limiter))
		}

		assetsHandler := assetsfeature.NewHandler(assets, assignments, alerts, activity, appCfg.WarrantyAlertWindowDays, logger)
		api.Mount("/assets", assetsfeature.Routes(assetsHandler))

		assignmentsHandler := assignmentsfeature.NewHandler(svc, logger)
		api.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler))

		vendorsHandler := vendorsfeature.NewHandler(vendors, activity, logger)
		api.Mount("/vendors", vendorsfeature.Routes(vendorsHandler))

		maintenanceHandler := maintenancefeature.NewHandler(maintenance, assets, activity, logger)
		api.Mount("/maintenance", maintenancefeature.Routes(maintenanceHandler))

		reportsHandler := reportsfeature.NewHandler(queries, vendors, logger)
		api.Mount("/reports", reportsfeature.Routes(reportsHandler))

		alertsHandler := alertsfeature.NewHandler(alerts, logger)
		api.Mount("/alerts", alertsfeature.Routes(alertsHandler))

		activityHandler := activityfeature.NewHandler(activities, logger)
		api.Mount("/activity", activityfeature.Routes(activityHandler))
	})

	return r, nil
}
