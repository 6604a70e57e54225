// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/devcirclehq/devcircle/internal/app/store/users"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after DB connections and schema
// setup, before the HTTP handler is built.
//
// If admin_email is configured, the matching user is promoted to the
// admin role here. Promotion is idempotent; a missing user is only
// logged, since the admin may not have been approved yet.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}

	promoted, err := userstore.New(deps.MongoDatabase).PromoteAdmin(ctx, appCfg.AdminEmail)
	if err != nil {
		return err
	}
	if promoted {
		logger.Info("admin user promoted", zap.String("email", appCfg.AdminEmail))
	} else {
		logger.Warn("admin_email set but no matching user yet", zap.String("email", appCfg.AdminEmail))
	}
	return nil
}
