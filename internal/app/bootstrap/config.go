// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for DevCircle.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, identity_mode, etc.
//   - Environment variables: DEVCIRCLE_MONGO_URI, DEVCIRCLE_IDENTITY_MODE, etc.
//   - Command-line flags: --mongo_uri, --identity_mode, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "devcircle", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Identity provider
	{Name: "identity_mode", Default: "dev", Desc: "Identity provider mode: 'jwks' (external provider) or 'dev' (in-process)"},
	{Name: "identity_jwks_url", Default: "", Desc: "Provider JWK Set URL (jwks mode)"},
	{Name: "identity_issuer", Default: "", Desc: "Required token issuer claim (jwks mode)"},
	{Name: "identity_audience", Default: "", Desc: "Required token audience claim (jwks mode)"},
	{Name: "identity_admin_base_url", Default: "", Desc: "Provider admin API base URL (jwks mode)"},
	{Name: "identity_token_url", Default: "", Desc: "OAuth2 client-credentials token endpoint (jwks mode)"},
	{Name: "identity_client_id", Default: "", Desc: "Service client id for the provider admin API"},
	{Name: "identity_client_secret", Default: "", Desc: "Service client secret for the provider admin API"},
	{Name: "identity_dev_secret", Default: "dev-only-change-me-0123456789ABCDEF", Desc: "HS256 signing secret for the dev provider (must be strong in production)"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the user promoted to admin on startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, environment variables (WAFFLE_* for core, DEVCIRCLE_* for
// app), and command-line flags, merged with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DEVCIRCLE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		IdentityMode:         appValues.String("identity_mode"),
		IdentityJWKSURL:      appValues.String("identity_jwks_url"),
		IdentityIssuer:       appValues.String("identity_issuer"),
		IdentityAudience:     appValues.String("identity_audience"),
		IdentityAdminBaseURL: appValues.String("identity_admin_base_url"),
		IdentityTokenURL:     appValues.String("identity_token_url"),
		IdentityClientID:     appValues.String("identity_client_id"),
		IdentityClientSecret: appValues.String("identity_client_secret"),
		IdentityDevSecret:    appValues.String("identity_dev_secret"),

		AdminEmail: appValues.String("admin_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backends are touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.IdentityMode {
	case "dev":
		if coreCfg.Env == "prod" {
			return fmt.Errorf("identity_mode 'dev' is not allowed in prod")
		}
	case "jwks":
		required := map[string]string{
			"identity_jwks_url":       appCfg.IdentityJWKSURL,
			"identity_issuer":         appCfg.IdentityIssuer,
			"identity_audience":       appCfg.IdentityAudience,
			"identity_admin_base_url": appCfg.IdentityAdminBaseURL,
			"identity_token_url":      appCfg.IdentityTokenURL,
			"identity_client_id":      appCfg.IdentityClientID,
			"identity_client_secret":  appCfg.IdentityClientSecret,
		}
		for name, v := range required {
			if v == "" {
				return fmt.Errorf("identity_mode 'jwks' requires %s to be set", name)
			}
		}
	default:
		return fmt.Errorf("identity_mode must be 'jwks' or 'dev', got %q", appCfg.IdentityMode)
	}

	return nil
}
