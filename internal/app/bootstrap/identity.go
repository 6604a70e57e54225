// internal/app/bootstrap/identity.go
package bootstrap

import (
	"context"

	"github.com/devcirclehq/devcircle/internal/app/system/identity"
	"go.uber.org/zap"
)

// externalProvider pairs the JWKS verifier with the admin API client to
// satisfy identity.Provider in jwks mode.
type externalProvider struct {
	*identity.JWKSVerifier
	*identity.AdminClient
}

// jwksCloser stops the background key refresh on shutdown; nil in dev
// mode.
var jwksCloser func()

// buildIdentityProvider constructs the identity provider selected by
// IdentityMode.
func buildIdentityProvider(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (identity.Provider, error) {
	if appCfg.IdentityMode == "dev" {
		logger.Warn("using in-process dev identity provider")
		return identity.NewDevProvider(deps.MongoDatabase, []byte(appCfg.IdentityDevSecret)), nil
	}

	verifier, err := identity.NewJWKSVerifier(ctx, appCfg.IdentityJWKSURL, appCfg.IdentityIssuer, appCfg.IdentityAudience, logger)
	if err != nil {
		return nil, err
	}
	jwksCloser = verifier.Close

	admin := identity.NewAdminClient(identity.AdminConfig{
		BaseURL:      appCfg.IdentityAdminBaseURL,
		TokenURL:     appCfg.IdentityTokenURL,
		ClientID:     appCfg.IdentityClientID,
		ClientSecret: appCfg.IdentityClientSecret,
	})

	return externalProvider{JWKSVerifier: verifier, AdminClient: admin}, nil
}
