// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm

	// Identity provider configuration.
	//
	// IdentityMode selects the provider: "jwks" verifies bearer tokens
	// against an external provider's JWK Set and provisions accounts
	// through its admin API; "dev" runs the self-contained provider
	// backed by the app database.
	IdentityMode         string
	IdentityJWKSURL      string // JWK Set endpoint (jwks mode)
	IdentityIssuer       string // Required issuer claim (jwks mode)
	IdentityAudience     string // Required audience claim (jwks mode)
	IdentityAdminBaseURL string // Provider admin API base URL (jwks mode)
	IdentityTokenURL     string // OAuth2 client-credentials token endpoint (jwks mode)
	IdentityClientID     string
	IdentityClientSecret string
	IdentityDevSecret    string // HS256 signing secret (dev mode)

	// AdminEmail names the user promoted to the admin role on startup.
	AdminEmail string
}
