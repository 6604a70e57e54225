// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	adminfeature "github.com/devcirclehq/devcircle/internal/app/features/admin"
	chatfeature "github.com/devcirclehq/devcircle/internal/app/features/chat"
	eventsfeature "github.com/devcirclehq/devcircle/internal/app/features/events"
	healthfeature "github.com/devcirclehq/devcircle/internal/app/features/health"
	projectsfeature "github.com/devcirclehq/devcircle/internal/app/features/projects"
	registerfeature "github.com/devcirclehq/devcircle/internal/app/features/register"
	tasksfeature "github.com/devcirclehq/devcircle/internal/app/features/tasks"
	usersfeature "github.com/devcirclehq/devcircle/internal/app/features/users"
	userstore "github.com/devcirclehq/devcircle/internal/app/store/users"
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. The identity provider is built here so
// the bearer middleware and the approval workflow share one instance.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	provider, err := buildIdentityProvider(context.Background(), appCfg, deps, logger)
	if err != nil {
		logger.Error("identity provider init failed", zap.Error(err))
		return nil, err
	}

	mw := &auth.Middleware{
		Verifier: provider,
		Users:    userstore.New(deps.MongoDatabase),
		Log:      logger,
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Public registration.
	registerHandler := registerfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/auth", registerfeature.Routes(registerHandler))

	// Admin review of registration requests.
	adminHandler := adminfeature.NewHandler(deps.MongoClient, deps.MongoDatabase, provider, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, mw))

	// Member directory and leaderboard.
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, mw))
	r.Mount("/leaderboard", usersfeature.LeaderboardRoutes(usersHandler, mw))

	// Events and RSVP.
	eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, mw))

	// Projects and task board.
	projectsHandler := projectsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler, mw))

	tasksHandler := tasksfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/tasks", tasksfeature.Routes(tasksHandler, mw))

	// Community chat log.
	chatHandler := chatfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/chat", chatfeature.Routes(chatHandler, mw))

	return r, nil
}
