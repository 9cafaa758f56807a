package router

import (
	"github.com/oksasatya/go-commerce-user/internal/application"
	"github.com/oksasatya/go-commerce-user/internal/container"
	"github.com/oksasatya/go-commerce-user/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/go-commerce-user/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-commerce-user/internal/interface/http"
	"github.com/oksasatya/go-commerce-user/internal/router/modules"
	"github.com/oksasatya/go-commerce-user/pkg/helpers"
)

type UserModuleDeps struct {
	Service *application.Service
	Handler *handlers.UserHandler
}

// BuildService assembles the account service from container singletons.
func BuildService() *application.Service {
	cfg := container.GetConfig()

	var notifier application.Notifier
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = notify.NewEmailNotifier(pub, cfg)
	}

	return application.NewService(
		pginfra.NewStore(container.GetPGPool()),
		helpers.NewBcryptHasher(cfg.BcryptCost),
		notifier,
		application.NewMetrics(container.GetRegistry()),
		container.GetLogger(),
		container.GetClock(),
	)
}

func buildUserDeps() UserModuleDeps {
	service := BuildService()
	return UserModuleDeps{
		Service: service,
		Handler: handlers.NewUserHandler(service, container.GetLogger()),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(
		userDeps.Handler,
		container.GetRedis(),
		cfg.LoginIDHeader,
		cfg.PasswordHeader,
		cfg.SignUpRateLimit,
		cfg.AuthRateLimit,
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRegistry(), container.GetRedis()))
	}
}
