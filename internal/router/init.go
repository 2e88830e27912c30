package router

import (
	"github.com/jobboardhq/jobboard-api/internal/application"
	"github.com/jobboardhq/jobboard-api/internal/container"
	pginfra "github.com/jobboardhq/jobboard-api/internal/infrastructure/postgres"
	handlers "github.com/jobboardhq/jobboard-api/internal/interface/http"
	"github.com/jobboardhq/jobboard-api/internal/router/modules"
)

func buildService() *application.Service {
	cfg := container.GetConfig()
	repo := pginfra.NewAccountRepository(container.GetPGPool())

	svc := application.NewService(repo, container.GetJWT(), container.GetRedis(), container.GetLogger())
	svc.Pub = container.GetRabbitPub()
	svc.ES = container.GetES()
	svc.ESAccountsIndex = cfg.ESAccountsIndex
	svc.GCS = container.GetGCS()
	svc.GCSBucket = cfg.GCSBucket
	svc.VerifyEmailURL = cfg.VerifyEmailURL
	svc.VerifyTokenTTL = cfg.VerifyTokenTTL
	svc.MailSendEnabled = cfg.MailSendEnabled
	return svc
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	svc := buildService()
	logger := container.GetLogger()

	authHandler := handlers.NewAuthHandler(svc, logger)
	accountHandler := handlers.NewAccountHandler(svc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewAccountModule(accountHandler, container.GetJWT()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
