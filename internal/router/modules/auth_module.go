package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobboardhq/jobboard-api/internal/container"
	handlers "github.com/jobboardhq/jobboard-api/internal/interface/http"
	"github.com/jobboardhq/jobboard-api/internal/interface/middleware"
	"github.com/jobboardhq/jobboard-api/pkg/helpers"
)

// AuthModule wires the public auth endpoints and logout.
// Public: POST /api/auth/register, /api/auth/login, /api/auth/verify/confirm
// Protected: POST /api/auth/logout, /api/auth/verify/resend
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	verifyConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/verify/confirm", verifyConfirmLimiter, m.Handler.VerifyConfirm)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByAccountID(), nil))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.POST("/auth/verify/resend", m.Handler.VerifyResend)
	}
}
