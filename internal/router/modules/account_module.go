package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobboardhq/jobboard-api/internal/container"
	handlers "github.com/jobboardhq/jobboard-api/internal/interface/http"
	"github.com/jobboardhq/jobboard-api/internal/interface/middleware"
	"github.com/jobboardhq/jobboard-api/pkg/helpers"
)

// AccountModule wires the authenticated profile endpoints.
// Protected: GET/PUT/DELETE /api/auth/user, POST /api/profile/avatar,
// GET /api/accounts/search
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil),
	)
	{
		auth.GET("/auth/user", m.Handler.Get)
		auth.PUT("/auth/user", m.Handler.Update)
		auth.DELETE("/auth/user", m.Handler.Delete)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
		auth.GET("/accounts/search", m.Handler.Search)
	}
}
