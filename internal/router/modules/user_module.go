package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-commerce-user/internal/interface/http"
	"github.com/oksasatya/go-commerce-user/internal/interface/middleware"
)

// UserModule wires account handlers into routes.
// Public: POST /api/v1/users
// Header credentials: GET /api/v1/users/me, PATCH /api/v1/users/me/password
type UserModule struct {
	Handler        *handlers.UserHandler
	Redis          *redis.Client
	LoginIDHeader  string
	PasswordHeader string
	SignUpLimit    int // per IP per minute
	AuthLimit      int // per login id per minute
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, loginIDHeader, passwordHeader string, signUpLimit, authLimit int) *UserModule {
	return &UserModule{
		Handler:        h,
		Redis:          rdb,
		LoginIDHeader:  loginIDHeader,
		PasswordHeader: passwordHeader,
		SignUpLimit:    signUpLimit,
		AuthLimit:      authLimit,
	}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/v1/users")

	signUpLimiter := middleware.RateLimit(m.Redis, m.SignUpLimit, time.Minute, middleware.KeyByIPAndPath(), nil)
	users.POST("", signUpLimiter, m.Handler.SignUp)

	me := users.Group("/me")
	me.Use(
		middleware.RateLimit(m.Redis, m.AuthLimit*4, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.Redis, m.AuthLimit, time.Minute, middleware.KeyByLoginID(m.LoginIDHeader), nil),
		middleware.Credentials(m.LoginIDHeader, m.PasswordHeader),
	)
	{
		me.GET("", m.Handler.GetMe)
		me.PATCH("/password", m.Handler.ChangePassword)
	}
}
