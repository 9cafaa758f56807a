package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-commerce-user/internal/interface/middleware"
)

type DebugModule struct {
	Gatherer prometheus.Gatherer
	Redis    *redis.Client
}

func NewDebugModule(g prometheus.Gatherer, rdb *redis.Client) *DebugModule {
	return &DebugModule{Gatherer: g, Redis: rdb}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Prometheus metrics, rate-limited per IP; private addresses are not limited
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/metrics", rl, gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
}
