package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-commerce-user/config"
	"github.com/oksasatya/go-commerce-user/internal/container"
)

func routes(engine *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, r := range engine.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func setup(t *testing.T, metrics bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("DEBUG_METRICS_ENABLED", "")
	cfg := config.Load()
	cfg.DebugMetricsEnabled = metrics
	container.SetConfig(cfg)
	container.SetRegistry(prometheus.NewRegistry())

	engine := gin.New()
	reg := NewRegistry(engine)
	InitModules(reg)
	reg.RegisterAll()
	return engine
}

func TestInitModules_Routes(t *testing.T) {
	got := routes(setup(t, true))

	assert.True(t, got["POST /api/v1/users"])
	assert.True(t, got["GET /api/v1/users/me"])
	assert.True(t, got["PATCH /api/v1/users/me/password"])
	assert.True(t, got["GET /api/debug/metrics"])
}

func TestInitModules_MetricsDisabled(t *testing.T) {
	got := routes(setup(t, false))

	assert.True(t, got["GET /api/v1/users/me"])
	assert.False(t, got["GET /api/debug/metrics"])
}

func TestInitModules_MeRequiresHeaders(t *testing.T) {
	engine := setup(t, false)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInitModules_MetricsEndpoint(t *testing.T) {
	engine := setup(t, true)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
}

type recordingModule struct{ path string }

func (m recordingModule) Register(rg *gin.RouterGroup) {
	rg.GET(m.path, func(c *gin.Context) { c.String(http.StatusOK, c.GetString("mw")) })
}

func TestRegistry_AppliesMiddlewareToModules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	reg := NewRegistry(engine)
	reg.Use(func(c *gin.Context) { c.Set("mw", "applied"); c.Next() })
	reg.Add(recordingModule{path: "/ping"})
	reg.RegisterAll()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, "applied", w.Body.String())
}
