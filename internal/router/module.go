package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes under the /api group. Modules own
// their route-level middleware such as rate limits and credential checks.
type Module interface {
	Register(rg *gin.RouterGroup)
}
