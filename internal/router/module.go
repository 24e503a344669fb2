package router

import "github.com/gin-gonic/gin"

// Module is a feature unit (authentication, orders, debug) that mounts
// its own routes on the shared router group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
