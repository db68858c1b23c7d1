package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

// AuthMiddleware requires a bearer credential on every object route. A request
// without one is refused outright; a deployment without an anon key is treated
// as misconfigured and refuses everything. Signature and subject checks happen
// where the caller identity is resolved, so a bad token and a denied row
// produce the same 403 shape.
func AuthMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Storage.AnonKey == "" {
			utils.JSON403(c, "Forbidden")
			c.Abort()
			return
		}

		token := utils.ExtractToken(c)
		if token == "" {
			utils.JSON403(c, "Forbidden")
			c.Abort()
			return
		}

		c.Set("credential", token)
		c.Next()
	}
}
