package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-infusion/internal/api/middleware"
)

// SetupRoutes configures all REST API routes.
// Mutating routes run behind authentication, then the rate limiter when one is given.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, limit gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	authed := []gin.HandlerFunc{middleware.Auth(authCfg)}
	public := []gin.HandlerFunc{}
	if limit != nil {
		authed = append(authed, limit)
		public = append(public, limit)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Realm registry
		v1.POST("/realms", with(authed, handler.CreateRealm)...)
		v1.PATCH("/realms/:id", with(authed, handler.ModifyRealm)...)
		v1.GET("/realms/:id", with(public, handler.GetRealm)...)
		v1.GET("/realms/:id/members/:role", with(public, handler.ListMembers)...)
		v1.GET("/realms/:id/admins/:address", with(public, handler.IsAdmin)...)
		v1.GET("/realms/:id/infusers/:address", with(public, handler.IsInfuser)...)
		v1.GET("/realms/:id/collections/:address", with(public, handler.IsCollection)...)

		// Infusion proxies
		v1.GET("/realms/:id/proxies/:address", with(public, handler.IsInfusionProxy)...)
		v1.PUT("/realms/:id/proxies/:address", with(authed, handler.AllowInfusionProxy)...)
		v1.DELETE("/realms/:id/proxies/:address", with(authed, handler.DenyInfusionProxy)...)

		// Token state
		v1.GET("/realms/:id/tokens/:collection/:token_id", with(public, handler.GetTokenData)...)

		// Infusions and claims
		v1.POST("/infusions", with(authed, handler.Infuse)...)
		v1.POST("/infusions/batch", with(authed, handler.BatchInfuse)...)
		v1.POST("/claims", with(authed, handler.Claim)...)
		v1.POST("/claims/batch", with(authed, handler.BatchClaim)...)
	}
}

func with(chain []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, h)
}
