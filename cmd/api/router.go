package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"memoir-backend/internal/shared/middleware"
	"memoir-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	auth := middleware.AuthMiddleware(c.JWTManager)
	optionalAuth := middleware.OptionalAuthMiddleware(c.JWTManager)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c, auth)
		setupBiographyRoutes(v1, c, auth, optionalAuth)
		setupMediaRoutes(v1, c, auth, optionalAuth)
		setupComplianceRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
		authGroup.POST("/refresh", c.UserHandler.Refresh)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := v1.Group("/users", auth)
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.PUT("/me/password", c.UserHandler.ChangePassword)
	}
}

// ========================================
// BIOGRAPHY ROUTES
// ========================================
// Reads use optional auth so owners see their private biographies while
// anonymous visitors only see public ones.
func setupBiographyRoutes(v1 *gin.RouterGroup, c *container.Container, auth, optionalAuth gin.HandlerFunc) {
	biographies := v1.Group("/biographies")
	{
		biographies.GET("/public", optionalAuth, c.BiographyHandler.ListPublic)
		biographies.GET("/me", auth, c.BiographyHandler.ListMine)
		biographies.GET("/:id", optionalAuth, c.BiographyHandler.GetBiography)

		biographies.POST("", auth, c.BiographyHandler.CreateBiography)
		biographies.PUT("/:id", auth, c.BiographyHandler.UpdateBiography)
		biographies.DELETE("/:id", auth, c.BiographyHandler.DeleteBiography)
		biographies.PATCH("/:id/visibility", auth, c.BiographyHandler.UpdateVisibility)

		biographies.POST("/:id/chapters", auth, c.BiographyHandler.AddChapter)
		biographies.PUT("/:id/chapters/reorder", auth, c.BiographyHandler.ReorderChapters)
	}

	chapters := v1.Group("/chapters", auth)
	{
		chapters.PUT("/:id", c.BiographyHandler.UpdateChapter)
		chapters.DELETE("/:id", c.BiographyHandler.DeleteChapter)
	}
}

// ========================================
// MEDIA ROUTES
// ========================================
func setupMediaRoutes(v1 *gin.RouterGroup, c *container.Container, auth, optionalAuth gin.HandlerFunc) {
	media := v1.Group("/media")
	{
		media.GET("", optionalAuth, c.MediaHandler.ListMedia)
		media.GET("/:id/renditions/:name", optionalAuth, c.MediaHandler.GetRendition)

		media.POST("", auth, c.MediaHandler.AttachMedia)
		media.PUT("/:id", auth, c.MediaHandler.UpdateMedia)
		media.DELETE("/:id", auth, c.MediaHandler.DeleteMedia)
	}
}

// ========================================
// COMPLIANCE ROUTES
// ========================================
func setupComplianceRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	compliance := v1.Group("/compliance", auth)
	{
		compliance.POST("/consents/grant", c.ComplianceHandler.GrantConsent)
		compliance.POST("/consents/withdraw", c.ComplianceHandler.WithdrawConsent)
		compliance.GET("/consents", c.ComplianceHandler.GetConsentStatus)

		compliance.POST("/exports", c.ComplianceHandler.RequestDataExport)
		compliance.GET("/exports", c.ComplianceHandler.ListDataExports)
		compliance.GET("/exports/:id", c.ComplianceHandler.GetDataExport)

		compliance.POST("/restriction", c.ComplianceHandler.RestrictProcessing)
		compliance.DELETE("/restriction", c.ComplianceHandler.LiftRestriction)
		compliance.GET("/restriction", c.ComplianceHandler.GetRestriction)

		compliance.POST("/deletion", c.ComplianceHandler.RequestAccountDeletion)

		compliance.POST("/breaches", c.ComplianceHandler.ReportBreach)
		compliance.GET("/breaches", c.ComplianceHandler.ListBreachReports)

		compliance.GET("/activity", c.ComplianceHandler.ListActivity)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		overall := "ok"
		if dbStatus == "down" || cacheStatus == "down" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
