package routes

import (
	"log"

	"nexustalent/internal/api/handlers"
	"nexustalent/internal/api/middleware"
	"nexustalent/internal/app"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {
	apiV1 := router.Group("/api/v1")

	pipelineHandler := handlers.NewPipelineHandler(app.Pipelines, app.Hub, app.Validator)
	healthHandler := handlers.NewHealthHandler(app.HealthChecks())

	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)

	RegisterPipelineRoutes(apiV1, pipelineHandler, authMiddleware)

	router.GET("/health", healthHandler.Health)

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
