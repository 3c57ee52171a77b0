package routes

import (
	"nexustalent/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPipelineRoutes registers the pipeline view routes. Every route
// requires an authenticated recruiter.
func RegisterPipelineRoutes(
	rg *gin.RouterGroup,
	pipelineHandler handlers.PipelineHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	rg.POST("/jobs/:job_id/pipeline", authMiddleware, pipelineHandler.OpenPipeline)

	pipelines := rg.Group("/pipelines")
	pipelines.Use(authMiddleware)
	{
		pipelines.GET("/:id", pipelineHandler.GetPipeline)
		pipelines.DELETE("/:id", pipelineHandler.ClosePipeline)
		pipelines.GET("/:id/columns/:status", pipelineHandler.ListByStatus)
		pipelines.POST("/:id/scores", pipelineHandler.MergeScores)
		pipelines.GET("/:id/mutations", pipelineHandler.ListMutations)
		pipelines.GET("/:id/report", pipelineHandler.ExportReport)
		pipelines.GET("/:id/events", pipelineHandler.StreamEvents)

		apps := pipelines.Group("/:id/applications/:app_id")
		apps.PATCH("/status", pipelineHandler.TransitionApplication)
		apps.PUT("/notes/draft", pipelineHandler.SetNoteDraft)
		apps.POST("/notes/commit", pipelineHandler.CommitNote)
	}
}
