package handlers

import "github.com/gin-gonic/gin"

// PipelineHandlerInterface defines the methods needed by the pipeline routes.
type PipelineHandlerInterface interface {
	OpenPipeline(c *gin.Context)
	GetPipeline(c *gin.Context)
	ClosePipeline(c *gin.Context)
	ListByStatus(c *gin.Context)
	MergeScores(c *gin.Context)
	TransitionApplication(c *gin.Context)
	SetNoteDraft(c *gin.Context)
	CommitNote(c *gin.Context)
	ListMutations(c *gin.Context)
	ExportReport(c *gin.Context)
	StreamEvents(c *gin.Context)
}

// Ensure handlers implement the interface (compile-time check)
var _ PipelineHandlerInterface = (*PipelineHandler)(nil)
