package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"nexustalent/internal/api/middleware"
	"nexustalent/internal/models"
	"nexustalent/internal/notify"
	"nexustalent/internal/services"
	"nexustalent/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EventStreamer upgrades a request into a live notification stream for a view.
type EventStreamer interface {
	Serve(w http.ResponseWriter, r *http.Request, viewID uuid.UUID) error
}

// PipelineHandler holds dependencies for pipeline view operations.
type PipelineHandler struct {
	service   services.PipelineService
	events    EventStreamer
	validator *validator.Validate
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(service services.PipelineService, events EventStreamer, validate *validator.Validate) *PipelineHandler {
	return &PipelineHandler{
		service:   service,
		events:    events,
		validator: validate,
	}
}

// viewRequest reads the authenticated recruiter and the view id from the path.
func (h *PipelineHandler) viewRequest(c *gin.Context, operation string) (dto.PipelineViewRequest, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("%s: Error getting user ID from context: %v", operation, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return dto.PipelineViewRequest{}, false
	}
	viewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pipeline view ID format"})
		return dto.PipelineViewRequest{}, false
	}
	return dto.PipelineViewRequest{ViewID: viewID, RecruiterID: userID}, true
}

func (h *PipelineHandler) applicationID(c *gin.Context) (uuid.UUID, bool) {
	appID, err := uuid.Parse(c.Param("app_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return uuid.Nil, false
	}
	return appID, true
}

func (h *PipelineHandler) validate(c *gin.Context, req any) bool {
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return false
	}
	return true
}

// OpenPipeline godoc
//
//	@Summary		Open a pipeline view
//	@Description	Loads every application of a job posting into a new pipeline view. Score annotations passed in the "scores" query parameter are merged in; if they cannot be parsed they are ignored and reported in score_error.
//	@Tags			pipelines
//	@Produce		json
//	@Param			job_id	path		string					true	"Job posting ID"	Format(uuid)
//	@Param			scores	query		string					false	"JSON array of {id, name, score}"
//	@Success		201		{object}	dto.PipelineResponse	"Pipeline view opened"
//	@Failure		400		{object}	map[string]string		"Invalid job ID"
//	@Failure		401		{object}	map[string]string		"Unauthorized"
//	@Router			/jobs/{job_id}/pipeline [post]
//	@Security		BearerAuth
func (h *PipelineHandler) OpenPipeline(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("OpenPipeline: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.OpenPipelineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.JobID = jobID
	req.RecruiterID = userID
	if !h.validate(c, req) {
		return
	}

	resp, err := h.service.OpenPipeline(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "open pipeline", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetPipeline godoc
//
//	@Summary		Get a pipeline view
//	@Description	Returns the applications of an open view grouped by status.
//	@Tags			pipelines
//	@Produce		json
//	@Param			id	path		string					true	"Pipeline view ID"	Format(uuid)
//	@Success		200	{object}	dto.PipelineResponse
//	@Failure		403	{object}	map[string]string	"View belongs to another recruiter"
//	@Failure		404	{object}	map[string]string	"View not found"
//	@Router			/pipelines/{id} [get]
//	@Security		BearerAuth
func (h *PipelineHandler) GetPipeline(c *gin.Context) {
	req, ok := h.viewRequest(c, "GetPipeline")
	if !ok {
		return
	}
	resp, err := h.service.GetPipeline(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "retrieve pipeline", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClosePipeline godoc
//
//	@Summary	Close a pipeline view
//	@Tags		pipelines
//	@Param		id	path	string	true	"Pipeline view ID"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	map[string]string	"View not found"
//	@Router		/pipelines/{id} [delete]
//	@Security	BearerAuth
func (h *PipelineHandler) ClosePipeline(c *gin.Context) {
	req, ok := h.viewRequest(c, "ClosePipeline")
	if !ok {
		return
	}
	if err := h.service.ClosePipeline(c.Request.Context(), &req); err != nil {
		respondServiceError(c, "close pipeline", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByStatus godoc
//
//	@Summary		List one pipeline column
//	@Description	Returns the applications currently in the given status, in the order they were received.
//	@Tags			pipelines
//	@Produce		json
//	@Param			id		path		string	true	"Pipeline view ID"	Format(uuid)
//	@Param			status	path		string	true	"Status"	Enums(Recebida, Triagem, Teste, Entrevista, Oferta, Contratado, Rejeitada)
//	@Success		200		{object}	dto.ColumnResponse
//	@Failure		400		{object}	map[string]string	"Unknown status"
//	@Router			/pipelines/{id}/columns/{status} [get]
//	@Security		BearerAuth
func (h *PipelineHandler) ListByStatus(c *gin.Context) {
	view, ok := h.viewRequest(c, "ListByStatus")
	if !ok {
		return
	}
	req := dto.ListByStatusRequest{PipelineViewRequest: view, Status: models.Status(c.Param("status"))}
	if !h.validate(c, req) {
		return
	}
	apps, err := h.service.ListByStatus(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "list pipeline column", err)
		return
	}
	c.JSON(http.StatusOK, dto.ColumnResponse{Status: req.Status, Applications: apps})
}

// MergeScores godoc
//
//	@Summary		Merge score annotations
//	@Description	Applies compatibility scores by candidate name. Matches in Recebida move to Triagem; names that match nobody are appended as new applications in Triagem.
//	@Tags			pipelines
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Pipeline view ID"	Format(uuid)
//	@Param			body	body		dto.MergeScoresRequest	true	"Score annotations"
//	@Success		200		{object}	pipeline.MergeResult
//	@Failure		400		{object}	map[string]string	"Invalid annotations"
//	@Router			/pipelines/{id}/scores [post]
//	@Security		BearerAuth
func (h *PipelineHandler) MergeScores(c *gin.Context) {
	view, ok := h.viewRequest(c, "MergeScores")
	if !ok {
		return
	}
	var req dto.MergeScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.PipelineViewRequest = view
	if !h.validate(c, req) {
		return
	}
	res, err := h.service.MergeScores(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "merge scores", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// TransitionApplication godoc
//
//	@Summary		Move an application to another status
//	@Description	Any status can be reached from any other. The change is applied immediately and persisted in the background; follow the returned mutation to see whether the write succeeded. Unknown applications are ignored (applied=false).
//	@Tags			pipelines
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Pipeline view ID"	Format(uuid)
//	@Param			app_id	path		string					true	"Application ID"	Format(uuid)
//	@Param			body	body		dto.TransitionRequest	true	"New status and optional notes"
//	@Success		200		{object}	pipeline.Outcome
//	@Failure		400		{object}	map[string]string	"Invalid status"
//	@Router			/pipelines/{id}/applications/{app_id}/status [patch]
//	@Security		BearerAuth
func (h *PipelineHandler) TransitionApplication(c *gin.Context) {
	view, ok := h.viewRequest(c, "TransitionApplication")
	if !ok {
		return
	}
	appID, ok := h.applicationID(c)
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.PipelineViewRequest = view
	req.ApplicationID = appID
	if !h.validate(c, req) {
		return
	}

	outcome, err := h.service.TransitionApplication(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "move application", err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// SetNoteDraft godoc
//
//	@Summary	Buffer a notes draft
//	@Tags		pipelines
//	@Accept		json
//	@Param		id		path	string					true	"Pipeline view ID"	Format(uuid)
//	@Param		app_id	path	string					true	"Application ID"	Format(uuid)
//	@Param		body	body	dto.SetNoteDraftRequest	true	"Draft text"
//	@Success	204
//	@Router		/pipelines/{id}/applications/{app_id}/notes/draft [put]
//	@Security	BearerAuth
func (h *PipelineHandler) SetNoteDraft(c *gin.Context) {
	view, ok := h.viewRequest(c, "SetNoteDraft")
	if !ok {
		return
	}
	appID, ok := h.applicationID(c)
	if !ok {
		return
	}
	var req dto.SetNoteDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.PipelineViewRequest = view
	req.ApplicationID = appID
	if !h.validate(c, req) {
		return
	}
	if err := h.service.SetNoteDraft(c.Request.Context(), &req); err != nil {
		respondServiceError(c, "buffer notes", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CommitNote godoc
//
//	@Summary		Commit a notes draft
//	@Description	Called when the notes field loses focus. Writes only when the draft differs from the last committed notes.
//	@Tags			pipelines
//	@Produce		json
//	@Param			id		path		string	true	"Pipeline view ID"	Format(uuid)
//	@Param			app_id	path		string	true	"Application ID"	Format(uuid)
//	@Success		200		{object}	pipeline.Outcome
//	@Router			/pipelines/{id}/applications/{app_id}/notes/commit [post]
//	@Security		BearerAuth
func (h *PipelineHandler) CommitNote(c *gin.Context) {
	view, ok := h.viewRequest(c, "CommitNote")
	if !ok {
		return
	}
	appID, ok := h.applicationID(c)
	if !ok {
		return
	}
	req := dto.CommitNoteRequest{PipelineViewRequest: view, ApplicationID: appID}
	outcome, err := h.service.CommitNote(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "commit notes", err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ListMutations godoc
//
//	@Summary	List the writes of a pipeline view
//	@Tags		pipelines
//	@Produce	json
//	@Param		id	path	string	true	"Pipeline view ID"	Format(uuid)
//	@Success	200	{array}	models.Mutation
//	@Router		/pipelines/{id}/mutations [get]
//	@Security	BearerAuth
func (h *PipelineHandler) ListMutations(c *gin.Context) {
	req, ok := h.viewRequest(c, "ListMutations")
	if !ok {
		return
	}
	mutations, err := h.service.ListMutations(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "list mutations", err)
		return
	}
	c.JSON(http.StatusOK, mutations)
}

// ExportReport godoc
//
//	@Summary	Export the pipeline as a spreadsheet
//	@Tags		pipelines
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		id	path	string	true	"Pipeline view ID"	Format(uuid)
//	@Success	200	{file}	file
//	@Router		/pipelines/{id}/report [get]
//	@Security	BearerAuth
func (h *PipelineHandler) ExportReport(c *gin.Context) {
	req, ok := h.viewRequest(c, "ExportReport")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.service.ExportReport(c.Request.Context(), &req, &buf); err != nil {
		respondServiceError(c, "export report", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pipeline-%s.xlsx"`, req.ViewID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// StreamEvents godoc
//
//	@Summary		Watch pipeline notifications
//	@Description	Upgrades to a websocket that receives every confirmation raised by the view. Browsers may pass the token in the access_token query parameter.
//	@Tags			pipelines
//	@Param			id	path	string	true	"Pipeline view ID"	Format(uuid)
//	@Success		101
//	@Failure		404	{object}	map[string]string	"Pipeline view not found"
//	@Router			/pipelines/{id}/events [get]
//	@Security		BearerAuth
func (h *PipelineHandler) StreamEvents(c *gin.Context) {
	req, ok := h.viewRequest(c, "StreamEvents")
	if !ok {
		return
	}
	if err := h.service.AuthorizeView(c.Request.Context(), &req); err != nil {
		respondServiceError(c, "watch pipeline", err)
		return
	}
	if err := h.events.Serve(c.Writer, c.Request, req.ViewID); err != nil {
		if errors.Is(err, notify.ErrViewClosed) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pipeline view not found"})
			return
		}
		// The upgrader has already written the HTTP error.
		log.Printf("StreamEvents: Error upgrading connection for view %s: %v", req.ViewID, err)
	}
}
