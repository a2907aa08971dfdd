package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contentapp "github.com/rarerevisit/backend/internal/application/content"
)

// ContentHandler handles caption generation and post lifecycle endpoints
type ContentHandler struct {
	BaseHandler
	generationService *contentapp.GenerationService
	lifecycleService  *contentapp.LifecycleService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(
	generationService *contentapp.GenerationService,
	lifecycleService *contentapp.LifecycleService,
) *ContentHandler {
	return &ContentHandler{
		generationService: generationService,
		lifecycleService:  lifecycleService,
	}
}

// Generate godoc
// @Summary      Generate caption text
// @Description  Generate a platform-fitted caption from a prompt; nothing is persisted
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        request body contentapp.GenerateRequest true "Caption generation request"
// @Success      200 {object} dto.Response{data=contentapp.GenerateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /content/generate [post]
func (h *ContentHandler) Generate(c *gin.Context) {
	var req contentapp.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.generationService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Create a post
// @Description  Create a content item; an optional scheduled_time puts it on the schedule in the same call
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        request body contentapp.CreateItemRequest true "Post creation request"
// @Success      201 {object} dto.Response{data=contentapp.ItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /content/posts [post]
func (h *ContentHandler) Create(c *gin.Context) {
	var req contentapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.lifecycleService.CreateDraft(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// List godoc
// @Summary      List posts
// @Description  List content items, newest first, with optional platform and status filters
// @Tags         content
// @Produce      json
// @Param        platform query string false "Filter by platform"
// @Param        status query string false "Filter by status"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]contentapp.ItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /content/posts [get]
func (h *ContentHandler) List(c *gin.Context) {
	var filter contentapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.lifecycleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// GetByID godoc
// @Summary      Get a post
// @Description  Retrieve a single content item by its ID
// @Tags         content
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.ItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /content/posts/{id} [get]
func (h *ContentHandler) GetByID(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	item, err := h.lifecycleService.Get(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete a post
// @Description  Remove a content item regardless of its status
// @Tags         content
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /content/posts/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	if err := h.lifecycleService.Delete(c.Request.Context(), itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Schedule godoc
// @Summary      Schedule a post
// @Description  Put a draft or failed post on the schedule; a missing or past time publishes immediately
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body contentapp.ScheduleItemRequest true "Schedule request"
// @Success      200 {object} dto.Response{data=contentapp.ItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /content/posts/{id}/schedule [post]
func (h *ContentHandler) Schedule(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	// An absent body means "publish immediately"
	var req contentapp.ScheduleItemRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	item, err := h.lifecycleService.Schedule(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Publish godoc
// @Summary      Publish a post now
// @Description  Claim a scheduled post and run one publish attempt; the outcome is published or failed
// @Tags         content
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.ItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /content/posts/{id}/publish [post]
func (h *ContentHandler) Publish(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	item, err := h.lifecycleService.AttemptPublish(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}
