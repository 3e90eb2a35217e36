package pages

import (
	"errors"
	"net/http"

	"etude-backend/internal/features/shares"
	users_middleware "etude-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PageController struct {
	pageService *PageService
}

func (c *PageController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/pages", c.CreatePage)
	router.GET("/pages", c.ListPages)
	router.GET("/pages/shared", c.ListSharedPages)
	router.GET("/pages/:id", c.GetPage)
	router.PUT("/pages/:id", c.UpdatePage)
	router.POST("/pages/:id/favorite", c.ToggleFavorite)
	router.DELETE("/pages/:id", c.DeletePage)
	router.GET("/workspaces/:id/pages", c.ListWorkspacePages)
}

func respondWithPageError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, shares.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, shares.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, shares.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, shares.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreatePage
// @Summary Create a page
// @Tags pages
// @Accept json
// @Produce json
// @Param request body CreatePageRequestDTO true "Page details"
// @Success 201 {object} Page
// @Failure 403 {object} map[string]string
// @Router /pages [post]
func (c *PageController) CreatePage(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var request CreatePageRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := c.pageService.CreatePage(user, &request)
	if err != nil {
		respondWithPageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, page)
}

// ListPages
// @Summary List the current user's pages
// @Tags pages
// @Produce json
// @Param tag query string false "Filter by tag"
// @Success 200 {object} PagesResponseDTO
// @Failure 401 {object} map[string]string
// @Router /pages [get]
func (c *PageController) ListPages(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	response, err := c.pageService.ListForUser(user, ctx.Query("tag"))
	if err != nil {
		respondWithPageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ListSharedPages
// @Summary List pages shared with the current user
// @Tags pages
// @Produce json
// @Success 200 {object} PagesResponseDTO
// @Failure 401 {object} map[string]string
// @Router /pages/shared [get]
func (c *PageController) ListSharedPages(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	response, err := c.pageService.ListSharedWithUser(user)
	if err != nil {
		respondWithPageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetPage
// @Summary Get a page
// @Tags pages
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} PageResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /pages/{id} [get]
func (c *PageController) GetPage(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return
	}

	response, err := c.pageService.GetPage(pageID, user)
	if err != nil {
		respondWithPageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdatePage
// @Summary Update a page
// @Tags pages
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param request body UpdatePageRequestDTO true "Fields to update"
// @Success 200 {object} Page
// @Failure 403 {object} map[string]string
// @Router /pages/{id} [put]
func (c *PageController) UpdatePage(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return
	}

	var request UpdatePageRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := c.pageService.UpdatePage(pageID, user, &request)
	if err != nil {
		respondWithPageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// ToggleFavorite
// @Summary Toggle a page's favorite flag
// @Tags pages
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} Page
// @Failure 403 {object} map[string]string
// @Router /pages/{id}/favorite [post]
func (c *PageController) ToggleFavorite(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return
	}

	page, err := c.pageService.ToggleFavorite(pageID, user)
	if err != nil {
		respondWithPageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// DeletePage
// @Summary Delete a page
// @Tags pages
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /pages/{id} [delete]
func (c *PageController) DeletePage(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return
	}

	if err := c.pageService.DeletePage(pageID, user); err != nil {
		respondWithPageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListWorkspacePages
// @Summary List pages of a workspace
// @Tags pages
// @Produce json
// @Param id path string true "Workspace ID"
// @Success 200 {object} PagesResponseDTO
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/pages [get]
func (c *PageController) ListWorkspacePages(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	response, err := c.pageService.ListWorkspacePages(workspaceID, user)
	if err != nil {
		respondWithPageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
