package shares

import (
	"errors"
	"net/http"

	users_middleware "etude-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShareController struct {
	shareService *ShareService
}

func (c *ShareController) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/shares/invite/:token", c.GetSharePreview)
}

func (c *ShareController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/shares/pages", c.CreatePageShare)
	router.POST("/shares/workspaces", c.CreateWorkspaceShare)
	router.GET("/shares/incoming", c.ListIncomingShares)
	router.POST("/shares/invite/:token/accept", c.AcceptShare)
	router.POST("/shares/invite/:token/reject", c.RejectShare)
	router.GET("/pages/:id/shares", c.ListPageShares)
	router.GET("/workspaces/:id/shares", c.ListWorkspaceShares)
	router.PUT("/shares/pages/:id", c.UpdatePageShareAccessLevel)
	router.POST("/shares/pages/:id/reject", c.RejectPageShare)
	router.DELETE("/shares/pages/:id", c.DeletePageShare)
	router.POST("/shares/workspaces/:id/reject", c.RejectWorkspaceShare)
	router.DELETE("/shares/workspaces/:id", c.DeleteWorkspaceShare)
}

func respondWithShareError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// GetSharePreview
// @Summary Preview what an invite token grants
// @Tags shares
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} SharePreviewResponseDTO
// @Failure 404 {object} map[string]string
// @Router /shares/invite/{token} [get]
func (c *ShareController) GetSharePreview(ctx *gin.Context) {
	preview, err := c.shareService.GetSharePreview(ctx.Param("token"))
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, preview)
}

// CreatePageShare
// @Summary Share a page with an email
// @Tags shares
// @Accept json
// @Produce json
// @Param request body CreatePageShareRequestDTO true "Share details"
// @Success 201 {object} PageShare
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /shares/pages [post]
func (c *ShareController) CreatePageShare(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var request CreatePageShareRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := c.shareService.CreatePageShare(user, &request)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, share)
}

// CreateWorkspaceShare
// @Summary Share a workspace with an email
// @Tags shares
// @Accept json
// @Produce json
// @Param request body CreateWorkspaceShareRequestDTO true "Share details"
// @Success 201 {object} WorkspaceShare
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /shares/workspaces [post]
func (c *ShareController) CreateWorkspaceShare(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var request CreateWorkspaceShareRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := c.shareService.CreateWorkspaceShare(user, &request)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, share)
}

// ListIncomingShares
// @Summary List invites addressed to the current user
// @Tags shares
// @Produce json
// @Success 200 {object} IncomingSharesResponseDTO
// @Failure 401 {object} map[string]string
// @Router /shares/incoming [get]
func (c *ShareController) ListIncomingShares(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	response, err := c.shareService.ListIncomingShares(user)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AcceptShare
// @Summary Accept a pending invite
// @Tags shares
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /shares/invite/{token}/accept [post]
func (c *ShareController) AcceptShare(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := c.shareService.AcceptShareByToken(ctx.Param("token"), user); err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// RejectShare
// @Summary Reject a pending invite
// @Tags shares
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /shares/invite/{token}/reject [post]
func (c *ShareController) RejectShare(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := c.shareService.RejectShareByToken(ctx.Param("token"), user); err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// RejectPageShare
// @Summary Reject a page share by id
// @Description Rejects without the invite token; allowed for the recipient or the user who created the share
// @Tags shares
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /shares/pages/{id}/reject [post]
func (c *ShareController) RejectPageShare(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	shareID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid share id"})
		return
	}

	if err := c.shareService.RejectPageShare(shareID, user); err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// RejectWorkspaceShare
// @Summary Reject a workspace share by id
// @Tags shares
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /shares/workspaces/{id}/reject [post]
func (c *ShareController) RejectWorkspaceShare(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	shareID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid share id"})
		return
	}

	if err := c.shareService.RejectWorkspaceShare(shareID, user); err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// ListPageShares
// @Summary List shares of a page
// @Tags shares
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {array} PageShare
// @Failure 403 {object} map[string]string
// @Router /pages/{id}/shares [get]
func (c *ShareController) ListPageShares(ctx *gin.Context) {
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

	result, err := c.shareService.ListPageShares(pageID, user)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ListWorkspaceShares
// @Summary List shares of a workspace
// @Tags shares
// @Produce json
// @Param id path string true "Workspace ID"
// @Success 200 {array} WorkspaceShare
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/shares [get]
func (c *ShareController) ListWorkspaceShares(ctx *gin.Context) {
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

	result, err := c.shareService.ListWorkspaceShares(workspaceID, user)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// UpdatePageShareAccessLevel
// @Summary Change the access level of a page share
// @Tags shares
// @Accept json
// @Produce json
// @Param id path string true "Share ID"
// @Param request body UpdateShareRequestDTO true "New access level"
// @Success 200 {object} PageShare
// @Failure 403 {object} map[string]string
// @Router /shares/pages/{id} [put]
func (c *ShareController) UpdatePageShareAccessLevel(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	shareID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid share id"})
		return
	}

	var request UpdateShareRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := c.shareService.UpdatePageShareAccessLevel(shareID, user, request.AccessLevel)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, share)
}

// DeletePageShare
// @Summary Revoke a page share
// @Tags shares
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /shares/pages/{id} [delete]
func (c *ShareController) DeletePageShare(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	shareID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid share id"})
		return
	}

	if err := c.shareService.DeletePageShare(shareID, user); err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// DeleteWorkspaceShare
// @Summary Revoke a workspace share
// @Tags shares
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /shares/workspaces/{id} [delete]
func (c *ShareController) DeleteWorkspaceShare(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	shareID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid share id"})
		return
	}

	if err := c.shareService.DeleteWorkspaceShare(shareID, user); err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
