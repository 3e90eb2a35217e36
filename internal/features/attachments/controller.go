package attachments

import (
	"errors"
	"net/http"

	"etude-backend/internal/features/shares"
	users_middleware "etude-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttachmentController struct {
	attachmentService *AttachmentService
}

func (c *AttachmentController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/pages/:id/attachments", c.UploadAttachment)
	router.GET("/pages/:id/attachments", c.ListAttachments)
	router.GET("/attachments/:id", c.DownloadAttachment)
	router.DELETE("/attachments/:id", c.DeleteAttachment)
}

func respondWithAttachmentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrStorageDisabled):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, shares.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, shares.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, shares.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// UploadAttachment
// @Summary Upload a file to a page
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Page ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} Attachment
// @Failure 403 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /pages/{id}/attachments [post]
func (c *AttachmentController) UploadAttachment(ctx *gin.Context) {
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

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	attachment, err := c.attachmentService.UploadAttachment(
		ctx.Request.Context(),
		user,
		pageID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		respondWithAttachmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, attachment)
}

// ListAttachments
// @Summary List the files of a page
// @Tags attachments
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {array} Attachment
// @Failure 403 {object} map[string]string
// @Router /pages/{id}/attachments [get]
func (c *AttachmentController) ListAttachments(ctx *gin.Context) {
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

	result, err := c.attachmentService.ListAttachments(user, pageID)
	if err != nil {
		respondWithAttachmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DownloadAttachment
// @Summary Download a file
// @Tags attachments
// @Produce octet-stream
// @Param id path string true "Attachment ID"
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attachments/{id} [get]
func (c *AttachmentController) DownloadAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid attachment id"})
		return
	}

	attachment, reader, err := c.attachmentService.DownloadAttachment(
		ctx.Request.Context(), user, attachmentID,
	)
	if err != nil {
		respondWithAttachmentError(ctx, err)
		return
	}
	defer reader.Close()

	ctx.DataFromReader(
		http.StatusOK,
		attachment.SizeBytes,
		attachment.ContentType,
		reader,
		map[string]string{
			"Content-Disposition": `attachment; filename="` + attachment.FileName + `"`,
		},
	)
}

// DeleteAttachment
// @Summary Delete a file
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /attachments/{id} [delete]
func (c *AttachmentController) DeleteAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid attachment id"})
		return
	}

	err = c.attachmentService.DeleteAttachment(ctx.Request.Context(), user, attachmentID)
	if err != nil {
		respondWithAttachmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
