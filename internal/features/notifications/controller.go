package notifications

import (
	"errors"
	"net/http"

	users_middleware "etude-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationController struct {
	notificationService *NotificationService
}

func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", c.GetNotifications)
	router.GET("/notifications/unread-count", c.GetUnreadCount)
	router.POST("/notifications/:id/read", c.MarkRead)
	router.POST("/notifications/read-all", c.MarkAllRead)
}

// GetNotifications
// @Summary List notifications for the current user
// @Tags notifications
// @Produce json
// @Success 200 {array} Notification
// @Failure 401 {object} map[string]string
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	notifications, err := c.notificationService.GetNotifications(user.Email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// GetUnreadCount
// @Summary Count unread notifications for the current user
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} map[string]string
// @Router /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	count, err := c.notificationService.CountUnread(user.Email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count notifications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// MarkRead
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := c.notificationService.MarkRead(id, user.Email); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MarkAllRead
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := c.notificationService.MarkAllRead(user.Email); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notifications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
