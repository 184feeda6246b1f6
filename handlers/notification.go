package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festivo/middleware"
	"festivo/models"
	"festivo/services/notification"
)

// NotificationHandler lists and acknowledges in-app notifications.
type NotificationHandler struct {
	Svc notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Svc: svc}
}

func recipientFromContext(c *gin.Context) (string, string) {
	if id := c.GetString(middleware.CtxCustomerID); id != "" {
		return id, models.RecipientCustomer
	}
	return c.GetString(middleware.CtxVendorID), models.RecipientVendor
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	id, role := recipientFromContext(c)
	notifications, err := h.Svc.ListForRecipient(c.Request.Context(), id, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, _ := recipientFromContext(c)
	if err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Notification marked as read"})
}
