package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vonvha/Nutri-Smart/middlewares"
	"github.com/vonvha/Nutri-Smart/services"
)

type toggleReq struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type NotificationController struct {
	Notifications *services.NotificationService
	Push          *services.PushService
}

// NewNotificationController wires the notification store. push may be nil
// when no SNS platform is configured.
func NewNotificationController(ns *services.NotificationService, push *services.PushService) *NotificationController {
	return &NotificationController{Notifications: ns, Push: push}
}

// GET /notifications
func (nc *NotificationController) List(c *gin.Context) {
	out, err := nc.Notifications.List(c.Request.Context(), middlewares.UserEmail(c))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	err = nc.Notifications.MarkRead(c.Request.Context(), middlewares.UserEmail(c), uint(id))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /notifications/toggle
func (nc *NotificationController) Toggle(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if nc.Push != nil {
		if err := nc.Push.SetEnabled(c.Request.Context(), middlewares.UserEmail(c), *req.Enabled); err != nil {
			internalError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": *req.Enabled,
	})
}
