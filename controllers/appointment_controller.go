package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vonvha/Nutri-Smart/middlewares"
	"github.com/vonvha/Nutri-Smart/services"
)

type AppointmentController struct {
	Appointments *services.AppointmentService
}

func NewAppointmentController(as *services.AppointmentService) *AppointmentController {
	return &AppointmentController{Appointments: as}
}

// GET /appointments answers null when nothing is scheduled.
func (ac *AppointmentController) Latest(c *gin.Context) {
	a, err := ac.Appointments.Latest(c.Request.Context(), middlewares.UserEmail(c))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /appointments
func (ac *AppointmentController) Schedule(c *gin.Context) {
	var req services.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := ac.Appointments.Schedule(c.Request.Context(), middlewares.UserEmail(c), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
