package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vonvha/Nutri-Smart/middlewares"
	"github.com/vonvha/Nutri-Smart/services"
)

type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(ps *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: ps}
}

// GET /profile
func (pc *ProfileController) Get(c *gin.Context) {
	profile, err := pc.Profiles.GetProfile(c.Request.Context(), middlewares.UserEmail(c))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// POST /profile recomputes the targets and echoes the submitted profile.
func (pc *ProfileController) Save(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Allergies == nil {
		req.Allergies = []string{}
	}

	if _, err := pc.Profiles.SaveProfile(c.Request.Context(), middlewares.UserEmail(c), req); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
