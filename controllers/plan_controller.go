package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vonvha/Nutri-Smart/middlewares"
	"github.com/vonvha/Nutri-Smart/services"
)

type PlanController struct {
	Plans *services.PlanService
}

func NewPlanController(ps *services.PlanService) *PlanController {
	return &PlanController{Plans: ps}
}

// GET /plan
func (pc *PlanController) Get(c *gin.Context) {
	meals, err := pc.Plans.MealPlan(c.Request.Context(), middlewares.UserEmail(c))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}
