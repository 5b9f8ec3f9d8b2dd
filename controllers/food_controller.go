package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vonvha/Nutri-Smart/middlewares"
	"github.com/vonvha/Nutri-Smart/services"
)

type LogFoodRequest struct {
	FoodName string `json:"food_name" binding:"required"`
	Calories *int   `json:"calories" binding:"omitempty,gte=0"`
}

type FoodController struct {
	Food    *services.FoodService
	Catalog *services.CatalogService
	Now     func() time.Time
}

func NewFoodController(fs *services.FoodService, catalog *services.CatalogService) *FoodController {
	return &FoodController{Food: fs, Catalog: catalog, Now: time.Now}
}

// POST /food/log
func (fc *FoodController) Log(c *gin.Context) {
	var req LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	calories := services.DefaultLoggedCalories
	if req.Calories != nil {
		calories = *req.Calories
	}

	logged, err := fc.Food.LogFood(c.Request.Context(), middlewares.UserEmail(c), req.FoodName, calories, fc.Now())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, logged)
}

// GET /food/recent
func (fc *FoodController) Recent(c *gin.Context) {
	items, err := fc.Catalog.RecentForUser(c.Request.Context(), middlewares.UserEmail(c), services.DefaultRecentLimit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /food/search?q=arroz
func (fc *FoodController) Search(c *gin.Context) {
	items, err := fc.Catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
