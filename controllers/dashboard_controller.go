package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vonvha/Nutri-Smart/middlewares"
	"github.com/vonvha/Nutri-Smart/services"
)

type HistoryDay struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Target   int    `json:"target"`
	Status   string `json:"status"`
}

type DashboardController struct {
	Dashboard *services.DashboardService
	Ledger    *services.LedgerService
	Now       func() time.Time
}

func NewDashboardController(ds *services.DashboardService, ledger *services.LedgerService) *DashboardController {
	return &DashboardController{Dashboard: ds, Ledger: ledger, Now: time.Now}
}

// GET /dashboard
func (dc *DashboardController) Get(c *gin.Context) {
	d, err := dc.Dashboard.Dashboard(c.Request.Context(), middlewares.UserEmail(c), dc.Now())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GET /history returns the last week of daily records, newest first.
func (dc *DashboardController) History(c *gin.Context) {
	records, err := dc.Ledger.History(c.Request.Context(), middlewares.UserEmail(c), services.DefaultHistoryLimit)
	if err != nil {
		internalError(c, err)
		return
	}

	out := make([]HistoryDay, 0, len(records))
	for _, r := range records {
		out = append(out, HistoryDay{
			Date:     r.Date,
			Calories: r.CaloriesConsumed,
			Target:   r.CaloriesTarget,
			Status:   r.Status,
		})
	}
	c.JSON(http.StatusOK, out)
}
