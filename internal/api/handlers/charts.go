package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mystocktax/backend/internal/models"
	"github.com/mystocktax/backend/internal/services"
)

// ChartHandler serves the cache-aware chart endpoints. One handler pair
// covers every metric: the URL segment selects the metric group from the
// registry instead of a function family per metric.
type ChartHandler struct {
	charts *services.ChartService
}

func NewChartHandler(charts *services.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts}
}

type chartRequest struct {
	StockCode string `json:"stock_code"`
}

// CheckStock handles POST /api/stock/:metric/check.
func (h *ChartHandler) CheckStock(c *gin.Context) {
	h.stockChart(c, false)
}

// RefreshStock handles POST /api/stock/:metric/refresh.
func (h *ChartHandler) RefreshStock(c *gin.Context) {
	h.stockChart(c, true)
}

// CheckEconomy handles POST /api/economy/:metric/check.
func (h *ChartHandler) CheckEconomy(c *gin.Context) {
	h.economyChart(c, false)
}

// RefreshEconomy handles POST /api/economy/:metric/refresh.
func (h *ChartHandler) RefreshEconomy(c *gin.Context) {
	h.economyChart(c, true)
}

func (h *ChartHandler) stockChart(c *gin.Context, refresh bool) {
	endpoint := c.Param("metric")
	metricList, ok := models.StockEndpoint(endpoint)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown metric: " + endpoint})
		return
	}

	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	stockCode := strings.TrimSpace(req.StockCode)
	if stockCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock_code is required"})
		return
	}

	h.respond(c, endpoint, metricList, stockCode, refresh)
}

func (h *ChartHandler) economyChart(c *gin.Context, refresh bool) {
	endpoint := c.Param("metric")
	metricList, ok := models.EconomyEndpoint(endpoint)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown metric: " + endpoint})
		return
	}

	// Economy endpoints take an empty body; tolerate and ignore one.
	h.respond(c, endpoint, metricList, "", refresh)
}

func (h *ChartHandler) respond(c *gin.Context, endpoint string, metricList []models.Metric, stockCode string, refresh bool) {
	var (
		resp *services.ChartResponse
		err  error
	)
	if refresh {
		resp, err = h.charts.Refresh(c.Request.Context(), endpoint, metricList, stockCode)
	} else {
		resp, err = h.charts.Check(c.Request.Context(), endpoint, metricList, stockCode)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart data"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
