package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mystocktax/backend/internal/models"
	"github.com/mystocktax/backend/internal/services"
)

type PortfolioHandler struct {
	portfolio *services.PortfolioService
}

func NewPortfolioHandler(portfolio *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// ListStocks handles GET /api/stocks.
func (h *PortfolioHandler) ListStocks(c *gin.Context) {
	stocks, err := h.portfolio.ListStocks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load portfolio"})
		return
	}
	c.JSON(http.StatusOK, stocks)
}

// AddStock handles POST /api/stocks.
func (h *PortfolioHandler) AddStock(c *gin.Context) {
	var stock models.PortfolioStock
	if err := c.ShouldBindJSON(&stock); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := h.portfolio.AddStock(stock)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save stock"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateStock handles PUT /api/stocks/:id.
func (h *PortfolioHandler) UpdateStock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock id"})
		return
	}
	var patch models.PortfolioStock
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := h.portfolio.UpdateStock(id, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save stock"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteStock handles DELETE /api/stocks/:id.
func (h *PortfolioHandler) DeleteStock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock id"})
		return
	}
	deleted, err := h.portfolio.DeleteStock(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save portfolio"})
		return
	}
	if deleted == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// ListTransactions handles GET /api/transactions.
func (h *PortfolioHandler) ListTransactions(c *gin.Context) {
	txs, err := h.portfolio.ListTransactions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, txs)
}

// AddTransaction handles POST /api/transactions.
func (h *PortfolioHandler) AddTransaction(c *gin.Context) {
	var tx models.PortfolioTransaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := h.portfolio.AddTransaction(tx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save transaction"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Summary handles GET /api/portfolio/summary.
func (h *PortfolioHandler) Summary(c *gin.Context) {
	summary, err := h.portfolio.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load portfolio"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
