package api

import (
	"net/http"
	"strconv"

	"marketlens/config"

	"github.com/gin-gonic/gin"
)

type stocksController struct {
	deps Deps
}

// RegisterStockRoutes registers quote and history routes.
func RegisterStockRoutes(r *gin.Engine, deps Deps) {
	ctl := &stocksController{deps: deps}
	r.GET("/api/stocks/:symbol", ctl.handleGetStock)
	r.GET("/api/stocks/:symbol/history", ctl.handleGetHistory)
}

// handleGetStock returns the normalized quote for one symbol.
func (ctl *stocksController) handleGetStock(c *gin.Context) {
	symbol := c.Param("symbol")

	if stock, ok := ctl.deps.Cache.GetStock(c.Request.Context(), symbol); ok {
		c.JSON(http.StatusOK, stock)
		return
	}

	stock, err := ctl.deps.Stocks.FetchStock(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if stock == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}

	ctl.deps.Cache.SetStock(c.Request.Context(), stock)
	c.JSON(http.StatusOK, stock)
}

// handleGetHistory returns the normalized quote with its ?days= series.
func (ctl *stocksController) handleGetHistory(c *gin.Context) {
	symbol := c.Param("symbol")

	days := config.DefaultHistoryDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}
	if days > config.MaxHistoryDays {
		days = config.MaxHistoryDays
	}

	if stock, ok := ctl.deps.Cache.GetHistory(c.Request.Context(), symbol, days); ok {
		c.JSON(http.StatusOK, stock)
		return
	}

	stock, err := ctl.deps.Stocks.FetchHistory(c.Request.Context(), symbol, days)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if stock == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}

	ctl.deps.Cache.SetHistory(c.Request.Context(), symbol, days, stock)
	c.JSON(http.StatusOK, stock)
}
