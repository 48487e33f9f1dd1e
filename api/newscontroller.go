package api

import (
	"net/http"
	"strconv"

	"marketlens/config"

	"github.com/gin-gonic/gin"
)

type newsController struct {
	deps Deps
}

// RegisterNewsRoutes registers news-related routes.
func RegisterNewsRoutes(r *gin.Engine, deps Deps) {
	ctl := &newsController{deps: deps}
	r.GET("/api/news", ctl.handleListNews)
	r.GET("/api/news/:id", ctl.handleGetArticle)
}

// handleListNews returns up to ?limit= normalized articles, cache first.
func (ctl *newsController) handleListNews(c *gin.Context) {
	limit := config.DefaultNewsLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	if limit > config.MaxNewsLimit {
		limit = config.MaxNewsLimit
	}

	if articles, ok := ctl.deps.Cache.GetNews(c.Request.Context(), limit); ok {
		c.JSON(http.StatusOK, articles)
		return
	}

	articles, err := ctl.deps.News.FetchNews(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ctl.deps.Cache.SetNews(c.Request.Context(), limit, articles)
	c.JSON(http.StatusOK, articles)
}

// handleGetArticle returns one normalized article by ID.
func (ctl *newsController) handleGetArticle(c *gin.Context) {
	id := c.Param("id")

	if article, ok := ctl.deps.Cache.GetArticle(c.Request.Context(), id); ok {
		c.JSON(http.StatusOK, article)
		return
	}

	article, err := ctl.deps.News.FetchArticle(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	ctl.deps.Cache.SetArticle(c.Request.Context(), article)
	c.JSON(http.StatusOK, article)
}
