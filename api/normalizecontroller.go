package api

import (
	"net/http"

	"marketlens/normalize"

	"github.com/gin-gonic/gin"
)

// RegisterNormalizeRoutes registers passthrough normalization routes:
// POST a raw payload in any upstream shape, get the canonical record back.
func RegisterNormalizeRoutes(r *gin.Engine) {
	r.POST("/api/normalize/article", handleNormalizeArticle)
	r.POST("/api/normalize/stock", handleNormalizeStock)
}

func handleNormalizeArticle(c *gin.Context) {
	var raw *normalize.RawArticle
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// A JSON null body normalizes to null: "no data" propagates, it is
	// not an error.
	c.JSON(http.StatusOK, normalize.Article(raw))
}

func handleNormalizeStock(c *gin.Context) {
	var raw *normalize.RawStock
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, normalize.Stock(raw))
}
