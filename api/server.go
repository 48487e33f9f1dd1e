package api

import (
	"context"

	"marketlens/cache"
	"marketlens/types"

	"github.com/gin-gonic/gin"
)

// NewsFetcher describes the upstream operations the news controller needs.
type NewsFetcher interface {
	FetchNews(ctx context.Context, limit int) ([]*types.Article, error)
	FetchArticle(ctx context.Context, id string) (*types.Article, error)
}

// StockFetcher describes the upstream operations the stocks controller needs.
type StockFetcher interface {
	FetchStock(ctx context.Context, symbol string) (*types.Stock, error)
	FetchHistory(ctx context.Context, symbol string, days int) (*types.Stock, error)
}

// Deps carries the collaborators the controllers share. Cache may be nil.
type Deps struct {
	News   NewsFetcher
	Stocks StockFetcher
	Cache  *cache.Cache
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterHealthRoutes(r)
	RegisterNewsRoutes(r, deps)
	RegisterStockRoutes(r, deps)
	RegisterNormalizeRoutes(r)
	return r
}
