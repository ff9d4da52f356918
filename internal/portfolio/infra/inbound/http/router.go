package http

import "github.com/gin-gonic/gin"

// RegisterPortfolioRoutes wires the portfolio endpoints. authorize builds
// the per-action policy middleware; validate checks creation bodies against
// the portfolio schema.
func RegisterPortfolioRoutes(r *gin.Engine, h *PortfolioHandler, authenticated gin.HandlerFunc, authorize func(action string) gin.HandlerFunc, validate gin.HandlerFunc) {
	portfolios := r.Group("/portfolios")
	portfolios.Use(authenticated)
	{
		portfolios.POST("", authorize("portfolio.create"), validate, h.CreatePortfolio)
		portfolios.GET("/query", authorize("portfolio.query"), h.QueryPortfolios)
		portfolios.GET("", authorize("portfolio.view"), h.GetAllPortfolios)
		portfolios.GET("/:portfolioId", authorize("portfolio.view"), h.GetPortfolio)
		portfolios.PUT("/:portfolioId", authorize("portfolio.update"), h.UpdatePortfolio)
		portfolios.DELETE("/:portfolioId", authorize("portfolio.delete"), h.DeletePortfolio)
		portfolios.POST("/search", authorize("portfolio.search"), h.SearchPortfolios)
		portfolios.GET("/user/:userId", authorize("portfolio.view"), h.GetPortfoliosByUser)
	}
}
