package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terravest/platform/internal/portfolio/application"
	"github.com/terravest/platform/internal/portfolio/domain"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/pkg/utils"
)

// PortfolioHandler exposes the portfolio endpoints.
type PortfolioHandler struct {
	service *application.PortfolioService
}

func NewPortfolioHandler(service *application.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// CreatePortfolio endpoint POST /portfolios
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var in application.CreatePortfolioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendBadRequest(c, "invalid portfolio payload", err)
		return
	}

	portfolio, err := h.service.CreatePortfolio(c.Request.Context(), in)
	if err != nil {
		utils.SendInternalServerError(c, "error creating portfolio", err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, portfolio)
}

// GetPortfolio endpoint GET /portfolios/:portfolioId
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.service.GetPortfolioByID(c.Request.Context(), c.Param("portfolioId"))
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			utils.SendNotFound(c, "portfolio not found")
			return
		}
		utils.SendInternalServerError(c, "error fetching portfolio", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, portfolio)
}

// GetAllPortfolios endpoint GET /portfolios
func (h *PortfolioHandler) GetAllPortfolios(c *gin.Context) {
	portfolios, err := h.service.GetAllPortfolios(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, "error fetching portfolios", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, portfolios)
}

// GetPortfoliosByUser endpoint GET /portfolios/user/:userId
func (h *PortfolioHandler) GetPortfoliosByUser(c *gin.Context) {
	portfolio, err := h.service.GetPortfolioByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrNoUserPortfolios) {
			utils.SendSuccess(c, http.StatusOK, gin.H{"message": "no portfolios available for user"})
			return
		}
		utils.SendInternalServerError(c, "error fetching portfolios", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, portfolio)
}

// UpdatePortfolio endpoint PUT /portfolios/:portfolioId
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	var updates application.PortfolioUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.SendBadRequest(c, "invalid update payload", err)
		return
	}

	portfolio, err := h.service.ModifyPortfolio(c.Request.Context(), c.Param("portfolioId"), updates)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			utils.SendNotFound(c, "portfolio not found")
			return
		}
		utils.SendInternalServerError(c, "error modifying portfolio", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, portfolio)
}

// DeletePortfolio endpoint DELETE /portfolios/:portfolioId
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	portfolio, err := h.service.DeletePortfolio(c.Request.Context(), c.Param("portfolioId"))
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			utils.SendNotFound(c, "portfolio not found")
			return
		}
		utils.SendInternalServerError(c, "error deleting portfolio", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"message":      "portfolio deleted successfully",
		"portfolio_id": portfolio.PortfolioID,
	})
}

// QueryPortfolios endpoint GET /portfolios/query
func (h *PortfolioHandler) QueryPortfolios(c *gin.Context) {
	opts := query.ParseOptions(c.Request.URL.Query())
	page, err := h.service.QueryPortfolios(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error fetching portfolios", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

// SearchPortfolios endpoint POST /portfolios/search
func (h *PortfolioHandler) SearchPortfolios(c *gin.Context) {
	opts := query.ParseSearchOptions(c.Request.URL.Query())
	page, err := h.service.SearchPortfolios(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error searching portfolios", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}
