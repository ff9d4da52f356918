package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terravest/platform/internal/campaign/application"
	"github.com/terravest/platform/internal/campaign/domain"
	"github.com/terravest/platform/internal/shared/infra/middleware"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/pkg/utils"
)

// CampaignHandler exposes the campaign endpoints.
type CampaignHandler struct {
	service *application.CampaignService
}

func NewCampaignHandler(service *application.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// CreateCampaign endpoint POST /campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var in application.CreateCampaignInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendBadRequest(c, "invalid campaign payload", err)
		return
	}

	campaign, err := h.service.CreateCampaign(c.Request.Context(), c.GetHeader("Authorization"), in)
	if err != nil {
		utils.SendInternalServerError(c, "error creating campaign", err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, campaign)
}

// ModifyCampaign endpoint PUT /campaigns/:campaignId
func (h *CampaignHandler) ModifyCampaign(c *gin.Context) {
	var updates application.CampaignUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.SendBadRequest(c, "invalid update payload", err)
		return
	}

	campaign, err := h.service.ModifyCampaign(c.Request.Context(), c.Param("campaignId"), updates)
	if err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			utils.SendNotFound(c, "campaign not found")
			return
		}
		utils.SendInternalServerError(c, "error modifying campaign", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, campaign)
}

// GetCampaign endpoint GET /campaigns/:campaignId
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	connected, err := h.service.FindCampaignByID(c.Request.Context(), c.GetHeader("Authorization"), c.Param("campaignId"))
	if err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			utils.SendNotFound(c, "campaign not found")
			return
		}
		utils.SendInternalServerError(c, "error fetching campaign", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, connected)
}

// GetAllCampaigns endpoint GET /campaigns
func (h *CampaignHandler) GetAllCampaigns(c *gin.Context) {
	campaigns, err := h.service.GetAllCampaigns(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, "error fetching campaigns", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, campaigns)
}

// DeleteCampaign endpoint DELETE /campaigns/:campaignId
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	campaign, err := h.service.DeleteCampaign(c.Request.Context(), c.Param("campaignId"))
	if err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			utils.SendNotFound(c, "campaign not found")
			return
		}
		utils.SendInternalServerError(c, "error deleting campaign", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"message":     "campaign deleted successfully",
		"campaign_id": campaign.CampaignID,
	})
}

// QueryCampaigns endpoint GET /campaigns/query
func (h *CampaignHandler) QueryCampaigns(c *gin.Context) {
	opts := query.ParseOptions(c.Request.URL.Query())
	page, err := h.service.QueryCampaigns(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error fetching campaigns", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

// SearchCampaigns endpoint POST /campaigns/search
func (h *CampaignHandler) SearchCampaigns(c *gin.Context) {
	opts := query.ParseSearchOptions(c.Request.URL.Query())
	page, err := h.service.SearchCampaigns(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error searching campaigns", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

// UploadMedia endpoint POST /campaigns/media/:campaignId
func (h *CampaignHandler) UploadMedia(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		utils.SendBadRequest(c, "missing image file", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.SendBadRequest(c, "unreadable image file", err)
		return
	}
	defer file.Close()

	identity, _ := middleware.IdentityFrom(c)
	campaign, err := h.service.UploadMedia(c.Request.Context(), c.GetHeader("Authorization"),
		identity.UserID, c.Param("campaignId"), header.Filename, file)
	if err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			utils.SendNotFound(c, "campaign not found")
			return
		}
		utils.SendInternalServerError(c, "error uploading media", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, campaign)
}
