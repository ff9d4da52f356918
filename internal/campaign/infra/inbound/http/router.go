package http

import "github.com/gin-gonic/gin"

// RegisterCampaignRoutes wires the campaign endpoints. authorize builds the
// per-action policy middleware; validate checks creation bodies against the
// campaign schema.
func RegisterCampaignRoutes(r *gin.Engine, h *CampaignHandler, authenticated gin.HandlerFunc, authorize func(action string) gin.HandlerFunc, validate gin.HandlerFunc) {
	campaigns := r.Group("/campaigns")
	campaigns.Use(authenticated)
	{
		campaigns.POST("", authorize("campaign.create"), validate, h.CreateCampaign)
		campaigns.GET("/query", authorize("campaign.query"), h.QueryCampaigns)
		campaigns.POST("/search", authorize("campaign.search"), h.SearchCampaigns)
		campaigns.PUT("/:campaignId", authorize("campaign.update"), h.ModifyCampaign)
		campaigns.DELETE("/:campaignId", authorize("campaign.delete"), h.DeleteCampaign)
		campaigns.GET("", authorize("campaign.readAll"), h.GetAllCampaigns)
		campaigns.GET("/:campaignId", authorize("campaign.read"), h.GetCampaign)
		campaigns.POST("/media/:campaignId", authorize("campaign.media"), h.UploadMedia)
	}
}
