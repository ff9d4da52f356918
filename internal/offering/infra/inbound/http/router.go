package http

import "github.com/gin-gonic/gin"

// RegisterOfferingRoutes wires the offering and subscription endpoints.
// authorize builds the per-action policy middleware; validateOffering and
// validateSubscription check creation bodies against their schemas.
func RegisterOfferingRoutes(
	r *gin.Engine,
	h *OfferingHandler,
	sh *SubscriptionHandler,
	authenticated gin.HandlerFunc,
	authorize func(action string) gin.HandlerFunc,
	validateOffering gin.HandlerFunc,
	validateSubscription gin.HandlerFunc,
) {
	offerings := r.Group("/offerings")
	offerings.Use(authenticated)
	{
		offerings.POST("", validateOffering, authorize("offering.create"), h.CreateOffering)
		offerings.GET("/query", authorize("offering.query"), h.QueryOfferings)
		offerings.GET("", authorize("offering.view"), h.GetAllOfferings)
		offerings.GET("/crops", authorize("offering.view"), h.GetCrops)
		offerings.GET("/:id", authorize("offering.view"), h.GetOffering)
		offerings.PUT("/:id", authorize("offering.update"), h.UpdateOffering)
		offerings.DELETE("/:id", authorize("offering.delete"), h.DeleteOffering)
		offerings.POST("/search", authorize("offering.search"), h.SearchOfferings)
		offerings.PUT("/:id/documents", authorize("offering.update"), h.UpdateDocuments)

		offerings.POST("/:id/subscriptions", authorize("subscription.create"), validateSubscription, sh.CreateSubscription)
		offerings.GET("/:id/subscriptions", authorize("subscription.view"), sh.GetSubscriptions)
		offerings.GET("/:id/subscriptions/:subscriptionId", authorize("subscription.view"), sh.GetSubscription)
		offerings.PUT("/:id/subscriptions/:subscriptionId", authorize("subscription.update"), sh.UpdateSubscription)
		offerings.DELETE("/:id/subscriptions/:subscriptionId", authorize("subscription.delete"), sh.DeleteSubscription)
		offerings.PUT("/:id/subscriptions/:subscriptionId/allocation", authorize("subscription.update"), sh.UpdateAllocation)
	}
}
