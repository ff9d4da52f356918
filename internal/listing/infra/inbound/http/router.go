package http

import "github.com/gin-gonic/gin"

// RegisterListingRoutes wires the listing endpoints. authorize builds the
// per-action policy middleware; validate checks creation bodies against the
// listing schema.
func RegisterListingRoutes(r *gin.Engine, h *ListingHandler, authenticated gin.HandlerFunc, authorize func(action string) gin.HandlerFunc, validate gin.HandlerFunc) {
	listings := r.Group("/listings")
	listings.Use(authenticated)
	{
		listings.POST("", authorize("listing.create"), validate, h.CreateListing)
		listings.GET("/query", authorize("listing.query"), h.QueryListings)
		listings.GET("", authorize("listing.view"), h.GetAllListings)
		listings.GET("/:listingId", authorize("listing.view"), h.GetListing)
		listings.PUT("/:listingId", authorize("listing.update"), h.UpdateListing)
		listings.DELETE("/:listingId", authorize("listing.delete"), h.DeleteListing)
		listings.POST("/search", authorize("listing.search"), h.SearchListings)
		listings.POST("/media/:listingId/:mediaType", authorize("listing.media"), h.UploadMedia)
		listings.POST("/image/:listingId", authorize("listing.image"), h.GetMedia)
	}
}
