package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/terravest/platform/internal/listing/application"
	"github.com/terravest/platform/internal/listing/domain"
	"github.com/terravest/platform/internal/shared/infra/middleware"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/pkg/utils"
)

// ListingHandler exposes the listing endpoints.
type ListingHandler struct {
	service *application.ListingService
}

func NewListingHandler(service *application.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// CreateListing endpoint POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var in application.CreateListingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendBadRequest(c, "invalid listing payload", err)
		return
	}

	identity, _ := middleware.IdentityFrom(c)
	listing, err := h.service.CreateListing(c.Request.Context(), c.GetHeader("Authorization"), identity.UserID, in)
	if err != nil {
		if errors.Is(err, domain.ErrListingExists) {
			utils.SendSuccess(c, http.StatusOK, gin.H{"message": "listing already exists"})
			return
		}
		utils.SendInternalServerError(c, "error creating listing", err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, listing)
}

// UpdateListing endpoint PUT /listings/:listingId
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	var updates application.ListingUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.SendBadRequest(c, "invalid update payload", err)
		return
	}
	if err := updates.Validate(); err != nil {
		utils.SendBadRequest(c, "invalid update payload", err)
		return
	}

	listing, err := h.service.ModifyListing(c.Request.Context(), c.Param("listingId"), updates)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			utils.SendNotFound(c, "listing not found")
			return
		}
		utils.SendInternalServerError(c, "error modifying listing", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, listing)
}

// GetListing endpoint GET /listings/:listingId
func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.service.GetListingByID(c.Request.Context(), c.Param("listingId"))
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			utils.SendNotFound(c, "listing not found")
			return
		}
		utils.SendInternalServerError(c, "error fetching listing", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, listing)
}

// GetAllListings endpoint GET /listings
func (h *ListingHandler) GetAllListings(c *gin.Context) {
	opts := domain.BrowseOptions{
		SortBy:   c.Query("sortBy"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 10),
		Search:   c.Query("search"),
	}
	page, err := h.service.BrowseListings(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error fetching listings", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

// DeleteListing endpoint DELETE /listings/:listingId
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	listing, err := h.service.DeleteListing(c.Request.Context(), c.GetHeader("Authorization"), c.Param("listingId"))
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			utils.SendNotFound(c, "listing not found")
			return
		}
		utils.SendInternalServerError(c, "error deleting listing", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"message":    "listing deleted successfully",
		"listing_id": listing.ListingID,
	})
}

// QueryListings endpoint GET /listings/query
func (h *ListingHandler) QueryListings(c *gin.Context) {
	opts := query.ParseOptions(c.Request.URL.Query())
	page, err := h.service.QueryListings(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error fetching listings", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

// SearchListings endpoint POST /listings/search
func (h *ListingHandler) SearchListings(c *gin.Context) {
	opts := query.ParseSearchOptions(c.Request.URL.Query())
	page, err := h.service.SearchListings(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error searching listings", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

// UploadMedia endpoint POST /listings/media/:listingId/:mediaType
func (h *ListingHandler) UploadMedia(c *gin.Context) {
	mediaType := c.Param("mediaType")

	var files []application.MediaUpload
	var maps []domain.MapData

	if mediaType == "map" {
		raw := c.PostForm("maps")
		if raw == "" {
			if err := c.ShouldBindJSON(&maps); err != nil {
				utils.SendBadRequest(c, "invalid map payload", err)
				return
			}
		} else if err := json.Unmarshal([]byte(raw), &maps); err != nil {
			// A single map object is accepted as well.
			var one domain.MapData
			if err := json.Unmarshal([]byte(raw), &one); err != nil {
				utils.SendBadRequest(c, "invalid map payload", err)
				return
			}
			maps = []domain.MapData{one}
		}
	} else {
		form, err := c.MultipartForm()
		if err != nil {
			utils.SendBadRequest(c, "missing media files", err)
			return
		}
		for _, header := range form.File[mediaType] {
			file, err := header.Open()
			if err != nil {
				utils.SendBadRequest(c, "unreadable media file", err)
				return
			}
			defer file.Close()
			files = append(files, application.MediaUpload{FileName: header.Filename, Data: file})
		}
	}

	identity, _ := middleware.IdentityFrom(c)
	listing, err := h.service.UploadMedia(c.Request.Context(), c.GetHeader("Authorization"),
		identity.UserID, c.Param("listingId"), mediaType, files, maps)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			utils.SendNotFound(c, "listing not found")
		case errors.Is(err, domain.ErrNoMediaFile), errors.Is(err, domain.ErrInvalidMap):
			utils.SendBadRequest(c, "invalid media payload", err)
		default:
			utils.SendInternalServerError(c, "error uploading media", err)
		}
		return
	}
	utils.SendSuccess(c, http.StatusOK, listing)
}

// GetMedia endpoint POST /listings/image/:listingId
func (h *ListingHandler) GetMedia(c *gin.Context) {
	view, err := h.service.GetMedia(c.Request.Context(), c.GetHeader("Authorization"),
		c.Param("listingId"), intQuery(c, "page", 1), intQuery(c, "limit", 10))
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			utils.SendNotFound(c, "listing not found")
			return
		}
		utils.SendInternalServerError(c, "error fetching media", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, view)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
