package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terravest/platform/internal/offering/application"
	"github.com/terravest/platform/internal/offering/domain"
	"github.com/terravest/platform/internal/shared/infra/middleware"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/pkg/utils"
)

// OfferingHandler exposes the offering endpoints.
type OfferingHandler struct {
	service *application.OfferingService
}

func NewOfferingHandler(service *application.OfferingService) *OfferingHandler {
	return &OfferingHandler{service: service}
}

// CreateOffering endpoint POST /offerings
func (h *OfferingHandler) CreateOffering(c *gin.Context) {
	var in application.CreateOfferingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendBadRequest(c, "invalid offering payload", err)
		return
	}

	offering, err := h.service.CreateOffering(c.Request.Context(), c.GetHeader("Authorization"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNoListingData) {
			utils.SendBadRequest(c, "no listing data", err)
			return
		}
		utils.SendInternalServerError(c, "error creating offering", err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, offering)
}

// GetOffering endpoint GET /offerings/:id — the id is an offering id or a
// listing id.
func (h *OfferingHandler) GetOffering(c *gin.Context) {
	connected, err := h.service.FindOfferingByID(c.Request.Context(), c.GetHeader("Authorization"), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOfferingNotFound) {
			utils.SendNotFound(c, "offering not found")
			return
		}
		utils.SendInternalServerError(c, "error fetching offering", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, connected)
}

// GetAllOfferings endpoint GET /offerings
func (h *OfferingHandler) GetAllOfferings(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	offerings, err := h.service.GetAllOfferings(c.Request.Context(), identity.UserID)
	if err != nil {
		utils.SendInternalServerError(c, "error fetching offerings", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, offerings)
}

// UpdateOffering endpoint PUT /offerings/:id
func (h *OfferingHandler) UpdateOffering(c *gin.Context) {
	var updates application.OfferingUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.SendBadRequest(c, "invalid update payload", err)
		return
	}

	offering, err := h.service.ModifyOffering(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, domain.ErrOfferingNotFound) {
			utils.SendNotFound(c, "offering not found")
			return
		}
		utils.SendInternalServerError(c, "error modifying offering", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, offering)
}

// DeleteOffering endpoint DELETE /offerings/:id
func (h *OfferingHandler) DeleteOffering(c *gin.Context) {
	offering, err := h.service.DeleteOffering(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOfferingNotFound) {
			utils.SendNotFound(c, "offering not found")
			return
		}
		utils.SendInternalServerError(c, "error deleting offering", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"message":     "offering deleted successfully",
		"offering_id": offering.OfferingID,
	})
}

// QueryOfferings endpoint GET /offerings/query
func (h *OfferingHandler) QueryOfferings(c *gin.Context) {
	opts := query.ParseOptions(c.Request.URL.Query())
	page, err := h.service.QueryOfferings(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error fetching offerings", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

// SearchOfferings endpoint POST /offerings/search
func (h *OfferingHandler) SearchOfferings(c *gin.Context) {
	opts := query.ParseSearchOptions(c.Request.URL.Query())
	page, err := h.service.SearchOfferings(c.Request.Context(), opts)
	if err != nil {
		utils.SendInternalServerError(c, "error searching offerings", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

// UpdateDocuments endpoint PUT /offerings/:id/documents
func (h *OfferingHandler) UpdateDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.SendBadRequest(c, "missing document files", err)
		return
	}

	var uploads application.DocumentUploads
	if memos := openAll(form.File["investor_memo"]); len(memos) > 0 {
		uploads.InvestorMemo = &memos[0]
	}
	uploads.InvestorDocuments = openAll(form.File["investor_documents"])
	uploads.ComplianceAudits = openAll(form.File["compliance_audits"])

	identity, _ := middleware.IdentityFrom(c)
	offering, err := h.service.UpdateDocuments(c.Request.Context(), c.GetHeader("Authorization"),
		identity.UserID, c.Param("id"), uploads)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOfferingNotFound):
			utils.SendNotFound(c, "offering not found")
		case errors.Is(err, domain.ErrNoDocumentFile):
			utils.SendBadRequest(c, "no document file provided", err)
		case errors.Is(err, domain.ErrNoListingData):
			utils.SendBadRequest(c, "no listing data", err)
		default:
			utils.SendInternalServerError(c, "error uploading documents", err)
		}
		return
	}
	utils.SendSuccess(c, http.StatusOK, offering)
}

// GetCrops endpoint GET /offerings/crops
func (h *OfferingHandler) GetCrops(c *gin.Context) {
	crops, err := h.service.GetCrops(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, "error fetching crops", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"crops": crops})
}

func openAll(headers []*multipart.FileHeader) []application.Upload {
	uploads := make([]application.Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			continue
		}
		uploads = append(uploads, application.Upload{FileName: header.Filename, Data: file})
	}
	return uploads
}
