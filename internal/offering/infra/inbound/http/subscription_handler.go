package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terravest/platform/internal/offering/application"
	"github.com/terravest/platform/internal/offering/domain"
	"github.com/terravest/platform/internal/shared/infra/middleware"
	"github.com/terravest/platform/pkg/utils"
)

// SubscriptionHandler exposes the subscription endpoints nested under an
// offering.
type SubscriptionHandler struct {
	service *application.SubscriptionService
}

func NewSubscriptionHandler(service *application.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// CreateSubscription endpoint POST /offerings/:id/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var in application.CreateSubscriptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendBadRequest(c, "invalid subscription payload", err)
		return
	}

	identity, _ := middleware.IdentityFrom(c)
	sub, err := h.service.CreateSubscription(c.Request.Context(), c.GetHeader("Authorization"),
		identity.UserID, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrOfferingNotFound) {
			utils.SendNotFound(c, "offering not found")
			return
		}
		utils.SendInternalServerError(c, "error creating subscription", err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, sub)
}

// GetSubscriptions endpoint GET /offerings/:id/subscriptions
func (h *SubscriptionHandler) GetSubscriptions(c *gin.Context) {
	filter := domain.SubscriptionFilter{
		OfferingID: c.Param("id"),
		UserID:     c.Query("user_id"),
	}
	subs, err := h.service.GetSubscriptions(c.Request.Context(), filter)
	if err != nil {
		utils.SendInternalServerError(c, "error fetching subscriptions", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, subs)
}

// GetSubscription endpoint GET /offerings/:id/subscriptions/:subscriptionId
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sub, err := h.service.GetSubscription(c.Request.Context(), c.Param("subscriptionId"))
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			utils.SendNotFound(c, "subscription not found")
			return
		}
		utils.SendInternalServerError(c, "error fetching subscription", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, sub)
}

// UpdateSubscription endpoint PUT /offerings/:id/subscriptions/:subscriptionId
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	var updates application.SubscriptionUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.SendBadRequest(c, "invalid update payload", err)
		return
	}

	identity, _ := middleware.IdentityFrom(c)
	sub, err := h.service.ModifySubscription(c.Request.Context(), identity.UserID,
		c.Param("subscriptionId"), updates)
	if err != nil {
		h.sendUpdateError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, sub)
}

// UpdateAllocation endpoint PUT /offerings/:id/subscriptions/:subscriptionId/allocation
func (h *SubscriptionHandler) UpdateAllocation(c *gin.Context) {
	var updates application.AllocationUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.SendBadRequest(c, "invalid update payload", err)
		return
	}

	identity, _ := middleware.IdentityFrom(c)
	sub, err := h.service.ModifyAllocation(c.Request.Context(), identity.UserID,
		c.Param("id"), c.Param("subscriptionId"), updates)
	if err != nil {
		h.sendUpdateError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, sub)
}

// DeleteSubscription endpoint DELETE /offerings/:id/subscriptions/:subscriptionId
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	sub, err := h.service.DeleteSubscription(c.Request.Context(), c.Param("subscriptionId"))
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			utils.SendNotFound(c, "subscription not found")
			return
		}
		utils.SendInternalServerError(c, "error deleting subscription", err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"message":         "subscription deleted successfully",
		"subscription_id": sub.SubscriptionID,
	})
}

func (h *SubscriptionHandler) sendUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		utils.SendNotFound(c, "subscription not found")
	case errors.Is(err, domain.ErrOfferingNotFound):
		utils.SendNotFound(c, "offering not found")
	case errors.Is(err, domain.ErrEmptyUpdate), errors.Is(err, domain.ErrSubscriptionActive):
		utils.SendBadRequest(c, "subscription cannot be updated", err)
	default:
		utils.SendInternalServerError(c, "error updating subscription", err)
	}
}
