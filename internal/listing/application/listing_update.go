package application

import (
	"fmt"
	"regexp"
	"time"

	"github.com/terravest/platform/internal/listing/domain"
)

var emailRe = regexp.MustCompile(`^.+@.+\..+$`)

var validStatuses = map[string]bool{
	domain.StatusActive:         true,
	domain.StatusPending:        true,
	domain.StatusSourced:        true,
	domain.StatusScreened:       true,
	domain.StatusInReview:       true,
	domain.StatusReviewed:       true,
	domain.StatusInDueDiligence: true,
	domain.StatusSelected:       true,
	domain.StatusRejected:       true,
	domain.StatusArchived:       true,
}

// AddressUpdate carries optional address fields; present fields overwrite,
// absent fields keep the stored values.
type AddressUpdate struct {
	HouseNumber *string `json:"house_number,omitempty"`
	Street      *string `json:"street,omitempty"`
	Apartment   *string `json:"apartment,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Zip         *string `json:"zip,omitempty"`
}

type HighlightsUpdate struct {
	TotalAcres       *float64      `json:"total_acres,omitempty"`
	Tillable         *float64      `json:"tillable,omitempty"`
	Woodland         *float64      `json:"woodland,omitempty"`
	Wetland          *float64      `json:"wetland,omitempty"`
	DeedRestrictions *string       `json:"deed_restrictions,omitempty"`
	Barns            []domain.Barn `json:"barns,omitempty"`
}

type AgentUpdate struct {
	Name        *string `json:"name,omitempty"`
	Company     *string `json:"company,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Email       *string `json:"email,omitempty"`
}

type SalesAndTaxUpdate struct {
	SalesHistory map[string]interface{} `json:"sales_history,omitempty"`
	TaxHistory   map[string]interface{} `json:"tax_history,omitempty"`
}

type PropertyDetailsUpdate struct {
	Parking   *domain.Parking        `json:"parking,omitempty"`
	Interior  map[string]interface{} `json:"interior,omitempty"`
	Exterior  map[string]interface{} `json:"exterior,omitempty"`
	Financial map[string]interface{} `json:"financial,omitempty"`
	Utilities map[string]interface{} `json:"utilities,omitempty"`
	Location  map[string]interface{} `json:"location,omitempty"`
	Other     map[string]interface{} `json:"other,omitempty"`
}

// ListingUpdate carries the optional fields of a modification request.
type ListingUpdate struct {
	Name                *string                `json:"name,omitempty"`
	Address             *AddressUpdate         `json:"address,omitempty"`
	PropertyDescription *string                `json:"property_description,omitempty"`
	PropertyHighlights  *HighlightsUpdate      `json:"property_highlights,omitempty"`
	Type                *string                `json:"type,omitempty"`
	ListingAgent        *AgentUpdate           `json:"listing_agent,omitempty"`
	Status              *string                `json:"status,omitempty"`
	PublicFacts         map[string]interface{} `json:"public_facts,omitempty"`
	Schools             map[string]interface{} `json:"schools,omitempty"`
	DaysOnMarket        *int                   `json:"days_on_market,omitempty"`
	BuiltOn             *time.Time             `json:"built_on,omitempty"`
	RenovatedOn         []time.Time            `json:"renovated_on,omitempty"`
	SalesAndTax         *SalesAndTaxUpdate     `json:"sales_and_tax,omitempty"`
	PropertyDetails     *PropertyDetailsUpdate `json:"property_details,omitempty"`
	Workflows           map[string]interface{} `json:"workflows,omitempty"`
}

// Validate rejects updates with out-of-range enum values.
func (u ListingUpdate) Validate() error {
	if u.Type != nil && *u.Type != "Farm" && *u.Type != "Residential" {
		return fmt.Errorf("invalid listing type %q", *u.Type)
	}
	if u.Status != nil && !validStatuses[*u.Status] {
		return fmt.Errorf("invalid listing status %q", *u.Status)
	}
	if u.ListingAgent != nil && u.ListingAgent.Email != nil && !emailRe.MatchString(*u.ListingAgent.Email) {
		return fmt.Errorf("invalid listing agent email %q", *u.ListingAgent.Email)
	}
	return nil
}

func (u ListingUpdate) applyTo(l *domain.Listing) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Type != nil {
		l.Type = *u.Type
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.PropertyDescription != nil {
		l.PropertyDescription = *u.PropertyDescription
	}
	if u.DaysOnMarket != nil {
		l.DaysOnMarket = *u.DaysOnMarket
	}
	if u.Schools != nil {
		l.Schools = u.Schools
	}
	if u.PublicFacts != nil {
		l.PublicFacts = u.PublicFacts
	}
	if u.BuiltOn != nil {
		l.BuiltOn = u.BuiltOn
	}
	if u.RenovatedOn != nil {
		l.RenovatedOn = u.RenovatedOn
	}
	if u.Workflows != nil {
		l.Workflows = u.Workflows
	}

	if u.Address != nil {
		a := &l.Address
		if u.Address.HouseNumber != nil {
			a.HouseNumber = *u.Address.HouseNumber
		}
		if u.Address.Street != nil {
			a.Street = *u.Address.Street
		}
		if u.Address.Apartment != nil {
			a.Apartment = *u.Address.Apartment
		}
		if u.Address.City != nil {
			a.City = *u.Address.City
		}
		if u.Address.State != nil {
			a.State = *u.Address.State
		}
		if u.Address.Zip != nil {
			a.Zip = *u.Address.Zip
		}
	}

	if u.PropertyHighlights != nil {
		h := &l.PropertyHighlights
		if u.PropertyHighlights.TotalAcres != nil {
			h.TotalAcres = *u.PropertyHighlights.TotalAcres
		}
		if u.PropertyHighlights.Tillable != nil {
			h.Tillable = *u.PropertyHighlights.Tillable
		}
		if u.PropertyHighlights.Woodland != nil {
			h.Woodland = *u.PropertyHighlights.Woodland
		}
		if u.PropertyHighlights.Wetland != nil {
			h.Wetland = *u.PropertyHighlights.Wetland
		}
		if u.PropertyHighlights.DeedRestrictions != nil {
			h.DeedRestrictions = *u.PropertyHighlights.DeedRestrictions
		}
		if u.PropertyHighlights.Barns != nil {
			h.Barns = u.PropertyHighlights.Barns
		}
	}

	if u.SalesAndTax != nil {
		if l.SalesAndTax == nil {
			l.SalesAndTax = &domain.SalesAndTax{}
		}
		if u.SalesAndTax.SalesHistory != nil {
			l.SalesAndTax.SalesHistory = u.SalesAndTax.SalesHistory
		}
		if u.SalesAndTax.TaxHistory != nil {
			l.SalesAndTax.TaxHistory = u.SalesAndTax.TaxHistory
		}
	}

	if u.PropertyDetails != nil {
		if l.PropertyDetails == nil {
			l.PropertyDetails = &domain.PropertyDetails{}
		}
		d := l.PropertyDetails
		if u.PropertyDetails.Parking != nil {
			d.Parking = u.PropertyDetails.Parking
		}
		if u.PropertyDetails.Interior != nil {
			d.Interior = u.PropertyDetails.Interior
		}
		if u.PropertyDetails.Exterior != nil {
			d.Exterior = u.PropertyDetails.Exterior
		}
		if u.PropertyDetails.Financial != nil {
			d.Financial = u.PropertyDetails.Financial
		}
		if u.PropertyDetails.Utilities != nil {
			d.Utilities = u.PropertyDetails.Utilities
		}
		if u.PropertyDetails.Location != nil {
			d.Location = u.PropertyDetails.Location
		}
		if u.PropertyDetails.Other != nil {
			d.Other = u.PropertyDetails.Other
		}
	}

	if u.ListingAgent != nil {
		agent := &l.ListingAgent
		if u.ListingAgent.Name != nil {
			agent.Name = *u.ListingAgent.Name
		}
		if u.ListingAgent.Company != nil {
			agent.Company = *u.ListingAgent.Company
		}
		if u.ListingAgent.PhoneNumber != nil {
			agent.PhoneNumber = *u.ListingAgent.PhoneNumber
		}
		if u.ListingAgent.Email != nil {
			agent.Email = *u.ListingAgent.Email
		}
	}
}
