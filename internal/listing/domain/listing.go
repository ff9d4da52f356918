package domain

import (
	"errors"
	"time"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrListingExists   = errors.New("listing already exists")
	ErrNoMediaFile     = errors.New("no media file provided")
	ErrInvalidMap      = errors.New("invalid map data")
)

// Listing statuses follow the acquisition pipeline.
const (
	StatusActive         = "ACTIVE"
	StatusPending        = "PENDING"
	StatusSourced        = "SOURCED"
	StatusScreened       = "SCREENED"
	StatusInReview       = "IN REVIEW"
	StatusReviewed       = "REVIEWED"
	StatusInDueDiligence = "IN DUE DILIGENCE"
	StatusSelected       = "SELECTED"
	StatusRejected       = "REJECTED"
	StatusArchived       = "ARCHIVED"
)

// Listing sources.
const (
	SourceSystem  = "SYSTEM"
	SourceRealtor = "REALTOR"
)

type Address struct {
	HouseNumber string `bson:"house_number" json:"house_number"`
	Street      string `bson:"street" json:"street"`
	Apartment   string `bson:"apartment,omitempty" json:"apartment,omitempty"`
	City        string `bson:"city" json:"city"`
	State       string `bson:"state" json:"state"`
	Zip         string `bson:"zip" json:"zip"`
}

type Barn struct {
	Size        string `bson:"size" json:"size"`
	Description string `bson:"description" json:"description"`
}

type PropertyHighlights struct {
	TotalAcres       float64 `bson:"total_acres" json:"total_acres"`
	Tillable         float64 `bson:"tillable" json:"tillable"`
	Woodland         float64 `bson:"woodland" json:"woodland"`
	Wetland          float64 `bson:"wetland" json:"wetland"`
	DeedRestrictions string  `bson:"deed_restrictions" json:"deed_restrictions"`
	Barns            []Barn  `bson:"barns,omitempty" json:"barns,omitempty"`
}

type ListingAgent struct {
	Name        string `bson:"name" json:"name"`
	Company     string `bson:"company" json:"company"`
	PhoneNumber string `bson:"phone_number" json:"phone_number"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
}

type Parking struct {
	NumberOfSpaces int    `bson:"number_of_spaces" json:"number_of_spaces"`
	Type           string `bson:"type" json:"type"`
}

// Price lives under property_details.financial.price on the wire.
type Price struct {
	Currency string  `bson:"currency" json:"currency"`
	Price    float64 `bson:"price" json:"price"`
}

// PropertyDetails keeps the loosely structured sections as raw maps; only
// parking has a fixed shape across sources.
type PropertyDetails struct {
	Parking   *Parking               `bson:"parking,omitempty" json:"parking,omitempty"`
	Interior  map[string]interface{} `bson:"interior,omitempty" json:"interior,omitempty"`
	Exterior  map[string]interface{} `bson:"exterior,omitempty" json:"exterior,omitempty"`
	Financial map[string]interface{} `bson:"financial,omitempty" json:"financial,omitempty"`
	Utilities map[string]interface{} `bson:"utilities,omitempty" json:"utilities,omitempty"`
	Location  map[string]interface{} `bson:"location,omitempty" json:"location,omitempty"`
	Other     map[string]interface{} `bson:"other,omitempty" json:"other,omitempty"`
}

type SalesAndTax struct {
	SalesHistory map[string]interface{} `bson:"sales_history,omitempty" json:"sales_history,omitempty"`
	TaxHistory   map[string]interface{} `bson:"tax_history,omitempty" json:"tax_history,omitempty"`
}

// MapData is a point of interest drawn on the listing map.
type MapData struct {
	Name        string  `bson:"name" json:"name"`
	Latitude    float64 `bson:"latitude" json:"latitude"`
	Longitude   float64 `bson:"longitude" json:"longitude"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// Valid reports whether the map point carries usable coordinates.
func (m MapData) Valid() bool {
	return m.Name != "" &&
		m.Latitude >= -90 && m.Latitude <= 90 &&
		m.Longitude >= -180 && m.Longitude <= 180
}

// Listing is a sourced property. Listings are hard-deleted; there is no
// is_deleted marker on this collection.
type Listing struct {
	ListingID           string                 `bson:"listing_id" json:"listing_id"`
	Name                string                 `bson:"name" json:"name"`
	Address             Address                `bson:"address" json:"address"`
	PropertyDescription string                 `bson:"property_description" json:"property_description"`
	PropertyHighlights  PropertyHighlights     `bson:"property_highlights" json:"property_highlights"`
	DaysOnMarket        int                    `bson:"days_on_market,omitempty" json:"days_on_market,omitempty"`
	Type                string                 `bson:"type" json:"type"`
	BuiltOn             *time.Time             `bson:"built_on,omitempty" json:"built_on,omitempty"`
	RenovatedOn         []time.Time            `bson:"renovated_on,omitempty" json:"renovated_on,omitempty"`
	ListingAgent        ListingAgent           `bson:"listing_agent" json:"listing_agent"`
	DataroomID          string                 `bson:"dataroom_id,omitempty" json:"dataroom_id,omitempty"`
	Workflows           map[string]interface{} `bson:"workflows,omitempty" json:"workflows,omitempty"`
	Images              []string               `bson:"images,omitempty" json:"images,omitempty"`
	Videos              []string               `bson:"videos,omitempty" json:"videos,omitempty"`
	Documents           []string               `bson:"documents,omitempty" json:"documents,omitempty"`
	Maps                []MapData              `bson:"maps,omitempty" json:"maps,omitempty"`
	PropertyDetails     *PropertyDetails       `bson:"property_details,omitempty" json:"property_details,omitempty"`
	SalesAndTax         *SalesAndTax           `bson:"sales_and_tax,omitempty" json:"sales_and_tax,omitempty"`
	PublicFacts         map[string]interface{} `bson:"public_facts,omitempty" json:"public_facts,omitempty"`
	Schools             map[string]interface{} `bson:"schools,omitempty" json:"schools,omitempty"`
	ListingSource       string                 `bson:"listing_source" json:"listing_source"`
	Status              string                 `bson:"status" json:"status"`
	CreatedAt           time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time              `bson:"updated_at" json:"updated_at"`
}

// CurrentPrice digs the nested price out of the financial section. Returns
// nil when the listing carries no price.
func (l *Listing) CurrentPrice() *Price {
	if l.PropertyDetails == nil || l.PropertyDetails.Financial == nil {
		return nil
	}
	raw, ok := l.PropertyDetails.Financial["price"].(map[string]interface{})
	if !ok {
		return nil
	}
	price := Price{}
	if c, ok := raw["currency"].(string); ok {
		price.Currency = c
	}
	switch v := raw["price"].(type) {
	case float64:
		price.Price = v
	case int:
		price.Price = float64(v)
	case int32:
		price.Price = float64(v)
	case int64:
		price.Price = float64(v)
	default:
		return nil
	}
	return &price
}
