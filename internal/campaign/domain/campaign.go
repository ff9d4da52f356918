package domain

import (
	"errors"
	"time"
)

// Campaign is a marketing campaign attached to one offering.
type Campaign struct {
	CampaignID  string    `bson:"campaign_id" json:"campaign_id"`
	OfferingID  string    `bson:"offering_id" json:"offering_id"`
	Name        string    `bson:"name" json:"name"`
	MainPicture string    `bson:"main_picture" json:"main_picture"`
	Webinars    []string  `bson:"webinars" json:"webinars"`
	Newsletters []string  `bson:"newsletters" json:"newsletters"`
	IsDeleted   bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrNoOfferingData   = errors.New("no offering data")
	ErrNoListingData    = errors.New("no listing data")
	ErrNoMediaFile      = errors.New("no media file provided")
)
