package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataRoomName(t *testing.T) {
	assert.Equal(t, "maple_grove_farm", DataRoomName("Maple Grove Farm"))
	assert.Equal(t, "farm_2_east", DataRoomName("Farm #2 (East)"))
	assert.Equal(t, "farm", DataRoomName("  Farm!  "))
	assert.Equal(t, "", DataRoomName("!!!"))
}

func TestStringField(t *testing.T) {
	doc := map[string]interface{}{
		"name": "Maple Grove",
		"Listing": map[string]interface{}{
			"listing_id": "lst-1",
			"price":      500000,
		},
	}

	assert.Equal(t, "Maple Grove", StringField(doc, "name"))
	assert.Equal(t, "lst-1", StringField(doc, "Listing", "listing_id"))
	assert.Equal(t, "", StringField(doc, "missing"))
	assert.Equal(t, "", StringField(doc, "Listing", "missing"))
	assert.Equal(t, "", StringField(doc, "Listing", "price"))
	assert.Equal(t, "", StringField(doc, "name", "nested"))
}
