package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentPrice(t *testing.T) {
	l := &Listing{PropertyDetails: &PropertyDetails{
		Financial: map[string]interface{}{
			"price": map[string]interface{}{"currency": "USD", "price": float64(500000)},
		},
	}}
	price := l.CurrentPrice()
	assert.NotNil(t, price)
	assert.Equal(t, "USD", price.Currency)
	assert.Equal(t, float64(500000), price.Price)
}

func TestCurrentPrice_IntegerValues(t *testing.T) {
	for _, raw := range []interface{}{int(250), int32(250), int64(250)} {
		l := &Listing{PropertyDetails: &PropertyDetails{
			Financial: map[string]interface{}{
				"price": map[string]interface{}{"price": raw},
			},
		}}
		price := l.CurrentPrice()
		assert.NotNil(t, price)
		assert.Equal(t, float64(250), price.Price)
	}
}

func TestCurrentPrice_Missing(t *testing.T) {
	assert.Nil(t, (&Listing{}).CurrentPrice())
	assert.Nil(t, (&Listing{PropertyDetails: &PropertyDetails{}}).CurrentPrice())

	l := &Listing{PropertyDetails: &PropertyDetails{
		Financial: map[string]interface{}{"price": "500000"},
	}}
	assert.Nil(t, l.CurrentPrice())

	l = &Listing{PropertyDetails: &PropertyDetails{
		Financial: map[string]interface{}{
			"price": map[string]interface{}{"price": "not-a-number"},
		},
	}}
	assert.Nil(t, l.CurrentPrice())
}

func TestMapDataValid(t *testing.T) {
	assert.True(t, MapData{Name: "Well", Latitude: 42.03, Longitude: -93.62}.Valid())
	assert.True(t, MapData{Name: "Pole", Latitude: -90, Longitude: 180}.Valid())

	assert.False(t, MapData{Latitude: 42, Longitude: -93}.Valid())
	assert.False(t, MapData{Name: "Bad", Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, MapData{Name: "Bad", Latitude: 0, Longitude: -181}.Valid())
}
