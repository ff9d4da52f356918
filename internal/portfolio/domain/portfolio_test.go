package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvestmentValidate(t *testing.T) {
	assert.NoError(t, Investment{OfferingID: "off-1"}.Validate())
	assert.NoError(t, Investment{OfferingID: "off-1", Status: InvestmentActive}.Validate())
	assert.NoError(t, Investment{OfferingID: "off-1", Status: InvestmentClosed}.Validate())

	assert.Error(t, Investment{}.Validate())
	assert.Error(t, Investment{OfferingID: "off-1", Status: "PAUSED"}.Validate())
}
