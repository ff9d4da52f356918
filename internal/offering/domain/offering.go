package domain

import (
	"errors"
	"time"
)

var (
	ErrOfferingNotFound = errors.New("offering not found")
	ErrNoListingData    = errors.New("no listing data")
	ErrNoDocumentFile   = errors.New("no document file provided")
)

// Offering statuses.
const (
	StatusPendingClosing = "PENDING_CLOSING"
	StatusClosed         = "CLOSED"
	StatusActive         = "ACTIVE"
	StatusInactive       = "INACTIVE"
	StatusUnderReview    = "UNDER_REVIEW"
	StatusDraft          = "DRAFT"
	StatusArchived       = "ARCHIVED"
	StatusInContract     = "IN_CONTRACT"
)

// ExpectedReturns keeps the headline return figures. Values arrive as
// display strings from the underwriting sheet, not numbers.
type ExpectedReturns struct {
	TargetNetIRR      string `bson:"target_net_irr" json:"target_net_irr"`
	TargetNetYield    string `bson:"target_net_yield" json:"target_net_yield"`
	NetEquityMultiple string `bson:"net_equity_multiple" json:"net_equity_multiple"`
	TargetHold        string `bson:"target_hold" json:"target_hold"`
	TargetNetReturns  string `bson:"target_net_returns" json:"target_net_returns"`
}

// Details carries the subscription window and share economics.
type Details struct {
	ValidFromDate         string                 `bson:"valid_from_date,omitempty" json:"valid_from_date,omitempty"`
	ValidToDate           string                 `bson:"valid_to_date,omitempty" json:"valid_to_date,omitempty"`
	TotalShares           string                 `bson:"total_shares,omitempty" json:"total_shares,omitempty"`
	SharesRemaining       string                 `bson:"shares_remaining,omitempty" json:"shares_remaining,omitempty"`
	HoldingPeriod         string                 `bson:"holding_period,omitempty" json:"holding_period,omitempty"`
	MinimumHoldingShares  string                 `bson:"minimum_holding_shares,omitempty" json:"minimum_holding_shares,omitempty"`
	MaximumHoldingShares  string                 `bson:"maximum_holding_shares,omitempty" json:"maximum_holding_shares,omitempty"`
	SubscriptionStartDate string                 `bson:"subscription_start_date,omitempty" json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   string                 `bson:"subscription_end_date,omitempty" json:"subscription_end_date,omitempty"`
	RowCrop               []string               `bson:"row_crop,omitempty" json:"row_crop,omitempty"`
	CapitalBeingRaised    string                 `bson:"capital_being_raised,omitempty" json:"capital_being_raised,omitempty"`
	TotalAcres            string                 `bson:"total_acres,omitempty" json:"total_acres,omitempty"`
	PriceUnit             string                 `bson:"price_unit" json:"price_unit"`
	EstOwnershipDuration  []string               `bson:"est_ownership_duration,omitempty" json:"est_ownership_duration,omitempty"`
	MinInvestment         string                 `bson:"min_investment,omitempty" json:"min_investment,omitempty"`
	Attr                  map[string]interface{} `bson:"attr,omitempty" json:"attr,omitempty"`
	OfferingSize          string                 `bson:"offering_size,omitempty" json:"offering_size,omitempty"`
	TargetNetIRR          string                 `bson:"target_net_irr,omitempty" json:"target_net_irr,omitempty"`
	TargetNetCashYield    string                 `bson:"target_net_cash_yield,omitempty" json:"target_net_cash_yield,omitempty"`
	TargetNetMOIC         string                 `bson:"target_net_moic,omitempty" json:"target_net_moic,omitempty"`
	TargetHold            string                 `bson:"target_hold,omitempty" json:"target_hold,omitempty"`
	TargetNetLTVRatio     string                 `bson:"target_net_ltv_ratio,omitempty" json:"target_net_ltv_ratio,omitempty"`
}

// Documents holds data-room file ids. The read path swaps them for content
// URLs before returning the offering.
type Documents struct {
	InvestorMemo      string   `bson:"investor_memo,omitempty" json:"investor_memo,omitempty"`
	InvestorDocuments []string `bson:"investor_documents,omitempty" json:"investor_documents,omitempty"`
	ComplianceAudits  []string `bson:"compliance_audits,omitempty" json:"compliance_audits,omitempty"`
}

type TotalCostOfFarm struct {
	CostOfFarmland            float64 `bson:"cost_of_farmland" json:"cost_of_farmland"`
	LandDueDiligenceFee       float64 `bson:"land_due_diligence_fee" json:"land_due_diligence_fee"`
	TitleTransferClosingCosts float64 `bson:"title_transfer_closing_costs" json:"title_transfer_closing_costs"`
	BrokerDealerFilingFees    float64 `bson:"broker_dealer_filing_fees" json:"broker_dealer_filing_fees"`
	TotalImprovements         float64 `bson:"total_improvements" json:"total_improvements"`
	LegalPreparationCost      float64 `bson:"legal_preparation_cost" json:"legal_preparation_cost"`
	WorkingCapitalReserve     float64 `bson:"working_capital_reserve" json:"working_capital_reserve"`
	TotalEstimatedCostOfFarm  float64 `bson:"total_estimated_cost_of_farm" json:"total_estimated_cost_of_farm"`
	TotalAcres                float64 `bson:"total_acres" json:"total_acres"`
	TotalCostPerAcre          float64 `bson:"total_cost_per_acre" json:"total_cost_per_acre"`
}

type RentEstimates struct {
	EstimatedRentPerAcre  float64 `bson:"estimated_rent_per_acre" json:"estimated_rent_per_acre"`
	NumberOfTillableAcres float64 `bson:"number_of_tillable_acres" json:"number_of_tillable_acres"`
	OtherIncome           float64 `bson:"other_income" json:"other_income"`
	EstimatedTotalRevenue float64 `bson:"estimated_total_revenue" json:"estimated_total_revenue"`
}

type OperatingEstimates struct {
	FarmOfferingPrice                    float64 `bson:"farm_offering_price" json:"farm_offering_price"`
	FarmManagementFeePercentage          float64 `bson:"farm_management_fee_percentage" json:"farm_management_fee_percentage"`
	AnnualManagementFee                  float64 `bson:"annual_management_fee" json:"annual_management_fee"`
	EstimatedAnnualTaxes                 float64 `bson:"estimated_annual_taxes" json:"estimated_annual_taxes"`
	EstimatedAnnualInsurance             float64 `bson:"estimated_annual_insurance" json:"estimated_annual_insurance"`
	TaxPreparationResidencyFee           float64 `bson:"tax_preparation_residency_fee" json:"tax_preparation_residency_fee"`
	TotalEstimatedAnnualExpenses         float64 `bson:"total_estimated_annual_expenses" json:"total_estimated_annual_expenses"`
	TotalEstimatedAnnualNetIncome        float64 `bson:"total_estimated_annual_net_income" json:"total_estimated_annual_net_income"`
	EstimatedAvgAnnualNetCashPercentage  float64 `bson:"estimated_avg_annual_net_cash_percentage" json:"estimated_avg_annual_net_cash_percentage"`
}

type FinancialDetails struct {
	TotalCostOfFarm                    TotalCostOfFarm    `bson:"total_cost_of_farm" json:"total_cost_of_farm"`
	RentEstimates                      RentEstimates      `bson:"rent_estimates" json:"rent_estimates"`
	OperatingExpenseNetIncomeEstimates OperatingEstimates `bson:"operating_expense_net_income_estimates" json:"operating_expense_net_income_estimates"`
	Attr                               map[string]string  `bson:"attr,omitempty" json:"attr,omitempty"`
}

type InvestmentOverview struct {
	Description              string                 `bson:"description,omitempty" json:"description,omitempty"`
	WhyWeChoseThisInvestment string                 `bson:"why_we_chose_this_investment,omitempty" json:"why_we_chose_this_investment,omitempty"`
	AdditionalDetails        string                 `bson:"additional_details,omitempty" json:"additional_details,omitempty"`
	Disclosures              string                 `bson:"disclosures,omitempty" json:"disclosures,omitempty"`
	Attr                     map[string]interface{} `bson:"attr,omitempty" json:"attr,omitempty"`
}

// Offering is an investable deal built on top of a listing. The soft-delete
// marker is camel-cased in the store, unlike the other collections.
type Offering struct {
	OfferingID         string                 `bson:"offering_id" json:"offering_id"`
	ListingID          string                 `bson:"listing_id" json:"listing_id"`
	Name               string                 `bson:"name" json:"name"`
	Workflows          map[string]interface{} `bson:"workflows,omitempty" json:"workflows,omitempty"`
	ValueDriver        map[string]interface{} `bson:"value_driver,omitempty" json:"value_driver,omitempty"`
	ExpectedReturns    *ExpectedReturns       `bson:"expected_returns,omitempty" json:"expected_returns,omitempty"`
	Details            *Details               `bson:"details,omitempty" json:"details,omitempty"`
	FinancialDetails   *FinancialDetails      `bson:"financial_details,omitempty" json:"financial_details,omitempty"`
	InvestmentOverview *InvestmentOverview    `bson:"investment_overview,omitempty" json:"investment_overview,omitempty"`
	Documents          *Documents             `bson:"documents,omitempty" json:"documents,omitempty"`
	Status             string                 `bson:"status" json:"status"`
	CreatedAt          time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time              `bson:"updated_at" json:"updated_at"`
	IsDeleted          bool                   `bson:"isDeleted" json:"isDeleted"`
}

// Clone returns a copy whose Documents can be rewritten without touching
// the receiver.
func (o *Offering) Clone() *Offering {
	c := *o
	if o.Documents != nil {
		d := Documents{
			InvestorMemo:      o.Documents.InvestorMemo,
			InvestorDocuments: append([]string(nil), o.Documents.InvestorDocuments...),
			ComplianceAudits:  append([]string(nil), o.Documents.ComplianceAudits...),
		}
		c.Documents = &d
	}
	return &c
}
