package application

import (
	"io"

	"github.com/terravest/platform/internal/offering/domain"
)

// Upload is a single incoming file.
type Upload struct {
	FileName string
	Data     io.Reader
}

// ExpectedReturnsUpdate merges field by field into the stored block.
type ExpectedReturnsUpdate struct {
	TargetNetIRR      *string `json:"target_net_irr,omitempty"`
	TargetNetYield    *string `json:"target_net_yield,omitempty"`
	NetEquityMultiple *string `json:"net_equity_multiple,omitempty"`
	TargetHold        *string `json:"target_hold,omitempty"`
	TargetNetReturns  *string `json:"target_net_returns,omitempty"`
}

// DocumentsUpdate merges field by field into the stored block.
type DocumentsUpdate struct {
	InvestorMemo      *string  `json:"investor_memo,omitempty"`
	InvestorDocuments []string `json:"investor_documents,omitempty"`
	ComplianceAudits  []string `json:"compliance_audits,omitempty"`
}

// OfferingUpdate carries the optional fields of a modification request.
// The details, financial_details and investment_overview blocks replace the
// stored blocks wholesale; expected_returns and documents merge per field.
type OfferingUpdate struct {
	Name               *string                    `json:"name,omitempty"`
	ListingID          *string                    `json:"listing_id,omitempty"`
	Workflows          map[string]interface{}     `json:"workflows,omitempty"`
	ValueDriver        map[string]interface{}     `json:"value_driver,omitempty"`
	ExpectedReturns    *ExpectedReturnsUpdate     `json:"expected_returns,omitempty"`
	Details            *domain.Details            `json:"details,omitempty"`
	FinancialDetails   *domain.FinancialDetails   `json:"financial_details,omitempty"`
	InvestmentOverview *domain.InvestmentOverview `json:"investment_overview,omitempty"`
	Documents          *DocumentsUpdate           `json:"documents,omitempty"`
	Status             *string                    `json:"status,omitempty"`
}

func (u OfferingUpdate) applyTo(o *domain.Offering) {
	if u.Name != nil {
		o.Name = *u.Name
	}
	if u.ListingID != nil {
		o.ListingID = *u.ListingID
	}
	if u.Workflows != nil {
		o.Workflows = u.Workflows
	}
	if u.ValueDriver != nil {
		o.ValueDriver = u.ValueDriver
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.Details != nil {
		o.Details = u.Details
	}
	if u.FinancialDetails != nil {
		o.FinancialDetails = u.FinancialDetails
	}
	if u.InvestmentOverview != nil {
		o.InvestmentOverview = u.InvestmentOverview
	}

	if u.ExpectedReturns != nil {
		if o.ExpectedReturns == nil {
			o.ExpectedReturns = &domain.ExpectedReturns{}
		}
		r := o.ExpectedReturns
		if u.ExpectedReturns.TargetNetIRR != nil {
			r.TargetNetIRR = *u.ExpectedReturns.TargetNetIRR
		}
		if u.ExpectedReturns.TargetNetYield != nil {
			r.TargetNetYield = *u.ExpectedReturns.TargetNetYield
		}
		if u.ExpectedReturns.NetEquityMultiple != nil {
			r.NetEquityMultiple = *u.ExpectedReturns.NetEquityMultiple
		}
		if u.ExpectedReturns.TargetHold != nil {
			r.TargetHold = *u.ExpectedReturns.TargetHold
		}
		if u.ExpectedReturns.TargetNetReturns != nil {
			r.TargetNetReturns = *u.ExpectedReturns.TargetNetReturns
		}
	}

	if u.Documents != nil {
		if o.Documents == nil {
			o.Documents = &domain.Documents{}
		}
		if u.Documents.InvestorMemo != nil {
			o.Documents.InvestorMemo = *u.Documents.InvestorMemo
		}
		if u.Documents.InvestorDocuments != nil {
			o.Documents.InvestorDocuments = u.Documents.InvestorDocuments
		}
		if u.Documents.ComplianceAudits != nil {
			o.Documents.ComplianceAudits = u.Documents.ComplianceAudits
		}
	}
}
