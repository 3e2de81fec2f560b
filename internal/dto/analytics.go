package dto

import (
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// BankExposuresResponse wraps the per-bank exposure rollup.
type BankExposuresResponse struct {
	Exposures []domain.BankExposure `json:"exposures"`
}

// FacilityAvailabilityResponse wraps per-facility headroom figures.
type FacilityAvailabilityResponse struct {
	Facilities []domain.FacilityAvailability `json:"facilities"`
}

// PortfolioSummaryResponse wraps the organization-wide rollup.
type PortfolioSummaryResponse struct {
	Summary domain.PortfolioSummary `json:"summary"`
}

// ToPortfolioSummaryResponse converts a domain.PortfolioSummary to DTO.
func ToPortfolioSummaryResponse(summary *domain.PortfolioSummary) PortfolioSummaryResponse {
	return PortfolioSummaryResponse{Summary: *summary}
}

// DueLoansParams defines query parameters for the due-loans view.
type DueLoansParams struct {
	HorizonDays int `form:"horizonDays,default=30"`
}

// DueLoanResponse pairs a loan with its urgency classification.
type DueLoanResponse struct {
	Loan         LoanResponse   `json:"loan"`
	DaysUntilDue int            `json:"daysUntilDue"`
	Urgency      domain.Urgency `json:"urgency"`
}

// DueLoansResponse wraps the due-loans view.
type DueLoansResponse struct {
	Loans []DueLoanResponse `json:"loans"`
}

// ToDueLoansResponse converts domain.DueLoan slices to DTO.
func ToDueLoansResponse(dueLoans []domain.DueLoan) DueLoansResponse {
	list := make([]DueLoanResponse, len(dueLoans))
	for i, dl := range dueLoans {
		list[i] = DueLoanResponse{
			Loan:         ToLoanResponse(&dl.Loan),
			DaysUntilDue: dl.DaysUntilDue,
			Urgency:      dl.Urgency,
		}
	}
	return DueLoansResponse{Loans: list}
}
