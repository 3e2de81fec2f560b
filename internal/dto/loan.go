package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// CreateLoanRequest defines the data needed to draw a new loan.
type CreateLoanRequest struct {
	FacilityID      string          `json:"facilityID" binding:"required"`
	CreditLineID    *string         `json:"creditLineID"` // Optional; draw via a credit line
	ReferenceNumber string          `json:"referenceNumber" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	InterestAmount  decimal.Decimal `json:"interestAmount"` // Opening interest bucket
	FeesAmount      decimal.Decimal `json:"feesAmount"`     // Opening fees bucket
	SiborRate       decimal.Decimal `json:"siborRate"`
	BankRate        decimal.Decimal `json:"bankRate"`
	StartDate       time.Time       `json:"startDate" binding:"required"`
	DueDate         time.Time       `json:"dueDate" binding:"required"`
}

// RevolveLoanRequest defines the data for rolling a loan into a new period.
// Amount and reference number carry over from the existing loan.
type RevolveLoanRequest struct {
	SiborRate decimal.Decimal `json:"siborRate"`
	StartDate time.Time       `json:"startDate" binding:"required"`
	DueDate   time.Time       `json:"dueDate" binding:"required"`
}

// SettleLoanRequest defines the data for settling a loan.
type SettleLoanRequest struct {
	SettledAmount decimal.Decimal `json:"settledAmount" binding:"required"`
	SettledDate   *time.Time      `json:"settledDate"` // Defaults to now when omitted
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	Status    *domain.LoanStatus `form:"status" binding:"omitempty,oneof=ACTIVE SETTLED OVERDUE CANCELLED"`
	Limit     int                `form:"limit,default=20"`
	NextToken *string            `form:"nextToken"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID          string            `json:"loanID"`
	OrganizationID  string            `json:"organizationID"`
	FacilityID      string            `json:"facilityID"`
	CreditLineID    string            `json:"creditLineID,omitempty"`
	ReferenceNumber string            `json:"referenceNumber"`
	Amount          decimal.Decimal   `json:"amount"`
	SiborRate       decimal.Decimal   `json:"siborRate"`
	BankRate        decimal.Decimal   `json:"bankRate"`
	EffectiveRate   decimal.Decimal   `json:"effectiveRate"`
	StartDate       time.Time         `json:"startDate"`
	DueDate         time.Time         `json:"dueDate"`
	Status          domain.LoanStatus `json:"status"`
	SettledAmount   *decimal.Decimal  `json:"settledAmount,omitempty"`
	SettledDate     *time.Time        `json:"settledDate,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	CreatedBy       string            `json:"createdBy"`
	LastUpdatedAt   time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy   string            `json:"lastUpdatedBy"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:          l.LoanID,
		OrganizationID:  l.OrganizationID,
		FacilityID:      l.FacilityID,
		CreditLineID:    l.CreditLineID,
		ReferenceNumber: l.ReferenceNumber,
		Amount:          l.Amount,
		SiborRate:       l.SiborRate,
		BankRate:        l.BankRate,
		EffectiveRate:   l.EffectiveRate(),
		StartDate:       l.StartDate,
		DueDate:         l.DueDate,
		Status:          l.Status,
		SettledAmount:   l.SettledAmount,
		SettledDate:     l.SettledDate,
		CreatedAt:       l.CreatedAt,
		CreatedBy:       l.CreatedBy,
		LastUpdatedAt:   l.LastUpdatedAt,
		LastUpdatedBy:   l.LastUpdatedBy,
	}
}

// ListLoansResponse wraps a page of loans with the keyset continuation token.
type ListLoansResponse struct {
	Loans     []LoanResponse `json:"loans"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToListLoansResponse converts a slice of domain.Loan plus token to DTO.
func ToListLoansResponse(loans []domain.Loan, nextToken *string) ListLoansResponse {
	list := make([]LoanResponse, len(loans))
	for i, l := range loans {
		list[i] = ToLoanResponse(&l)
	}
	return ListLoansResponse{Loans: list, NextToken: nextToken}
}
