package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// CustomSplit carries a caller-supplied allocation as decimal strings.
// Strings keep malformed client input from silently becoming zero; they are
// parsed and validated server-side before any balance is touched.
type CustomSplit struct {
	Fees      string `json:"fees" binding:"required"`
	Interest  string `json:"interest" binding:"required"`
	Principal string `json:"principal" binding:"required"`
}

// CreatePaymentRequest defines the data needed to record a payment against a loan.
type CreatePaymentRequest struct {
	Amount      decimal.Decimal         `json:"amount" binding:"required,positivedecimal"`
	Policy      domain.AllocationPolicy `json:"policy" binding:"required,oneof=STANDARD CUSTOM"`
	CustomSplit *CustomSplit            `json:"customSplit"` // Required when policy is CUSTOM
	PaymentDate *time.Time              `json:"paymentDate"` // Defaults to now when omitted
	Notes       string                  `json:"notes"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID      string                  `json:"paymentID"`
	OrganizationID string                  `json:"organizationID"`
	LoanID         string                  `json:"loanID"`
	Amount         decimal.Decimal         `json:"amount"`
	Policy         domain.AllocationPolicy `json:"policy"`
	FeesPaid       decimal.Decimal         `json:"feesPaid"`
	InterestPaid   decimal.Decimal         `json:"interestPaid"`
	PrincipalPaid  decimal.Decimal         `json:"principalPaid"`
	PaymentDate    time.Time               `json:"paymentDate"`
	Notes          string                  `json:"notes"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedBy      string                  `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		OrganizationID: p.OrganizationID,
		LoanID:         p.LoanID,
		Amount:         p.Amount,
		Policy:         p.Policy,
		FeesPaid:       p.FeesPaid,
		InterestPaid:   p.InterestPaid,
		PrincipalPaid:  p.PrincipalPaid,
		PaymentDate:    p.PaymentDate,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
	}
}

// ListPaymentsResponse wraps the payments recorded against a loan.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts a slice of domain.Payment to DTO.
func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	list := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		list[i] = ToPaymentResponse(&p)
	}
	return ListPaymentsResponse{Payments: list}
}
