package domain

import "time"

// Urgency buckets a loan's due date for reminder purposes.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL" // Overdue or due within 7 days
	UrgencyWarning  Urgency = "WARNING"  // Due within 8-15 days
	UrgencyNormal   Urgency = "NORMAL"   // Due after 15 days
)

// DueLoan pairs a loan with its computed urgency for reminder consumers.
type DueLoan struct {
	Loan         Loan    `json:"loan"`
	DaysUntilDue int     `json:"daysUntilDue"` // Negative when overdue
	Urgency      Urgency `json:"urgency"`
}

// ReminderEvent is the structured payload handed to notification senders.
// The core never formats or sends email/calendar content itself.
type ReminderEvent struct {
	EventID         string    `json:"eventID"`
	OrganizationID  string    `json:"organizationID"`
	LoanID          string    `json:"loanID"`
	ReferenceNumber string    `json:"referenceNumber"`
	BankID          string    `json:"bankID"`
	Amount          string    `json:"amount"` // Decimal string; senders must not re-parse arithmetic from it
	DueDate         time.Time `json:"dueDate"`
	Urgency         Urgency   `json:"urgency"`
	EmittedAt       time.Time `json:"emittedAt"`
}
