package repositories

import (
	"context"
	"time"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// FacilityReader defines read operations for facility and credit line data
type FacilityReader interface {
	// FindFacilityByID retrieves a specific facility by its unique identifier.
	FindFacilityByID(ctx context.Context, facilityID string) (*domain.Facility, error)

	// ListFacilities retrieves all facilities for an organization.
	ListFacilities(ctx context.Context, organizationID string) ([]domain.Facility, error)

	// ListFacilitiesByBank retrieves the facilities granted by one bank.
	ListFacilitiesByBank(ctx context.Context, bankID string) ([]domain.Facility, error)

	// FindCreditLineByID retrieves a specific credit line.
	FindCreditLineByID(ctx context.Context, creditLineID string) (*domain.CreditLine, error)

	// ListCreditLines retrieves the credit lines carved out of a facility.
	ListCreditLines(ctx context.Context, facilityID string) ([]domain.CreditLine, error)
}

// FacilityWriter defines write operations for facility and credit line data
type FacilityWriter interface {
	// SaveFacility persists a new facility.
	SaveFacility(ctx context.Context, facility domain.Facility) error

	// UpdateFacility updates an existing facility's details.
	UpdateFacility(ctx context.Context, facility domain.Facility) error

	// DeactivateFacility marks a facility as inactive.
	DeactivateFacility(ctx context.Context, facilityID string, userID string, now time.Time) error

	// SaveCreditLine persists a new credit line under a facility.
	SaveCreditLine(ctx context.Context, line domain.CreditLine) error

	// DeactivateCreditLine marks a credit line as inactive.
	DeactivateCreditLine(ctx context.Context, creditLineID string, userID string, now time.Time) error
}

// FacilityRepositoryFacade combines all facility-related repository interfaces
type FacilityRepositoryFacade interface {
	FacilityReader
	FacilityWriter
}
