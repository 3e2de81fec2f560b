package services

import (
	"context"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
)

// FacilityReaderSvc defines read operations for facility data
type FacilityReaderSvc interface {
	// GetFacilityByID retrieves a specific facility within an organization.
	GetFacilityByID(ctx context.Context, organizationID string, facilityID string, userID string) (*domain.Facility, error)

	// ListFacilities retrieves all facilities for an organization.
	ListFacilities(ctx context.Context, organizationID string, userID string) ([]domain.Facility, error)

	// ListCreditLines retrieves the credit lines under a facility.
	ListCreditLines(ctx context.Context, organizationID string, facilityID string, userID string) ([]domain.CreditLine, error)
}

// FacilityWriterSvc defines write operations for facility data
type FacilityWriterSvc interface {
	// CreateFacility persists a new facility under a bank.
	CreateFacility(ctx context.Context, organizationID string, req dto.CreateFacilityRequest, userID string) (*domain.Facility, error)

	// UpdateFacility updates an existing facility's details.
	UpdateFacility(ctx context.Context, organizationID string, facilityID string, req dto.UpdateFacilityRequest, userID string) (*domain.Facility, error)

	// DeactivateFacility marks a facility as inactive.
	DeactivateFacility(ctx context.Context, organizationID string, facilityID string, userID string) error

	// CreateCreditLine carves a sub-limit out of a facility.
	CreateCreditLine(ctx context.Context, organizationID string, facilityID string, req dto.CreateCreditLineRequest, userID string) (*domain.CreditLine, error)

	// DeactivateCreditLine marks a credit line as inactive.
	DeactivateCreditLine(ctx context.Context, organizationID string, creditLineID string, userID string) error
}

// FacilitySvcFacade combines all facility-related service interfaces
type FacilitySvcFacade interface {
	FacilityReaderSvc
	FacilityWriterSvc
}
