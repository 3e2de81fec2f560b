package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
)

// collateralService implements the CollateralSvcFacade interface
type collateralService struct {
	BaseService
	collateralRepo portsrepo.CollateralRepositoryFacade
	bankRepo       portsrepo.BankReader
	facilityRepo   portsrepo.FacilityReader
}

// CollateralServiceOption is a functional option for configuring the collateral service
type CollateralServiceOption func(*collateralService)

// WithCollateralOrgAuthorizer adds the organization authorizer dependency
func WithCollateralOrgAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) CollateralServiceOption {
	return func(s *collateralService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithCollateralBankReader adds the bank reader used to validate assignment targets
func WithCollateralBankReader(repo portsrepo.BankReader) CollateralServiceOption {
	return func(s *collateralService) {
		s.bankRepo = repo
	}
}

// WithCollateralFacilityReader adds the facility reader used to validate assignment targets
func WithCollateralFacilityReader(repo portsrepo.FacilityReader) CollateralServiceOption {
	return func(s *collateralService) {
		s.facilityRepo = repo
	}
}

// NewCollateralService creates a new collateral service with the provided options
func NewCollateralService(repo portsrepo.CollateralRepositoryFacade, options ...CollateralServiceOption) portssvc.CollateralSvcFacade {
	svc := &collateralService{
		collateralRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CollateralSvcFacade = (*collateralService)(nil)

func (s *collateralService) CreateAsset(ctx context.Context, organizationID string, req dto.CreateCollateralAssetRequest, userID string) (*domain.CollateralAsset, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create collateral asset",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if !req.CurrentValue.IsPositive() {
		return nil, fmt.Errorf("%w: asset value must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	asset := domain.CollateralAsset{
		AssetID:        uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		CollateralType: req.CollateralType,
		CurrentValue:   req.CurrentValue,
		ValuationDate:  req.ValuationDate,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.collateralRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to save collateral asset in repository", slog.String("asset_id", asset.AssetID))
		return nil, err
	}

	s.LogInfo(ctx, "Collateral asset created successfully", slog.String("asset_id", asset.AssetID))
	return &asset, nil
}

func (s *collateralService) GetAssetByID(ctx context.Context, organizationID string, assetID string, userID string) (*domain.CollateralAsset, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	asset, err := s.collateralRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find collateral asset by ID", slog.String("asset_id", assetID))
		}
		return nil, err
	}
	if asset.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return asset, nil
}

func (s *collateralService) ListAssets(ctx context.Context, organizationID string, userID string) ([]domain.CollateralAsset, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	assets, err := s.collateralRepo.ListAssets(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list collateral assets from repository", slog.String("organization_id", organizationID))
		return nil, err
	}
	if assets == nil {
		return []domain.CollateralAsset{}, nil
	}
	return assets, nil
}

func (s *collateralService) RevalueAsset(ctx context.Context, organizationID string, assetID string, req dto.RevalueCollateralAssetRequest, userID string) (*domain.CollateralAsset, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	asset, err := s.GetAssetByID(ctx, organizationID, assetID, userID)
	if err != nil {
		return nil, err
	}

	if !req.CurrentValue.IsPositive() {
		return nil, fmt.Errorf("%w: asset value must be positive", apperrors.ErrValidation)
	}

	asset.CurrentValue = req.CurrentValue
	asset.ValuationDate = req.ValuationDate
	asset.LastUpdatedAt = time.Now()
	asset.LastUpdatedBy = userID

	if err := s.collateralRepo.UpdateAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to update collateral asset in repository", slog.String("asset_id", assetID))
		return nil, err
	}

	s.LogInfo(ctx, "Collateral asset revalued", slog.String("asset_id", assetID), slog.String("value", req.CurrentValue.String()))
	return asset, nil
}

func (s *collateralService) DeactivateAsset(ctx context.Context, organizationID string, assetID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetAssetByID(ctx, organizationID, assetID, userID); err != nil {
		return err
	}

	// An assigned asset must be unassigned before it can be deactivated
	assignment, err := s.collateralRepo.FindAssignmentByAsset(ctx, assetID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check collateral assignment before deactivation", slog.String("asset_id", assetID))
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if assignment != nil {
		return fmt.Errorf("%w: asset is currently assigned", apperrors.ErrValidation)
	}

	if err := s.collateralRepo.DeactivateAsset(ctx, assetID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate collateral asset in repository", slog.String("asset_id", assetID))
		}
		return err
	}

	s.LogInfo(ctx, "Collateral asset deactivated", slog.String("asset_id", assetID))
	return nil
}

// AssignAsset pledges an asset to exactly one of bank, facility, or credit
// line. Assignments are exclusive: an asset already pledged anywhere must be
// unassigned first.
func (s *collateralService) AssignAsset(ctx context.Context, organizationID string, assetID string, req dto.AssignCollateralRequest, userID string) (*domain.CollateralAssignment, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	asset, err := s.GetAssetByID(ctx, organizationID, assetID, userID)
	if err != nil {
		return nil, err
	}
	if !asset.IsActive {
		return nil, fmt.Errorf("%w: inactive assets cannot be assigned", apperrors.ErrValidation)
	}

	existing, err := s.collateralRepo.FindAssignmentByAsset(ctx, assetID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing collateral assignment", slog.String("asset_id", assetID))
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: asset is already assigned", apperrors.ErrDuplicate)
	}

	if err := s.validateAssignmentTarget(ctx, organizationID, req.Level, req.TargetID); err != nil {
		return nil, err
	}

	assignment := domain.CollateralAssignment{
		AssignmentID: uuid.NewString(),
		AssetID:      assetID,
		Level:        req.Level,
		TargetID:     req.TargetID,
		AssignedAt:   time.Now(),
		AssignedBy:   userID,
	}

	if err := s.collateralRepo.SaveAssignment(ctx, assignment); err != nil {
		s.LogError(ctx, err, "Failed to save collateral assignment in repository", slog.String("asset_id", assetID))
		return nil, err
	}

	s.LogInfo(ctx, "Collateral asset assigned",
		slog.String("asset_id", assetID),
		slog.String("level", string(req.Level)),
		slog.String("target_id", req.TargetID))
	return &assignment, nil
}

func (s *collateralService) UnassignAsset(ctx context.Context, organizationID string, assetID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetAssetByID(ctx, organizationID, assetID, userID); err != nil {
		return err
	}

	if _, err := s.collateralRepo.FindAssignmentByAsset(ctx, assetID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: asset is not assigned", apperrors.ErrValidation)
		}
		return err
	}

	if err := s.collateralRepo.DeleteAssignment(ctx, assetID); err != nil {
		s.LogError(ctx, err, "Failed to delete collateral assignment in repository", slog.String("asset_id", assetID))
		return err
	}

	s.LogInfo(ctx, "Collateral asset unassigned", slog.String("asset_id", assetID))
	return nil
}

// validateAssignmentTarget checks that the target entity exists and belongs to
// the same organization as the asset.
func (s *collateralService) validateAssignmentTarget(ctx context.Context, organizationID string, level domain.AssignmentLevel, targetID string) error {
	switch level {
	case domain.AssignBank:
		if s.bankRepo == nil {
			return nil
		}
		bank, err := s.bankRepo.FindBankByID(ctx, targetID)
		if err != nil {
			return fmt.Errorf("invalid assignment target: %w", err)
		}
		if bank.OrganizationID != organizationID {
			return fmt.Errorf("%w: bank belongs to a different organization", apperrors.ErrValidation)
		}
	case domain.AssignFacility:
		if s.facilityRepo == nil {
			return nil
		}
		facility, err := s.facilityRepo.FindFacilityByID(ctx, targetID)
		if err != nil {
			return fmt.Errorf("invalid assignment target: %w", err)
		}
		if facility.OrganizationID != organizationID {
			return fmt.Errorf("%w: facility belongs to a different organization", apperrors.ErrValidation)
		}
	case domain.AssignCreditLine:
		if s.facilityRepo == nil {
			return nil
		}
		line, err := s.facilityRepo.FindCreditLineByID(ctx, targetID)
		if err != nil {
			return fmt.Errorf("invalid assignment target: %w", err)
		}
		if line.OrganizationID != organizationID {
			return fmt.Errorf("%w: credit line belongs to a different organization", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown assignment level %s", apperrors.ErrValidation, level)
	}
	return nil
}
