package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
)

// bankService implements the BankSvcFacade interface
type bankService struct {
	BaseService
	bankRepo portsrepo.BankRepositoryFacade
}

// BankServiceOption is a functional option for configuring the bank service
type BankServiceOption func(*bankService)

// WithBankOrgAuthorizer adds the organization authorizer dependency
func WithBankOrgAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) BankServiceOption {
	return func(s *bankService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewBankService creates a new bank service with the provided options
func NewBankService(repo portsrepo.BankRepositoryFacade, options ...BankServiceOption) portssvc.BankSvcFacade {
	svc := &bankService{
		bankRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

func (s *bankService) CreateBank(ctx context.Context, organizationID string, req dto.CreateBankRequest, userID string) (*domain.Bank, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create bank",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	now := time.Now()
	bank := domain.Bank{
		BankID:         uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Branch:         req.Branch,
		ContactEmail:   req.ContactEmail,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bankRepo.SaveBank(ctx, bank); err != nil {
		s.LogError(ctx, err, "Failed to save bank in repository", slog.String("bank_id", bank.BankID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank created successfully", slog.String("bank_id", bank.BankID), slog.String("organization_id", organizationID))
	return &bank, nil
}

func (s *bankService) GetBankByID(ctx context.Context, organizationID string, bankID string, userID string) (*domain.Bank, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank by ID in repository", slog.String("bank_id", bankID))
		}
		return nil, err
	}
	if bank.OrganizationID != organizationID {
		// Do not reveal existence of banks in other organizations
		return nil, apperrors.ErrNotFound
	}
	return bank, nil
}

func (s *bankService) ListBanks(ctx context.Context, organizationID string, userID string) ([]domain.Bank, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	banks, err := s.bankRepo.ListBanks(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list banks from repository", slog.String("organization_id", organizationID))
		return nil, err
	}
	if banks == nil {
		return []domain.Bank{}, nil
	}
	return banks, nil
}

func (s *bankService) UpdateBank(ctx context.Context, organizationID string, bankID string, req dto.UpdateBankRequest, userID string) (*domain.Bank, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	bank, err := s.GetBankByID(ctx, organizationID, bankID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bank.Name = *req.Name
	}
	if req.Branch != nil {
		bank.Branch = *req.Branch
	}
	if req.ContactEmail != nil {
		bank.ContactEmail = *req.ContactEmail
	}
	bank.LastUpdatedAt = time.Now()
	bank.LastUpdatedBy = userID

	if err := s.bankRepo.UpdateBank(ctx, *bank); err != nil {
		s.LogError(ctx, err, "Failed to update bank in repository", slog.String("bank_id", bankID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank updated successfully", slog.String("bank_id", bankID))
	return bank, nil
}

func (s *bankService) DeactivateBank(ctx context.Context, organizationID string, bankID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	// Ownership check before the write
	if _, err := s.GetBankByID(ctx, organizationID, bankID, userID); err != nil {
		return err
	}

	if err := s.bankRepo.DeactivateBank(ctx, bankID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate bank in repository", slog.String("bank_id", bankID))
		}
		return err
	}

	s.LogInfo(ctx, "Bank deactivated successfully", slog.String("bank_id", bankID))
	return nil
}
