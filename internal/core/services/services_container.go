package services

import (
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/platform/config"
	"github.com/tamkeenlabs/facility_management_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, posthogClient *utils.PosthogClientWrapper) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	// Initialize organization service first since other services depend on its authorizer
	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	authorizer := container.Organization.(portssvc.OrganizationAuthorizerSvc)

	container.Bank = NewBankService(
		repos.BankRepo,
		WithBankOrgAuthorizer(authorizer),
	)
	container.Facility = NewFacilityService(
		repos.FacilityRepo,
		WithFacilityOrgAuthorizer(authorizer),
		WithFacilityBankReader(repos.BankRepo),
		WithFacilityLoanReader(repos.LoanRepo),
	)
	container.Loan = NewLoanService(
		repos.LoanRepo,
		WithLoanOrgAuthorizer(authorizer),
		WithLoanFacilityReader(repos.FacilityRepo),
	)
	container.Payment = NewPaymentService(
		repos.LoanRepo,
		repos.PaymentRepo,
		WithPaymentOrgAuthorizer(authorizer),
	)
	container.Collateral = NewCollateralService(
		repos.CollateralRepo,
		WithCollateralOrgAuthorizer(authorizer),
		WithCollateralBankReader(repos.BankRepo),
		WithCollateralFacilityReader(repos.FacilityRepo),
	)
	container.Analytics = NewAnalyticsService(
		repos.BankRepo,
		repos.FacilityRepo,
		repos.LoanRepo,
		repos.CollateralRepo,
		WithAnalyticsOrgAuthorizer(authorizer),
	)
	container.Reminder = NewReminderService(
		repos.LoanRepo,
		repos.FacilityRepo,
		repos.OrganizationRepo,
		NewPosthogNotificationDispatcher(posthogClient),
		cfg.ReminderHorizonDays,
	)

	container.User = NewUserService(repos.UserRepo)
	container.APIToken = NewAPITokenService(repos.APITokenRepo, container.User)
	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	// The credential-verification strategy is fixed once at startup
	authProvider, err := NewAuthProvider(cfg, container.User, container.GoogleOAuthHandler)
	if err != nil {
		return nil, err
	}
	container.AuthProvider = authProvider

	return container, nil
}

// Compile-time interface implementation checks
var (
	_ portssvc.OrganizationSvcFacade = (*OrganizationService)(nil)
	_ portssvc.BankSvcFacade         = (*bankService)(nil)
	_ portssvc.FacilitySvcFacade     = (*facilityService)(nil)
	_ portssvc.LoanSvcFacade         = (*loanService)(nil)
	_ portssvc.PaymentSvcFacade      = (*paymentService)(nil)
	_ portssvc.CollateralSvcFacade   = (*collateralService)(nil)
	_ portssvc.AnalyticsSvcFacade    = (*analyticsService)(nil)
	_ portssvc.ReminderSvcFacade     = (*reminderService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
)
