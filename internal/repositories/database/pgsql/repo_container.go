package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	organizationRepo := newPgxOrganizationRepository(dbPool)
	bankRepo := newPgxBankRepository(dbPool)
	facilityRepo := newPgxFacilityRepository(dbPool)
	loanRepo := newPgxLoanRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	collateralRepo := newPgxCollateralRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	apiTokenRepo := newPgxAPITokenRepository(dbPool)

	return portsrepo.RepositoryProvider{
		OrganizationRepo: organizationRepo,
		BankRepo:         bankRepo,
		FacilityRepo:     facilityRepo,
		LoanRepo:         loanRepo,
		PaymentRepo:      paymentRepo,
		CollateralRepo:   collateralRepo,
		UserRepo:         userRepo,
		APITokenRepo:     apiTokenRepo,
	}
}
