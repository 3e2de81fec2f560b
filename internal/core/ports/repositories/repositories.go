package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryFacade
	BankRepo         BankRepositoryFacade
	FacilityRepo     FacilityRepositoryFacade
	LoanRepo         LoanRepositoryWithTx
	PaymentRepo      PaymentRepositoryFacade
	CollateralRepo   CollateralRepositoryFacade
	UserRepo         UserRepositoryFacade
	APITokenRepo     APITokenRepository
}
