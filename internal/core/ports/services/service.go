package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	Bank         BankSvcFacade
	Facility     FacilitySvcFacade
	Loan         LoanSvcFacade
	Payment      PaymentSvcFacade
	Collateral   CollateralSvcFacade
	Analytics    AnalyticsSvcFacade
	Reminder     ReminderSvcFacade
	User         UserSvcFacade
	APIToken     APITokenSvc
	TokenService TokenSvcFacade
	AuthProvider AuthProviderSvc

	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
