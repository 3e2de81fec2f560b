package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/core/services"
)

// --- Mock BankReader ---
type MockBankReader struct {
	mock.Mock
}

func (m *MockBankReader) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	args := m.Called(ctx, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankReader) ListBanks(ctx context.Context, organizationID string) ([]domain.Bank, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bank), args.Error(1)
}

// --- Mock CollateralReader ---
type MockCollateralReader struct {
	mock.Mock
}

func (m *MockCollateralReader) FindAssetByID(ctx context.Context, assetID string) (*domain.CollateralAsset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollateralAsset), args.Error(1)
}

func (m *MockCollateralReader) ListAssets(ctx context.Context, organizationID string) ([]domain.CollateralAsset, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollateralAsset), args.Error(1)
}

func (m *MockCollateralReader) FindAssignmentByAsset(ctx context.Context, assetID string) (*domain.CollateralAssignment, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollateralAssignment), args.Error(1)
}

func (m *MockCollateralReader) ListAssignmentsByTarget(ctx context.Context, level domain.AssignmentLevel, targetID string) ([]domain.CollateralAssignment, error) {
	args := m.Called(ctx, level, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollateralAssignment), args.Error(1)
}

// --- Test Suite ---
type AnalyticsServiceTestSuite struct {
	suite.Suite
	mockBankRepo       *MockBankReader
	mockFacilityRepo   *MockFacilityReader
	mockLoanRepo       *MockLoanRepository
	mockCollateralRepo *MockCollateralReader
	service            portssvc.AnalyticsSvcFacade

	organizationID string
	userID         string
	banks          []domain.Bank
	facilities     []domain.Facility
	loans          []domain.Loan
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankReader)
	suite.mockFacilityRepo = new(MockFacilityReader)
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockCollateralRepo = new(MockCollateralReader)
	suite.service = services.NewAnalyticsService(
		suite.mockBankRepo,
		suite.mockFacilityRepo,
		suite.mockLoanRepo,
		suite.mockCollateralRepo,
	)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	alrajhi := domain.Bank{BankID: uuid.NewString(), OrganizationID: suite.organizationID, Name: "Al Rajhi Bank", IsActive: true}
	snb := domain.Bank{BankID: uuid.NewString(), OrganizationID: suite.organizationID, Name: "Saudi National Bank", IsActive: true}
	suite.banks = []domain.Bank{alrajhi, snb}

	suite.facilities = []domain.Facility{
		{
			FacilityID:     uuid.NewString(),
			OrganizationID: suite.organizationID,
			BankID:         alrajhi.BankID,
			FacilityType:   domain.FacilityRevolving,
			CreditLimit:    decimal.NewFromInt(5_000_000),
			IsActive:       true,
		},
		{
			FacilityID:     uuid.NewString(),
			OrganizationID: suite.organizationID,
			BankID:         snb.BankID,
			FacilityType:   domain.FacilityTerm,
			CreditLimit:    decimal.NewFromInt(2_000_000),
			IsActive:       true,
		},
	}

	suite.loans = []domain.Loan{
		{
			LoanID:         uuid.NewString(),
			OrganizationID: suite.organizationID,
			FacilityID:     suite.facilities[0].FacilityID,
			Amount:         decimal.NewFromInt(3_000_000),
			Status:         domain.LoanActive,
		},
		{
			LoanID:         uuid.NewString(),
			OrganizationID: suite.organizationID,
			FacilityID:     suite.facilities[0].FacilityID,
			Amount:         decimal.NewFromInt(1_000_000),
			Status:         domain.LoanSettled, // Must not count
		},
		{
			LoanID:         uuid.NewString(),
			OrganizationID: suite.organizationID,
			FacilityID:     suite.facilities[1].FacilityID,
			Amount:         decimal.NewFromInt(2_500_000),
			Status:         domain.LoanOverdue,
		},
	}
}

func (suite *AnalyticsServiceTestSuite) expectPortfolio(ctx context.Context) {
	suite.mockBankRepo.On("ListBanks", ctx, suite.organizationID).Return(suite.banks, nil).Once()
	suite.mockFacilityRepo.On("ListFacilities", ctx, suite.organizationID).Return(suite.facilities, nil).Once()
	suite.mockLoanRepo.On("ListLoans", ctx, suite.organizationID, (*domain.LoanStatus)(nil), 500, (*string)(nil)).Return(suite.loans, nil, nil).Once()
}

// --- BankExposures ---

func (suite *AnalyticsServiceTestSuite) TestBankExposures() {
	ctx := context.Background()
	suite.expectPortfolio(ctx)

	exposures, err := suite.service.BankExposures(ctx, suite.organizationID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(exposures, 2)

	// Al Rajhi: 3M outstanding of 5M limit, settled loan excluded
	suite.True(exposures[0].Outstanding.Equal(decimal.NewFromInt(3_000_000)))
	suite.True(exposures[0].CreditLimit.Equal(decimal.NewFromInt(5_000_000)))
	suite.True(exposures[0].Utilization.Equal(decimal.NewFromInt(60)))
	suite.False(exposures[0].OverLimit)

	// SNB: overdue loan still counts and pushes past the limit
	suite.True(exposures[1].Outstanding.Equal(decimal.NewFromInt(2_500_000)))
	suite.True(exposures[1].CreditLimit.Equal(decimal.NewFromInt(2_000_000)))
	suite.True(exposures[1].OverLimit)

	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestBankExposures_PaginatesLoans() {
	ctx := context.Background()
	token := "page-2"
	suite.mockBankRepo.On("ListBanks", ctx, suite.organizationID).Return(suite.banks, nil).Once()
	suite.mockFacilityRepo.On("ListFacilities", ctx, suite.organizationID).Return(suite.facilities, nil).Once()
	suite.mockLoanRepo.On("ListLoans", ctx, suite.organizationID, (*domain.LoanStatus)(nil), 500, (*string)(nil)).Return(suite.loans[:1], &token, nil).Once()
	suite.mockLoanRepo.On("ListLoans", ctx, suite.organizationID, (*domain.LoanStatus)(nil), 500, &token).Return(suite.loans[1:], nil, nil).Once()

	exposures, err := suite.service.BankExposures(ctx, suite.organizationID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(exposures, 2)
	suite.True(exposures[0].Outstanding.Equal(decimal.NewFromInt(3_000_000)))
	suite.True(exposures[1].Outstanding.Equal(decimal.NewFromInt(2_500_000)))
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

// --- FacilityAvailability ---

func (suite *AnalyticsServiceTestSuite) TestFacilityAvailability() {
	ctx := context.Background()
	suite.expectPortfolio(ctx)

	availability, err := suite.service.FacilityAvailability(ctx, suite.organizationID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(availability, 2)

	suite.True(availability[0].Available.Equal(decimal.NewFromInt(2_000_000)))
	// Over-utilized facility reports negative availability rather than clamping
	suite.True(availability[1].Available.Equal(decimal.NewFromInt(-500_000)))
}

// --- PortfolioSummary ---

func (suite *AnalyticsServiceTestSuite) TestPortfolioSummary() {
	ctx := context.Background()
	collateral := []domain.CollateralAsset{
		{
			AssetID:        uuid.NewString(),
			OrganizationID: suite.organizationID,
			CollateralType: domain.CollateralRealEstate,
			CurrentValue:   decimal.NewFromInt(10_000_000),
			IsActive:       true,
		},
		{
			AssetID:        uuid.NewString(),
			OrganizationID: suite.organizationID,
			CollateralType: domain.CollateralLiquidStocks,
			CurrentValue:   decimal.NewFromInt(4_000_000),
			IsActive:       false, // Deactivated assets must not count
		},
	}
	suite.expectPortfolio(ctx)
	suite.mockCollateralRepo.On("ListAssets", ctx, suite.organizationID).Return(collateral, nil).Once()

	summary, err := suite.service.PortfolioSummary(ctx, suite.organizationID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.True(summary.TotalOutstanding.Equal(decimal.NewFromInt(5_500_000)))
	suite.True(summary.TotalCreditLimit.Equal(decimal.NewFromInt(7_000_000)))
	suite.True(summary.TotalAvailable.Equal(decimal.NewFromInt(1_500_000)))
	suite.True(summary.TotalCollateralValue.Equal(decimal.NewFromInt(10_000_000)))
	suite.Require().NotNil(summary.PortfolioLTV)
	suite.True(summary.PortfolioLTV.Equal(decimal.NewFromInt(55)))
	suite.Require().NotNil(summary.CoverageRatio)
	suite.mockCollateralRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestPortfolioSummary_EmptyPortfolio() {
	ctx := context.Background()
	suite.banks = nil
	suite.facilities = nil
	suite.loans = nil

	suite.mockBankRepo.On("ListBanks", ctx, suite.organizationID).Return(nil, nil).Once()
	suite.mockFacilityRepo.On("ListFacilities", ctx, suite.organizationID).Return(nil, nil).Once()
	suite.mockLoanRepo.On("ListLoans", ctx, suite.organizationID, (*domain.LoanStatus)(nil), 500, (*string)(nil)).Return(nil, nil, nil).Once()
	suite.mockCollateralRepo.On("ListAssets", ctx, suite.organizationID).Return(nil, nil).Once()

	summary, err := suite.service.PortfolioSummary(ctx, suite.organizationID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.True(summary.TotalOutstanding.IsZero())
	suite.Nil(summary.PortfolioLTV)
	suite.Nil(summary.CoverageRatio)
}

// --- DueLoans ---

func (suite *AnalyticsServiceTestSuite) TestDueLoans() {
	ctx := context.Background()
	now := time.Now()
	dueLoans := []domain.Loan{
		{LoanID: uuid.NewString(), OrganizationID: suite.organizationID, DueDate: now.AddDate(0, 0, 3), Status: domain.LoanActive},
		{LoanID: uuid.NewString(), OrganizationID: suite.organizationID, DueDate: now.AddDate(0, 0, 10), Status: domain.LoanActive},
		{LoanID: uuid.NewString(), OrganizationID: suite.organizationID, DueDate: now.AddDate(0, 0, 25), Status: domain.LoanActive},
		{LoanID: uuid.NewString(), OrganizationID: suite.organizationID, DueDate: now.AddDate(0, 0, 5), Status: domain.LoanSettled},
	}

	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).Return(dueLoans, nil).Once()

	result, err := suite.service.DueLoans(ctx, suite.organizationID, 30, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3) // Settled loan excluded
	suite.Equal(domain.UrgencyCritical, result[0].Urgency)
	suite.Equal(domain.UrgencyWarning, result[1].Urgency)
	suite.Equal(domain.UrgencyNormal, result[2].Urgency)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestDueLoans_DefaultHorizon() {
	ctx := context.Background()

	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, suite.organizationID, mock.MatchedBy(func(cutoff time.Time) bool {
		// Zero horizon falls back to 30 days
		expected := time.Now().AddDate(0, 0, 30)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return([]domain.Loan{}, nil).Once()

	result, err := suite.service.DueLoans(ctx, suite.organizationID, 0, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(result)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}
