package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/core/services"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/finance"
)

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoanByReference(ctx context.Context, organizationID string, referenceNumber string) (*domain.Loan, error) {
	args := m.Called(ctx, organizationID, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, organizationID string, status *domain.LoanStatus, limit int, nextToken *string) ([]domain.Loan, *string, error) {
	args := m.Called(ctx, organizationID, status, limit, nextToken)
	var loans []domain.Loan
	if args.Get(0) != nil {
		loans = args.Get(0).([]domain.Loan)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return loans, token, args.Error(2)
}

func (m *MockLoanRepository) ListLoansByFacility(ctx context.Context, facilityID string) ([]domain.Loan, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoansDueBefore(ctx context.Context, organizationID string, cutoff time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, organizationID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetLoanBalance(ctx context.Context, loanID string) (finance.LoanBalance, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(finance.LoanBalance), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, opening finance.LoanBalance) error {
	args := m.Called(ctx, loan, opening)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) MarkLoanSettled(ctx context.Context, loanID string, settledAmount decimal.Decimal, settledDate time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, loanID, settledAmount, settledDate, userID, now)
	return args.Error(0)
}

func (m *MockLoanRepository) MarkLoanCancelled(ctx context.Context, loanID string, userID string, now time.Time) error {
	args := m.Called(ctx, loanID, userID, now)
	return args.Error(0)
}

func (m *MockLoanRepository) GetLoanBalanceForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (finance.LoanBalance, error) {
	args := m.Called(ctx, tx, loanID)
	return args.Get(0).(finance.LoanBalance), args.Error(1)
}

func (m *MockLoanRepository) UpdateLoanBalanceInTx(ctx context.Context, tx pgx.Tx, loanID string, balance finance.LoanBalance, userID string, now time.Time) error {
	args := m.Called(ctx, tx, loanID, balance, userID, now)
	return args.Error(0)
}

func (m *MockLoanRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLoanRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLoanRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock FacilityReader ---
type MockFacilityReader struct {
	mock.Mock
}

func (m *MockFacilityReader) FindFacilityByID(ctx context.Context, facilityID string) (*domain.Facility, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

func (m *MockFacilityReader) ListFacilities(ctx context.Context, organizationID string) ([]domain.Facility, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Facility), args.Error(1)
}

func (m *MockFacilityReader) ListFacilitiesByBank(ctx context.Context, bankID string) ([]domain.Facility, error) {
	args := m.Called(ctx, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Facility), args.Error(1)
}

func (m *MockFacilityReader) FindCreditLineByID(ctx context.Context, creditLineID string) (*domain.CreditLine, error) {
	args := m.Called(ctx, creditLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditLine), args.Error(1)
}

func (m *MockFacilityReader) ListCreditLines(ctx context.Context, facilityID string) ([]domain.CreditLine, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditLine), args.Error(1)
}

// --- Test Suite ---
type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo     *MockLoanRepository
	mockFacilityRepo *MockFacilityReader
	service          portssvc.LoanSvcFacade

	organizationID string
	userID         string
	facility       *domain.Facility
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockFacilityRepo = new(MockFacilityReader)
	suite.service = services.NewLoanService(suite.mockLoanRepo,
		services.WithLoanFacilityReader(suite.mockFacilityRepo),
	)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.facility = &domain.Facility{
		FacilityID:     uuid.NewString(),
		OrganizationID: suite.organizationID,
		BankID:         uuid.NewString(),
		FacilityType:   domain.FacilityRevolving,
		CreditLimit:    decimal.NewFromInt(10_000_000),
		IsActive:       true,
	}
}

func (suite *LoanServiceTestSuite) createLoanRequest() dto.CreateLoanRequest {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateLoanRequest{
		FacilityID:      suite.facility.FacilityID,
		ReferenceNumber: "LN-2025-001",
		Amount:          decimal.NewFromInt(1_500_000),
		InterestAmount:  decimal.NewFromInt(45_000),
		FeesAmount:      decimal.NewFromInt(5_000),
		SiborRate:       decimal.NewFromFloat(5.25),
		BankRate:        decimal.NewFromFloat(1.75),
		StartDate:       start,
		DueDate:         start.AddDate(0, 6, 0),
	}
}

// --- CreateLoan ---

func (suite *LoanServiceTestSuite) TestCreateLoan_Success() {
	ctx := context.Background()
	req := suite.createLoanRequest()

	suite.mockFacilityRepo.On("FindFacilityByID", ctx, req.FacilityID).Return(suite.facility, nil).Once()
	suite.mockLoanRepo.On("FindLoanByReference", ctx, suite.organizationID, req.ReferenceNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return l.OrganizationID == suite.organizationID &&
			l.FacilityID == req.FacilityID &&
			l.ReferenceNumber == req.ReferenceNumber &&
			l.Status == domain.LoanActive &&
			l.Amount.Equal(req.Amount)
	}), mock.MatchedBy(func(b finance.LoanBalance) bool {
		return b.Principal.Equal(req.Amount) && b.Interest.Equal(req.InterestAmount) && b.Fees.Equal(req.FeesAmount)
	})).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(loan)
	suite.Equal(domain.LoanActive, loan.Status)
	suite.Equal(suite.userID, loan.CreatedBy)
	suite.True(loan.EffectiveRate().Equal(decimal.NewFromFloat(7.0)))
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockFacilityRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_ViaCreditLine() {
	ctx := context.Background()
	req := suite.createLoanRequest()
	line := &domain.CreditLine{
		CreditLineID:   uuid.NewString(),
		OrganizationID: suite.organizationID,
		FacilityID:     req.FacilityID,
		Name:           "Working capital tranche",
		CreditLimit:    decimal.NewFromInt(2_000_000),
		IsActive:       true,
	}
	req.CreditLineID = &line.CreditLineID

	suite.mockFacilityRepo.On("FindFacilityByID", ctx, req.FacilityID).Return(suite.facility, nil).Once()
	suite.mockFacilityRepo.On("FindCreditLineByID", ctx, line.CreditLineID).Return(line, nil).Once()
	suite.mockLoanRepo.On("FindLoanByReference", ctx, suite.organizationID, req.ReferenceNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return l.CreditLineID == line.CreditLineID
	}), mock.AnythingOfType("finance.LoanBalance")).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(line.CreditLineID, loan.CreditLineID)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockFacilityRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_CreditLineFromOtherFacility() {
	ctx := context.Background()
	req := suite.createLoanRequest()
	line := &domain.CreditLine{
		CreditLineID: uuid.NewString(),
		FacilityID:   uuid.NewString(), // Belongs elsewhere
		IsActive:     true,
	}
	req.CreditLineID = &line.CreditLineID

	suite.mockFacilityRepo.On("FindFacilityByID", ctx, req.FacilityID).Return(suite.facility, nil).Once()
	suite.mockFacilityRepo.On("FindCreditLineByID", ctx, line.CreditLineID).Return(line, nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_DuplicateReference() {
	ctx := context.Background()
	req := suite.createLoanRequest()
	existing := &domain.Loan{LoanID: uuid.NewString(), ReferenceNumber: req.ReferenceNumber}

	suite.mockFacilityRepo.On("FindFacilityByID", ctx, req.FacilityID).Return(suite.facility, nil).Once()
	suite.mockLoanRepo.On("FindLoanByReference", ctx, suite.organizationID, req.ReferenceNumber).Return(existing, nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_NegativeAmount() {
	ctx := context.Background()
	req := suite.createLoanRequest()
	req.Amount = decimal.NewFromInt(-100)

	loan, err := suite.service.CreateLoan(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_DueDateBeforeStartDate() {
	ctx := context.Background()
	req := suite.createLoanRequest()
	req.DueDate = req.StartDate.AddDate(0, 0, -1)

	loan, err := suite.service.CreateLoan(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_InactiveFacility() {
	ctx := context.Background()
	req := suite.createLoanRequest()
	suite.facility.IsActive = false

	suite.mockFacilityRepo.On("FindFacilityByID", ctx, req.FacilityID).Return(suite.facility, nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_FacilityInOtherOrganization() {
	ctx := context.Background()
	req := suite.createLoanRequest()
	suite.facility.OrganizationID = uuid.NewString()

	suite.mockFacilityRepo.On("FindFacilityByID", ctx, req.FacilityID).Return(suite.facility, nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- GetLoanByID ---

func (suite *LoanServiceTestSuite) TestGetLoanByID_Success() {
	ctx := context.Background()
	loanID := uuid.NewString()
	expected := &domain.Loan{LoanID: loanID, OrganizationID: suite.organizationID}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(expected, nil).Once()

	loan, err := suite.service.GetLoanByID(ctx, suite.organizationID, loanID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(expected, loan)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestGetLoanByID_MarksPastDueOverdue() {
	ctx := context.Background()
	loanID := uuid.NewString()
	pastDue := &domain.Loan{
		LoanID:         loanID,
		OrganizationID: suite.organizationID,
		Status:         domain.LoanActive,
		DueDate:        time.Now().AddDate(0, 0, -3),
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(pastDue, nil).Once()

	loan, err := suite.service.GetLoanByID(ctx, suite.organizationID, loanID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanOverdue, loan.Status)
}

func (suite *LoanServiceTestSuite) TestGetLoanByID_WrongOrganization() {
	ctx := context.Background()
	loanID := uuid.NewString()
	other := &domain.Loan{LoanID: loanID, OrganizationID: uuid.NewString()}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(other, nil).Once()

	loan, err := suite.service.GetLoanByID(ctx, suite.organizationID, loanID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListLoans ---

func (suite *LoanServiceTestSuite) TestListLoans_DefaultsLimit() {
	ctx := context.Background()
	expected := []domain.Loan{{LoanID: uuid.NewString(), OrganizationID: suite.organizationID}}

	suite.mockLoanRepo.On("ListLoans", ctx, suite.organizationID, (*domain.LoanStatus)(nil), 20, (*string)(nil)).Return(expected, nil, nil).Once()

	loans, nextToken, err := suite.service.ListLoans(ctx, suite.organizationID, dto.ListLoansParams{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(expected, loans)
	suite.Nil(nextToken)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestListLoans_MarksPastDueOverdue() {
	ctx := context.Background()
	returned := []domain.Loan{
		{LoanID: uuid.NewString(), OrganizationID: suite.organizationID, Status: domain.LoanActive, DueDate: time.Now().AddDate(0, 0, -1)},
		{LoanID: uuid.NewString(), OrganizationID: suite.organizationID, Status: domain.LoanActive, DueDate: time.Now().AddDate(0, 0, 30)},
	}

	suite.mockLoanRepo.On("ListLoans", ctx, suite.organizationID, (*domain.LoanStatus)(nil), 20, (*string)(nil)).Return(returned, nil, nil).Once()

	loans, _, err := suite.service.ListLoans(ctx, suite.organizationID, dto.ListLoansParams{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanOverdue, loans[0].Status)
	suite.Equal(domain.LoanActive, loans[1].Status)
}

func (suite *LoanServiceTestSuite) TestListLoans_Empty() {
	ctx := context.Background()

	suite.mockLoanRepo.On("ListLoans", ctx, suite.organizationID, (*domain.LoanStatus)(nil), 20, (*string)(nil)).Return(nil, nil, nil).Once()

	loans, _, err := suite.service.ListLoans(ctx, suite.organizationID, dto.ListLoansParams{}, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(loans)
	suite.Empty(loans)
}

// --- RevolveLoan ---

func (suite *LoanServiceTestSuite) TestRevolveLoan_Success() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:          loanID,
		OrganizationID:  suite.organizationID,
		ReferenceNumber: "LN-2025-001",
		Amount:          decimal.NewFromInt(1_500_000),
		SiborRate:       decimal.NewFromFloat(5.25),
		Status:          domain.LoanOverdue,
	}
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	req := dto.RevolveLoanRequest{
		SiborRate: decimal.NewFromFloat(5.60),
		StartDate: start,
		DueDate:   start.AddDate(0, 6, 0),
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanActive &&
			l.SiborRate.Equal(req.SiborRate) &&
			l.DueDate.Equal(req.DueDate) &&
			l.ReferenceNumber == "LN-2025-001" &&
			l.Amount.Equal(decimal.NewFromInt(1_500_000))
	})).Return(nil).Once()

	revolved, err := suite.service.RevolveLoan(ctx, suite.organizationID, loanID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanActive, revolved.Status)
	suite.True(revolved.SiborRate.Equal(req.SiborRate))
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRevolveLoan_SettledLoanRejected() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{LoanID: loanID, OrganizationID: suite.organizationID, Status: domain.LoanSettled}
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	req := dto.RevolveLoanRequest{StartDate: start, DueDate: start.AddDate(0, 3, 0)}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()

	revolved, err := suite.service.RevolveLoan(ctx, suite.organizationID, loanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(revolved)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "UpdateLoan", mock.Anything, mock.Anything)
}

// --- SettleLoan ---

func (suite *LoanServiceTestSuite) TestSettleLoan_Success() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{LoanID: loanID, OrganizationID: suite.organizationID, Status: domain.LoanActive}
	req := dto.SettleLoanRequest{SettledAmount: decimal.NewFromInt(1_480_000)}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("MarkLoanSettled", ctx, loanID, req.SettledAmount, mock.AnythingOfType("time.Time"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	settled, err := suite.service.SettleLoan(ctx, suite.organizationID, loanID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanSettled, settled.Status)
	suite.Require().NotNil(settled.SettledAmount)
	suite.True(settled.SettledAmount.Equal(req.SettledAmount))
	suite.NotNil(settled.SettledDate)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestSettleLoan_CancelledLoanRejected() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{LoanID: loanID, OrganizationID: suite.organizationID, Status: domain.LoanCancelled}
	req := dto.SettleLoanRequest{SettledAmount: decimal.NewFromInt(100)}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()

	settled, err := suite.service.SettleLoan(ctx, suite.organizationID, loanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(settled)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- CancelLoan ---

func (suite *LoanServiceTestSuite) TestCancelLoan_Success() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{LoanID: loanID, OrganizationID: suite.organizationID, Status: domain.LoanActive}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("MarkLoanCancelled", ctx, loanID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CancelLoan(ctx, suite.organizationID, loanID, suite.userID)

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCancelLoan_NotFound() {
	ctx := context.Background()
	loanID := uuid.NewString()

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.CancelLoan(ctx, suite.organizationID, loanID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LoanServiceTestSuite) TestCancelLoan_RepoError() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{LoanID: loanID, OrganizationID: suite.organizationID, Status: domain.LoanActive}
	expectedErr := assert.AnError

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("MarkLoanCancelled", ctx, loanID, suite.userID, mock.AnythingOfType("time.Time")).Return(expectedErr).Once()

	err := suite.service.CancelLoan(ctx, suite.organizationID, loanID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestLoanService(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
