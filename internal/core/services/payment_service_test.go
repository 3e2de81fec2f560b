package services_test

import (
	"context"
	"testing"

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

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByLoan(ctx context.Context, loanID string) ([]domain.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockLoanRepo    *MockLoanRepository
	mockPaymentRepo *MockPaymentRepository
	service         portssvc.PaymentSvcFacade

	organizationID string
	userID         string
	loan           *domain.Loan
	balance        finance.LoanBalance
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewPaymentService(suite.mockLoanRepo, suite.mockPaymentRepo)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.loan = &domain.Loan{
		LoanID:          uuid.NewString(),
		OrganizationID:  suite.organizationID,
		ReferenceNumber: "LN-2025-001",
		Amount:          decimal.NewFromInt(1_000_000),
		Status:          domain.LoanActive,
	}
	suite.balance = finance.LoanBalance{
		Principal: decimal.NewFromInt(1_000_000),
		Interest:  decimal.NewFromInt(30_000),
		Fees:      decimal.NewFromInt(5_000),
	}
}

// expectTransaction wires the begin/lock mocks shared by the recording tests.
func (suite *PaymentServiceTestSuite) expectTransaction(ctx context.Context) {
	suite.mockLoanRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLoanRepo.On("GetLoanBalanceForUpdate", ctx, nil, suite.loan.LoanID).Return(suite.balance, nil).Once()
}

// --- RecordPayment ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_StandardWaterfall() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(50_000),
		Policy: domain.AllocationStandard,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.expectTransaction(ctx)
	// 50,000 covers fees (5,000), then interest (30,000), remainder to principal (15,000)
	suite.mockLoanRepo.On("UpdateLoanBalanceInTx", ctx, nil, suite.loan.LoanID, mock.MatchedBy(func(b finance.LoanBalance) bool {
		return b.Principal.Equal(decimal.NewFromInt(985_000)) &&
			b.Interest.Equal(decimal.Zero) &&
			b.Fees.Equal(decimal.Zero)
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, nil, mock.MatchedBy(func(p domain.Payment) bool {
		return p.FeesPaid.Equal(decimal.NewFromInt(5_000)) &&
			p.InterestPaid.Equal(decimal.NewFromInt(30_000)) &&
			p.PrincipalPaid.Equal(decimal.NewFromInt(15_000)) &&
			p.LoanID == suite.loan.LoanID &&
			p.OrganizationID == suite.organizationID
	})).Return(nil).Once()
	suite.mockLoanRepo.On("Commit", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.True(payment.Amount.Equal(req.Amount))
	suite.Equal(domain.AllocationStandard, payment.Policy)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PartialFeesOnly() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(3_000),
		Policy: domain.AllocationStandard,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.expectTransaction(ctx)
	suite.mockLoanRepo.On("UpdateLoanBalanceInTx", ctx, nil, suite.loan.LoanID, mock.MatchedBy(func(b finance.LoanBalance) bool {
		return b.Fees.Equal(decimal.NewFromInt(2_000)) &&
			b.Interest.Equal(decimal.NewFromInt(30_000)) &&
			b.Principal.Equal(decimal.NewFromInt(1_000_000))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, nil, mock.MatchedBy(func(p domain.Payment) bool {
		return p.FeesPaid.Equal(decimal.NewFromInt(3_000)) &&
			p.InterestPaid.IsZero() &&
			p.PrincipalPaid.IsZero()
	})).Return(nil).Once()
	suite.mockLoanRepo.On("Commit", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_Overpayment() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(2_000_000), // Exceeds total outstanding of 1,035,000
		Policy: domain.AllocationStandard,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.expectTransaction(ctx)
	suite.mockLoanRepo.On("Rollback", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrOverpayment)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "UpdateLoanBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CustomSplit() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(40_000),
		Policy: domain.AllocationCustom,
		CustomSplit: &dto.CustomSplit{
			Fees:      "0",
			Interest:  "10000",
			Principal: "30000",
		},
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.expectTransaction(ctx)
	suite.mockLoanRepo.On("UpdateLoanBalanceInTx", ctx, nil, suite.loan.LoanID, mock.MatchedBy(func(b finance.LoanBalance) bool {
		return b.Principal.Equal(decimal.NewFromInt(970_000)) &&
			b.Interest.Equal(decimal.NewFromInt(20_000)) &&
			b.Fees.Equal(decimal.NewFromInt(5_000))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, nil, mock.MatchedBy(func(p domain.Payment) bool {
		return p.FeesPaid.IsZero() &&
			p.InterestPaid.Equal(decimal.NewFromInt(10_000)) &&
			p.PrincipalPaid.Equal(decimal.NewFromInt(30_000))
	})).Return(nil).Once()
	suite.mockLoanRepo.On("Commit", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(domain.AllocationCustom, payment.Policy)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CustomSplitOverrunsBucket() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(10_000),
		Policy: domain.AllocationCustom,
		CustomSplit: &dto.CustomSplit{
			Fees:      "10000", // Only 5,000 of fees outstanding
			Interest:  "0",
			Principal: "0",
		},
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.expectTransaction(ctx)
	suite.mockLoanRepo.On("Rollback", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrInvalidAllocation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "UpdateLoanBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CustomSplitDoesNotSum() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(40_000),
		Policy: domain.AllocationCustom,
		CustomSplit: &dto.CustomSplit{
			Fees:      "0",
			Interest:  "10000",
			Principal: "20000", // Sums to 30,000, not 40,000
		},
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.expectTransaction(ctx)
	suite.mockLoanRepo.On("Rollback", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrInvalidAllocation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CustomSplitMissing() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(40_000),
		Policy: domain.AllocationCustom,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_MalformedSplitAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(40_000),
		Policy: domain.AllocationCustom,
		CustomSplit: &dto.CustomSplit{
			Fees:      "abc",
			Interest:  "10000",
			Principal: "30000",
		},
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SettledLoanRejected() {
	ctx := context.Background()
	suite.loan.Status = domain.LoanSettled
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(1_000),
		Policy: domain.AllocationStandard,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverdueLoanAccepted() {
	ctx := context.Background()
	suite.loan.Status = domain.LoanOverdue
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(5_000),
		Policy: domain.AllocationStandard,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.expectTransaction(ctx)
	suite.mockLoanRepo.On("UpdateLoanBalanceInTx", ctx, nil, suite.loan.LoanID, mock.AnythingOfType("finance.LoanBalance"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, nil, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockLoanRepo.On("Commit", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(payment)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.Zero,
		Policy: domain.AllocationStandard,
	}

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "FindLoanByID", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SaveFailsRollsBack() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(5_000),
		Policy: domain.AllocationStandard,
	}
	expectedErr := assert.AnError

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.expectTransaction(ctx)
	suite.mockLoanRepo.On("UpdateLoanBalanceInTx", ctx, nil, suite.loan.LoanID, mock.AnythingOfType("finance.LoanBalance"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, nil, mock.AnythingOfType("domain.Payment")).Return(expectedErr).Once()
	suite.mockLoanRepo.On("Rollback", ctx, nil).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.organizationID, suite.loan.LoanID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, expectedErr)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

// --- GetPaymentByID ---

func (suite *PaymentServiceTestSuite) TestGetPaymentByID_Success() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	expected := &domain.Payment{PaymentID: paymentID, OrganizationID: suite.organizationID}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(expected, nil).Once()

	payment, err := suite.service.GetPaymentByID(ctx, suite.organizationID, paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(expected, payment)
}

func (suite *PaymentServiceTestSuite) TestGetPaymentByID_WrongOrganization() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	other := &domain.Payment{PaymentID: paymentID, OrganizationID: uuid.NewString()}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(other, nil).Once()

	payment, err := suite.service.GetPaymentByID(ctx, suite.organizationID, paymentID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListPaymentsByLoan ---

func (suite *PaymentServiceTestSuite) TestListPaymentsByLoan_Success() {
	ctx := context.Background()
	expected := []domain.Payment{{PaymentID: uuid.NewString(), LoanID: suite.loan.LoanID}}

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByLoan", ctx, suite.loan.LoanID).Return(expected, nil).Once()

	payments, err := suite.service.ListPaymentsByLoan(ctx, suite.organizationID, suite.loan.LoanID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(expected, payments)
}

func (suite *PaymentServiceTestSuite) TestListPaymentsByLoan_Empty() {
	ctx := context.Background()

	suite.mockLoanRepo.On("FindLoanByID", ctx, suite.loan.LoanID).Return(suite.loan, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByLoan", ctx, suite.loan.LoanID).Return(nil, nil).Once()

	payments, err := suite.service.ListPaymentsByLoan(ctx, suite.organizationID, suite.loan.LoanID, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(payments)
	suite.Empty(payments)
}

// --- Run Suite ---
func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
