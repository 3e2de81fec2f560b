package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/core/services"
)

// MockNotificationDispatcher records dispatched reminder events

type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, event domain.ReminderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type ReminderServiceTestSuite struct {
	suite.Suite
	mockLoanRepo     *MockLoanRepository
	mockFacilityRepo *MockFacilityReader
	mockOrgRepo      *MockOrganizationRepository
	mockDispatcher   *MockNotificationDispatcher
	service          portssvc.ReminderSvcFacade
	organizationID   string
	facilityID       string
	bankID           string
}

func (suite *ReminderServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockFacilityRepo = new(MockFacilityReader)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockDispatcher = new(MockNotificationDispatcher)
	suite.organizationID = uuid.NewString()
	suite.facilityID = uuid.NewString()
	suite.bankID = uuid.NewString()
	suite.service = services.NewReminderService(
		suite.mockLoanRepo,
		suite.mockFacilityRepo,
		suite.mockOrgRepo,
		suite.mockDispatcher,
		15,
	)
}

func (suite *ReminderServiceTestSuite) loan(status domain.LoanStatus, dueIn int) domain.Loan {
	return domain.Loan{
		LoanID:          uuid.NewString(),
		OrganizationID:  suite.organizationID,
		FacilityID:      suite.facilityID,
		ReferenceNumber: "TF-2026-" + uuid.NewString()[:8],
		Amount:          decimal.NewFromInt(250000),
		Status:          status,
		DueDate:         time.Now().AddDate(0, 0, dueIn),
	}
}

func (suite *ReminderServiceTestSuite) expectFacility() {
	facility := &domain.Facility{
		FacilityID:     suite.facilityID,
		OrganizationID: suite.organizationID,
		BankID:         suite.bankID,
	}
	suite.mockFacilityRepo.On("FindFacilityByID", mock.Anything, suite.facilityID).Return(facility, nil)
}

func (suite *ReminderServiceTestSuite) TestSweepOrganization_EmitsEventPerOutstandingLoan() {
	ctx := context.Background()
	dueSoon := suite.loan(domain.LoanActive, 3)
	settled := suite.loan(domain.LoanSettled, 3)

	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).
		Return([]domain.Loan{dueSoon, settled}, nil).Once()
	suite.expectFacility()
	suite.mockDispatcher.On("Dispatch", ctx, mock.MatchedBy(func(e domain.ReminderEvent) bool {
		return e.LoanID == dueSoon.LoanID &&
			e.BankID == suite.bankID &&
			e.Amount == "SAR 250000.00" &&
			e.Urgency == domain.UrgencyCritical
	})).Return(nil).Once()

	events, err := suite.service.SweepOrganization(ctx, suite.organizationID)

	suite.Require().NoError(err)
	suite.Len(events, 1)
	suite.Equal(dueSoon.LoanID, events[0].LoanID)
	suite.mockDispatcher.AssertExpectations(suite.T())
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "UpdateLoan", mock.Anything, mock.Anything)
}

func (suite *ReminderServiceTestSuite) TestSweepOrganization_FlipsPastDueLoanToOverdue() {
	ctx := context.Background()
	pastDue := suite.loan(domain.LoanActive, -2)

	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).
		Return([]domain.Loan{pastDue}, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return l.LoanID == pastDue.LoanID && l.Status == domain.LoanOverdue && l.LastUpdatedBy == "system"
	})).Return(nil).Once()
	suite.expectFacility()
	suite.mockDispatcher.On("Dispatch", ctx, mock.AnythingOfType("domain.ReminderEvent")).Return(nil).Once()

	events, err := suite.service.SweepOrganization(ctx, suite.organizationID)

	suite.Require().NoError(err)
	suite.Len(events, 1)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestSweepOrganization_StillEmitsWhenStatusFlipFails() {
	ctx := context.Background()
	pastDue := suite.loan(domain.LoanActive, -1)

	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).
		Return([]domain.Loan{pastDue}, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(assert.AnError).Once()
	suite.expectFacility()
	suite.mockDispatcher.On("Dispatch", ctx, mock.AnythingOfType("domain.ReminderEvent")).Return(nil).Once()

	events, err := suite.service.SweepOrganization(ctx, suite.organizationID)

	suite.Require().NoError(err)
	suite.Len(events, 1)
}

func (suite *ReminderServiceTestSuite) TestSweepOrganization_SkipsEventWhenDispatchFails() {
	ctx := context.Background()
	dueSoon := suite.loan(domain.LoanOverdue, -5)

	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).
		Return([]domain.Loan{dueSoon}, nil).Once()
	suite.expectFacility()
	suite.mockDispatcher.On("Dispatch", ctx, mock.AnythingOfType("domain.ReminderEvent")).Return(assert.AnError).Once()

	events, err := suite.service.SweepOrganization(ctx, suite.organizationID)

	suite.Require().NoError(err)
	suite.Empty(events)
}

func (suite *ReminderServiceTestSuite) TestSweepOrganization_ListError() {
	ctx := context.Background()

	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).
		Return(nil, assert.AnError).Once()

	events, err := suite.service.SweepOrganization(ctx, suite.organizationID)

	suite.Require().Error(err)
	suite.Nil(events)
	suite.mockDispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *ReminderServiceTestSuite) TestSweepAll_ContinuesPastFailingOrganization() {
	ctx := context.Background()
	brokenOrgID := uuid.NewString()
	organizations := []domain.Organization{
		{OrganizationID: brokenOrgID, Name: "Broken Org"},
		{OrganizationID: suite.organizationID, Name: "Tamkeen Holdings"},
	}
	dueSoon := suite.loan(domain.LoanActive, 10)

	suite.mockOrgRepo.On("ListActiveOrganizations", ctx).Return(organizations, nil).Once()
	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, brokenOrgID, mock.AnythingOfType("time.Time")).
		Return(nil, assert.AnError).Once()
	suite.mockLoanRepo.On("ListLoansDueBefore", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).
		Return([]domain.Loan{dueSoon}, nil).Once()
	suite.expectFacility()
	suite.mockDispatcher.On("Dispatch", ctx, mock.AnythingOfType("domain.ReminderEvent")).Return(nil).Once()

	total, err := suite.service.SweepAll(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, total)
}

func (suite *ReminderServiceTestSuite) TestSweepAll_OrganizationListError() {
	ctx := context.Background()

	suite.mockOrgRepo.On("ListActiveOrganizations", ctx).Return(nil, assert.AnError).Once()

	total, err := suite.service.SweepAll(ctx)

	suite.Require().Error(err)
	suite.Zero(total)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ListLoansDueBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}
