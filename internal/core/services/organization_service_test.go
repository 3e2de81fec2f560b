package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/core/services"
)

// --- Mock OrganizationRepository ---
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindMembership(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) ListActiveOrganizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateMembershipRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, organizationID, role, updatedBy, now)
	return args.Error(0)
}

// --- Test Suite ---
type OrganizationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockOrganizationRepository
	service  portssvc.OrganizationSvcFacade

	organizationID string
	adminUserID    string
}

func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockOrganizationRepository)
	suite.service = services.NewOrganizationService(suite.mockRepo)

	suite.organizationID = uuid.NewString()
	suite.adminUserID = uuid.NewString()
}

func (suite *OrganizationServiceTestSuite) expectMembership(ctx context.Context, userID string, role domain.UserOrganizationRole) {
	suite.mockRepo.On("FindMembership", ctx, userID, suite.organizationID).Return(&domain.UserOrganization{
		UserID:         userID,
		OrganizationID: suite.organizationID,
		Role:           role,
	}, nil).Once()
}

// --- CreateOrganization ---

func (suite *OrganizationServiceTestSuite) TestCreateOrganization_Success() {
	ctx := context.Background()

	suite.mockRepo.On("SaveOrganization", ctx, mock.MatchedBy(func(o domain.Organization) bool {
		return o.Name == "Tamkeen Holdings" && o.IsActive && o.CreatedBy == suite.adminUserID
	})).Return(nil).Once()
	suite.mockRepo.On("AddUserToOrganization", ctx, mock.MatchedBy(func(m domain.UserOrganization) bool {
		return m.UserID == suite.adminUserID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	org, err := suite.service.CreateOrganization(ctx, "Tamkeen Holdings", "Treasury desk", suite.adminUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(org)
	suite.Equal("Tamkeen Holdings", org.Name)
	suite.True(org.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestCreateOrganization_EmptyName() {
	ctx := context.Background()

	org, err := suite.service.CreateOrganization(ctx, "", "desc", suite.adminUserID)

	suite.Require().Error(err)
	suite.Nil(org)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveOrganization", mock.Anything, mock.Anything)
}

func (suite *OrganizationServiceTestSuite) TestCreateOrganization_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveOrganization", ctx, mock.AnythingOfType("domain.Organization")).Return(expectedErr).Once()

	org, err := suite.service.CreateOrganization(ctx, "Tamkeen Holdings", "", suite.adminUserID)

	suite.Require().Error(err)
	suite.Nil(org)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertNotCalled(suite.T(), "AddUserToOrganization", mock.Anything, mock.Anything)
}

// --- UpdateOrganization ---

func (suite *OrganizationServiceTestSuite) TestUpdateOrganization_Success() {
	ctx := context.Background()
	existing := &domain.Organization{
		OrganizationID: suite.organizationID,
		Name:           "Old Name",
		Description:    "Old description",
		IsActive:       true,
	}

	suite.expectMembership(ctx, suite.adminUserID, domain.RoleAdmin)
	suite.mockRepo.On("FindOrganizationByID", ctx, suite.organizationID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateOrganization", ctx, mock.MatchedBy(func(o domain.Organization) bool {
		return o.Name == "New Name" && o.Description == "Old description"
	})).Return(nil).Once()

	org, err := suite.service.UpdateOrganization(ctx, suite.organizationID, "New Name", "", suite.adminUserID)

	suite.Require().NoError(err)
	suite.Equal("New Name", org.Name)
	suite.Equal("Old description", org.Description)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestUpdateOrganization_MemberForbidden() {
	ctx := context.Background()

	suite.expectMembership(ctx, suite.adminUserID, domain.RoleMember)

	org, err := suite.service.UpdateOrganization(ctx, suite.organizationID, "New Name", "", suite.adminUserID)

	suite.Require().Error(err)
	suite.Nil(org)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateOrganization", mock.Anything, mock.Anything)
}

// --- AddUserToOrganization ---

func (suite *OrganizationServiceTestSuite) TestAddUserToOrganization_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.expectMembership(ctx, suite.adminUserID, domain.RoleAdmin)
	suite.mockRepo.On("AddUserToOrganization", ctx, mock.MatchedBy(func(m domain.UserOrganization) bool {
		return m.UserID == targetUserID && m.Role == domain.RoleMember
	})).Return(nil).Once()

	err := suite.service.AddUserToOrganization(ctx, suite.adminUserID, targetUserID, suite.organizationID, domain.RoleMember)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestAddUserToOrganization_RemovedRoleRejected() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.expectMembership(ctx, suite.adminUserID, domain.RoleAdmin)

	err := suite.service.AddUserToOrganization(ctx, suite.adminUserID, targetUserID, suite.organizationID, domain.RoleRemoved)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AddUserToOrganization", mock.Anything, mock.Anything)
}

// --- RemoveUserFromOrganization ---

func (suite *OrganizationServiceTestSuite) TestRemoveUserFromOrganization_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.expectMembership(ctx, suite.adminUserID, domain.RoleAdmin)
	suite.mockRepo.On("UpdateMembershipRole", ctx, targetUserID, suite.organizationID, domain.RoleRemoved, suite.adminUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.RemoveUserFromOrganization(ctx, suite.adminUserID, targetUserID, suite.organizationID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestRemoveUserFromOrganization_SelfRemovalRejected() {
	ctx := context.Background()

	suite.expectMembership(ctx, suite.adminUserID, domain.RoleAdmin)

	err := suite.service.RemoveUserFromOrganization(ctx, suite.adminUserID, suite.adminUserID, suite.organizationID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateMembershipRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateUserOrganizationRole ---

func (suite *OrganizationServiceTestSuite) TestUpdateUserOrganizationRole_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.expectMembership(ctx, suite.adminUserID, domain.RoleAdmin)
	suite.mockRepo.On("UpdateMembershipRole", ctx, targetUserID, suite.organizationID, domain.RoleReadOnly, suite.adminUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.UpdateUserOrganizationRole(ctx, suite.adminUserID, targetUserID, suite.organizationID, domain.RoleReadOnly)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestUpdateUserOrganizationRole_InvalidRole() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.expectMembership(ctx, suite.adminUserID, domain.RoleAdmin)

	err := suite.service.UpdateUserOrganizationRole(ctx, suite.adminUserID, targetUserID, suite.organizationID, domain.UserOrganizationRole("SUPERUSER"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ListUserOrganizations ---

func (suite *OrganizationServiceTestSuite) TestListUserOrganizations_Success() {
	ctx := context.Background()
	expected := []domain.Organization{{OrganizationID: suite.organizationID, Name: "Tamkeen Holdings"}}

	suite.mockRepo.On("ListOrganizationsByUserID", ctx, suite.adminUserID).Return(expected, nil).Once()

	orgs, err := suite.service.ListUserOrganizations(ctx, suite.adminUserID)

	suite.Require().NoError(err)
	suite.Equal(expected, orgs)
}

func (suite *OrganizationServiceTestSuite) TestListUserOrganizations_Empty() {
	ctx := context.Background()

	suite.mockRepo.On("ListOrganizationsByUserID", ctx, suite.adminUserID).Return(nil, nil).Once()

	orgs, err := suite.service.ListUserOrganizations(ctx, suite.adminUserID)

	suite.Require().NoError(err)
	suite.NotNil(orgs)
	suite.Empty(orgs)
}

// --- AuthorizeUserAction ---

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_RoleHierarchy() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.expectMembership(ctx, userID, domain.RoleMember)
	err := suite.service.AuthorizeUserAction(ctx, userID, suite.organizationID, domain.RoleReadOnly)
	suite.NoError(err)

	suite.expectMembership(ctx, userID, domain.RoleMember)
	err = suite.service.AuthorizeUserAction(ctx, userID, suite.organizationID, domain.RoleAdmin)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_NonMemberGetsNotFound() {
	ctx := context.Background()
	outsiderID := uuid.NewString()

	suite.mockRepo.On("FindMembership", ctx, outsiderID, suite.organizationID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, outsiderID, suite.organizationID, domain.RoleReadOnly)

	// Not-found rather than forbidden, so outsiders cannot probe for organizations
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_RemovedMemberForbidden() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.expectMembership(ctx, userID, domain.RoleRemoved)

	err := suite.service.AuthorizeUserAction(ctx, userID, suite.organizationID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Run Suite ---
func TestOrganizationService(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
