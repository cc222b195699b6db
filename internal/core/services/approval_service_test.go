package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/core/services"
	"github.com/SscSPs/budget_approval_app/internal/dto"
	"github.com/SscSPs/budget_approval_app/internal/utils/budgeting"
)

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

func (m *MockAuditService) Record(ctx context.Context, decision domain.Decision, summary domain.BudgetSummary) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, decision, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditService) QueryByBudgetID(ctx context.Context, budgetID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Test Suite ---
type ApprovalServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	mockAuditSvc   *MockAuditService
	service        portssvc.ApprovalSvcFacade
	rules          domain.RuleSet
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockAuditSvc = new(MockAuditService)

	rules, err := domain.NewRuleSet(
		decimal.NewFromInt(1000000),
		decimal.NewFromInt(60),
		decimal.NewFromInt(60),
		decimal.NewFromInt(10),
		[]string{"Emergency Fund", "Savings"},
		"Emergency Fund",
	)
	suite.Require().NoError(err)
	suite.rules = rules

	// Real detector and processor; only storage and the audit log are mocked.
	suite.service = services.NewApprovalService(
		suite.mockBudgetRepo,
		services.NewViolationService(),
		services.NewAdjustmentService(),
		suite.mockAuditSvc,
		rules,
	)
}

func (suite *ApprovalServiceTestSuite) cleanBudget() *domain.Budget {
	items := []domain.BudgetItem{
		{Category: "Housing", Name: "Rent", Amount: decimal.NewFromInt(500)},
		{Category: "Emergency Fund", Name: "Emergency Fund", Amount: decimal.NewFromInt(300)},
		{Category: "Savings", Name: "Savings", Amount: decimal.NewFromInt(200)},
	}
	items, total := budgeting.Recalculate(items)
	return &domain.Budget{
		BudgetID:     "budget-1",
		Name:         "monthly",
		CurrencyCode: "USD",
		Items:        items,
		TotalAmount:  total,
		ContentHash:  budgeting.ContentHash("USD", items),
	}
}

func (suite *ApprovalServiceTestSuite) violatingBudget() *domain.Budget {
	items := []domain.BudgetItem{
		{Category: "Housing", Name: "Rent", Amount: decimal.NewFromInt(1000)},
	}
	items, total := budgeting.Recalculate(items)
	return &domain.Budget{
		BudgetID:     "budget-2",
		Name:         "rent only",
		CurrencyCode: "USD",
		Items:        items,
		TotalAmount:  total,
		ContentHash:  budgeting.ContentHash("USD", items),
	}
}

func (suite *ApprovalServiceTestSuite) entryFor(decision domain.Decision, summary domain.BudgetSummary) *domain.AuditLogEntry {
	return &domain.AuditLogEntry{
		EntryID:         "entry-1",
		Decision:        decision,
		ResultingBudget: summary,
	}
}

// --- Test Cases ---

func (suite *ApprovalServiceTestSuite) TestEvaluateBudget() {
	budget := suite.violatingBudget()
	suite.mockBudgetRepo.On("FindBudgetByID", mock.Anything, budget.BudgetID).Return(budget, nil).Once()

	violations, err := suite.service.EvaluateBudget(context.Background(), budget.BudgetID)

	suite.Require().NoError(err)
	suite.NotEmpty(violations)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestEvaluateBudget_NotFound() {
	suite.mockBudgetRepo.On("FindBudgetByID", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound).Once()

	violations, err := suite.service.EvaluateBudget(context.Background(), "nope")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(violations)
}

func (suite *ApprovalServiceTestSuite) TestDecide_AutoApprovalOnCleanBudget() {
	budget := suite.cleanBudget()
	suite.mockBudgetRepo.On("FindBudgetByID", mock.Anything, budget.BudgetID).Return(budget, nil).Once()

	suite.mockAuditSvc.On("Record", mock.Anything, mock.MatchedBy(func(d domain.Decision) bool {
		return d.Outcome == domain.Approved && d.BudgetHash == budget.ContentHash && d.Note != ""
	}), mock.AnythingOfType("domain.BudgetSummary")).
		Return(suite.entryFor(domain.Decision{}, domain.BudgetSummary{}), nil).Once()

	result, err := suite.service.Decide(context.Background(), budget.BudgetID, dto.CreateDecisionRequest{Outcome: dto.OutcomeAuto}, "operator")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Recorded)
	suite.Equal(domain.Approved, result.Decision.Outcome)
	suite.Empty(result.Violations)
	suite.Nil(result.RevisedBudget)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDecide_AutoApprovalBlockedByViolations() {
	budget := suite.violatingBudget()
	suite.mockBudgetRepo.On("FindBudgetByID", mock.Anything, budget.BudgetID).Return(budget, nil).Once()

	result, err := suite.service.Decide(context.Background(), budget.BudgetID, dto.CreateDecisionRequest{Outcome: dto.OutcomeAuto}, "operator")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.False(result.Recorded)
	suite.NotEmpty(result.Violations)
	suite.Nil(result.Entry)
	// Nothing persisted: no SaveBudget, no Record.
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
	suite.mockAuditSvc.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestDecide_RejectionRecordsOriginalTotals() {
	budget := suite.violatingBudget()
	suite.mockBudgetRepo.On("FindBudgetByID", mock.Anything, budget.BudgetID).Return(budget, nil).Once()

	suite.mockAuditSvc.On("Record", mock.Anything, mock.MatchedBy(func(d domain.Decision) bool {
		return d.Outcome == domain.Rejected
	}), mock.MatchedBy(func(s domain.BudgetSummary) bool {
		return s.BudgetID == budget.BudgetID && s.TotalAmount.Equal(budget.TotalAmount)
	})).Return(suite.entryFor(domain.Decision{}, domain.BudgetSummary{}), nil).Once()

	result, err := suite.service.Decide(context.Background(), budget.BudgetID, dto.CreateDecisionRequest{Outcome: string(domain.Rejected), Note: "too concentrated"}, "operator")

	suite.Require().NoError(err)
	suite.True(result.Recorded)
	suite.Nil(result.RevisedBudget)
	suite.NotEmpty(result.Violations) // violations of the still-standing original
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDecide_ModificationsSaveRevisedBudgetBeforeRecording() {
	budget := suite.cleanBudget()
	suite.mockBudgetRepo.On("FindBudgetByID", mock.Anything, budget.BudgetID).Return(budget, nil).Once()

	suite.mockBudgetRepo.On("SaveBudget", mock.Anything, mock.MatchedBy(func(b domain.Budget) bool {
		return b.RevisionOf == budget.BudgetID && b.TotalAmount.Equal(decimal.NewFromInt(900))
	})).Return(nil).Once()

	suite.mockAuditSvc.On("Record", mock.Anything, mock.MatchedBy(func(d domain.Decision) bool {
		return d.Outcome == domain.ApprovedWithModifications
	}), mock.MatchedBy(func(s domain.BudgetSummary) bool {
		// The audit entry snapshots the revised budget's totals.
		return s.BudgetID != budget.BudgetID && s.TotalAmount.Equal(decimal.NewFromInt(900))
	})).Return(suite.entryFor(domain.Decision{}, domain.BudgetSummary{}), nil).Once()

	req := dto.CreateDecisionRequest{
		Outcome:   string(domain.ApprovedWithModifications),
		Overrides: map[string]decimal.Decimal{"Rent": decimal.NewFromInt(400)},
	}
	result, err := suite.service.Decide(context.Background(), budget.BudgetID, req, "operator")

	suite.Require().NoError(err)
	suite.True(result.Recorded)
	suite.Require().NotNil(result.RevisedBudget)
	suite.Equal(budget.BudgetID, result.RevisedBudget.RevisionOf)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDecide_OverridesRejectedForPlainApproval() {
	budget := suite.cleanBudget()
	suite.mockBudgetRepo.On("FindBudgetByID", mock.Anything, budget.BudgetID).Return(budget, nil).Once()

	req := dto.CreateDecisionRequest{
		Outcome:   string(domain.Approved),
		Overrides: map[string]decimal.Decimal{"Rent": decimal.NewFromInt(400)},
	}
	result, err := suite.service.Decide(context.Background(), budget.BudgetID, req, "operator")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockAuditSvc.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestDecide_AuditFailureSurfacesAndNothingIsReported() {
	budget := suite.cleanBudget()
	suite.mockBudgetRepo.On("FindBudgetByID", mock.Anything, budget.BudgetID).Return(budget, nil).Once()
	suite.mockAuditSvc.On("Record", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrStorage).Once()

	result, err := suite.service.Decide(context.Background(), budget.BudgetID, dto.CreateDecisionRequest{Outcome: string(domain.Approved)}, "operator")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.Nil(result)
}

func TestApprovalService(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
