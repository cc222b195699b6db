package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/core/services"
)

// --- Mock AuditLogRepository ---
type MockAuditLogRepository struct {
	mock.Mock
}

var _ portsrepo.AuditLogRepositoryFacade = (*MockAuditLogRepository)(nil)

func (m *MockAuditLogRepository) AppendEntry(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditLogRepository) FindEntriesByBudgetID(ctx context.Context, budgetID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Test Suite ---
type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditLogRepository
	service  portssvc.AuditSvcFacade
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAuditLogRepository)
	suite.service = services.NewAuditService(suite.mockRepo)
}

func (suite *AuditServiceTestSuite) decision() domain.Decision {
	return domain.Decision{
		DecisionID: "decision-1",
		BudgetID:   "budget-1",
		BudgetHash: "hash-1",
		Outcome:    domain.Approved,
		DecidedAt:  time.Now().UTC(),
		DecidedBy:  "operator",
	}
}

func (suite *AuditServiceTestSuite) summary() domain.BudgetSummary {
	return domain.BudgetSummary{
		BudgetID:    "budget-1",
		TotalAmount: decimal.NewFromInt(1000),
		ItemCount:   3,
		Categories:  []string{"Housing", "Savings"},
	}
}

// --- Test Cases ---

func (suite *AuditServiceTestSuite) TestRecord_Success() {
	decision := suite.decision()
	summary := suite.summary()

	suite.mockRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.EntryID != "" &&
			e.Decision.DecisionID == decision.DecisionID &&
			e.ResultingBudget.BudgetID == summary.BudgetID &&
			!e.RecordedAt.IsZero()
	})).Return(&domain.AuditLogEntry{EntryID: "entry-1", Decision: decision, ResultingBudget: summary}, nil).Once()

	entry, err := suite.service.Record(context.Background(), decision, summary)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("entry-1", entry.EntryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecord_RejectsIncompleteDecision() {
	decision := suite.decision()
	decision.BudgetHash = ""

	entry, err := suite.service.Record(context.Background(), decision, suite.summary())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestRecord_RejectsZeroTimestamp() {
	decision := suite.decision()
	decision.DecidedAt = time.Time{}

	entry, err := suite.service.Record(context.Background(), decision, suite.summary())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
}

func (suite *AuditServiceTestSuite) TestRecord_StorageFailureSurfaces() {
	suite.mockRepo.On("AppendEntry", mock.Anything, mock.AnythingOfType("domain.AuditLogEntry")).
		Return(nil, apperrors.ErrStorage).Once()

	entry, err := suite.service.Record(context.Background(), suite.decision(), suite.summary())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.Nil(entry)
}

func (suite *AuditServiceTestSuite) TestQueryByBudgetID_NilBecomesEmptySlice() {
	suite.mockRepo.On("FindEntriesByBudgetID", mock.Anything, "budget-1").Return(nil, nil).Once()

	entries, err := suite.service.QueryByBudgetID(context.Background(), "budget-1")

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)
}

func (suite *AuditServiceTestSuite) TestQueryByBudgetID_PassesThroughEntries() {
	expected := []domain.AuditLogEntry{{EntryID: "entry-1"}, {EntryID: "entry-2"}}
	suite.mockRepo.On("FindEntriesByBudgetID", mock.Anything, "budget-1").Return(expected, nil).Once()

	entries, err := suite.service.QueryByBudgetID(context.Background(), "budget-1")

	suite.Require().NoError(err)
	suite.Equal(expected, entries)
}

func TestAuditService(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
