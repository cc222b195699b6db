package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/core/services"
	"github.com/SscSPs/budget_approval_app/internal/dto"
	"github.com/SscSPs/budget_approval_app/internal/utils/budgeting"
)

// --- Test Suite ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBudgetRepository
	service  portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRepository)
	suite.service = services.NewBudgetService(suite.mockRepo, services.NewTemplateService())
}

func (suite *BudgetServiceTestSuite) createRequest() dto.CreateBudgetRequest {
	return dto.CreateBudgetRequest{
		Name:         "monthly",
		CurrencyCode: "USD",
		Items: []dto.BudgetItemRequest{
			{Category: "Housing", Name: "Rent", Amount: decimal.NewFromInt(500)},
			{Category: "Food", Name: "Groceries", Amount: decimal.NewFromInt(300)},
			{Category: "Savings", Name: "Savings", Amount: decimal.NewFromInt(200)},
		},
	}
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.BudgetID != "" &&
			b.Name == req.Name &&
			b.TotalAmount.Equal(decimal.NewFromInt(1000)) &&
			b.ContentHash != "" &&
			b.CreatedBy == "operator"
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, req, "operator")

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.True(budget.TotalAmount.Equal(decimal.NewFromInt(1000)))
	suite.Require().Len(budget.Items, 3)
	suite.True(budget.Items[0].Percentage.Equal(decimal.NewFromInt(50)), "rent pct = %s", budget.Items[0].Percentage)
	suite.Equal(budgeting.ContentHash("USD", budget.Items), budget.ContentHash)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_NegativeAmount() {
	req := suite.createRequest()
	req.Items[1].Amount = decimal.NewFromInt(-10)

	budget, err := suite.service.CreateBudget(context.Background(), req, "operator")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DuplicateItemName() {
	req := suite.createRequest()
	req.Items[2].Name = "Rent"

	budget, err := suite.service.CreateBudget(context.Background(), req, "operator")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_SaveError() {
	ctx := context.Background()
	req := suite.createRequest()
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(expectedErr).Once()

	budget, err := suite.service.CreateBudget(ctx, req, "operator")

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_TemplateFillsCategories() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Name:         "from template",
		CurrencyCode: "USD",
		TemplateName: "personal",
		Items: []dto.BudgetItemRequest{
			{Name: "Rent/Mortgage", Amount: decimal.NewFromInt(1200)},
			{Name: "Groceries", Amount: decimal.NewFromInt(400)},
		},
	}
	suite.mockRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, req, "operator")

	suite.Require().NoError(err)
	suite.Require().Len(budget.Items, 2)
	suite.Equal("Housing", budget.Items[0].Category)
	suite.Equal("Food", budget.Items[1].Category)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_UnknownTemplate() {
	req := suite.createRequest()
	req.TemplateName = "no-such-template"

	budget, err := suite.service.CreateBudget(context.Background(), req, "operator")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_MissingCategoryWithoutTemplate() {
	req := suite.createRequest()
	req.Items[0].Category = ""

	budget, err := suite.service.CreateBudget(context.Background(), req, "operator")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_AmbiguousTemplateItem() {
	// "Insurance" exists under both Transportation and Healthcare in the
	// personal template, so omitting the category cannot be resolved.
	req := dto.CreateBudgetRequest{
		Name:         "ambiguous",
		CurrencyCode: "USD",
		TemplateName: "personal",
		Items: []dto.BudgetItemRequest{
			{Name: "Insurance", Amount: decimal.NewFromInt(100)},
		},
	}

	budget, err := suite.service.CreateBudget(context.Background(), req, "operator")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_ExplicitCategoryWinsOverTemplate() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Name:         "mixed",
		CurrencyCode: "USD",
		TemplateName: "personal",
		Items: []dto.BudgetItemRequest{
			{Category: "Healthcare", Name: "Insurance", Amount: decimal.NewFromInt(100)},
			{Name: "Fuel", Amount: decimal.NewFromInt(50)},
		},
	}
	suite.mockRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, req, "operator")

	suite.Require().NoError(err)
	suite.Equal("Healthcare", budget.Items[0].Category)
	suite.Equal("Transportation", budget.Items[1].Category)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindBudgetByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	budget, err := suite.service.GetBudgetByID(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestListBudgets_NilBecomesEmptySlice() {
	ctx := context.Background()
	suite.mockRepo.On("ListBudgets", ctx, 50, 0).Return(nil, nil).Once()

	budgets, err := suite.service.ListBudgets(ctx, 50, 0)

	suite.Require().NoError(err)
	suite.NotNil(budgets)
	suite.Empty(budgets)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetAnalysis() {
	ctx := context.Background()
	items := []domain.BudgetItem{
		{Category: "Housing", Name: "Rent", Amount: decimal.NewFromInt(500)},
		{Category: "Housing", Name: "Utilities", Amount: decimal.NewFromInt(100)},
		{Category: "Food", Name: "Groceries", Amount: decimal.NewFromInt(400)},
	}
	items, total := budgeting.Recalculate(items)
	stored := &domain.Budget{BudgetID: "b-1", CurrencyCode: "USD", Items: items, TotalAmount: total}
	suite.mockRepo.On("FindBudgetByID", ctx, "b-1").Return(stored, nil).Once()

	analysis, err := suite.service.GetBudgetAnalysis(ctx, "b-1", 2)

	suite.Require().NoError(err)
	suite.Require().NotNil(analysis)
	suite.Require().Len(analysis.Categories, 2)
	suite.Equal("Housing", analysis.Categories[0].Category)
	suite.True(analysis.Categories[0].TotalAmount.Equal(decimal.NewFromInt(600)))
	suite.Require().Len(analysis.TopItems, 2)
	suite.Equal("Rent", analysis.TopItems[0].Name)
	suite.Equal("Groceries", analysis.TopItems[1].Name)
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
