package mapping_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/SscSPs/budget_approval_app/internal/utils/mapping"
)

func testDomainBudget() domain.Budget {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return domain.Budget{
		BudgetID:     "b-1",
		Name:         "August",
		CurrencyCode: "USD",
		Items: []domain.BudgetItem{
			{Name: "Rent", Category: "Housing", Amount: decimal.NewFromInt(500), Percentage: decimal.NewFromInt(50)},
			{Name: "Groceries", Category: "Food", Amount: decimal.NewFromInt(500), Percentage: decimal.NewFromInt(50)},
		},
		TotalAmount: decimal.NewFromInt(1000),
		ContentHash: "hash-1",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "operator",
			LastUpdatedAt: now,
			LastUpdatedBy: "operator",
		},
	}
}

// An original budget has no revision link; the model field must stay nil so
// the database stores NULL rather than an empty uuid string.
func TestBudgetMapping_NoRevision(t *testing.T) {
	d := testDomainBudget()

	m := mapping.ToModelBudget(d)
	assert.Nil(t, m.RevisionOf)

	back := mapping.ToDomainBudget(m)
	assert.Equal(t, "", back.RevisionOf)
	assert.Equal(t, d.BudgetID, back.BudgetID)
	assert.True(t, d.TotalAmount.Equal(back.TotalAmount))
	require.Len(t, back.Items, 2)
	assert.Equal(t, "Rent", back.Items[0].Name)
	assert.Nil(t, back.Items[0].OriginalAmount)
}

func TestBudgetMapping_RevisionRoundTrip(t *testing.T) {
	d := testDomainBudget()
	d.BudgetID = "b-2"
	d.RevisionOf = "b-1"
	original := decimal.NewFromInt(800)
	d.Items[0].OriginalAmount = &original

	m := mapping.ToModelBudget(d)
	require.NotNil(t, m.RevisionOf)
	assert.Equal(t, "b-1", *m.RevisionOf)
	require.True(t, m.Items[0].OriginalAmount.Valid)
	assert.True(t, original.Equal(m.Items[0].OriginalAmount.Decimal))

	back := mapping.ToDomainBudget(m)
	assert.Equal(t, "b-1", back.RevisionOf)
	require.NotNil(t, back.Items[0].OriginalAmount)
	assert.True(t, original.Equal(*back.Items[0].OriginalAmount))
}

func TestBudgetMapping_ItemPositions(t *testing.T) {
	d := testDomainBudget()

	m := mapping.ToModelBudget(d)
	require.Len(t, m.Items, 2)
	for i, item := range m.Items {
		assert.Equal(t, i, item.Position)
		assert.Equal(t, d.BudgetID, item.BudgetID)
	}
}
