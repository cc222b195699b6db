package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_approval_app/internal/models"
	"github.com/SscSPs/budget_approval_app/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// SaveBudget persists a budget and its items in a single transaction.
// Budgets are immutable after creation, so this is insert-only.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := mapping.ToModelBudget(budget)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	budgetQuery := `
		INSERT INTO budgets (budget_id, name, currency_code, total_amount, content_hash, revision_of, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, budgetQuery,
		modelBudget.BudgetID,
		modelBudget.Name,
		modelBudget.CurrencyCode,
		modelBudget.TotalAmount,
		modelBudget.ContentHash,
		modelBudget.RevisionOf,
		modelBudget.CreatedAt,
		modelBudget.CreatedBy,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("budget %s: %w", modelBudget.BudgetID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save budget %s: %w", modelBudget.BudgetID, err)
	}

	itemQuery := `
		INSERT INTO budget_items (budget_id, position, name, category, amount, percentage, original_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range modelBudget.Items {
		_, err = tx.Exec(ctx, itemQuery,
			item.BudgetID,
			item.Position,
			item.Name,
			item.Category,
			item.Amount,
			item.Percentage,
			item.OriginalAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to save budget item %s of budget %s: %w", item.Name, modelBudget.BudgetID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindBudgetByID retrieves a budget together with its ordered item sequence.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budgetQuery := `
		SELECT budget_id, name, currency_code, total_amount, content_hash, revision_of, created_at, created_by, last_updated_at, last_updated_by
		FROM budgets
		WHERE budget_id = $1;
	`
	var modelBudget models.Budget
	var revisionOf sql.NullString // revision_of is a nullable uuid column
	err := r.Pool.QueryRow(ctx, budgetQuery, budgetID).Scan(
		&modelBudget.BudgetID,
		&modelBudget.Name,
		&modelBudget.CurrencyCode,
		&modelBudget.TotalAmount,
		&modelBudget.ContentHash,
		&revisionOf,
		&modelBudget.CreatedAt,
		&modelBudget.CreatedBy,
		&modelBudget.LastUpdatedAt,
		&modelBudget.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by id %s: %w", budgetID, err)
	}
	if revisionOf.Valid {
		modelBudget.RevisionOf = &revisionOf.String
	}

	items, err := r.findItemsByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	modelBudget.Items = items

	domainBudget := mapping.ToDomainBudget(modelBudget)
	return &domainBudget, nil
}

// ListBudgets retrieves budgets ordered by creation time descending.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error) {
	query := `
		SELECT budget_id, name, currency_code, total_amount, content_hash, revision_of, created_at, created_by, last_updated_at, last_updated_by
		FROM budgets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	modelBudgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Budget, error) {
		var budget models.Budget
		var revisionOf sql.NullString
		err := row.Scan(
			&budget.BudgetID,
			&budget.Name,
			&budget.CurrencyCode,
			&budget.TotalAmount,
			&budget.ContentHash,
			&revisionOf,
			&budget.CreatedAt,
			&budget.CreatedBy,
			&budget.LastUpdatedAt,
			&budget.LastUpdatedBy,
		)
		if revisionOf.Valid {
			budget.RevisionOf = &revisionOf.String
		}
		return budget, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan budgets: %w", err)
	}

	for i := range modelBudgets {
		items, err := r.findItemsByBudgetID(ctx, modelBudgets[i].BudgetID)
		if err != nil {
			return nil, err
		}
		modelBudgets[i].Items = items
	}

	return mapping.ToDomainBudgetSlice(modelBudgets), nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PgxBudgetRepository) findItemsByBudgetID(ctx context.Context, budgetID string) ([]models.BudgetItem, error) {
	query := `
		SELECT budget_id, position, name, category, amount, percentage, original_amount
		FROM budget_items
		WHERE budget_id = $1
		ORDER BY position ASC;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items of budget %s: %w", budgetID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BudgetItem, error) {
		var item models.BudgetItem
		err := row.Scan(
			&item.BudgetID,
			&item.Position,
			&item.Name,
			&item.Category,
			&item.Amount,
			&item.Percentage,
			&item.OriginalAmount,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items of budget %s: %w", budgetID, err)
	}
	return items, nil
}
