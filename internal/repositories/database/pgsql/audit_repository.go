package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_approval_app/internal/models"
	"github.com/SscSPs/budget_approval_app/internal/utils/mapping"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for the approval log.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// AppendEntry inserts an audit log entry. A unique index on
// (budget_hash, decided_at) makes the append idempotent: re-recording the
// same decision identity returns the previously written entry.
func (r *PgxAuditLogRepository) AppendEntry(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	modelEntry := mapping.ToModelAuditLogEntry(entry)

	overridesJSON, err := json.Marshal(modelEntry.Decision.Overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode decision overrides: %w", apperrors.ErrStorage, err)
	}
	categoriesJSON, err := json.Marshal(modelEntry.ResultingBudget.Categories)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode resulting categories: %w", apperrors.ErrStorage, err)
	}

	query := `
		INSERT INTO audit_log (entry_id, decision_id, budget_id, budget_hash, outcome, overrides, note, decided_at, decided_by, resulting_budget_id, resulting_total, resulting_item_count, resulting_categories, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (budget_hash, decided_at) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.Decision.DecisionID,
		modelEntry.Decision.BudgetID,
		modelEntry.Decision.BudgetHash,
		modelEntry.Decision.Outcome,
		overridesJSON,
		modelEntry.Decision.Note,
		modelEntry.Decision.DecidedAt,
		modelEntry.Decision.DecidedBy,
		modelEntry.ResultingBudget.BudgetID,
		modelEntry.ResultingBudget.TotalAmount,
		modelEntry.ResultingBudget.ItemCount,
		categoriesJSON,
		modelEntry.RecordedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to append audit entry for budget %s: %w", apperrors.ErrStorage, modelEntry.Decision.BudgetID, err)
	}

	if tag.RowsAffected() == 0 {
		// Duplicate decision identity, hand back the entry already on the log.
		return r.findEntryByDedupeKey(ctx, modelEntry.Decision.BudgetHash, modelEntry.Decision.DecidedAt)
	}

	result := mapping.ToDomainAuditLogEntry(modelEntry)
	return &result, nil
}

// FindEntriesByBudgetID returns all entries for a budget, oldest first.
func (r *PgxAuditLogRepository) FindEntriesByBudgetID(ctx context.Context, budgetID string) ([]domain.AuditLogEntry, error) {
	query := selectEntryColumns + `
		FROM audit_log
		WHERE budget_id = $1
		ORDER BY recorded_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query audit entries for budget %s: %w", apperrors.ErrStorage, budgetID, err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, scanAuditLogEntry)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan audit entries for budget %s: %w", apperrors.ErrStorage, budgetID, err)
	}

	return mapping.ToDomainAuditLogEntrySlice(modelEntries), nil
}

const selectEntryColumns = `
		SELECT entry_id, decision_id, budget_id, budget_hash, outcome, overrides, note, decided_at, decided_by, resulting_budget_id, resulting_total, resulting_item_count, resulting_categories, recorded_at`

func (r *PgxAuditLogRepository) findEntryByDedupeKey(ctx context.Context, budgetHash string, decidedAt time.Time) (*domain.AuditLogEntry, error) {
	query := selectEntryColumns + `
		FROM audit_log
		WHERE budget_hash = $1 AND decided_at = $2;
	`
	rows, err := r.Pool.Query(ctx, query, budgetHash, decidedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query existing audit entry: %w", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	modelEntry, err := pgx.CollectOneRow(rows, scanAuditLogEntry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to scan existing audit entry: %w", apperrors.ErrStorage, err)
	}

	result := mapping.ToDomainAuditLogEntry(modelEntry)
	return &result, nil
}

func scanAuditLogEntry(row pgx.CollectableRow) (models.AuditLogEntry, error) {
	var (
		entry          models.AuditLogEntry
		overridesJSON  []byte
		categoriesJSON []byte
	)
	err := row.Scan(
		&entry.EntryID,
		&entry.Decision.DecisionID,
		&entry.Decision.BudgetID,
		&entry.Decision.BudgetHash,
		&entry.Decision.Outcome,
		&overridesJSON,
		&entry.Decision.Note,
		&entry.Decision.DecidedAt,
		&entry.Decision.DecidedBy,
		&entry.ResultingBudget.BudgetID,
		&entry.ResultingBudget.TotalAmount,
		&entry.ResultingBudget.ItemCount,
		&categoriesJSON,
		&entry.RecordedAt,
	)
	if err != nil {
		return entry, err
	}

	if len(overridesJSON) > 0 {
		var overrides map[string]decimal.Decimal
		if err := json.Unmarshal(overridesJSON, &overrides); err != nil {
			return entry, fmt.Errorf("failed to decode decision overrides: %w", err)
		}
		entry.Decision.Overrides = overrides
	}
	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &entry.ResultingBudget.Categories); err != nil {
			return entry, fmt.Errorf("failed to decode resulting categories: %w", err)
		}
	}
	return entry, nil
}
