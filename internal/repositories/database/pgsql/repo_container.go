package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BudgetRepo:   newPgxBudgetRepository(dbPool),
		AuditLogRepo: newPgxAuditLogRepository(dbPool),
	}
}

// NewRepositoryProviderWithAuditLog wires the pgsql budget repository with an
// externally supplied audit log backend (e.g. the append-only JSONL store).
func NewRepositoryProviderWithAuditLog(dbPool *pgxpool.Pool, auditRepo portsrepo.AuditLogRepositoryFacade) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BudgetRepo:   newPgxBudgetRepository(dbPool),
		AuditLogRepo: auditRepo,
	}
}
