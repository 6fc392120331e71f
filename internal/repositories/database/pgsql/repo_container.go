package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/safebank/bank_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		AuditRepo:   newPgxAuditRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
	}
}
