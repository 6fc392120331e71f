package services

import (
	portsrepo "github.com/safebank/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/safebank/bank_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires the application services from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	auditSvc := NewAuditService(repos.AuditRepo)

	return &portssvc.ServiceContainer{
		User:     NewUserService(repos.UserRepo, auditSvc),
		Account:  NewAccountService(repos.AccountRepo, auditSvc),
		Ledger:   NewLedgerService(repos.AccountRepo, auditSvc),
		Transfer: NewTransferService(repos.AccountRepo, auditSvc),
		Audit:    auditSvc,
	}
}
