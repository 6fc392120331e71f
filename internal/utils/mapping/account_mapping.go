package mapping

import (
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	"github.com/safebank/bank_ledger_app/internal/models"
)

// ToModelAccount converts a domain.Account to its DB model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountNumber: d.AccountNumber,
		HolderID:      d.HolderID,
		AccountType:   models.AccountType(d.AccountType),
		BankName:      d.BankName,
		Balance:       d.Balance,
		AuditFields:   toModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a DB model account back to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountNumber: m.AccountNumber,
		HolderID:      m.HolderID,
		AccountType:   domain.AccountType(m.AccountType),
		BankName:      m.BankName,
		Balance:       m.Balance,
		AuditFields:   toDomainAuditFields(m.AuditFields),
	}
}
