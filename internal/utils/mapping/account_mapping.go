package mapping

import (
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		Accno:        d.AccountNumber,
		CIF:          d.CIF,
		AccountType:  string(d.AccountType),
		Balance:      d.Balance,
		InterestRate: d.InterestRate,
		OpenedAt:     d.OpenedAt,
		OpenedBy:     d.OpenedBy,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountNumber: m.Accno,
		CIF:           m.CIF,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		InterestRate:  m.InterestRate,
		OpenedAt:      m.OpenedAt.UTC(),
		OpenedBy:      m.OpenedBy,
	}
}
