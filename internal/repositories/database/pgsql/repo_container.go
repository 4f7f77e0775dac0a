package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalEntryRepo: newPgxJournalEntryRepository(dbPool),
		UniversalLedger:  newPgxUniversalLedgerRepository(dbPool),
		Payables:         newPgxPayablesRepository(dbPool),
		Receivables:      newPgxReceivablesRepository(dbPool),
		CostAllocation:   newPgxCostAllocationRepository(dbPool),
		Treasury:         newPgxTreasuryRepository(dbPool),
	}
}
