package services

import (
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/modulerp/ledgercore/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The event publisher may be nil; events are then discarded.
func NewServiceContainer(repos portsrepo.RepositoryProvider, events portssvc.EventPublisher) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		JournalEntry: NewJournalEntryService(repos.JournalEntryRepo, events),
		UniversalJournal: NewUniversalJournalService(
			repos.UniversalLedger,
			repos.Payables,
			repos.Receivables,
			repos.CostAllocation,
			repos.Treasury,
		),
	}
}
