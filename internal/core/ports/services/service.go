package services

// ServiceContainer holds the service facades the handlers depend on.
type ServiceContainer struct {
	JournalEntry     JournalEntrySvcFacade
	UniversalJournal UniversalJournalSvcFacade
}
