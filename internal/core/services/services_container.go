package services

import (
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account and journal services first since the posting engine depends on them
	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo)
	container.TxTemplate = NewTxTemplateService(repos.TxTemplateRepo)

	var txOptions []TransactionServiceOption
	if repos.OutboxRepo != nil {
		txOptions = append(txOptions, WithNotificationSink(repos.OutboxRepo))
		container.Outbox = NewOutboxService(repos.OutboxRepo)
	}
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.TxTemplateRepo,
		container.Account,
		container.Journal,
		txOptions...,
	)
	container.Balance = NewBalanceService(repos.BalanceRepo, repos.TransactionRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.JournalSvcFacade     = (*journalService)(nil)
	_ portssvc.TxTemplateSvcFacade  = (*txTemplateService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.BalanceSvcFacade     = (*balanceService)(nil)
)
