package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/entrybatch/journal_entry_app/internal/core/ports/repositories"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, accountRepo portsrepo.AccountRepository, entryRepo portsrepo.EntryRepository) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(accountRepo)

	policy := DefaultBalancePolicy()
	if cfg != nil {
		if cfg.BalanceEpsilon != "" {
			if eps, err := decimal.NewFromString(cfg.BalanceEpsilon); err == nil && eps.IsPositive() {
				policy.Epsilon = eps
			}
		}
		policy.MinorUnits = cfg.CurrencyMinorUnits
	}

	container.Validation = NewEntryValidationService(container.Account, policy)
	container.Entry = NewEntryService(entryRepo, container.Validation)

	maxWorkers := 0
	allowDirectPosting := false
	if cfg != nil {
		maxWorkers = cfg.BatchMaxWorkers
		allowDirectPosting = cfg.AllowDirectPosting
	}
	container.Batch = NewBatchService(container.Account, container.Validation, maxWorkers)
	container.Workflow = NewWorkflowService(container.Validation, entryRepo, allowDirectPosting)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AccountSvcFacade    = (*accountService)(nil)
	_ portssvc.EntrySvcFacade      = (*entryService)(nil)
	_ portssvc.ValidationSvcFacade = (*entryValidationService)(nil)
	_ portssvc.BatchSvcFacade      = (*batchService)(nil)
	_ portssvc.WorkflowSvcFacade   = (*workflowService)(nil)
)
