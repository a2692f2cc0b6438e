package purchasing

import (
	"context"

	"github.com/goodsflow/backend/internal/domain/catalog"
	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/inventory"
	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/domain/requisition"
	"github.com/goodsflow/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to every repository a
// reception touches. A reception is one all-or-nothing unit of work: lot
// creation, counter updates, status cascades, and the financial posting
// either all commit or all roll back.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction, so aggregation reads see in-flight writes from the same
// reception.
type TransactionalRepositories interface {
	PurchaseOrderRepo() purchasing.PurchaseOrderRepository
	ProductRepo() catalog.ProductRepository
	PresentationRepo() catalog.PresentationRepository
	ReceptionRepo() purchasing.ReceptionRepository
	LotRepo() inventory.LotRepository
	PackagedLotRepo() inventory.PackagedLotRepository
	RequisitionRepo() requisition.Repository
	LineReceptionRepo() requisition.LineReceptionRepository
	SalesOrderRepo() sales.Repository
	MovementRepo() finance.FinancialMovementRepository
	CashShiftRepo() finance.CashShiftRepository
	BankAccountRepo() finance.BankAccountRepository
	AllocationRepo() finance.AllocationRecordRepository
}
