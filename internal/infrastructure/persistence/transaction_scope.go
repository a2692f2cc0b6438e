package persistence

import (
	"context"

	apppurchasing "github.com/goodsflow/backend/internal/application/purchasing"
	"github.com/goodsflow/backend/internal/domain/catalog"
	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/inventory"
	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/domain/requisition"
	"github.com/goodsflow/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope over a GORM database.
// Every repository handed to the callback is bound to the same open
// transaction, so the whole reception commits or rolls back as one.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apppurchasing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newGormTransactionalRepositories(tx))
	})
}

var _ apppurchasing.TransactionScope = (*GormTransactionScope)(nil)

// gormTransactionalRepositories builds every repository over one shared *gorm.DB
type gormTransactionalRepositories struct {
	purchaseOrders *GormPurchaseOrderRepository
	products       *GormProductRepository
	presentations  *GormPresentationRepository
	receptions     *GormReceptionRepository
	lots           *GormLotRepository
	packagedLots   *GormPackagedLotRepository
	requisitions   *GormRequisitionRepository
	lineReceptions *GormLineReceptionRepository
	salesOrders    *GormSalesOrderRepository
	movements      *GormFinancialMovementRepository
	cashShifts     *GormCashShiftRepository
	bankAccounts   *GormBankAccountRepository
	allocations    *GormAllocationRecordRepository
}

func newGormTransactionalRepositories(tx *gorm.DB) *gormTransactionalRepositories {
	return &gormTransactionalRepositories{
		purchaseOrders: NewGormPurchaseOrderRepository(tx),
		products:       NewGormProductRepository(tx),
		presentations:  NewGormPresentationRepository(tx),
		receptions:     NewGormReceptionRepository(tx),
		lots:           NewGormLotRepository(tx),
		packagedLots:   NewGormPackagedLotRepository(tx),
		requisitions:   NewGormRequisitionRepository(tx),
		lineReceptions: NewGormLineReceptionRepository(tx),
		salesOrders:    NewGormSalesOrderRepository(tx),
		movements:      NewGormFinancialMovementRepository(tx),
		cashShifts:     NewGormCashShiftRepository(tx),
		bankAccounts:   NewGormBankAccountRepository(tx),
		allocations:    NewGormAllocationRecordRepository(tx),
	}
}

func (r *gormTransactionalRepositories) PurchaseOrderRepo() purchasing.PurchaseOrderRepository {
	return r.purchaseOrders
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return r.products
}

func (r *gormTransactionalRepositories) PresentationRepo() catalog.PresentationRepository {
	return r.presentations
}

func (r *gormTransactionalRepositories) ReceptionRepo() purchasing.ReceptionRepository {
	return r.receptions
}

func (r *gormTransactionalRepositories) LotRepo() inventory.LotRepository {
	return r.lots
}

func (r *gormTransactionalRepositories) PackagedLotRepo() inventory.PackagedLotRepository {
	return r.packagedLots
}

func (r *gormTransactionalRepositories) RequisitionRepo() requisition.Repository {
	return r.requisitions
}

func (r *gormTransactionalRepositories) LineReceptionRepo() requisition.LineReceptionRepository {
	return r.lineReceptions
}

func (r *gormTransactionalRepositories) SalesOrderRepo() sales.Repository {
	return r.salesOrders
}

func (r *gormTransactionalRepositories) MovementRepo() finance.FinancialMovementRepository {
	return r.movements
}

func (r *gormTransactionalRepositories) CashShiftRepo() finance.CashShiftRepository {
	return r.cashShifts
}

func (r *gormTransactionalRepositories) BankAccountRepo() finance.BankAccountRepository {
	return r.bankAccounts
}

func (r *gormTransactionalRepositories) AllocationRepo() finance.AllocationRecordRepository {
	return r.allocations
}

var _ apppurchasing.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
