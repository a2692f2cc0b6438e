package purchasing

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/goodsflow/backend/internal/domain/catalog"
	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/inventory"
	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/domain/requisition"
	"github.com/goodsflow/backend/internal/domain/sales"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memoryRepos backs every repository with maps so service tests can run a
// full reception without a database.
type memoryRepos struct {
	mu             sync.Mutex
	orders         map[uuid.UUID]*purchasing.PurchaseOrder
	products       map[uuid.UUID]*catalog.Product
	presentations  map[uuid.UUID]*catalog.Presentation
	receptions     map[uuid.UUID]*purchasing.ReceptionEvent
	lots           map[uuid.UUID]*inventory.Lot
	packagedLots   map[uuid.UUID]*inventory.PackagedLot
	requisitions   map[uuid.UUID]*requisition.Requisition
	lineReceptions []*requisition.LineReception
	salesOrders    map[uuid.UUID]*sales.SalesOrder
	movements      map[uuid.UUID]*finance.FinancialMovement
	shifts         map[uuid.UUID]*finance.CashShift
	accounts       map[uuid.UUID]*finance.BankAccount
	allocations    map[uuid.UUID]*finance.AllocationRecord
	orderSeq       int
}

func newMemoryRepos() *memoryRepos {
	return &memoryRepos{
		orders:        make(map[uuid.UUID]*purchasing.PurchaseOrder),
		products:      make(map[uuid.UUID]*catalog.Product),
		presentations: make(map[uuid.UUID]*catalog.Presentation),
		receptions:    make(map[uuid.UUID]*purchasing.ReceptionEvent),
		lots:          make(map[uuid.UUID]*inventory.Lot),
		packagedLots:  make(map[uuid.UUID]*inventory.PackagedLot),
		requisitions:  make(map[uuid.UUID]*requisition.Requisition),
		salesOrders:   make(map[uuid.UUID]*sales.SalesOrder),
		movements:     make(map[uuid.UUID]*finance.FinancialMovement),
		shifts:        make(map[uuid.UUID]*finance.CashShift),
		accounts:      make(map[uuid.UUID]*finance.BankAccount),
		allocations:   make(map[uuid.UUID]*finance.AllocationRecord),
	}
}

// Aggregates that Receive mutates after loading are cloned on the way in and
// out of the maps, so an aborted call cannot leak half-applied state into the
// store through a shared pointer.
func cloneOrder(o *purchasing.PurchaseOrder) *purchasing.PurchaseOrder {
	c := *o
	c.Items = append([]purchasing.PurchaseLineItem(nil), o.Items...)
	return &c
}

func cloneRequisition(req *requisition.Requisition) *requisition.Requisition {
	c := *req
	c.Lines = append([]requisition.RequisitionLine(nil), req.Lines...)
	return &c
}

func cloneSalesOrder(o *sales.SalesOrder) *sales.SalesOrder {
	c := *o
	c.Lines = append([]sales.OrderLine(nil), o.Lines...)
	return &c
}

// memorySnapshot captures every map so a failed unit of work can be undone.
// Shallow copies suffice: stored aggregates are never mutated in place.
type memorySnapshot struct {
	orders         map[uuid.UUID]*purchasing.PurchaseOrder
	products       map[uuid.UUID]*catalog.Product
	presentations  map[uuid.UUID]*catalog.Presentation
	receptions     map[uuid.UUID]*purchasing.ReceptionEvent
	lots           map[uuid.UUID]*inventory.Lot
	packagedLots   map[uuid.UUID]*inventory.PackagedLot
	requisitions   map[uuid.UUID]*requisition.Requisition
	lineReceptions []*requisition.LineReception
	salesOrders    map[uuid.UUID]*sales.SalesOrder
	movements      map[uuid.UUID]*finance.FinancialMovement
	shifts         map[uuid.UUID]*finance.CashShift
	accounts       map[uuid.UUID]*finance.BankAccount
	allocations    map[uuid.UUID]*finance.AllocationRecord
	orderSeq       int
}

func (m *memoryRepos) snapshot() *memorySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &memorySnapshot{
		orders:         maps.Clone(m.orders),
		products:       maps.Clone(m.products),
		presentations:  maps.Clone(m.presentations),
		receptions:     maps.Clone(m.receptions),
		lots:           maps.Clone(m.lots),
		packagedLots:   maps.Clone(m.packagedLots),
		requisitions:   maps.Clone(m.requisitions),
		lineReceptions: append([]*requisition.LineReception(nil), m.lineReceptions...),
		salesOrders:    maps.Clone(m.salesOrders),
		movements:      maps.Clone(m.movements),
		shifts:         maps.Clone(m.shifts),
		accounts:       maps.Clone(m.accounts),
		allocations:    maps.Clone(m.allocations),
		orderSeq:       m.orderSeq,
	}
}

func (m *memoryRepos) restore(s *memorySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = s.orders
	m.products = s.products
	m.presentations = s.presentations
	m.receptions = s.receptions
	m.lots = s.lots
	m.packagedLots = s.packagedLots
	m.requisitions = s.requisitions
	m.lineReceptions = s.lineReceptions
	m.salesOrders = s.salesOrders
	m.movements = s.movements
	m.shifts = s.shifts
	m.accounts = s.accounts
	m.allocations = s.allocations
	m.orderSeq = s.orderSeq
}

// memoryTxScope gives the in-memory fixture transactional semantics: an
// error from the unit of work restores every map to its pre-call state.
type memoryTxScope struct{ repos *memoryRepos }

func newMemoryTxScope(repos *memoryRepos) *memoryTxScope {
	return &memoryTxScope{repos: repos}
}

func (s *memoryTxScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	snap := s.repos.snapshot()
	if err := fn(s.repos); err != nil {
		s.repos.restore(snap)
		return err
	}
	return nil
}

var _ TransactionScope = (*memoryTxScope)(nil)

func (m *memoryRepos) PurchaseOrderRepo() purchasing.PurchaseOrderRepository { return &memOrderRepo{m} }
func (m *memoryRepos) ProductRepo() catalog.ProductRepository                { return &memProductRepo{m} }
func (m *memoryRepos) PresentationRepo() catalog.PresentationRepository {
	return &memPresentationRepo{m}
}
func (m *memoryRepos) ReceptionRepo() purchasing.ReceptionRepository         { return &memReceptionRepo{m} }
func (m *memoryRepos) LotRepo() inventory.LotRepository                      { return &memLotRepo{m} }
func (m *memoryRepos) PackagedLotRepo() inventory.PackagedLotRepository      { return &memPackagedLotRepo{m} }
func (m *memoryRepos) RequisitionRepo() requisition.Repository               { return &memRequisitionRepo{m} }
func (m *memoryRepos) LineReceptionRepo() requisition.LineReceptionRepository {
	return &memLineReceptionRepo{m}
}
func (m *memoryRepos) SalesOrderRepo() sales.Repository                   { return &memSalesRepo{m} }
func (m *memoryRepos) MovementRepo() finance.FinancialMovementRepository  { return &memMovementRepo{m} }
func (m *memoryRepos) CashShiftRepo() finance.CashShiftRepository         { return &memShiftRepo{m} }
func (m *memoryRepos) BankAccountRepo() finance.BankAccountRepository     { return &memAccountRepo{m} }
func (m *memoryRepos) AllocationRepo() finance.AllocationRecordRepository { return &memAllocationRepo{m} }

var _ TransactionalRepositories = (*memoryRepos)(nil)

type memOrderRepo struct{ m *memoryRepos }

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	order, ok := r.m.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *memOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*purchasing.PurchaseOrder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, order := range r.m.orders {
		if order.OrderNumber == orderNumber {
			return cloneOrder(order), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]purchasing.PurchaseOrder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	orders := make([]purchasing.PurchaseOrder, 0, len(r.m.orders))
	for _, order := range r.m.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *memOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.orders)), nil
}

func (r *memOrderRepo) Save(_ context.Context, order *purchasing.PurchaseOrder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memOrderRepo) SaveWithLock(_ context.Context, order *purchasing.PurchaseOrder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	order.Version++
	r.m.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memOrderRepo) GenerateOrderNumber(_ context.Context) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.orderSeq++
	return fmt.Sprintf("PO-2026-%05d", r.m.orderSeq), nil
}

type memProductRepo struct{ m *memoryRepos }

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	product, ok := r.m.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *memProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, product := range r.m.products {
		if product.Code == code {
			return product, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	products := make([]catalog.Product, 0, len(r.m.products))
	for _, product := range r.m.products {
		products = append(products, *product)
	}
	return products, nil
}

func (r *memProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.products)), nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.products, id)
	return nil
}

type memPresentationRepo struct{ m *memoryRepos }

func (r *memPresentationRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Presentation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	presentation, ok := r.m.presentations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return presentation, nil
}

func (r *memPresentationRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]catalog.Presentation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var presentations []catalog.Presentation
	for _, presentation := range r.m.presentations {
		if presentation.ProductID == productID {
			presentations = append(presentations, *presentation)
		}
	}
	return presentations, nil
}

func (r *memPresentationRepo) Save(_ context.Context, presentation *catalog.Presentation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.presentations[presentation.ID] = presentation
	return nil
}

type memReceptionRepo struct{ m *memoryRepos }

func (r *memReceptionRepo) FindByID(_ context.Context, id uuid.UUID) (*purchasing.ReceptionEvent, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	event, ok := r.m.receptions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return event, nil
}

func (r *memReceptionRepo) FindByPurchaseOrder(_ context.Context, purchaseOrderID uuid.UUID) ([]purchasing.ReceptionEvent, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var events []purchasing.ReceptionEvent
	for _, event := range r.m.receptions {
		if event.PurchaseOrderID == purchaseOrderID {
			events = append(events, *event)
		}
	}
	return events, nil
}

func (r *memReceptionRepo) Save(_ context.Context, event *purchasing.ReceptionEvent) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.receptions[event.ID] = event
	return nil
}

type memLotRepo struct{ m *memoryRepos }

func (r *memLotRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Lot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	lot, ok := r.m.lots[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return lot, nil
}

func (r *memLotRepo) FindByReception(_ context.Context, receptionID uuid.UUID) ([]inventory.Lot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var lots []inventory.Lot
	for _, lot := range r.m.lots {
		if lot.ReceptionID != nil && *lot.ReceptionID == receptionID {
			lots = append(lots, *lot)
		}
	}
	return lots, nil
}

func (r *memLotRepo) FindByProduct(_ context.Context, productID, branchID uuid.UUID, _ shared.Filter) ([]inventory.Lot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var lots []inventory.Lot
	for _, lot := range r.m.lots {
		if lot.ProductID == productID && lot.BranchID == branchID {
			lots = append(lots, *lot)
		}
	}
	return lots, nil
}

func (r *memLotRepo) Save(_ context.Context, lot *inventory.Lot) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.lots[lot.ID] = lot
	return nil
}

func (r *memLotRepo) TotalQuantityForProduct(_ context.Context, productID, branchID uuid.UUID) (decimal.Decimal, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	total := decimal.Zero
	for _, lot := range r.m.lots {
		if lot.ProductID == productID && lot.BranchID == branchID {
			total = total.Add(lot.Quantity)
		}
	}
	return total, nil
}

type memPackagedLotRepo struct{ m *memoryRepos }

func (r *memPackagedLotRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.PackagedLot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	lot, ok := r.m.packagedLots[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return lot, nil
}

func (r *memPackagedLotRepo) FindByReception(_ context.Context, receptionID uuid.UUID) ([]inventory.PackagedLot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var lots []inventory.PackagedLot
	for _, lot := range r.m.packagedLots {
		if lot.ReceptionID != nil && *lot.ReceptionID == receptionID {
			lots = append(lots, *lot)
		}
	}
	return lots, nil
}

func (r *memPackagedLotRepo) FindByPresentation(_ context.Context, presentationID, branchID uuid.UUID, _ shared.Filter) ([]inventory.PackagedLot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var lots []inventory.PackagedLot
	for _, lot := range r.m.packagedLots {
		if lot.PresentationID == presentationID && lot.BranchID == branchID {
			lots = append(lots, *lot)
		}
	}
	return lots, nil
}

func (r *memPackagedLotRepo) Save(_ context.Context, lot *inventory.PackagedLot) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.packagedLots[lot.ID] = lot
	return nil
}

func (r *memPackagedLotRepo) TotalQuantityForPresentation(_ context.Context, presentationID, branchID uuid.UUID) (decimal.Decimal, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	total := decimal.Zero
	for _, lot := range r.m.packagedLots {
		if lot.PresentationID == presentationID && lot.BranchID == branchID {
			total = total.Add(lot.Quantity)
		}
	}
	return total, nil
}

type memRequisitionRepo struct{ m *memoryRepos }

func (r *memRequisitionRepo) FindByID(_ context.Context, id uuid.UUID) (*requisition.Requisition, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req, ok := r.m.requisitions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneRequisition(req), nil
}

func (r *memRequisitionRepo) FindByLineID(_ context.Context, lineID uuid.UUID) (*requisition.Requisition, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, req := range r.m.requisitions {
		for i := range req.Lines {
			if req.Lines[i].ID == lineID {
				return cloneRequisition(req), nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRequisitionRepo) FindAll(_ context.Context, _ shared.Filter) ([]requisition.Requisition, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	reqs := make([]requisition.Requisition, 0, len(r.m.requisitions))
	for _, req := range r.m.requisitions {
		reqs = append(reqs, *req)
	}
	return reqs, nil
}

func (r *memRequisitionRepo) Save(_ context.Context, req *requisition.Requisition) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.requisitions[req.ID] = cloneRequisition(req)
	return nil
}

func (r *memRequisitionRepo) SaveWithLock(_ context.Context, req *requisition.Requisition) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req.Version++
	r.m.requisitions[req.ID] = cloneRequisition(req)
	return nil
}

type memLineReceptionRepo struct{ m *memoryRepos }

func (r *memLineReceptionRepo) FindByRequisitionLine(_ context.Context, lineID uuid.UUID) ([]requisition.LineReception, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var links []requisition.LineReception
	for _, link := range r.m.lineReceptions {
		if link.RequisitionLineID == lineID {
			links = append(links, *link)
		}
	}
	return links, nil
}

func (r *memLineReceptionRepo) Save(_ context.Context, linkage *requisition.LineReception) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.lineReceptions = append(r.m.lineReceptions, linkage)
	return nil
}

type memSalesRepo struct{ m *memoryRepos }

func (r *memSalesRepo) FindByID(_ context.Context, id uuid.UUID) (*sales.SalesOrder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	order, ok := r.m.salesOrders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneSalesOrder(order), nil
}

func (r *memSalesRepo) Save(_ context.Context, order *sales.SalesOrder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.salesOrders[order.ID] = cloneSalesOrder(order)
	return nil
}

type memMovementRepo struct{ m *memoryRepos }

func (r *memMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.FinancialMovement, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	movement, ok := r.m.movements[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return movement, nil
}

func (r *memMovementRepo) FindByReference(_ context.Context, reference string) ([]finance.FinancialMovement, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var movements []finance.FinancialMovement
	for _, movement := range r.m.movements {
		if movement.Reference == reference {
			movements = append(movements, *movement)
		}
	}
	return movements, nil
}

func (r *memMovementRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.FinancialMovement, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	movements := make([]finance.FinancialMovement, 0, len(r.m.movements))
	for _, movement := range r.m.movements {
		movements = append(movements, *movement)
	}
	return movements, nil
}

func (r *memMovementRepo) Save(_ context.Context, movement *finance.FinancialMovement) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.movements[movement.ID] = movement
	return nil
}

type memShiftRepo struct{ m *memoryRepos }

func (r *memShiftRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.CashShift, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	shift, ok := r.m.shifts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return shift, nil
}

func (r *memShiftRepo) FindOpenByBranch(_ context.Context, branchID uuid.UUID) (*finance.CashShift, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, shift := range r.m.shifts {
		if shift.BranchID == branchID && shift.IsOpen() {
			return shift, nil
		}
	}
	return nil, shared.ErrShiftNotOpen
}

func (r *memShiftRepo) Save(_ context.Context, shift *finance.CashShift) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.shifts[shift.ID] = shift
	return nil
}

type memAccountRepo struct{ m *memoryRepos }

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	account, ok := r.m.accounts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return account, nil
}

func (r *memAccountRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.BankAccount, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	accounts := make([]finance.BankAccount, 0, len(r.m.accounts))
	for _, account := range r.m.accounts {
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

func (r *memAccountRepo) Save(_ context.Context, account *finance.BankAccount) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.accounts[account.ID] = account
	return nil
}

type memAllocationRepo struct{ m *memoryRepos }

func (r *memAllocationRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.AllocationRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	record, ok := r.m.allocations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return record, nil
}

func (r *memAllocationRepo) FindByPurchaseOrder(_ context.Context, purchaseOrderID uuid.UUID) ([]finance.AllocationRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var records []finance.AllocationRecord
	for _, record := range r.m.allocations {
		if record.PurchaseOrderID == purchaseOrderID {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (r *memAllocationRepo) Save(_ context.Context, record *finance.AllocationRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.allocations[record.ID] = record
	return nil
}
