package models

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialMovementModel is the persistence model for the FinancialMovement aggregate root.
type FinancialMovementModel struct {
	AggregateModel
	BranchID       uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Classification finance.MovementClassification `gorm:"type:varchar(32);not null"`
	PaymentMethod  finance.PaymentMethod          `gorm:"type:varchar(32);not null"`
	DeltaCash      decimal.Decimal                `gorm:"type:decimal(18,4);not null;default:0"`
	DeltaBank      decimal.Decimal                `gorm:"type:decimal(18,4);not null;default:0"`
	Reference      string                         `gorm:"type:varchar(128);not null;index"`
	CashShiftID    *uuid.UUID                     `gorm:"type:uuid;index"`
	BankAccountID  *uuid.UUID                     `gorm:"type:uuid"`
	SupplierID     uuid.UUID                      `gorm:"type:uuid;not null"`
	UserID         uuid.UUID                      `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (FinancialMovementModel) TableName() string {
	return "financial_movements"
}

// ToDomain converts the persistence model to a domain FinancialMovement entity.
func (m *FinancialMovementModel) ToDomain() *finance.FinancialMovement {
	return &finance.FinancialMovement{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BranchID:          m.BranchID,
		Classification:    m.Classification,
		PaymentMethod:     m.PaymentMethod,
		DeltaCash:         m.DeltaCash,
		DeltaBank:         m.DeltaBank,
		Reference:         m.Reference,
		CashShiftID:       m.CashShiftID,
		BankAccountID:     m.BankAccountID,
		SupplierID:        m.SupplierID,
		UserID:            m.UserID,
	}
}

// FromDomain populates the persistence model from a domain FinancialMovement entity.
func (m *FinancialMovementModel) FromDomain(mv *finance.FinancialMovement) {
	m.FromDomainAggregateRoot(mv.BaseAggregateRoot)
	m.BranchID = mv.BranchID
	m.Classification = mv.Classification
	m.PaymentMethod = mv.PaymentMethod
	m.DeltaCash = mv.DeltaCash
	m.DeltaBank = mv.DeltaBank
	m.Reference = mv.Reference
	m.CashShiftID = mv.CashShiftID
	m.BankAccountID = mv.BankAccountID
	m.SupplierID = mv.SupplierID
	m.UserID = mv.UserID
}

// FinancialMovementModelFromDomain creates a new persistence model from a domain FinancialMovement entity.
func FinancialMovementModelFromDomain(mv *finance.FinancialMovement) *FinancialMovementModel {
	m := &FinancialMovementModel{}
	m.FromDomain(mv)
	return m
}

// CashShiftModel is the persistence model for the CashShift aggregate root.
type CashShiftModel struct {
	AggregateModel
	BranchID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	OpenedBy       uuid.UUID           `gorm:"type:uuid;not null"`
	OpenedAt       time.Time           `gorm:"not null"`
	ClosedAt       *time.Time
	ClosedBy       *uuid.UUID          `gorm:"type:uuid"`
	Status         finance.ShiftStatus `gorm:"type:varchar(16);not null"`
	OpeningBalance decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ClosingBalance *decimal.Decimal    `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (CashShiftModel) TableName() string {
	return "cash_shifts"
}

// ToDomain converts the persistence model to a domain CashShift entity.
func (m *CashShiftModel) ToDomain() *finance.CashShift {
	return &finance.CashShift{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BranchID:          m.BranchID,
		OpenedBy:          m.OpenedBy,
		OpenedAt:          m.OpenedAt,
		ClosedAt:          m.ClosedAt,
		ClosedBy:          m.ClosedBy,
		Status:            m.Status,
		OpeningBalance:    m.OpeningBalance,
		ClosingBalance:    m.ClosingBalance,
	}
}

// FromDomain populates the persistence model from a domain CashShift entity.
func (m *CashShiftModel) FromDomain(s *finance.CashShift) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.BranchID = s.BranchID
	m.OpenedBy = s.OpenedBy
	m.OpenedAt = s.OpenedAt
	m.ClosedAt = s.ClosedAt
	m.ClosedBy = s.ClosedBy
	m.Status = s.Status
	m.OpeningBalance = s.OpeningBalance
	m.ClosingBalance = s.ClosingBalance
}

// CashShiftModelFromDomain creates a new persistence model from a domain CashShift entity.
func CashShiftModelFromDomain(s *finance.CashShift) *CashShiftModel {
	m := &CashShiftModel{}
	m.FromDomain(s)
	return m
}

// BankAccountModel is the persistence model for the BankAccount aggregate root.
type BankAccountModel struct {
	AggregateModel
	Name    string          `gorm:"type:varchar(255);not null"`
	Number  string          `gorm:"type:varchar(64);not null"`
	Bank    string          `gorm:"type:varchar(255)"`
	Balance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active  bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount entity.
func (m *BankAccountModel) ToDomain() *finance.BankAccount {
	return &finance.BankAccount{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Number:            m.Number,
		Bank:              m.Bank,
		Balance:           m.Balance,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain BankAccount entity.
func (m *BankAccountModel) FromDomain(a *finance.BankAccount) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.Number = a.Number
	m.Bank = a.Bank
	m.Balance = a.Balance
	m.Active = a.Active
}

// BankAccountModelFromDomain creates a new persistence model from a domain BankAccount entity.
func BankAccountModelFromDomain(a *finance.BankAccount) *BankAccountModel {
	m := &BankAccountModel{}
	m.FromDomain(a)
	return m
}

// AllocationRecordModel is the persistence model for the AllocationRecord entity.
type AllocationRecordModel struct {
	BaseModel
	BranchID        uuid.UUID                  `gorm:"type:uuid;not null;index"`
	PurchaseOrderID uuid.UUID                  `gorm:"type:uuid;not null;index"`
	ReceptionID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Lots            []AllocationRecordLotModel `gorm:"foreignKey:AllocationRecordID;references:ID"`
}

// TableName returns the table name for GORM
func (AllocationRecordModel) TableName() string {
	return "allocation_records"
}

// ToDomain converts the persistence model to a domain AllocationRecord entity.
func (m *AllocationRecordModel) ToDomain() *finance.AllocationRecord {
	record := &finance.AllocationRecord{
		BaseEntity:      m.BaseModel.ToDomain(),
		BranchID:        m.BranchID,
		PurchaseOrderID: m.PurchaseOrderID,
		ReceptionID:     m.ReceptionID,
		Amount:          m.Amount,
		LotIDs:          make([]uuid.UUID, 0),
		PackagedLotIDs:  make([]uuid.UUID, 0),
	}
	for _, lot := range m.Lots {
		if lot.LotID != nil {
			record.LotIDs = append(record.LotIDs, *lot.LotID)
		}
		if lot.PackagedLotID != nil {
			record.PackagedLotIDs = append(record.PackagedLotIDs, *lot.PackagedLotID)
		}
	}
	return record
}

// FromDomain populates the persistence model from a domain AllocationRecord entity.
func (m *AllocationRecordModel) FromDomain(r *finance.AllocationRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.BranchID = r.BranchID
	m.PurchaseOrderID = r.PurchaseOrderID
	m.ReceptionID = r.ReceptionID
	m.Amount = r.Amount
	m.Lots = make([]AllocationRecordLotModel, 0, len(r.LotIDs)+len(r.PackagedLotIDs))
	for _, lotID := range r.LotIDs {
		id := lotID
		m.Lots = append(m.Lots, AllocationRecordLotModel{
			ID:                 uuid.New(),
			AllocationRecordID: r.ID,
			LotID:              &id,
			CreatedAt:          r.CreatedAt,
		})
	}
	for _, packagedLotID := range r.PackagedLotIDs {
		id := packagedLotID
		m.Lots = append(m.Lots, AllocationRecordLotModel{
			ID:                 uuid.New(),
			AllocationRecordID: r.ID,
			PackagedLotID:      &id,
			CreatedAt:          r.CreatedAt,
		})
	}
}

// AllocationRecordModelFromDomain creates a new persistence model from a domain AllocationRecord entity.
func AllocationRecordModelFromDomain(r *finance.AllocationRecord) *AllocationRecordModel {
	m := &AllocationRecordModel{}
	m.FromDomain(r)
	return m
}

// AllocationRecordLotModel links an allocation record to one target lot.
type AllocationRecordLotModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key"`
	AllocationRecordID uuid.UUID  `gorm:"type:uuid;not null;index"`
	LotID              *uuid.UUID `gorm:"type:uuid"`
	PackagedLotID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AllocationRecordLotModel) TableName() string {
	return "allocation_record_lots"
}
