package finance

import (
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialMovementRecordedEvent is raised when a movement is written
type FinancialMovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementID     uuid.UUID              `json:"movement_id"`
	BranchID       uuid.UUID              `json:"branch_id"`
	Classification MovementClassification `json:"classification"`
	PaymentMethod  PaymentMethod          `json:"payment_method"`
	DeltaCash      decimal.Decimal        `json:"delta_cash"`
	DeltaBank      decimal.Decimal        `json:"delta_bank"`
	Reference      string                 `json:"reference"`
}

// EventType returns the event type name
func (e *FinancialMovementRecordedEvent) EventType() string {
	return "FinancialMovementRecorded"
}

// NewFinancialMovementRecordedEvent creates a new FinancialMovementRecordedEvent
func NewFinancialMovementRecordedEvent(m *FinancialMovement) *FinancialMovementRecordedEvent {
	return &FinancialMovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FinancialMovementRecorded", "FinancialMovement", m.ID),
		MovementID:      m.ID,
		BranchID:        m.BranchID,
		Classification:  m.Classification,
		PaymentMethod:   m.PaymentMethod,
		DeltaCash:       m.DeltaCash,
		DeltaBank:       m.DeltaBank,
		Reference:       m.Reference,
	}
}
