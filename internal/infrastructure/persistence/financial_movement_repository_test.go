package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// FinancialMovementModelSQLite is a SQLite-compatible version of
// FinancialMovementModel for testing
type FinancialMovementModelSQLite struct {
	ID             string  `gorm:"primaryKey"`
	BranchID       string  `gorm:"index;not null"`
	Classification string  `gorm:"not null"`
	PaymentMethod  string  `gorm:"not null"`
	DeltaCash      string  `gorm:"not null"`
	DeltaBank      string  `gorm:"not null"`
	Reference      string  `gorm:"index;not null"`
	CashShiftID    *string `gorm:"index"`
	BankAccountID  *string
	SupplierID     string `gorm:"not null"`
	UserID         string `gorm:"not null"`
	Version        int    `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (FinancialMovementModelSQLite) TableName() string {
	return "financial_movements"
}

func setupMovementTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&FinancialMovementModelSQLite{})
	require.NoError(t, err)

	return db
}

func newCashMovement(t *testing.T, branchID uuid.UUID, amount, reference string) *finance.FinancialMovement {
	t.Helper()
	shiftID := uuid.New()
	movement, err := finance.NewFinancialMovement(
		branchID,
		finance.ClassificationCostOfGoods,
		finance.PaymentMethodCash,
		decimal.RequireFromString(amount).Neg(),
		decimal.Zero,
		reference,
		&shiftID, nil,
		uuid.New(), uuid.New(),
	)
	require.NoError(t, err)
	return movement
}

func TestFinancialMovementRepository_SaveAndFindByID(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewGormFinancialMovementRepository(db)
	ctx := context.Background()

	branchID := uuid.New()
	movement := newCashMovement(t, branchID, "655", "PO:PO-2026-00001")

	err := repo.Save(ctx, movement)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, movement.ID)
	require.NoError(t, err)
	assert.Equal(t, movement.ID, found.ID)
	assert.Equal(t, branchID, found.BranchID)
	assert.Equal(t, finance.ClassificationCostOfGoods, found.Classification)
	assert.Equal(t, finance.PaymentMethodCash, found.PaymentMethod)
	assert.True(t, found.DeltaCash.Equal(decimal.RequireFromString("-655")))
	assert.True(t, found.DeltaBank.IsZero())
	assert.Equal(t, "PO:PO-2026-00001", found.Reference)
	require.NotNil(t, found.CashShiftID)
	assert.Equal(t, *movement.CashShiftID, *found.CashShiftID)
	assert.Nil(t, found.BankAccountID)
}

func TestFinancialMovementRepository_FindByID_NotFound(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewGormFinancialMovementRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestFinancialMovementRepository_FindByReference(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewGormFinancialMovementRepository(db)
	ctx := context.Background()

	branchID := uuid.New()
	// two receptions of the same order post two movements
	require.NoError(t, repo.Save(ctx, newCashMovement(t, branchID, "153", "PO:PO-2026-00007")))
	require.NoError(t, repo.Save(ctx, newCashMovement(t, branchID, "502", "PO:PO-2026-00007")))
	require.NoError(t, repo.Save(ctx, newCashMovement(t, branchID, "99", "PO:PO-2026-00008")))

	movements, err := repo.FindByReference(ctx, "PO:PO-2026-00007")
	require.NoError(t, err)
	require.Len(t, movements, 2)
	for _, m := range movements {
		assert.Equal(t, "PO:PO-2026-00007", m.Reference)
	}

	movements, err = repo.FindByReference(ctx, "PO:PO-2026-09999")
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestFinancialMovementRepository_FindAll(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewGormFinancialMovementRepository(db)
	ctx := context.Background()

	branchID := uuid.New()
	otherBranchID := uuid.New()

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Save(ctx, newCashMovement(t, branchID, "100", "PO:PO-2026-00010")))
	}
	require.NoError(t, repo.Save(ctx, newCashMovement(t, otherBranchID, "100", "PO:PO-2026-00011")))

	t.Run("filters by branch", func(t *testing.T) {
		movements, err := repo.FindAll(ctx, shared.Filter{
			Filters: map[string]any{"branch_id": branchID},
		})
		require.NoError(t, err)
		assert.Len(t, movements, 4)
	})

	t.Run("filters by payment method", func(t *testing.T) {
		movements, err := repo.FindAll(ctx, shared.Filter{
			Filters: map[string]any{"payment_method": string(finance.PaymentMethodTransfer)},
		})
		require.NoError(t, err)
		assert.Empty(t, movements)
	})

	t.Run("applies pagination", func(t *testing.T) {
		movements, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 3})
		require.NoError(t, err)
		assert.Len(t, movements, 3)
	})
}
