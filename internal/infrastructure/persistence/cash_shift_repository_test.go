package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockCashShiftRepository(t *testing.T) (*GormCashShiftRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCashShiftRepository(gormDB), mock, mockDB
}

func TestGormCashShiftRepository_FindOpenByBranch(t *testing.T) {
	t.Run("finds the open shift", func(t *testing.T) {
		repo, mock, mockDB := newMockCashShiftRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()
		shiftID := uuid.New()
		openedBy := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "branch_id", "opened_by", "opened_at", "status", "opening_balance"}).
			AddRow(shiftID, branchID, openedBy, time.Now(), "OPEN", decimal.NewFromInt(5000))

		mock.ExpectQuery(`SELECT \* FROM "cash_shifts" WHERE branch_id = \$1 AND status = \$2`).
			WithArgs(branchID, string(finance.ShiftStatusOpen), 1).
			WillReturnRows(rows)

		shift, err := repo.FindOpenByBranch(context.Background(), branchID)

		assert.NoError(t, err)
		require.NotNil(t, shift)
		assert.Equal(t, shiftID, shift.ID)
		assert.True(t, shift.IsOpen())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns shift-not-open when none is open", func(t *testing.T) {
		repo, mock, mockDB := newMockCashShiftRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cash_shifts" WHERE branch_id = \$1 AND status = \$2`).
			WithArgs(branchID, string(finance.ShiftStatusOpen), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		shift, err := repo.FindOpenByBranch(context.Background(), branchID)

		assert.Nil(t, shift)
		assert.ErrorIs(t, err, shared.ErrShiftNotOpen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
