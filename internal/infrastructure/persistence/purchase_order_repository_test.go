package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPurchaseOrderRepository creates a GormPurchaseOrderRepository with a mocked SQL connection
func newMockPurchaseOrderRepository(t *testing.T) (*GormPurchaseOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormPurchaseOrderRepository(gormDB), mock, mockDB
}

func newTestOrderForPersistence(t *testing.T) *purchasing.PurchaseOrder {
	t.Helper()
	branch := uuid.New()
	order, err := purchasing.NewPurchaseOrder("PO-2026-00042", uuid.New(), "Distribuidora Norte", &branch)
	require.NoError(t, err)
	_, err = order.AddLine(uuid.New(), "Harina 1kg", nil,
		decimal.NewFromInt(10), decimal.RequireFromString("25.50"), nil, nil)
	require.NoError(t, err)
	return order
}

func TestGormPurchaseOrderRepository_FindByID(t *testing.T) {
	t.Run("finds existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		supplierID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "order_number", "supplier_id", "supplier_name", "status", "total_amount", "version"}).
			AddRow(orderID, "PO-2026-00042", supplierID, "Distribuidora Norte", "AWAITING_DELIVERY", decimal.NewFromInt(255), 1)

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "purchase_order_items" WHERE "purchase_order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name"}))

		order, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, "PO-2026-00042", order.OrderNumber)
		assert.Equal(t, purchasing.PurchaseOrderStatusAwaitingDelivery, order.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not-found for unknown order", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("saves when versions match", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		order := newTestOrderForPersistence(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "purchase_orders" WHERE id = \$1`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(order.Version))
		mock.ExpectExec(`UPDATE "purchase_orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "purchase_order_items"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO "purchase_order_items" .* ON CONFLICT \("id"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), order)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails on concurrent modification", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		order := newTestOrderForPersistence(t)

		// Another writer bumped the version since this aggregate was loaded
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "purchase_orders" WHERE id = \$1`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(order.Version + 1))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), order)

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "CONCURRENT_MODIFICATION", de.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails when the update races past the version check", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		order := newTestOrderForPersistence(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "purchase_orders" WHERE id = \$1`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(order.Version))
		mock.ExpectExec(`UPDATE "purchase_orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), order)

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "CONCURRENT_MODIFICATION", de.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_ExistsByOrderNumber(t *testing.T) {
	repo, mock, mockDB := newMockPurchaseOrderRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE order_number = \$1`).
		WithArgs("PO-2026-00042").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByOrderNumber(context.Background(), "PO-2026-00042")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPurchaseOrderRepository_GenerateOrderNumber(t *testing.T) {
	t.Run("starts at 00001 for an empty year", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC`).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE order_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.GenerateOrderNumber(context.Background())

		assert.NoError(t, err)
		assert.Regexp(t, `^PO-\d{4}-00001$`, number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments past the last order of the year", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		lastRows := sqlmock.NewRows([]string{"id", "order_number"}).
			AddRow(uuid.New(), "PO-2026-00041")
		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC`).
			WillReturnRows(lastRows)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE order_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.GenerateOrderNumber(context.Background())

		assert.NoError(t, err)
		assert.Regexp(t, `^PO-\d{4}-00042$`, number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
