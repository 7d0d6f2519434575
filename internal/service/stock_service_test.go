package service

import (
	"testing"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stockFixture wires a product with a single item of the given quantity.
func stockFixture(t *testing.T, db *gorm.DB, quantity int) (ProductService, StockService, *model.ProductVariantItem) {
	t.Helper()

	f := seedCatalog(t, db)
	productSvc := newProductService(t, db)
	product := seedProduct(t, productSvc, f)

	item, err := productSvc.CreateItem(&VariantItemRequest{
		ProductID:      product.ID,
		Quantity:       quantity,
		VariantOptions: []uuid.UUID{f.small.ID},
	})
	require.NoError(t, err)

	return productSvc, newStockService(t, db), item
}

func TestAddStock(t *testing.T) {
	db := setupTestDB(t)
	productSvc, stockSvc, item := stockFixture(t, db, 5)

	entry, err := stockSvc.AddStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         10,
		Notes:            "restock",
		ReferenceNumber:  "PO-1001",
	}, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, model.TxAdd, entry.TransactionType)
	assert.Equal(t, 10, entry.Quantity)
	assert.Equal(t, "PO-1001", entry.ReferenceNumber)
	assert.False(t, entry.Timestamp.IsZero())

	fetched, err := productSvc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, fetched.Quantity)

	product, err := productSvc.GetProduct(item.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 15, product.TotalStock)
}

func TestAddStockRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	_, stockSvc, item := stockFixture(t, db, 5)

	_, err := stockSvc.AddStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         0,
	}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = stockSvc.AddStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         -3,
	}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddStockMissingItem(t *testing.T) {
	db := setupTestDB(t)
	stockSvc := newStockService(t, db)

	_, err := stockSvc.AddStock(&StockMovementRequest{
		ProductVariantID: uuid.New(),
		Quantity:         5,
	}, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveStockInsufficient(t *testing.T) {
	db := setupTestDB(t)
	productSvc, stockSvc, item := stockFixture(t, db, 20)
	userID := uuid.New()

	// 20 - 12 leaves 8
	_, err := stockSvc.RemoveStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         12,
	}, userID)
	require.NoError(t, err)

	fetched, err := productSvc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, fetched.Quantity)

	// Removing 9 from 8 must fail and change nothing
	_, err = stockSvc.RemoveStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         9,
	}, userID)
	require.ErrorIs(t, err, ErrInsufficientStock)

	fetched, err = productSvc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, fetched.Quantity)

	// The failed removal left no ledger row behind
	var count int64
	require.NoError(t, db.Model(&model.StockTransaction{}).
		Where("product_variant_id = ?", item.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEveryMovementWritesOneLedgerRow(t *testing.T) {
	db := setupTestDB(t)
	_, stockSvc, item := stockFixture(t, db, 0)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := stockSvc.AddStock(&StockMovementRequest{
			ProductVariantID: item.ID,
			Quantity:         4,
		}, userID)
		require.NoError(t, err)
	}
	_, err := stockSvc.RemoveStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         2,
	}, userID)
	require.NoError(t, err)

	entries, count, err := stockSvc.StockHistory(item.ID, repository.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.Len(t, entries, 4)
}

func TestStockHistoryFilterByType(t *testing.T) {
	db := setupTestDB(t)
	_, stockSvc, item := stockFixture(t, db, 10)
	userID := uuid.New()

	_, err := stockSvc.AddStock(&StockMovementRequest{ProductVariantID: item.ID, Quantity: 5}, userID)
	require.NoError(t, err)
	_, err = stockSvc.RemoveStock(&StockMovementRequest{ProductVariantID: item.ID, Quantity: 3}, userID)
	require.NoError(t, err)
	_, err = stockSvc.RemoveStock(&StockMovementRequest{ProductVariantID: item.ID, Quantity: 1}, userID)
	require.NoError(t, err)

	removes, count, err := stockSvc.StockHistory(item.ID, repository.HistoryFilter{
		TransactionType: model.TxRemove,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	for _, entry := range removes {
		assert.Equal(t, model.TxRemove, entry.TransactionType)
	}

	// Pagination caps the page, not the count
	page, count, err := stockSvc.StockHistory(item.ID, repository.HistoryFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, page, 2)
}

func TestStockHistoryMissingItem(t *testing.T) {
	db := setupTestDB(t)
	stockSvc := newStockService(t, db)

	_, _, err := stockSvc.StockHistory(uuid.New(), repository.HistoryFilter{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddStockStampsTriggeredAlert(t *testing.T) {
	db := setupTestDB(t)
	_, stockSvc, item := stockFixture(t, db, 0)

	alert := &model.LowStockAlert{ProductVariantID: item.ID, Threshold: 10, IsActive: true}
	require.NoError(t, stockSvc.CreateAlert(alert))
	require.Nil(t, alert.LastNotified)

	// 0 + 5 = 5 <= 10: the alert fires and is stamped
	_, err := stockSvc.AddStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         5,
	}, uuid.New())
	require.NoError(t, err)

	stamped, err := stockSvc.GetAlert(alert.ID)
	require.NoError(t, err)
	require.NotNil(t, stamped.LastNotified)
	first := *stamped.LastNotified

	// 5 + 20 = 25 > 10: quantity is healthy again, no restamp
	_, err = stockSvc.AddStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         20,
	}, uuid.New())
	require.NoError(t, err)

	stamped, err = stockSvc.GetAlert(alert.ID)
	require.NoError(t, err)
	require.NotNil(t, stamped.LastNotified)
	assert.Equal(t, first, *stamped.LastNotified)
}

func TestAddStockIgnoresInactiveAlert(t *testing.T) {
	db := setupTestDB(t)
	_, stockSvc, item := stockFixture(t, db, 0)

	alert := &model.LowStockAlert{ProductVariantID: item.ID, Threshold: 10, IsActive: true}
	require.NoError(t, stockSvc.CreateAlert(alert))
	_, err := stockSvc.UpdateAlert(alert.ID, &model.LowStockAlert{Threshold: 10, IsActive: false})
	require.NoError(t, err)

	_, err = stockSvc.AddStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         5,
	}, uuid.New())
	require.NoError(t, err)

	fetched, err := stockSvc.GetAlert(alert.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.LastNotified)
}

func TestCurrentAlertsLiveMembership(t *testing.T) {
	db := setupTestDB(t)
	_, stockSvc, item := stockFixture(t, db, 5)
	userID := uuid.New()

	alert := &model.LowStockAlert{ProductVariantID: item.ID, Threshold: 10, IsActive: true}
	require.NoError(t, stockSvc.CreateAlert(alert))

	// 5 <= 10: triggered
	triggered, err := stockSvc.CurrentAlerts()
	require.NoError(t, err)
	require.Len(t, triggered, 1)
	assert.Equal(t, alert.ID, triggered[0].ID)

	// 5 + 10 = 15 > 10: membership reflects the live quantity
	_, err = stockSvc.AddStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         10,
	}, userID)
	require.NoError(t, err)

	triggered, err = stockSvc.CurrentAlerts()
	require.NoError(t, err)
	assert.Empty(t, triggered)

	// 15 - 6 = 9 <= 10: back in
	_, err = stockSvc.RemoveStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         6,
	}, userID)
	require.NoError(t, err)

	triggered, err = stockSvc.CurrentAlerts()
	require.NoError(t, err)
	assert.Len(t, triggered, 1)
}

func TestRemoveStockDoesNotStampAlert(t *testing.T) {
	db := setupTestDB(t)
	_, stockSvc, item := stockFixture(t, db, 20)

	alert := &model.LowStockAlert{ProductVariantID: item.ID, Threshold: 10, IsActive: true}
	require.NoError(t, stockSvc.CreateAlert(alert))

	// 20 - 15 = 5 <= 10, but only arrivals stamp the alert
	_, err := stockSvc.RemoveStock(&StockMovementRequest{
		ProductVariantID: item.ID,
		Quantity:         15,
	}, uuid.New())
	require.NoError(t, err)

	fetched, err := stockSvc.GetAlert(alert.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.LastNotified)

	// It still shows up in the live view
	triggered, err := stockSvc.CurrentAlerts()
	require.NoError(t, err)
	assert.Len(t, triggered, 1)
}

func TestCreateAlertDefaultsAndUniqueness(t *testing.T) {
	db := setupTestDB(t)
	_, stockSvc, item := stockFixture(t, db, 5)

	alert := &model.LowStockAlert{ProductVariantID: item.ID}
	require.NoError(t, stockSvc.CreateAlert(alert))
	assert.Equal(t, 10, alert.Threshold)

	err := stockSvc.CreateAlert(&model.LowStockAlert{ProductVariantID: item.ID, Threshold: 3})
	var dup *DuplicateNameError
	assert.ErrorAs(t, err, &dup)
}

func TestCreateAlertMissingItem(t *testing.T) {
	db := setupTestDB(t)
	stockSvc := newStockService(t, db)

	err := stockSvc.CreateAlert(&model.LowStockAlert{ProductVariantID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}
