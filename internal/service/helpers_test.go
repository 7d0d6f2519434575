package service

import (
	"testing"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func intp(v int) *int { return &v }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.SubCategory{},
		&model.Variant{},
		&model.VariantOption{},
		&model.Product{},
		&model.ProductVariantItem{},
		&model.ProductConfiguration{},
		&model.StockTransaction{},
		&model.LowStockAlert{},
	))
	return db
}

func newCatalogService(t *testing.T) (CatalogService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewCatalogService(
		repository.NewCategoryRepo(db),
		repository.NewSubCategoryRepo(db),
		repository.NewVariantRepo(db),
		repository.NewVariantOptionRepo(db),
		db,
	)
	return svc, db
}

func newProductService(t *testing.T, db *gorm.DB) ProductService {
	t.Helper()
	return NewProductService(
		repository.NewProductRepo(db),
		repository.NewVariantItemRepo(db),
		db,
	)
}

func newStockService(t *testing.T, db *gorm.DB) StockService {
	t.Helper()
	return NewStockService(
		repository.NewVariantItemRepo(db),
		repository.NewProductRepo(db),
		repository.NewStockTransactionRepo(db),
		repository.NewAlertRepo(db),
		db,
		nil, // no websocket hub in tests
	)
}

// catalogFixture is the Apparel > Shirts > Size {Small, Medium} hierarchy
// used across the product and stock tests.
type catalogFixture struct {
	category    model.Category
	subcategory model.SubCategory
	size        model.Variant
	small       model.VariantOption
	medium      model.VariantOption
}

func seedCatalog(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()

	f := catalogFixture{}
	f.category = model.Category{Name: "Apparel"}
	require.NoError(t, db.Create(&f.category).Error)

	f.subcategory = model.SubCategory{CategoryID: f.category.ID, Name: "Shirts"}
	require.NoError(t, db.Create(&f.subcategory).Error)

	f.size = model.Variant{SubCategoryID: f.subcategory.ID, Name: "Size"}
	require.NoError(t, db.Create(&f.size).Error)

	f.small = model.VariantOption{VariantID: f.size.ID, Option: "Small"}
	require.NoError(t, db.Create(&f.small).Error)

	f.medium = model.VariantOption{VariantID: f.size.ID, Option: "Medium"}
	require.NoError(t, db.Create(&f.medium).Error)

	return f
}

func seedProduct(t *testing.T, svc ProductService, f catalogFixture) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:          "Crew Neck Tee",
		HSNCode:       "6109",
		SubCategoryID: f.subcategory.ID,
	}
	require.NoError(t, svc.CreateProduct(product, uuid.New()))
	return product
}
