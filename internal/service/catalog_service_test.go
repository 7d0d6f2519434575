package service

import (
	"errors"
	"testing"

	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	svc, _ := newCatalogService(t)

	category := &model.Category{Name: "Apparel"}
	require.NoError(t, svc.CreateCategory(category))
	assert.NotEqual(t, uuid.Nil, category.ID)

	fetched, err := svc.GetCategory(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apparel", fetched.Name)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, _ := newCatalogService(t)

	require.NoError(t, svc.CreateCategory(&model.Category{Name: "Apparel"}))

	err := svc.CreateCategory(&model.Category{Name: "Apparel"})
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "category", dup.Scope)
}

func TestCreateCategoryMissingName(t *testing.T) {
	svc, _ := newCatalogService(t)

	err := svc.CreateCategory(&model.Category{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateCategoryNameConflict(t *testing.T) {
	svc, _ := newCatalogService(t)

	first := &model.Category{Name: "Apparel"}
	require.NoError(t, svc.CreateCategory(first))
	second := &model.Category{Name: "Footwear"}
	require.NoError(t, svc.CreateCategory(second))

	_, err := svc.UpdateCategory(second.ID, &model.Category{Name: "Apparel"})
	var dup *DuplicateNameError
	assert.ErrorAs(t, err, &dup)

	// Renaming to its own current name is fine
	updated, err := svc.UpdateCategory(second.ID, &model.Category{Name: "Footwear"})
	require.NoError(t, err)
	assert.Equal(t, "Footwear", updated.Name)
}

func TestSubCategoryNameScopedToCategory(t *testing.T) {
	svc, _ := newCatalogService(t)

	apparel := &model.Category{Name: "Apparel"}
	require.NoError(t, svc.CreateCategory(apparel))
	footwear := &model.Category{Name: "Footwear"}
	require.NoError(t, svc.CreateCategory(footwear))

	require.NoError(t, svc.CreateSubCategory(&model.SubCategory{
		CategoryID: apparel.ID, Name: "Casual",
	}))

	// Same name under a different category is allowed
	require.NoError(t, svc.CreateSubCategory(&model.SubCategory{
		CategoryID: footwear.ID, Name: "Casual",
	}))

	// Same name under the same category is not
	err := svc.CreateSubCategory(&model.SubCategory{
		CategoryID: apparel.ID, Name: "Casual",
	})
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "subcategory", dup.Scope)
}

func TestCreateSubCategoryMissingParent(t *testing.T) {
	svc, _ := newCatalogService(t)

	err := svc.CreateSubCategory(&model.SubCategory{
		CategoryID: uuid.New(), Name: "Casual",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVariantOptionScopedUniqueness(t *testing.T) {
	svc, db := newCatalogService(t)
	f := seedCatalog(t, db)

	color := &model.Variant{SubCategoryID: f.subcategory.ID, Name: "Color"}
	require.NoError(t, svc.CreateVariant(color))

	// "Small" already exists under Size but not under Color
	require.NoError(t, svc.CreateVariantOption(&model.VariantOption{
		VariantID: color.ID, Option: "Small",
	}))

	err := svc.CreateVariantOption(&model.VariantOption{
		VariantID: f.size.ID, Option: "Small",
	})
	var dup *DuplicateNameError
	assert.ErrorAs(t, err, &dup)
}

func TestGetSubCategoriesFilteredByCategory(t *testing.T) {
	svc, db := newCatalogService(t)
	f := seedCatalog(t, db)

	other := &model.Category{Name: "Footwear"}
	require.NoError(t, svc.CreateCategory(other))
	require.NoError(t, svc.CreateSubCategory(&model.SubCategory{
		CategoryID: other.ID, Name: "Sneakers",
	}))

	all, err := svc.GetSubCategories(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.GetSubCategories(&f.category.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Shirts", filtered[0].Name)
}

func TestDeleteCategoryCascades(t *testing.T) {
	svc, db := newCatalogService(t)
	f := seedCatalog(t, db)

	require.NoError(t, svc.DeleteCategory(f.category.ID))

	_, err := svc.GetCategory(f.category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetSubCategory(f.subcategory.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetVariant(f.size.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetVariantOption(f.small.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.VariantOption{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteVariantRemovesItemConfigurations(t *testing.T) {
	svc, db := newCatalogService(t)
	f := seedCatalog(t, db)

	productSvc := newProductService(t, db)
	product := seedProduct(t, productSvc, f)

	_, err := productSvc.CreateItem(&VariantItemRequest{
		ProductID:      product.ID,
		Quantity:       5,
		VariantOptions: []uuid.UUID{f.small.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVariant(f.size.ID))

	var count int64
	require.NoError(t, db.Model(&model.ProductConfiguration{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMissingCategory(t *testing.T) {
	svc, _ := newCatalogService(t)

	err := svc.DeleteCategory(uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}
