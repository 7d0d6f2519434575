package service

import (
	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ownership-based cascade deletes. Each helper runs inside the caller's
// transaction so a parent and all of its descendants disappear atomically.

func deleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	if err := tx.Delete(&model.ProductConfiguration{}, "product_item_id = ?", itemID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&model.LowStockAlert{}, "product_variant_id = ?", itemID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&model.StockTransaction{}, "product_variant_id = ?", itemID).Error; err != nil {
		return err
	}
	return tx.Delete(&model.ProductVariantItem{}, "id = ?", itemID).Error
}

func deleteProductTx(tx *gorm.DB, productID uuid.UUID) error {
	var itemIDs []uuid.UUID
	if err := tx.Model(&model.ProductVariantItem{}).
		Where("product_id = ?", productID).
		Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	for _, itemID := range itemIDs {
		if err := deleteItemTx(tx, itemID); err != nil {
			return err
		}
	}
	return tx.Delete(&model.Product{}, "id = ?", productID).Error
}

func deleteVariantTx(tx *gorm.DB, variantID uuid.UUID) error {
	var optionIDs []uuid.UUID
	if err := tx.Model(&model.VariantOption{}).
		Where("variant_id = ?", variantID).
		Pluck("id", &optionIDs).Error; err != nil {
		return err
	}
	if len(optionIDs) > 0 {
		// Configurations referencing these options go with them.
		if err := tx.Delete(&model.ProductConfiguration{}, "variant_option_id IN ?", optionIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.VariantOption{}, "id IN ?", optionIDs).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&model.Variant{}, "id = ?", variantID).Error
}

func deleteVariantOptionTx(tx *gorm.DB, optionID uuid.UUID) error {
	if err := tx.Delete(&model.ProductConfiguration{}, "variant_option_id = ?", optionID).Error; err != nil {
		return err
	}
	return tx.Delete(&model.VariantOption{}, "id = ?", optionID).Error
}

func deleteSubCategoryTx(tx *gorm.DB, subcategoryID uuid.UUID) error {
	var variantIDs []uuid.UUID
	if err := tx.Model(&model.Variant{}).
		Where("subcategory_id = ?", subcategoryID).
		Pluck("id", &variantIDs).Error; err != nil {
		return err
	}
	for _, variantID := range variantIDs {
		if err := deleteVariantTx(tx, variantID); err != nil {
			return err
		}
	}

	var productIDs []uuid.UUID
	if err := tx.Model(&model.Product{}).
		Where("subcategory_id = ?", subcategoryID).
		Pluck("id", &productIDs).Error; err != nil {
		return err
	}
	for _, productID := range productIDs {
		if err := deleteProductTx(tx, productID); err != nil {
			return err
		}
	}
	return tx.Delete(&model.SubCategory{}, "id = ?", subcategoryID).Error
}

func deleteCategoryTx(tx *gorm.DB, categoryID uuid.UUID) error {
	var subcategoryIDs []uuid.UUID
	if err := tx.Model(&model.SubCategory{}).
		Where("category_id = ?", categoryID).
		Pluck("id", &subcategoryIDs).Error; err != nil {
		return err
	}
	for _, subcategoryID := range subcategoryIDs {
		if err := deleteSubCategoryTx(tx, subcategoryID); err != nil {
			return err
		}
	}
	return tx.Delete(&model.Category{}, "id = ?", categoryID).Error
}
