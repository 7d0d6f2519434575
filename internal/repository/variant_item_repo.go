package repository

import (
	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantItemRepository interface {
	FindAll() ([]model.ProductVariantItem, error)
	FindByID(id uuid.UUID) (*model.ProductVariantItem, error)
	FindByCode(code string) (*model.ProductVariantItem, error)
	FindByProduct(productID uuid.UUID) ([]model.ProductVariantItem, error)
	SumQuantityByProduct(tx *gorm.DB, productID uuid.UUID) (int, error)
}

type variantItemRepo struct {
	db *gorm.DB
}

func NewVariantItemRepo(db *gorm.DB) VariantItemRepository {
	return &variantItemRepo{db}
}

func (r *variantItemRepo) FindAll() ([]model.ProductVariantItem, error) {
	var items []model.ProductVariantItem
	err := r.db.Preload("Configurations.VariantOption.Variant").Find(&items).Error
	return items, err
}

func (r *variantItemRepo) FindByID(id uuid.UUID) (*model.ProductVariantItem, error) {
	var item model.ProductVariantItem
	err := r.db.Preload("Configurations.VariantOption.Variant").First(&item, "id = ?", id).Error
	return &item, err
}

func (r *variantItemRepo) FindByCode(code string) (*model.ProductVariantItem, error) {
	var item model.ProductVariantItem
	err := r.db.First(&item, "product_code = ?", code).Error
	return &item, err
}

func (r *variantItemRepo) FindByProduct(productID uuid.UUID) ([]model.ProductVariantItem, error) {
	var items []model.ProductVariantItem
	err := r.db.Preload("Configurations.VariantOption.Variant").
		Where("product_id = ?", productID).
		Find(&items).Error
	return items, err
}

// SumQuantityByProduct takes *gorm.DB (tx) so aggregate reads see the
// post-mutation snapshot inside the calling transaction
func (r *variantItemRepo) SumQuantityByProduct(tx *gorm.DB, productID uuid.UUID) (int, error) {
	var total int
	err := tx.Model(&model.ProductVariantItem{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
