package repository

import (
	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(alert *model.LowStockAlert) error
	FindAll() ([]model.LowStockAlert, error)
	FindByID(id uuid.UUID) (*model.LowStockAlert, error)
	FindByVariant(itemID uuid.UUID) (*model.LowStockAlert, error)
	FindTriggered() ([]model.LowStockAlert, error)
	Update(alert *model.LowStockAlert) error
	Delete(id uuid.UUID) error
}

type alertRepo struct {
	db *gorm.DB
}

func NewAlertRepo(db *gorm.DB) AlertRepository {
	return &alertRepo{db}
}

func (r *alertRepo) Create(alert *model.LowStockAlert) error {
	return r.db.Create(alert).Error
}

func (r *alertRepo) FindAll() ([]model.LowStockAlert, error) {
	var alerts []model.LowStockAlert
	err := r.db.Preload("ProductVariant.Configurations.VariantOption.Variant").Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) FindByID(id uuid.UUID) (*model.LowStockAlert, error) {
	var alert model.LowStockAlert
	err := r.db.Preload("ProductVariant").First(&alert, "id = ?", id).Error
	return &alert, err
}

func (r *alertRepo) FindByVariant(itemID uuid.UUID) (*model.LowStockAlert, error) {
	var alert model.LowStockAlert
	err := r.db.First(&alert, "product_variant_id = ?", itemID).Error
	return &alert, err
}

// FindTriggered evaluates the low-stock condition live against the items'
// current quantities; nothing is cached
func (r *alertRepo) FindTriggered() ([]model.LowStockAlert, error) {
	var alerts []model.LowStockAlert
	err := r.db.
		Joins("JOIN product_variant_items ON product_variant_items.id = low_stock_alerts.product_variant_id").
		Where("low_stock_alerts.is_active = ? AND product_variant_items.quantity <= low_stock_alerts.threshold", true).
		Preload("ProductVariant.Configurations.VariantOption.Variant").
		Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) Update(alert *model.LowStockAlert) error {
	return r.db.Save(alert).Error
}

func (r *alertRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.LowStockAlert{}, "id = ?", id).Error
}
