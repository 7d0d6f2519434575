package repository

import (
	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConfigurationRepository interface {
	Create(config *model.ProductConfiguration) error
	FindAll() ([]model.ProductConfiguration, error)
	FindByID(id uuid.UUID) (*model.ProductConfiguration, error)
	FindByItem(itemID uuid.UUID) ([]model.ProductConfiguration, error)
	Update(config *model.ProductConfiguration) error
	Delete(id uuid.UUID) error
}

type configurationRepo struct {
	db *gorm.DB
}

func NewConfigurationRepo(db *gorm.DB) ConfigurationRepository {
	return &configurationRepo{db}
}

func (r *configurationRepo) Create(config *model.ProductConfiguration) error {
	return r.db.Create(config).Error
}

func (r *configurationRepo) FindAll() ([]model.ProductConfiguration, error) {
	var configs []model.ProductConfiguration
	err := r.db.Preload("VariantOption.Variant").Find(&configs).Error
	return configs, err
}

func (r *configurationRepo) FindByID(id uuid.UUID) (*model.ProductConfiguration, error) {
	var config model.ProductConfiguration
	err := r.db.Preload("VariantOption.Variant").First(&config, "id = ?", id).Error
	return &config, err
}

func (r *configurationRepo) FindByItem(itemID uuid.UUID) ([]model.ProductConfiguration, error) {
	var configs []model.ProductConfiguration
	err := r.db.Preload("VariantOption.Variant").
		Where("product_item_id = ?", itemID).
		Find(&configs).Error
	return configs, err
}

func (r *configurationRepo) Update(config *model.ProductConfiguration) error {
	return r.db.Save(config).Error
}

func (r *configurationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.ProductConfiguration{}, "id = ?", id).Error
}
