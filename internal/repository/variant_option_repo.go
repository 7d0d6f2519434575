package repository

import (
	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantOptionRepository interface {
	Create(option *model.VariantOption) error
	FindAll(variantID *uuid.UUID) ([]model.VariantOption, error)
	FindByID(id uuid.UUID) (*model.VariantOption, error)
	FindByOption(variantID uuid.UUID, option string) (*model.VariantOption, error)
	Update(option *model.VariantOption) error
}

type variantOptionRepo struct {
	db *gorm.DB
}

func NewVariantOptionRepo(db *gorm.DB) VariantOptionRepository {
	return &variantOptionRepo{db}
}

func (r *variantOptionRepo) Create(option *model.VariantOption) error {
	return r.db.Create(option).Error
}

func (r *variantOptionRepo) FindAll(variantID *uuid.UUID) ([]model.VariantOption, error) {
	var options []model.VariantOption
	q := r.db.Order("option ASC")
	if variantID != nil {
		q = q.Where("variant_id = ?", *variantID)
	}
	err := q.Find(&options).Error
	return options, err
}

func (r *variantOptionRepo) FindByID(id uuid.UUID) (*model.VariantOption, error) {
	var option model.VariantOption
	err := r.db.Preload("Variant").First(&option, "id = ?", id).Error
	return &option, err
}

func (r *variantOptionRepo) FindByOption(variantID uuid.UUID, option string) (*model.VariantOption, error) {
	var opt model.VariantOption
	err := r.db.First(&opt, "variant_id = ? AND option = ?", variantID, option).Error
	return &opt, err
}

func (r *variantOptionRepo) Update(option *model.VariantOption) error {
	return r.db.Save(option).Error
}
