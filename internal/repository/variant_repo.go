package repository

import (
	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.Variant) error
	FindAll(subcategoryID *uuid.UUID) ([]model.Variant, error)
	FindByID(id uuid.UUID) (*model.Variant, error)
	FindByName(subcategoryID uuid.UUID, name string) (*model.Variant, error)
	Update(variant *model.Variant) error
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepo(db *gorm.DB) VariantRepository {
	return &variantRepo{db}
}

func (r *variantRepo) Create(variant *model.Variant) error {
	return r.db.Create(variant).Error
}

func (r *variantRepo) FindAll(subcategoryID *uuid.UUID) ([]model.Variant, error) {
	var variants []model.Variant
	q := r.db.Order("name ASC")
	if subcategoryID != nil {
		q = q.Where("subcategory_id = ?", *subcategoryID)
	}
	err := q.Find(&variants).Error
	return variants, err
}

func (r *variantRepo) FindByID(id uuid.UUID) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.First(&variant, "id = ?", id).Error
	return &variant, err
}

func (r *variantRepo) FindByName(subcategoryID uuid.UUID, name string) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.First(&variant, "subcategory_id = ? AND name = ?", subcategoryID, name).Error
	return &variant, err
}

func (r *variantRepo) Update(variant *model.Variant) error {
	return r.db.Save(variant).Error
}
