package repository

import (
	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubCategoryRepository interface {
	Create(subcategory *model.SubCategory) error
	FindAll(categoryID *uuid.UUID) ([]model.SubCategory, error)
	FindByID(id uuid.UUID) (*model.SubCategory, error)
	FindByName(categoryID uuid.UUID, name string) (*model.SubCategory, error)
	Update(subcategory *model.SubCategory) error
}

type subCategoryRepo struct {
	db *gorm.DB
}

func NewSubCategoryRepo(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepo{db}
}

func (r *subCategoryRepo) Create(subcategory *model.SubCategory) error {
	return r.db.Create(subcategory).Error
}

// FindAll lists subcategories, optionally filtered by parent category
func (r *subCategoryRepo) FindAll(categoryID *uuid.UUID) ([]model.SubCategory, error) {
	var subcategories []model.SubCategory
	q := r.db.Order("name ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	err := q.Find(&subcategories).Error
	return subcategories, err
}

func (r *subCategoryRepo) FindByID(id uuid.UUID) (*model.SubCategory, error) {
	var subcategory model.SubCategory
	err := r.db.First(&subcategory, "id = ?", id).Error
	return &subcategory, err
}

func (r *subCategoryRepo) FindByName(categoryID uuid.UUID, name string) (*model.SubCategory, error) {
	var subcategory model.SubCategory
	err := r.db.First(&subcategory, "category_id = ? AND name = ?", categoryID, name).Error
	return &subcategory, err
}

func (r *subCategoryRepo) Update(subcategory *model.SubCategory) error {
	return r.db.Save(subcategory).Error
}
