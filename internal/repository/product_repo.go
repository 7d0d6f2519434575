package repository

import (
	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	UpdateTotalStock(tx *gorm.DB, id uuid.UUID, total int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// FindAll lists products newest first, ties broken by the numeric identifier
func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("CreatedBy").
		Order("created_at DESC, product_id DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("CreatedBy").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// UpdateTotalStock accepts *gorm.DB (tx) so the recompute runs inside the
// same transaction as the mutation that triggered it. This is the only
// write path for total_stock.
func (r *productRepo) UpdateTotalStock(tx *gorm.DB, id uuid.UUID, total int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("total_stock", total).Error
}
