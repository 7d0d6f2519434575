package repository

import (
	"time"

	"stockflow-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryFilter narrows a stock-history query. Bounds are inclusive.
type HistoryFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	TransactionType model.TransactionType
	Limit           int
	Offset          int
}

type StockTransactionRepository interface {
	FindByID(id uuid.UUID) (*model.StockTransaction, error)
	FindByVariant(itemID uuid.UUID, filter HistoryFilter) ([]model.StockTransaction, error)
	CountByVariant(itemID uuid.UUID, filter HistoryFilter) (int64, error)
}

type stockTransactionRepo struct {
	db *gorm.DB
}

func NewStockTransactionRepo(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db}
}

func (r *stockTransactionRepo) FindByID(id uuid.UUID) (*model.StockTransaction, error) {
	var tx model.StockTransaction
	err := r.db.Preload("ProductVariant").Preload("User").First(&tx, "id = ?", id).Error
	return &tx, err
}

func (r *stockTransactionRepo) FindByVariant(itemID uuid.UUID, filter HistoryFilter) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	err := r.filtered(itemID, filter).
		Preload("User").
		Order("timestamp DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&transactions).Error
	return transactions, err
}

func (r *stockTransactionRepo) CountByVariant(itemID uuid.UUID, filter HistoryFilter) (int64, error) {
	var count int64
	err := r.filtered(itemID, filter).Count(&count).Error
	return count, err
}

func (r *stockTransactionRepo) filtered(itemID uuid.UUID, filter HistoryFilter) *gorm.DB {
	q := r.db.Model(&model.StockTransaction{}).Where("product_variant_id = ?", itemID)
	if filter.StartDate != nil {
		q = q.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("timestamp <= ?", *filter.EndDate)
	}
	if filter.TransactionType != "" {
		q = q.Where("transaction_type = ?", filter.TransactionType)
	}
	return q
}
