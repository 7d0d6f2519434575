package service

import (
	"time"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/internal/ws"
	"stockflow-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func nowUTC() time.Time { return time.Now().UTC() }

// StockMovementRequest is the body shape shared by add-stock and remove-stock.
type StockMovementRequest struct {
	ProductVariantID uuid.UUID `json:"product_variant_id" validate:"uuid_required"`
	Quantity         int       `json:"quantity" validate:"gt=0"`
	Notes            string    `json:"notes"`
	ReferenceNumber  string    `json:"reference_number"`
}

// StockService is the ledger: every add/remove appends exactly one immutable
// StockTransaction and keeps the item quantity and product aggregate in step,
// all inside one database transaction.
type StockService interface {
	AddStock(req *StockMovementRequest, userID uuid.UUID) (*model.StockTransaction, error)
	RemoveStock(req *StockMovementRequest, userID uuid.UUID) (*model.StockTransaction, error)
	StockHistory(itemID uuid.UUID, filter repository.HistoryFilter) ([]model.StockTransaction, int64, error)
	GetTransaction(id uuid.UUID) (*model.StockTransaction, error)

	CurrentAlerts() ([]model.LowStockAlert, error)
	CreateAlert(req *model.LowStockAlert) error
	GetAlerts() ([]model.LowStockAlert, error)
	GetAlert(id uuid.UUID) (*model.LowStockAlert, error)
	UpdateAlert(id uuid.UUID, req *model.LowStockAlert) (*model.LowStockAlert, error)
	DeleteAlert(id uuid.UUID) error
}

type stockService struct {
	itemRepo    repository.VariantItemRepository
	productRepo repository.ProductRepository
	txRepo      repository.StockTransactionRepository
	alertRepo   repository.AlertRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewStockService(
	itemRepo repository.VariantItemRepository,
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
	alertRepo repository.AlertRepository,
	db *gorm.DB,
	hub *ws.Hub,
) StockService {
	return &stockService{
		itemRepo:    itemRepo,
		productRepo: productRepo,
		txRepo:      txRepo,
		alertRepo:   alertRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *stockService) AddStock(req *StockMovementRequest, userID uuid.UUID) (*model.StockTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var entry model.StockTransaction
	var alertTriggered *model.LowStockAlert
	var newQuantity int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.ProductVariantItem
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&item, "id = ?", req.ProductVariantID).Error; err != nil {
			return notFound("product variant")
		}

		entry = model.StockTransaction{
			ProductVariantID: item.ID,
			Quantity:         req.Quantity,
			TransactionType:  model.TxAdd,
			Timestamp:        nowUTC(),
			UserID:           &userID,
			Notes:            req.Notes,
			ReferenceNumber:  req.ReferenceNumber,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		newQuantity = item.Quantity + req.Quantity
		if err := tx.Model(&item).Update("quantity", newQuantity).Error; err != nil {
			return err
		}

		if err := s.recomputeTotalTx(tx, item.ProductID); err != nil {
			return err
		}

		// Alert evaluation happens in the same transaction; delivery does not.
		var alert model.LowStockAlert
		err := tx.First(&alert, "product_variant_id = ?", item.ID).Error
		if err == nil && alert.IsActive && newQuantity <= alert.Threshold {
			now := nowUTC()
			if err := tx.Model(&alert).Update("last_notified", now).Error; err != nil {
				return err
			}
			alert.LastNotified = &now
			alertTriggered = &alert
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, best-effort notification dispatch
	if s.wsHub != nil {
		go func() {
			s.wsHub.Publish("stock_update", map[string]interface{}{
				"action":           "stock_added",
				"product_variant":  req.ProductVariantID,
				"quantity":         req.Quantity,
				"new_quantity":     newQuantity,
				"reference_number": req.ReferenceNumber,
			})
			if alertTriggered != nil {
				s.wsHub.Publish("low_stock", map[string]interface{}{
					"product_variant": alertTriggered.ProductVariantID,
					"threshold":       alertTriggered.Threshold,
					"quantity":        newQuantity,
				})
			}
		}()
	}

	return s.txRepo.FindByID(entry.ID)
}

func (s *stockService) RemoveStock(req *StockMovementRequest, userID uuid.UUID) (*model.StockTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var entry model.StockTransaction
	var newQuantity int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.ProductVariantItem
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&item, "id = ?", req.ProductVariantID).Error; err != nil {
			return notFound("product variant")
		}

		// Sufficiency check under the row lock; a concurrent remove cannot
		// both pass it
		if item.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		entry = model.StockTransaction{
			ProductVariantID: item.ID,
			Quantity:         req.Quantity,
			TransactionType:  model.TxRemove,
			Timestamp:        nowUTC(),
			UserID:           &userID,
			Notes:            req.Notes,
			ReferenceNumber:  req.ReferenceNumber,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		newQuantity = item.Quantity - req.Quantity
		if err := tx.Model(&item).Update("quantity", newQuantity).Error; err != nil {
			return err
		}

		return s.recomputeTotalTx(tx, item.ProductID)
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		go s.wsHub.Publish("stock_update", map[string]interface{}{
			"action":           "stock_removed",
			"product_variant":  req.ProductVariantID,
			"quantity":         req.Quantity,
			"new_quantity":     newQuantity,
			"reference_number": req.ReferenceNumber,
		})
	}

	return s.txRepo.FindByID(entry.ID)
}

func (s *stockService) StockHistory(itemID uuid.UUID, filter repository.HistoryFilter) ([]model.StockTransaction, int64, error) {
	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		return nil, 0, notFound("product variant")
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	transactions, err := s.txRepo.FindByVariant(itemID, filter)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.txRepo.CountByVariant(itemID, filter)
	if err != nil {
		return nil, 0, err
	}
	return transactions, count, nil
}

func (s *stockService) GetTransaction(id uuid.UUID) (*model.StockTransaction, error) {
	entry, err := s.txRepo.FindByID(id)
	if err != nil {
		return nil, notFound("stock transaction")
	}
	return entry, nil
}

// ---------- Low-stock alerts ----------

func (s *stockService) CurrentAlerts() ([]model.LowStockAlert, error) {
	return s.alertRepo.FindTriggered()
}

func (s *stockService) CreateAlert(req *model.LowStockAlert) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if _, err := s.itemRepo.FindByID(req.ProductVariantID); err != nil {
		return notFound("product variant")
	}
	if req.Threshold == 0 {
		req.Threshold = 10
	}

	existing, _ := s.alertRepo.FindByVariant(req.ProductVariantID)
	if existing != nil && existing.ID != uuid.Nil {
		return &DuplicateNameError{Scope: "low stock alert", Name: req.ProductVariantID.String()}
	}
	return s.alertRepo.Create(req)
}

func (s *stockService) GetAlerts() ([]model.LowStockAlert, error) {
	return s.alertRepo.FindAll()
}

func (s *stockService) GetAlert(id uuid.UUID) (*model.LowStockAlert, error) {
	alert, err := s.alertRepo.FindByID(id)
	if err != nil {
		return nil, notFound("low stock alert")
	}
	return alert, nil
}

func (s *stockService) UpdateAlert(id uuid.UUID, req *model.LowStockAlert) (*model.LowStockAlert, error) {
	existing, err := s.alertRepo.FindByID(id)
	if err != nil {
		return nil, notFound("low stock alert")
	}
	if req.Threshold < 0 {
		return nil, invalidInput("threshold must not be negative")
	}

	existing.Threshold = req.Threshold
	existing.IsActive = req.IsActive
	if err := s.alertRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *stockService) DeleteAlert(id uuid.UUID) error {
	if _, err := s.alertRepo.FindByID(id); err != nil {
		return notFound("low stock alert")
	}
	return s.alertRepo.Delete(id)
}

func (s *stockService) recomputeTotalTx(tx *gorm.DB, productID uuid.UUID) error {
	total, err := s.itemRepo.SumQuantityByProduct(tx, productID)
	if err != nil {
		return err
	}
	return s.productRepo.UpdateTotalStock(tx, productID, total)
}
