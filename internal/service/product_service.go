package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	productIDMin      = 10_000_000
	productIDMax      = 99_999_999
	productIDAttempts = 50
)

// VariantItemRequest is the write shape for a product variant item. The
// option ids define the SKU's configuration; unresolvable ids are dropped.
type VariantItemRequest struct {
	ProductID      uuid.UUID       `json:"product" validate:"uuid_required"`
	ProductCode    string          `json:"product_code"`
	Image          string          `json:"image"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	Price          decimal.Decimal `json:"price"`
	HSNCode        string          `json:"hsn_code"`
	VariantOptions []uuid.UUID     `json:"variant_options" validate:"required,min=1"`
}

// VariantItemUpdateRequest is the write shape for updating an existing item.
// Absent fields keep their current value; Quantity is a pointer so an
// explicit zero still applies while omission preserves.
type VariantItemUpdateRequest struct {
	ProductCode    string          `json:"product_code"`
	Image          string          `json:"image"`
	Quantity       *int            `json:"quantity" validate:"omitempty,gte=0"`
	Price          decimal.Decimal `json:"price"`
	HSNCode        string          `json:"hsn_code"`
	VariantOptions []uuid.UUID     `json:"variant_options"`
}

// StockAdjustment is the result of a direct quantity correction.
type StockAdjustment struct {
	ID                uuid.UUID `json:"id"`
	NewQuantity       int       `json:"new_quantity"`
	TotalProductStock int       `json:"total_product_stock"`
}

type ProductService interface {
	CreateProduct(req *model.Product, userID uuid.UUID) error
	GetProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error

	CreateItem(req *VariantItemRequest) (*model.ProductVariantItem, error)
	BulkCreateItems(reqs []VariantItemRequest) ([]model.ProductVariantItem, error)
	AddItemsToProduct(productID uuid.UUID, reqs []VariantItemRequest) ([]model.ProductVariantItem, error)
	GetItems() ([]model.ProductVariantItem, error)
	GetItem(id uuid.UUID) (*model.ProductVariantItem, error)
	GetItemByCode(code string) (*model.ProductVariantItem, error)
	GetItemsByProduct(productID uuid.UUID) ([]model.ProductVariantItem, error)
	UpdateItem(id uuid.UUID, req *VariantItemUpdateRequest) (*model.ProductVariantItem, error)
	DeleteItem(id uuid.UUID) error
	AdjustStock(itemID uuid.UUID, delta int, userID uuid.UUID) (*StockAdjustment, error)
}

type productService struct {
	productRepo repository.ProductRepository
	itemRepo    repository.VariantItemRepository
	db          *gorm.DB
}

func NewProductService(
	productRepo repository.ProductRepository,
	itemRepo repository.VariantItemRepository,
	db *gorm.DB,
) ProductService {
	return &productService{
		productRepo: productRepo,
		itemRepo:    itemRepo,
		db:          db,
	}
}

// ---------- Products ----------

func (s *productService) CreateProduct(req *model.Product, userID uuid.UUID) error {
	// Client-supplied identifiers and aggregates are never trusted
	req.ProductID = 0
	req.TotalStock = 0
	req.IsActive = true
	req.CreatedByID = &userID

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	// Sample the 8-digit space until a free identifier is found. The space is
	// large relative to the catalog, so collisions are rare; the attempt cap
	// guards against a pathological loop. The unique index on product_id is
	// the final backstop for the check-then-act window.
	return s.db.Transaction(func(tx *gorm.DB) error {
		var subcategory model.SubCategory
		if err := tx.First(&subcategory, "id = ?", req.SubCategoryID).Error; err != nil {
			return notFound("subcategory")
		}

		for attempt := 0; attempt < productIDAttempts; attempt++ {
			candidate := rand.Int63n(productIDMax-productIDMin+1) + productIDMin

			var count int64
			if err := tx.Model(&model.Product{}).
				Where("product_id = ?", candidate).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			req.ProductID = candidate
			err := tx.Create(req).Error
			if err == nil {
				return nil
			}
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // lost the race, resample
			}
			return err
		}
		return ErrCapacityExhausted
	})
}

func (s *productService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound("product")
	}
	return product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound("product")
	}
	if req.Name == "" {
		return nil, invalidInput("name is required")
	}

	// product_id and total_stock stay server-owned
	existing.Name = req.Name
	existing.HSNCode = req.HSNCode
	existing.IsFavourite = req.IsFavourite
	existing.IsActive = req.IsActive
	if req.SubCategoryID != uuid.Nil {
		existing.SubCategoryID = req.SubCategoryID
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return notFound("product")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteProductTx(tx, id)
	})
}

// ---------- Variant items ----------

func (s *productService) CreateItem(req *VariantItemRequest) (*model.ProductVariantItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var item *model.ProductVariantItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.createItemTx(tx, req)
		if err != nil {
			return err
		}
		item = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.itemRepo.FindByID(item.ID)
}

// BulkCreateItems applies the single-item create logic to each spec in order.
// The first failure aborts the whole batch; nothing is committed.
func (s *productService) BulkCreateItems(reqs []VariantItemRequest) ([]model.ProductVariantItem, error) {
	if len(reqs) == 0 {
		return nil, invalidInput("items are required")
	}
	for i := range reqs {
		if errs := validator.ValidateStruct(&reqs[i]); len(errs) > 0 {
			return nil, validationError(errs)
		}
	}

	var created []model.ProductVariantItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range reqs {
			item, err := s.createItemTx(tx, &reqs[i])
			if err != nil {
				return err
			}
			created = append(created, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Re-read with configurations attached
	items := make([]model.ProductVariantItem, 0, len(created))
	for i := range created {
		full, err := s.itemRepo.FindByID(created[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *full)
	}
	return items, nil
}

func (s *productService) AddItemsToProduct(productID uuid.UUID, reqs []VariantItemRequest) ([]model.ProductVariantItem, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, notFound("product")
	}
	for i := range reqs {
		reqs[i].ProductID = productID
	}
	return s.BulkCreateItems(reqs)
}

func (s *productService) GetItems() ([]model.ProductVariantItem, error) {
	return s.itemRepo.FindAll()
}

func (s *productService) GetItem(id uuid.UUID) (*model.ProductVariantItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFound("product variant")
	}
	return item, nil
}

func (s *productService) GetItemByCode(code string) (*model.ProductVariantItem, error) {
	item, err := s.itemRepo.FindByCode(code)
	if err != nil {
		return nil, notFound("product variant")
	}
	return s.itemRepo.FindByID(item.ID)
}

func (s *productService) GetItemsByProduct(productID uuid.UUID) ([]model.ProductVariantItem, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, notFound("product")
	}
	return s.itemRepo.FindByProduct(productID)
}

func (s *productService) UpdateItem(id uuid.UUID, req *VariantItemUpdateRequest) (*model.ProductVariantItem, error) {
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, invalidInput("quantity must not be negative")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.ProductVariantItem
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&item, "id = ?", id).Error; err != nil {
			return notFound("product variant")
		}

		var product model.Product
		if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
			return notFound("product")
		}

		var options []model.VariantOption
		if len(req.VariantOptions) > 0 {
			resolved, err := resolveOptionsTx(tx, req.VariantOptions)
			if err != nil {
				return err
			}
			if len(resolved) == 0 {
				return invalidInput("no valid variant options supplied")
			}
			if err := s.checkDuplicateConfigTx(tx, item.ProductID, resolved, item.ID); err != nil {
				return err
			}
			options = resolved
		}

		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if !req.Price.IsZero() {
			item.Price = req.Price
		}
		if req.ProductCode != "" {
			item.ProductCode = req.ProductCode
		} else if len(options) > 0 {
			// Configuration changed with no explicit code: resynthesize
			item.ProductCode = buildProductCode(product.ProductID, options)
		}
		if req.HSNCode != "" {
			item.HSNCode = req.HSNCode
		}
		if req.Image != "" {
			item.Image = req.Image
		}

		if err := tx.Save(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateNameError{Scope: "product code", Name: item.ProductCode}
			}
			return err
		}

		if len(options) > 0 {
			// Replace the full configuration set
			if err := tx.Delete(&model.ProductConfiguration{}, "product_item_id = ?", item.ID).Error; err != nil {
				return err
			}
			for i := range options {
				config := model.ProductConfiguration{
					ProductItemID:   item.ID,
					VariantOptionID: options[i].ID,
				}
				if err := tx.Create(&config).Error; err != nil {
					return err
				}
			}
		}

		return s.recomputeTotalStockTx(tx, item.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return s.itemRepo.FindByID(id)
}

func (s *productService) DeleteItem(id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return notFound("product variant")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteItemTx(tx, id); err != nil {
			return err
		}
		return s.recomputeTotalStockTx(tx, item.ProductID)
	})
}

// AdjustStock applies a signed delta to an item's quantity, records an
// adjustment ledger row for audit, and recomputes the parent aggregate.
func (s *productService) AdjustStock(itemID uuid.UUID, delta int, userID uuid.UUID) (*StockAdjustment, error) {
	var result StockAdjustment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.ProductVariantItem
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&item, "id = ?", itemID).Error; err != nil {
			return notFound("product variant")
		}

		newQuantity := item.Quantity + delta
		if newQuantity < 0 {
			return ErrInsufficientStock
		}

		if err := tx.Model(&item).Update("quantity", newQuantity).Error; err != nil {
			return err
		}

		entry := model.StockTransaction{
			ProductVariantID: item.ID,
			Quantity:         delta,
			TransactionType:  model.TxAdjustment,
			Timestamp:        nowUTC(),
			UserID:           &userID,
			Notes:            "direct stock adjustment",
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		total, err := s.itemRepo.SumQuantityByProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if err := s.productRepo.UpdateTotalStock(tx, item.ProductID, total); err != nil {
			return err
		}
		result = StockAdjustment{
			ID:                item.ID,
			NewQuantity:       newQuantity,
			TotalProductStock: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ---------- Internals ----------

// createItemTx runs the full single-item create pipeline inside tx:
// resolve options, reject duplicate configurations, synthesize the SKU,
// inherit the tax code, persist item + configuration rows, recompute the
// parent's total stock.
func (s *productService) createItemTx(tx *gorm.DB, req *VariantItemRequest) (*model.ProductVariantItem, error) {
	var product model.Product
	if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", req.ProductID).Error; err != nil {
		return nil, notFound("product")
	}

	options, err := resolveOptionsTx(tx, req.VariantOptions)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, invalidInput("no valid variant options supplied")
	}

	if err := s.checkDuplicateConfigTx(tx, product.ID, options, uuid.Nil); err != nil {
		return nil, err
	}

	code := req.ProductCode
	if code == "" {
		code = buildProductCode(product.ProductID, options)
	}

	hsn := req.HSNCode
	if hsn == "" {
		hsn = product.HSNCode
	}

	item := model.ProductVariantItem{
		ProductID:   product.ID,
		ProductCode: code,
		Image:       req.Image,
		Quantity:    req.Quantity,
		Price:       req.Price,
		HSNCode:     hsn,
	}
	if err := tx.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateNameError{Scope: "product code", Name: code}
		}
		return nil, err
	}

	for i := range options {
		config := model.ProductConfiguration{
			ProductItemID:   item.ID,
			VariantOptionID: options[i].ID,
		}
		if err := tx.Create(&config).Error; err != nil {
			return nil, err
		}
	}

	if err := s.recomputeTotalStockTx(tx, product.ID); err != nil {
		return nil, err
	}
	return &item, nil
}

// resolveOptionsTx resolves option ids in request order, preloading the
// parent variant. Unresolvable ids are silently dropped.
func resolveOptionsTx(tx *gorm.DB, ids []uuid.UUID) ([]model.VariantOption, error) {
	options := make([]model.VariantOption, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		var option model.VariantOption
		err := tx.Preload("Variant").First(&option, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	return options, nil
}

// checkDuplicateConfigTx compares the candidate option set, order-independent,
// against every sibling item's configuration under the same product.
// excludeItem skips the item being updated.
func (s *productService) checkDuplicateConfigTx(tx *gorm.DB, productID uuid.UUID, options []model.VariantOption, excludeItem uuid.UUID) error {
	candidate := make([]string, 0, len(options))
	for i := range options {
		candidate = append(candidate, options[i].ID.String())
	}
	sort.Strings(candidate)

	var siblingIDs []uuid.UUID
	q := tx.Model(&model.ProductVariantItem{}).Where("product_id = ?", productID)
	if excludeItem != uuid.Nil {
		q = q.Where("id <> ?", excludeItem)
	}
	if err := q.Pluck("id", &siblingIDs).Error; err != nil {
		return err
	}

	for _, siblingID := range siblingIDs {
		var existing []string
		if err := tx.Model(&model.ProductConfiguration{}).
			Where("product_item_id = ?", siblingID).
			Pluck("variant_option_id", &existing).Error; err != nil {
			return err
		}
		sort.Strings(existing)

		if equalStringSlices(candidate, existing) {
			details := make([]string, 0, len(options))
			for i := range options {
				name := ""
				if options[i].Variant != nil {
					name = options[i].Variant.Name
				}
				details = append(details, fmt.Sprintf("%s: %s", name, options[i].Option))
			}
			return &DuplicateConfigurationError{Options: details}
		}
	}
	return nil
}

// buildProductCode synthesizes a SKU from the product's numeric identifier
// and the first three characters of each option value, e.g. 40328175-LAR-RED.
// Deterministic for a given option set and resolution order.
func buildProductCode(productID int64, options []model.VariantOption) string {
	parts := make([]string, 0, len(options))
	for i := range options {
		value := []rune(options[i].Option)
		if len(value) > 3 {
			value = value[:3]
		}
		parts = append(parts, strings.ToUpper(string(value)))
	}
	return fmt.Sprintf("%d-%s", productID, strings.Join(parts, "-"))
}

func (s *productService) recomputeTotalStockTx(tx *gorm.DB, productID uuid.UUID) error {
	total, err := s.itemRepo.SumQuantityByProduct(tx, productID)
	if err != nil {
		return err
	}
	return s.productRepo.UpdateTotalStock(tx, productID, total)
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
