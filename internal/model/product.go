package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product groups variant items under a subcategory. ProductID is the
// human-facing 8-digit identifier, generated server-side. TotalStock is
// derived from the items' quantities and only written by the recompute
// routine, never taken from a request body.
type Product struct {
	BaseModel
	ProductID     int64     `gorm:"uniqueIndex;not null" json:"product_id"`
	Name          string    `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	HSNCode       string    `gorm:"type:varchar(255)" json:"hsn_code,omitempty"`
	TotalStock    int       `gorm:"not null;default:0" json:"total_stock"`
	IsFavourite   bool      `gorm:"default:false" json:"is_favourite"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	SubCategoryID uuid.UUID `gorm:"column:subcategory_id;type:uuid;not null;index" json:"subcategory" validate:"uuid_required"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty" validate:"-"`

	Items []ProductVariantItem `gorm:"foreignKey:ProductID;references:ID" json:"items,omitempty"`
}

func (Product) TableName() string { return "products" }

// ProductVariantItem is a concrete SKU: one specific combination of variant
// options for a product. Quantity is the authoritative stock for this SKU.
type ProductVariantItem struct {
	BaseModel
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product" validate:"uuid_required"`
	ProductCode string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"product_code"`
	Image       string          `gorm:"type:varchar(512)" json:"image,omitempty"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	HSNCode     string          `gorm:"type:varchar(255)" json:"hsn_code,omitempty"`

	Product        *Product               `gorm:"foreignKey:ProductID" json:"-" validate:"-"`
	Configurations []ProductConfiguration `gorm:"foreignKey:ProductItemID" json:"configurations,omitempty"`
}

func (ProductVariantItem) TableName() string { return "product_variant_items" }

// ProductConfiguration pairs one variant item with one variant option.
// The (item, option) pair is unique.
type ProductConfiguration struct {
	BaseModel
	ProductItemID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_configurations_item_option" json:"product_item" validate:"uuid_required"`
	VariantOptionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_configurations_item_option" json:"variant_option" validate:"uuid_required"`

	VariantOption *VariantOption `gorm:"foreignKey:VariantOptionID" json:"variant_option_detail,omitempty" validate:"-"`
}

func (ProductConfiguration) TableName() string { return "product_configurations" }
