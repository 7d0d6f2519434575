package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxAdd        TransactionType = "add"
	TxRemove     TransactionType = "remove"
	TxAdjustment TransactionType = "adjustment"
)

// StockTransaction is an append-only ledger entry. add/remove rows mutate the
// referenced item's quantity when the ledger records them; adjustment rows are
// audit-only. Rows are never edited or deleted after creation.
type StockTransaction struct {
	BaseModel
	ProductVariantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_variant" validate:"uuid_required"`
	Quantity         int             `gorm:"not null" json:"quantity"` // signed for adjustment rows
	TransactionType  TransactionType `gorm:"type:varchar(20);not null" json:"transaction_type" validate:"required,oneof=add remove adjustment"`
	Timestamp        time.Time       `gorm:"not null;index" json:"timestamp"`
	Notes            string          `gorm:"type:text" json:"notes,omitempty"`
	ReferenceNumber  string          `gorm:"type:varchar(255)" json:"reference_number,omitempty"`

	// Nullable so the ledger survives removal of the acting user.
	UserID *uuid.UUID `gorm:"type:uuid" json:"user,omitempty"`
	User   *User      `gorm:"foreignKey:UserID" json:"user_detail,omitempty" validate:"-"`

	ProductVariant *ProductVariantItem `gorm:"foreignKey:ProductVariantID" json:"product_variant_detail,omitempty" validate:"-"`
}

func (StockTransaction) TableName() string { return "stock_transactions" }

// LowStockAlert is a per-item threshold rule. Triggered means the item's
// current quantity is at or below the threshold while the alert is active.
type LowStockAlert struct {
	BaseModel
	ProductVariantID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"product_variant" validate:"uuid_required"`
	Threshold        int        `gorm:"not null;default:10" json:"threshold" validate:"gte=0"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	LastNotified     *time.Time `json:"last_notified,omitempty"`

	ProductVariant *ProductVariantItem `gorm:"foreignKey:ProductVariantID" json:"product_variant_detail,omitempty" validate:"-"`
}

func (LowStockAlert) TableName() string { return "low_stock_alerts" }
