package model

import "github.com/google/uuid"

// Variant is a configurable dimension of a subcategory, e.g. "Size" or "Color".
type Variant struct {
	BaseModel
	SubCategoryID uuid.UUID `gorm:"column:subcategory_id;type:uuid;not null;uniqueIndex:idx_variants_subcategory_name" json:"subcategory" validate:"uuid_required"`
	Name          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_variants_subcategory_name" json:"name" validate:"required"`

	SubCategory *SubCategory    `gorm:"foreignKey:SubCategoryID" json:"subcategory_detail,omitempty" validate:"-"`
	Options     []VariantOption `gorm:"foreignKey:VariantID" json:"options,omitempty"`
}

func (Variant) TableName() string { return "variants" }

// VariantOption is one concrete value of a Variant, e.g. "Red" or "Large".
type VariantOption struct {
	BaseModel
	VariantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_variant_options_variant_option" json:"variant" validate:"uuid_required"`
	Option    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_variant_options_variant_option" json:"option" validate:"required"`

	Variant *Variant `gorm:"foreignKey:VariantID" json:"variant_detail,omitempty" validate:"-"`
}

func (VariantOption) TableName() string { return "variant_options" }
