package model

import "github.com/google/uuid"

// Category is the top of the catalog hierarchy. Names are globally unique.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

func (Category) TableName() string { return "categories" }

// SubCategory belongs to exactly one Category; name unique within it.
type SubCategory struct {
	BaseModel
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subcategories_category_name" json:"category" validate:"uuid_required"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_subcategories_category_name" json:"name" validate:"required"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category_detail,omitempty" validate:"-"`
	Variants []Variant `gorm:"foreignKey:SubCategoryID" json:"variants,omitempty"`
	Products []Product `gorm:"foreignKey:SubCategoryID;references:ID" json:"products,omitempty"`
}

func (SubCategory) TableName() string { return "subcategories" }
