package service

import (
	"errors"
	"fmt"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService owns the reference-data hierarchy:
// Category -> SubCategory -> Variant -> VariantOption.
// Deleting a node cascades to everything it owns.
type CatalogService interface {
	CreateCategory(req *model.Category) error
	GetCategories() ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *model.Category) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error

	CreateSubCategory(req *model.SubCategory) error
	GetSubCategories(categoryID *uuid.UUID) ([]model.SubCategory, error)
	GetSubCategory(id uuid.UUID) (*model.SubCategory, error)
	UpdateSubCategory(id uuid.UUID, req *model.SubCategory) (*model.SubCategory, error)
	DeleteSubCategory(id uuid.UUID) error

	CreateVariant(req *model.Variant) error
	GetVariants(subcategoryID *uuid.UUID) ([]model.Variant, error)
	GetVariant(id uuid.UUID) (*model.Variant, error)
	UpdateVariant(id uuid.UUID, req *model.Variant) (*model.Variant, error)
	DeleteVariant(id uuid.UUID) error

	CreateVariantOption(req *model.VariantOption) error
	GetVariantOptions(variantID *uuid.UUID) ([]model.VariantOption, error)
	GetVariantOption(id uuid.UUID) (*model.VariantOption, error)
	UpdateVariantOption(id uuid.UUID, req *model.VariantOption) (*model.VariantOption, error)
	DeleteVariantOption(id uuid.UUID) error
}

type catalogService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	variantRepo     repository.VariantRepository
	optionRepo      repository.VariantOptionRepository
	db              *gorm.DB
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	variantRepo repository.VariantRepository,
	optionRepo repository.VariantOptionRepository,
	db *gorm.DB,
) CatalogService {
	return &catalogService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		variantRepo:     variantRepo,
		optionRepo:      optionRepo,
		db:              db,
	}
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return invalidInput(fmt.Sprintf("field '%s' failed on tag '%s'", first.FailedField, first.Tag))
}

// ---------- Category ----------

func (s *catalogService) CreateCategory(req *model.Category) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	// App-level check gives a readable error; the unique index is the backstop
	existing, _ := s.categoryRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return &DuplicateNameError{Scope: "category", Name: req.Name}
	}

	if err := s.categoryRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &DuplicateNameError{Scope: "category", Name: req.Name}
		}
		return err
	}
	return nil
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, notFound("category")
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, notFound("category")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if req.Name != existing.Name {
		conflict, _ := s.categoryRepo.FindByName(req.Name)
		if conflict != nil && conflict.ID != uuid.Nil && conflict.ID != id {
			return nil, &DuplicateNameError{Scope: "category", Name: req.Name}
		}
	}

	existing.Name = req.Name
	if err := s.categoryRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateNameError{Scope: "category", Name: req.Name}
		}
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return notFound("category")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteCategoryTx(tx, id)
	})
}

// ---------- SubCategory ----------

func (s *catalogService) CreateSubCategory(req *model.SubCategory) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return notFound("category")
	}

	existing, _ := s.subCategoryRepo.FindByName(req.CategoryID, req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return &DuplicateNameError{Scope: "subcategory", Name: req.Name}
	}

	if err := s.subCategoryRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &DuplicateNameError{Scope: "subcategory", Name: req.Name}
		}
		return err
	}
	return nil
}

func (s *catalogService) GetSubCategories(categoryID *uuid.UUID) ([]model.SubCategory, error) {
	return s.subCategoryRepo.FindAll(categoryID)
}

func (s *catalogService) GetSubCategory(id uuid.UUID) (*model.SubCategory, error) {
	subcategory, err := s.subCategoryRepo.FindByID(id)
	if err != nil {
		return nil, notFound("subcategory")
	}
	return subcategory, nil
}

func (s *catalogService) UpdateSubCategory(id uuid.UUID, req *model.SubCategory) (*model.SubCategory, error) {
	existing, err := s.subCategoryRepo.FindByID(id)
	if err != nil {
		return nil, notFound("subcategory")
	}
	if req.Name == "" {
		return nil, invalidInput("name is required")
	}

	if req.Name != existing.Name {
		conflict, _ := s.subCategoryRepo.FindByName(existing.CategoryID, req.Name)
		if conflict != nil && conflict.ID != uuid.Nil && conflict.ID != id {
			return nil, &DuplicateNameError{Scope: "subcategory", Name: req.Name}
		}
	}

	existing.Name = req.Name
	if err := s.subCategoryRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateNameError{Scope: "subcategory", Name: req.Name}
		}
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteSubCategory(id uuid.UUID) error {
	if _, err := s.subCategoryRepo.FindByID(id); err != nil {
		return notFound("subcategory")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteSubCategoryTx(tx, id)
	})
}

// ---------- Variant ----------

func (s *catalogService) CreateVariant(req *model.Variant) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if _, err := s.subCategoryRepo.FindByID(req.SubCategoryID); err != nil {
		return notFound("subcategory")
	}

	existing, _ := s.variantRepo.FindByName(req.SubCategoryID, req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return &DuplicateNameError{Scope: "variant", Name: req.Name}
	}

	if err := s.variantRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &DuplicateNameError{Scope: "variant", Name: req.Name}
		}
		return err
	}
	return nil
}

func (s *catalogService) GetVariants(subcategoryID *uuid.UUID) ([]model.Variant, error) {
	return s.variantRepo.FindAll(subcategoryID)
}

func (s *catalogService) GetVariant(id uuid.UUID) (*model.Variant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		return nil, notFound("variant")
	}
	return variant, nil
}

func (s *catalogService) UpdateVariant(id uuid.UUID, req *model.Variant) (*model.Variant, error) {
	existing, err := s.variantRepo.FindByID(id)
	if err != nil {
		return nil, notFound("variant")
	}
	if req.Name == "" {
		return nil, invalidInput("name is required")
	}

	if req.Name != existing.Name {
		conflict, _ := s.variantRepo.FindByName(existing.SubCategoryID, req.Name)
		if conflict != nil && conflict.ID != uuid.Nil && conflict.ID != id {
			return nil, &DuplicateNameError{Scope: "variant", Name: req.Name}
		}
	}

	existing.Name = req.Name
	if err := s.variantRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateNameError{Scope: "variant", Name: req.Name}
		}
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteVariant(id uuid.UUID) error {
	if _, err := s.variantRepo.FindByID(id); err != nil {
		return notFound("variant")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteVariantTx(tx, id)
	})
}

// ---------- VariantOption ----------

func (s *catalogService) CreateVariantOption(req *model.VariantOption) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if _, err := s.variantRepo.FindByID(req.VariantID); err != nil {
		return notFound("variant")
	}

	existing, _ := s.optionRepo.FindByOption(req.VariantID, req.Option)
	if existing != nil && existing.ID != uuid.Nil {
		return &DuplicateNameError{Scope: "variant option", Name: req.Option}
	}

	if err := s.optionRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &DuplicateNameError{Scope: "variant option", Name: req.Option}
		}
		return err
	}
	return nil
}

func (s *catalogService) GetVariantOptions(variantID *uuid.UUID) ([]model.VariantOption, error) {
	return s.optionRepo.FindAll(variantID)
}

func (s *catalogService) GetVariantOption(id uuid.UUID) (*model.VariantOption, error) {
	option, err := s.optionRepo.FindByID(id)
	if err != nil {
		return nil, notFound("variant option")
	}
	return option, nil
}

func (s *catalogService) UpdateVariantOption(id uuid.UUID, req *model.VariantOption) (*model.VariantOption, error) {
	existing, err := s.optionRepo.FindByID(id)
	if err != nil {
		return nil, notFound("variant option")
	}
	if req.Option == "" {
		return nil, invalidInput("option is required")
	}

	if req.Option != existing.Option {
		conflict, _ := s.optionRepo.FindByOption(existing.VariantID, req.Option)
		if conflict != nil && conflict.ID != uuid.Nil && conflict.ID != id {
			return nil, &DuplicateNameError{Scope: "variant option", Name: req.Option}
		}
	}

	existing.Option = req.Option
	if err := s.optionRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateNameError{Scope: "variant option", Name: req.Option}
		}
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteVariantOption(id uuid.UUID) error {
	if _, err := s.optionRepo.FindByID(id); err != nil {
		return notFound("variant option")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteVariantOptionTx(tx, id)
	})
}
