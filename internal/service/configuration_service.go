package service

import (
	"errors"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConfigurationService exposes the raw item↔option join rows. Most callers
// never touch these directly; the item manager maintains them as a set.
type ConfigurationService interface {
	CreateConfiguration(req *model.ProductConfiguration) error
	GetConfigurations() ([]model.ProductConfiguration, error)
	GetConfiguration(id uuid.UUID) (*model.ProductConfiguration, error)
	GetConfigurationsByItem(itemID uuid.UUID) ([]model.ProductConfiguration, error)
	UpdateConfiguration(id uuid.UUID, req *model.ProductConfiguration) (*model.ProductConfiguration, error)
	DeleteConfiguration(id uuid.UUID) error
}

type configurationService struct {
	configRepo repository.ConfigurationRepository
	itemRepo   repository.VariantItemRepository
	optionRepo repository.VariantOptionRepository
}

func NewConfigurationService(
	configRepo repository.ConfigurationRepository,
	itemRepo repository.VariantItemRepository,
	optionRepo repository.VariantOptionRepository,
) ConfigurationService {
	return &configurationService{
		configRepo: configRepo,
		itemRepo:   itemRepo,
		optionRepo: optionRepo,
	}
}

func (s *configurationService) CreateConfiguration(req *model.ProductConfiguration) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if _, err := s.itemRepo.FindByID(req.ProductItemID); err != nil {
		return notFound("product variant")
	}
	if _, err := s.optionRepo.FindByID(req.VariantOptionID); err != nil {
		return notFound("variant option")
	}

	existing, _ := s.configRepo.FindByItem(req.ProductItemID)
	for i := range existing {
		if existing[i].VariantOptionID == req.VariantOptionID {
			return invalidInput("this variant option is already configured for the item")
		}
	}

	if err := s.configRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return invalidInput("this variant option is already configured for the item")
		}
		return err
	}
	return nil
}

func (s *configurationService) GetConfigurations() ([]model.ProductConfiguration, error) {
	return s.configRepo.FindAll()
}

func (s *configurationService) GetConfiguration(id uuid.UUID) (*model.ProductConfiguration, error) {
	config, err := s.configRepo.FindByID(id)
	if err != nil {
		return nil, notFound("product configuration")
	}
	return config, nil
}

func (s *configurationService) GetConfigurationsByItem(itemID uuid.UUID) ([]model.ProductConfiguration, error) {
	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		return nil, notFound("product variant")
	}
	return s.configRepo.FindByItem(itemID)
}

func (s *configurationService) UpdateConfiguration(id uuid.UUID, req *model.ProductConfiguration) (*model.ProductConfiguration, error) {
	existing, err := s.configRepo.FindByID(id)
	if err != nil {
		return nil, notFound("product configuration")
	}
	if req.VariantOptionID == uuid.Nil {
		return nil, invalidInput("variant_option is required")
	}
	if _, err := s.optionRepo.FindByID(req.VariantOptionID); err != nil {
		return nil, notFound("variant option")
	}

	siblings, _ := s.configRepo.FindByItem(existing.ProductItemID)
	for i := range siblings {
		if siblings[i].ID != id && siblings[i].VariantOptionID == req.VariantOptionID {
			return nil, invalidInput("this variant option is already configured for the item")
		}
	}

	existing.VariantOptionID = req.VariantOptionID
	existing.VariantOption = nil
	if err := s.configRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalidInput("this variant option is already configured for the item")
		}
		return nil, err
	}
	return s.configRepo.FindByID(id)
}

func (s *configurationService) DeleteConfiguration(id uuid.UUID) error {
	if _, err := s.configRepo.FindByID(id); err != nil {
		return notFound("product configuration")
	}
	return s.configRepo.Delete(id)
}
