package db

import (
	"context"
	"errors"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Registry lists the networks and premium validators known to the deployment.
type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// GetNetworks returns the enabled networks ordered by network id.
func (r *Registry) GetNetworks(ctx context.Context) ([]models.Network, error) {
	var networks []models.Network
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("network_id asc").Find(&networks).Error
	return networks, err
}

// GetPremiumValidators returns the premium validators with their operator addresses on every network.
func (r *Registry) GetPremiumValidators(ctx context.Context) ([]models.PremiumValidator, error) {
	var validators []models.PremiumValidator
	err := r.db.WithContext(ctx).Preload("Addresses").Order("name asc").Find(&validators).Error
	return validators, err
}

func (r *Registry) UpsertNetwork(ctx context.Context, network models.Network) (models.Network, error) {
	if network.NetworkID == "" {
		return models.Network{}, errors.New("network id is required")
	}
	network.ID = 0
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "network_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "staking_denom", "address_prefix", "validator_address_prefix", "enabled"}),
	}).Create(&network).Error
	if err != nil {
		config.Log.Error("Error getting/creating network.", err)
		return models.Network{}, err
	}
	// the returned id is not reliable on conflict
	err = r.db.WithContext(ctx).Where("network_id = ?", network.NetworkID).First(&network).Error
	return network, err
}

// UpsertPremiumValidator stores a premium validator and replaces its addresses.
func (r *Registry) UpsertPremiumValidator(ctx context.Context, validator models.PremiumValidator) (models.PremiumValidator, error) {
	if validator.Name == "" {
		return models.PremiumValidator{}, errors.New("validator name is required")
	}
	addresses := validator.Addresses
	validator.ID = 0
	validator.Addresses = nil

	err := r.db.WithContext(ctx).Transaction(func(dbTransaction *gorm.DB) error {
		if err := dbTransaction.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"picture", "website", "details"}),
		}).Create(&validator).Error; err != nil {
			return err
		}
		if err := dbTransaction.Where("name = ?", validator.Name).First(&validator).Error; err != nil {
			return err
		}
		if err := dbTransaction.Where("premium_validator_id = ?", validator.ID).Delete(&models.PremiumValidatorAddress{}).Error; err != nil {
			return err
		}
		for i := range addresses {
			addresses[i].ID = 0
			addresses[i].PremiumValidatorID = validator.ID
		}
		if len(addresses) != 0 {
			if err := dbTransaction.Create(&addresses).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.Log.Error("Error getting/creating premium validator.", err)
		return models.PremiumValidator{}, err
	}
	validator.Addresses = addresses
	return validator, nil
}
