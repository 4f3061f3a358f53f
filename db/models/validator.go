package models

// PremiumValidator is a validator entity running nodes on several networks.
type PremiumValidator struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	Picture   string
	Website   string
	Details   string
	Addresses []PremiumValidatorAddress
}

type PremiumValidatorAddress struct {
	ID                 uint `gorm:"primaryKey"`
	PremiumValidatorID uint `gorm:"uniqueIndex:idx_premium_validator_network"`
	// NetworkID is the network's string id, not its row id.
	NetworkID       string `gorm:"uniqueIndex:idx_premium_validator_network"`
	OperatorAddress string `gorm:"index"`
}
